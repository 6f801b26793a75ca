package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	pkgapi "github.com/peervault/peervault/pkg/api"
)

// peersCmd represents the peers command
var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "List and manage peers",
}

var peersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all peers in the inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		peers, err := apiClient().ListPeers(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTATUS\tALLOWED IPS\tPUBLIC KEY")
		for _, p := range peers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Status, p.AllowedIPs, p.PublicKey)
		}
		return w.Flush()
	},
}

var peersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new peer",
	Long: `Register a new peer. Without --public-key the server generates a key
pair and prints the private key once; it is not retrievable later.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := pkgapi.CreatePeerRequest{Name: args[0]}
		if key, _ := cmd.Flags().GetString("public-key"); key != "" {
			req.PublicKey = &key
		}
		if ips, _ := cmd.Flags().GetString("allowed-ips"); ips != "" {
			req.AllowedIPs = &ips
		}

		p, err := apiClient().CreatePeer(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Created peer %s (%s)\n", p.Name, p.ID)
		fmt.Printf("  public key:  %s\n", p.PublicKey)
		if p.PrivateKey != nil {
			fmt.Printf("  private key: %s\n", *p.PrivateKey)
			fmt.Println("  Store the private key now; the server will not return it again.")
		}
		return nil
	},
}

var peersRemoveCmd = &cobra.Command{
	Use:   "rm <peer-id>",
	Short: "Remove a peer by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient().DeletePeer(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed peer %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(peersCmd)
	peersCmd.AddCommand(peersListCmd)
	peersCmd.AddCommand(peersAddCmd)
	peersCmd.AddCommand(peersRemoveCmd)

	peersAddCmd.Flags().String("public-key", "", "register with an existing WireGuard public key")
	peersAddCmd.Flags().String("allowed-ips", "", "allowed IPs for the peer")
}
