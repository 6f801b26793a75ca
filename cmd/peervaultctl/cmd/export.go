package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the full inventory as a JSON bundle",
	Long: `Download every peer in the inventory as a JSON bundle suitable for
re-import into another peervault instance. Writes to stdout unless
--output is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		result, err := apiClient().Export(cmd.Context())
		if err != nil {
			return err
		}

		if output == "" || output == "-" {
			_, err = os.Stdout.Write(result.Bundle)
			return err
		}

		if err := os.WriteFile(output, result.Bundle, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d peers to %s\n", result.PeersCount, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "write the bundle to a file instead of stdout")
}
