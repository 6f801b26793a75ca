package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge a peer bundle into the inventory",
	Long: `Merge a JSON bundle of peers into the inventory. Each record is
processed independently: duplicates are reported and skipped while the
rest of the batch still lands. Reads from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bundle []byte
		var err error
		if len(args) == 1 && args[0] != "-" {
			bundle, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
		} else {
			bundle, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		resp, err := apiClient().Import(cmd.Context(), bundle)
		if err != nil {
			return err
		}

		for _, r := range resp.Results {
			if r.Success {
				fmt.Printf("  ok   %s\n", r.Name)
			} else {
				fmt.Printf("  fail %s: %s\n", r.Name, r.Error)
			}
		}
		fmt.Printf("Imported %d peers, %d failed\n", resp.Succeeded, resp.Failed)

		if resp.Succeeded == 0 && resp.Failed > 0 {
			return fmt.Errorf("no peers were imported")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
