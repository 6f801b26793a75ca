package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// groupsCmd represents the groups command
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List peer groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := apiClient().ListGroups(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCOLOR\tID")
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%s\t%s\n", g.Name, g.Color, g.ID)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
