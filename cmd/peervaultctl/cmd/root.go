package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peervault/peervault/internal/ctl/client"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "peervaultctl",
	Short: "Manage a peervault inventory from the command line",
	Long: `peervaultctl talks to a running peervault service to manage the
peer inventory: list and register peers, and move whole inventories
between instances with export and import.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("server", "s", "http://127.0.0.1:8080", "peervault server base URL")
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.SetEnvPrefix("PEERVAULT")
	viper.BindEnv("server")
}

func apiClient() *client.Client {
	return client.New(viper.GetString("server"))
}
