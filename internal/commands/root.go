// Package commands provides CLI commands for bugreport.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	endpointFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bugreport",
	Short: "Bug report chat for the Form Builder platform",
	Long: `bugreport turns rough issue descriptions into developer-ready bug
reports. The chat client talks to a proxy that holds the AI credential,
so the key never reaches the terminal.

Examples:
  bugreport chat                 Start the interactive chat
  bugreport serve                Run the credential-holding proxy
  bugreport config show          Print the current configuration`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("bugreport %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// No subcommand defaults to the chat
		return runChat()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "",
		"Proxy base URL (overrides the configured endpoint)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
