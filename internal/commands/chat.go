package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmaia/bugreport/internal/api"
	"github.com/tmaia/bugreport/internal/config"
	"github.com/tmaia/bugreport/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive bug report session",
	Long: `Start an interactive chat session. Describe the bug in plain words,
optionally attach a screenshot with /attach, and the assistant replies
with a structured bug report.

Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
	}

	client, err := api.NewClient(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return tui.Run(client, cfg)
}
