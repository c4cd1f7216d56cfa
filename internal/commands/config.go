package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tmaia/bugreport/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		theme := cfg.Theme
		if theme == "" {
			theme = "auto"
		}

		path, _ := config.GetConfigPath()
		fmt.Printf("theme:             %s\n", theme)
		fmt.Printf("endpoint:          %s\n", cfg.Endpoint)
		fmt.Printf("copy_to_clipboard: %t\n", cfg.CopyToClipboard)
		fmt.Printf("config file:       %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one setting and persist it.

Keys:
  theme               light, dark, or auto
  endpoint            Proxy base URL
  copy_to_clipboard   true or false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := applySetting(&cfg, args[0], args[1]); err != nil {
			return err
		}

		return config.SaveConfig(cfg)
	},
}

// applySetting mutates cfg for a single key/value pair
func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "theme":
		if value == "auto" {
			value = ""
		}
		if !config.ValidTheme(value) {
			return fmt.Errorf("invalid theme %q (want light, dark, or auto)", value)
		}
		cfg.Theme = value

	case "endpoint":
		if value == "" {
			return fmt.Errorf("endpoint cannot be empty")
		}
		cfg.Endpoint = value

	case "copy_to_clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		cfg.CopyToClipboard = b

	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
