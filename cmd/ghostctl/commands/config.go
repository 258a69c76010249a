package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Site       string `json:"site,omitempty"        yaml:"site,omitempty"`
	AdminKey   string `json:"admin_key,omitempty"   yaml:"admin_key,omitempty"`
	ContentKey string `json:"content_key,omitempty" yaml:"content_key,omitempty"`
	APIVersion string `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// Configuration keys accepted by set/unset.
var configKeys = []string{"site", "admin_key", "content_key", "api_version", "output"}

// secretKeys are prompted for without echo when no value is given.
var secretKeys = map[string]bool{
	"admin_key":   true,
	"content_key": true,
}

// ErrUnknownConfigKey is returned for keys outside the accepted set.
var ErrUnknownConfigKey = errors.New("unknown configuration key")

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage ghostctl configuration including site URL, API keys, and output format",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print key material.
			masked := *config
			if masked.AdminKey != "" {
				masked.AdminKey = maskSecret(masked.AdminKey)
			}

			if masked.ContentKey != "" {
				masked.ContentKey = maskSecret(masked.ContentKey)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(masked)
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(masked)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Value")
				_ = table.Append("site", masked.Site)
				_ = table.Append("admin_key", masked.AdminKey)
				_ = table.Append("content_key", masked.ContentKey)
				_ = table.Append("api_version", masked.APIVersion)
				_ = table.Append("output", masked.Output)

				return table.Render()
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Set a configuration value",
		Long: `Set a configuration value. For admin_key and content_key the value may be
omitted, in which case it is prompted for without echo.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q (accepted: %s)", ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
			}

			var value string
			if len(args) == 2 {
				value = args[1]
			} else if secretKeys[key] {
				fmt.Printf("Enter %s: ", key)

				raw, err := term.ReadPassword(int(syscall.Stdin))

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading %s: %w", key, err)
				}

				value = strings.TrimSpace(string(raw))
			}

			config := loadConfig()
			setConfigField(config, key, value)

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !isConfigKey(key) {
				return fmt.Errorf("%w: %q (accepted: %s)", ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
			}

			config := loadConfig()
			setConfigField(config, key, "")

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file entirely",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := os.Remove(configFilePath())
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			fmt.Println("Cleared all configuration")

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Site:       viper.GetString("site"),
		AdminKey:   viper.GetString("admin_key"),
		ContentKey: viper.GetString("content_key"),
		APIVersion: viper.GetString("api_version"),
		Output:     viper.GetString("output"),
	}
}

func saveConfig(config *Config) error {
	path := configFilePath()

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Key material lives in this file; keep it owner-only.
	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	home, _ := os.UserHomeDir()

	return filepath.Join(home, ".ghostctl", "config.yml")
}

func setConfigField(config *Config, key, value string) {
	switch key {
	case "site":
		config.Site = value
	case "admin_key":
		config.AdminKey = value
	case "content_key":
		config.ContentKey = value
	case "api_version":
		config.APIVersion = value
	case "output":
		config.Output = value
	}
}

func isConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}

	return false
}

func maskSecret(secret string) string {
	const visible = 4

	if len(secret) <= visible {
		return "***"
	}

	return secret[:visible] + "***"
}
