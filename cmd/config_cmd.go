// Package main - config_cmd.go manages the configuration file.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/compresr/ctk/internal/config"
	"github.com/compresr/ctk/internal/tui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ctk configuration",
	}
	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)
	return cmd
}

// configPath resolves the file every config subcommand operates on.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if _, err := os.Stat(path); err == nil {
				tui.PrintWarn("Config already exists: " + path)
				return nil
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			tui.PrintSuccess("Configuration saved to " + path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			source := path
			if _, err := os.Stat(path); err != nil {
				source = "(built-in defaults)"
			}

			tui.PrintHeader("Configuration")
			fmt.Printf("  File:      %s\n", source)
			fmt.Printf("  Database:  %s\n", app.cfg.DatabasePath())
			fmt.Printf("  Filtering: %s\n", onOff(app.cfg.Enabled))
			fmt.Printf("  Metrics:   %s\n", onOff(app.cfg.Metrics.Enabled))
			fmt.Printf("  Log level: %s\n", app.cfg.Log.Level)

			cats := make([]string, 0, len(app.cfg.Commands))
			for cat := range app.cfg.Commands {
				cats = append(cats, cat)
			}
			sort.Strings(cats)

			tui.PrintHeader("Command Categories")
			for _, cat := range cats {
				toggles := app.cfg.Commands[cat]
				state := "enabled"
				if v, ok := toggles["enabled"]; ok && !v {
					state = "disabled"
				}
				var off []string
				for name, v := range toggles {
					if name != "enabled" && !v {
						off = append(off, name)
					}
				}
				sort.Strings(off)
				line := fmt.Sprintf("  %-10s %s", cat+":", state)
				if len(off) > 0 {
					line += " (off: " + strings.Join(off, ", ") + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one config value (dotted key, e.g. display.max_lines)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := config.LoadTree(configPath())
			if err != nil {
				return err
			}
			v, ok := config.GetValue(tree, args[0])
			if !ok {
				// Not set in the file; fall back to the effective value.
				eff, err := effectiveTree()
				if err != nil {
					return err
				}
				if v, ok = config.GetValue(eff, args[0]); !ok {
					return fmt.Errorf("unknown config key: %s", args[0])
				}
			}

			out, err := yaml.Marshal(v)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one config value (dotted key, e.g. display.max_lines)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			tree, err := config.LoadTree(path)
			if err != nil {
				return err
			}
			config.SetValue(tree, args[0], config.ParseScalar(args[1]))

			// Reject values the proxy would refuse to start with.
			data, err := yaml.Marshal(tree)
			if err != nil {
				return err
			}
			if _, err := config.LoadFromBytes(data); err != nil {
				return fmt.Errorf("refusing to save: %w", err)
			}

			if err := config.SaveTree(path, tree); err != nil {
				return err
			}
			tui.PrintSuccess(fmt.Sprintf("%s = %s", args[0], args[1]))
			return nil
		},
	}
}

// effectiveTree renders the loaded config back into a generic tree so
// config get can answer for keys the file never set.
func effectiveTree() (map[string]any, error) {
	data, err := yaml.Marshal(app.cfg)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any)
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
