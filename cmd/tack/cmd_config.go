package main

import (
	"fmt"
	"strconv"

	"github.com/AlexanderThaller/tack/pkg/repo"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get or set repository configuration",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if list || len(args) == 0 {
				fmt.Fprintf(out, "user.name=%s\n", cfg.User.Name)
				fmt.Fprintf(out, "user.email=%s\n", cfg.User.Email)
				fmt.Fprintf(out, "core.skip_hidden=%t\n", cfg.Core.SkipHidden)
				return nil
			}

			key := args[0]

			// Get mode.
			if len(args) == 1 {
				value, err := configValue(cfg, key)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, value)
				return nil
			}

			// Set mode.
			if err := setConfigValue(cfg, key, args[1]); err != nil {
				return err
			}
			return r.WriteConfig(cfg)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list all configuration values")

	return cmd
}

func configValue(cfg *repo.Config, key string) (string, error) {
	switch key {
	case "user.name":
		return cfg.User.Name, nil
	case "user.email":
		return cfg.User.Email, nil
	case "core.skip_hidden":
		return strconv.FormatBool(cfg.Core.SkipHidden), nil
	}
	return "", fmt.Errorf("unknown configuration key %q", key)
}

func setConfigValue(cfg *repo.Config, key, value string) error {
	switch key {
	case "user.name":
		cfg.User.Name = value
	case "user.email":
		cfg.User.Email = value
	case "core.skip_hidden":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for %s", value, key)
		}
		cfg.Core.SkipHidden = b
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
