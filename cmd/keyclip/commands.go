package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"keyclip/internal/clipboard"
	"keyclip/internal/config"
)

func openStore(env config.Env) (*config.Store, error) {
	path := env.StorePath
	if path == "" {
		var err error
		if path, err = config.DefaultStorePath(); err != nil {
			return nil, err
		}
	}
	return config.Open(path)
}

func newSettingsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Показать текущие настройки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts.env)
			if err != nil {
				return err
			}
			s, err := config.LoadSettings(store, zap.NewNop().Sugar())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store:      %s\n", store.Path())
			fmt.Fprintf(out, "hotkey:     %s (%s=%d, %s=%s)\n", s.Binding,
				config.KeyHotkeyModifiers, uint32(s.Binding.Modifiers),
				config.KeyHotkeyCode, s.Binding.Code)
			fmt.Fprintf(out, "play_sound: %t\n", s.PlaySound)
			fmt.Fprintf(out, "autostart:  %t\n", s.AutostartEnabled)
			return nil
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Сбросить настройки к значениям по умолчанию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts.env)
			if err != nil {
				return err
			}
			if err := config.ResetSettings(store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Настройки сброшены: %s\n", config.DefaultBinding())
			return nil
		},
	}
}

func newUUIDCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "Сгенерировать UUID v4",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := uuid.NewString()
			if copyToClipboard {
				if err := clipboard.New(zap.NewNop().Sugar()).WriteText(id); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "скопировать в буфер обмена")
	return cmd
}
