package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle]",
	Short:     "Show or toggle the persisted color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newThemeStore(cfg)
		if err != nil {
			return err
		}

		mode := store.Mode()
		if len(args) == 1 {
			if mode, err = store.Toggle(); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), mode)
		return nil
	},
}
