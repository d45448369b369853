package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"portfolio.dev/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the project feed interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newProjectService(cfg)
		if err != nil {
			return err
		}
		store, err := newThemeStore(cfg)
		if err != nil {
			return err
		}

		f := service.NewFeed()
		defer f.Close()

		p := tea.NewProgram(tui.New(cmd.Context(), f, store), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}
