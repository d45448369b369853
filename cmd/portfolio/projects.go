package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/tui"
)

var (
	projectsPage   int
	projectsDetail string
	projectsTab    string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Print a page of the project feed",
	Example: `  portfolio projects
  portfolio projects --page 2
  portfolio projects --detail qeats --tab scope`,
	RunE: runProjects,
}

func init() {
	projectsCmd.Flags().IntVarP(&projectsPage, "page", "p", 1, "page to print")
	projectsCmd.Flags().StringVarP(&projectsDetail, "detail", "d", "", "open the detail of this project instead of a page")
	projectsCmd.Flags().StringVarP(&projectsTab, "tab", "t", "", "detail tab: overview, scope or technologies")
}

func runProjects(cmd *cobra.Command, args []string) error {
	tab, err := feed.ParseTab(projectsTab)
	if err != nil {
		return err
	}

	service, err := newProjectService(cfg)
	if err != nil {
		return err
	}
	store, err := newThemeStore(cfg)
	if err != nil {
		return err
	}
	st := tui.NewStyles(store.IsDark())

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Loading projects..."
	s.Start()
	f, err := service.Mount(cmd.Context())
	s.Stop()
	if err != nil {
		return err
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	width := terminalWidth()

	if f.Status() == feed.StatusError {
		fmt.Fprintln(out, tui.RenderError(st, f.Message()))
		return f.Err()
	}

	if projectsDetail != "" {
		repo, ok := f.Lookup(projectsDetail)
		if !ok {
			return fmt.Errorf("project %q not found", projectsDetail)
		}
		if err := f.OpenDetail(repo); err != nil {
			return err
		}
		if err := f.SetTab(tab); err != nil {
			return err
		}
		d, _ := f.Detail()
		fmt.Fprintln(out, tui.RenderDetail(st, d, width))
		return nil
	}

	if err := f.SelectPage(projectsPage); err != nil {
		return err
	}
	fmt.Fprintln(out, tui.RenderPage(st, f.Page(), -1, width))
	return nil
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
