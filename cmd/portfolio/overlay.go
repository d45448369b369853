package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/models"
)

var overlayWrite bool

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Scaffold overlay entries for repositories that have none",
	Long: `overlay fetches the account's repositories and adds an image, scope and
technologies entry for every displayed repository the overlay does not yet
describe. Existing entries are left alone. Without --write the merged tables
are printed instead of saved.`,
	RunE: runOverlay,
}

func init() {
	overlayCmd.Flags().BoolVarP(&overlayWrite, "write", "w", false, "save the result to feed.overlay_path")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	path := cfg.Feed.OverlayPath
	tables, err := config.LoadOverlay(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("No overlay yet, starting empty", zap.String("path", path))
		tables, err = &models.OverlayTables{}, nil
	}
	if err != nil {
		return err
	}

	service, err := projectServiceWith(cfg, tables)
	if err != nil {
		return err
	}
	f, err := service.Mount(cmd.Context())
	if err != nil {
		return err
	}
	defer f.Close()

	if fe := f.Err(); fe != nil && fe.Kind != feed.KindEmpty {
		return fe
	}

	touched := feed.Scaffold(tables, f.Repositories())
	for _, name := range touched {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Added %s\n", name)
	}

	if !overlayWrite {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(tables)
	}

	if len(touched) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Overlay already covers every project")
		return nil
	}
	if err := config.SaveOverlay(path, tables); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d projects added)\n", path, len(touched))
	return nil
}
