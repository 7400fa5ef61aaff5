package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/preview"
	"github.com/zjrosen/wdl/internal/pubsub"
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Show the window live, reloading when FILE changes",
	Long: `Open a live preview of FILE. The window is redrawn every time the file is
saved; while the file has an error the last good window stays on screen
under the error.

Keys:
  tab / shift+tab   focus the next / previous radio group
  ←/→ or click      select a radio option
  s                 toggle between the window and its source
  r                 reload now
  q                 quit`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == "-" {
		return errors.New("preview needs a file to watch, not standard input")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	broker := pubsub.NewBroker[compiler.Result]()
	defer broker.Close()
	c := newCompiler(compiler.Options{Broker: broker, Refresh: true})
	reloader := preview.NewReloader(path, c, cfg.Preview.Debounce)

	// Subscribe before the first compile so its result is not missed.
	model := preview.New(preview.Options{
		Name:    path,
		Width:   cfg.Preview.Width,
		Results: pubsub.NewListener[compiler.Result](ctx, broker),
		Logs:    log.NewListener(ctx),
		Reload:  func() { reloader.Reload(ctx) },
	})

	if err := reloader.Start(ctx); err != nil {
		return err
	}
	defer reloader.Stop()

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}
