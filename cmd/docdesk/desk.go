package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/finite-collective/docdesk/internal/config"
	"github.com/finite-collective/docdesk/internal/desk"
	"github.com/finite-collective/docdesk/pkg/cache"
	"github.com/finite-collective/docdesk/pkg/client"
)

var deskCmd = &cobra.Command{
	Use:   "desk",
	Short: "Open the documentation desktop",
	Long: `Browse the documentation tree in a window desktop: draggable and
resizable panels for the file tree, rendered document, notes, metadata and
an embedded editor, over a taskbar. Falls back to a static tree when the
file-service is unreachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		var storage cache.Storage
		fileStorage, err := cache.NewFileStorage(cfg.CacheFile)
		if err != nil {
			slog.Warn("cache file unavailable, caching in memory only", "path", cfg.CacheFile, "error", err)
			storage = cache.NewMemoryStorage()
		} else {
			storage = fileStorage
		}

		c := client.New(cfg.ServiceURL, client.WithLogger(slog.Default()))
		m := desk.NewModel(c, cache.New(storage),
			desk.Size{Width: cfg.MinWindowWidth, Height: cfg.MinWindowHeight},
			cfg.TaskbarHeight)

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			fatal("Desk crashed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deskCmd)
}
