package main

import (
	"github.com/spf13/cobra"
	"tracklet/internal/store"
	"tracklet/internal/track"
	"tracklet/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	reg, err := st.Load()
	if err != nil {
		return err
	}
	if reg.RollAll(track.DateOf(reg.Now())) {
		if err := st.Save(reg); err != nil {
			return err
		}
	}

	app := tui.New(reg, st, cfg.Refresh.TickInterval, cfg.Refresh.RollInterval)
	return app.Run()
}
