package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tracklet/internal/config"
	"tracklet/internal/store"
	"tracklet/internal/track"
)

var rootCmd = &cobra.Command{
	Use:   "tracklet",
	Short: "tracklet - task time tracker",
	Long: `tracklet tracks wall-clock time spent on tasks, attributing it to
projects, tags and life areas, with a lifetime total and a per-day
breakdown per task.`,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	dataPath    string
	backendName string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Data file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Storage backend: json or sqlite (overrides config)")

	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(taxonomyCmd(track.KindProject, "project", "projects"))
	rootCmd.AddCommand(taxonomyCmd(track.KindTag, "tag", "tags"))
	rootCmd.AddCommand(taxonomyCmd(track.KindLifeArea, "area", "life areas"))
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tuiCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}
	if backendName != "" {
		cfg.Storage.Backend = backendName
	}
	return cfg, nil
}

// withRegistry opens the store, loads the registry, applies any pending
// day rollover and hands the registry to fn. When fn reports a mutation
// (or the rollover changed anything) the snapshot is saved back before
// the store closes.
func withRegistry(fn func(reg *track.Registry) (mutated bool, err error)) error {
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

	dirty := reg.RollAll(track.DateOf(reg.Now()))

	mutated, err := fn(reg)
	if err != nil {
		return err
	}
	if mutated || dirty {
		if err := st.Save(reg); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
