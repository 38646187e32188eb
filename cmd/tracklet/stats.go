package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"tracklet/internal/track"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show time breakdowns by project, life area and tag",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		sections := []struct {
			title string
			kind  track.Kind
		}{
			{"Time by Projects", track.KindProject},
			{"Time by Life Areas", track.KindLifeArea},
			{"Time by Tags", track.KindTag},
		}
		for _, sec := range sections {
			buckets, err := reg.StatsBy(sec.kind)
			if err != nil {
				return false, err
			}
			fmt.Println(sec.title)
			if len(buckets) == 0 {
				fmt.Println("  no data")
				fmt.Println()
				continue
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, b := range buckets {
				d := track.Seconds(int64(b.Seconds))
				fmt.Fprintf(w, "  %s\t%s\n", b.Label, d.FormatCompact())
			}
			w.Flush()
			fmt.Println()
		}
		return false, nil
	})
}
