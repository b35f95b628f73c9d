package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	celestine "github.com/Anonyfox/celestine-sub000"
	"github.com/Anonyfox/celestine-sub000/internal/cli"
	"github.com/Anonyfox/celestine-sub000/internal/presentation/tui"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search transits of the current planets against a natal chart",
	Long: `Scans a date range for transit aspects against the points of a natal
chart loaded from a YAML file. Multi-pass retrograde events are reported as
one event with their pass count.`,
	Run: func(cmd *cobra.Command, args []string) {
		chartPath, _ := cmd.Flags().GetString("chart")
		chartName, points, err := cli.LoadChart(chartPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading chart: %v\n", err)
			os.Exit(1)
		}
		if chartName == "" {
			chartName = chartPath
		}

		start, end, err := dateRange(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		cfg := search.Config{}
		if bodies, _ := cmd.Flags().GetStringSlice("bodies"); len(bodies) > 0 {
			for _, b := range bodies {
				cfg.Bodies = append(cfg.Bodies, domain.Body(b))
			}
		}
		if aspects, _ := cmd.Flags().GetStringSlice("aspects"); len(aspects) > 0 {
			for _, a := range aspects {
				cfg.Aspects = append(cfg.Aspects, domain.AspectType(a))
			}
		}
		cfg.Parallelism, _ = cmd.Flags().GetInt("parallelism")

		tui.PrintBanner(celestine.Version)

		engine := newEngine(cmd)
		result, err := engine.SearchTransits(cmd.Context(), points, start, end, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}

		render := tui.NewRenderer()
		out, err := render(cli.RenderSearchResult(chartName, result))
		if err != nil {
			out = cli.RenderSearchResult(chartName, result)
		}
		fmt.Print(out)
	},
}

func init() {
	searchCmd.Flags().String("chart", "chart.yaml", "Path to the natal chart YAML file")
	searchCmd.Flags().String("start", "", "Range start (2006-01-02 or RFC3339)")
	searchCmd.Flags().String("end", "", "Range end")
	searchCmd.Flags().StringSlice("bodies", nil, "Restrict transiting bodies (e.g. mars,jupiter)")
	searchCmd.Flags().StringSlice("aspects", nil, "Restrict aspect types (e.g. conjunction,square)")
	searchCmd.Flags().Int("parallelism", 0, "Fan the search out over N workers")
	_ = searchCmd.MarkFlagRequired("start")
	_ = searchCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(searchCmd)
}
