package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Anonyfox/celestine-sub000/internal/cli"
	"github.com/Anonyfox/celestine-sub000/internal/presentation/tui"
	"github.com/Anonyfox/celestine-sub000/pkg/domain"
)

var stationsCmd = &cobra.Command{
	Use:   "stations [body]",
	Short: "Find the stations of a planet in a date range",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := domain.Body(args[0])
		start, end, err := dateRange(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		engine := newEngine(cmd)
		stations, err := engine.FindStations(cmd.Context(), body, start, end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Stations lookup failed: %v\n", err)
			os.Exit(1)
		}

		render := tui.NewRenderer()
		md := cli.RenderStations(body, stations)
		if out, err := render(md); err == nil {
			md = out
		}
		fmt.Print(md)
	},
}

var retrogradesCmd = &cobra.Command{
	Use:   "retrogrades [body]",
	Short: "Find the retrograde periods of a planet in a date range",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := domain.Body(args[0])
		start, end, err := dateRange(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		engine := newEngine(cmd)
		periods, err := engine.FindRetrogradePeriods(cmd.Context(), body, start, end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Retrogrades lookup failed: %v\n", err)
			os.Exit(1)
		}

		render := tui.NewRenderer()
		md := cli.RenderRetrogrades(body, periods)
		if out, err := render(md); err == nil {
			md = out
		}
		fmt.Print(md)
	},
}

func init() {
	for _, c := range []*cobra.Command{stationsCmd, retrogradesCmd} {
		c.Flags().String("start", "", "Range start (2006-01-02 or RFC3339)")
		c.Flags().String("end", "", "Range end")
		_ = c.MarkFlagRequired("start")
		_ = c.MarkFlagRequired("end")
		rootCmd.AddCommand(c)
	}
}
