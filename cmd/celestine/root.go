package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	celestine "github.com/Anonyfox/celestine-sub000"
	"github.com/Anonyfox/celestine-sub000/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "celestine",
	Short: "Celestine is a transit-timing engine for astrology software",
	Long: `Celestine finds when moving planets form exact aspects to natal chart
points, including multi-pass retrograde events, station points and complete
orb-entry/exit lifecycles.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

func newEngine(cmd *cobra.Command) *celestine.Engine {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return celestine.New(celestine.WithLogger(logging.New(level)))
}

// parseDate accepts plain dates and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want 2006-01-02 or RFC3339", s)
	}
	return t, nil
}

func dateRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
