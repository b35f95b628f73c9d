package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	celestine "github.com/Anonyfox/celestine-sub000"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of celestine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("celestine version %s\n", strings.TrimSpace(celestine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
