package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Night-sky gradient (indigo into rose)
	s1 := termenv.String("   ___     _           _   _          ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  / __\\___| | ___  ___| |_(_)_ __   ___").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" / /  / _ \\ |/ _ \\/ __| __| | '_ \\ / _ \\").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("/ /__|  __/ |  __/\\__ \\ |_| | | | |  __/").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("\\____/\\___|_|\\___||___/\\__|_|_| |_|\\___|").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Printf("  v%s\n\n", version)
}
