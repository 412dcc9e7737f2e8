package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _ _                 _", "#818cf8"},
	{"| (_)_ __   ___  __ _| |_ ___  _ __", "#a78bfa"},
	{"| | | '_ \\ / _ \\/ _` | __/ _ \\| '__|", "#c084fc"},
	{"| | | | | |  __/ (_| | || (_) | |", "#e879f9"},
	{"|_|_|_| |_|\\___|\\__,_|\\__\\___/|_|", "#f472b6"},
}

// PrintBanner writes the lineator banner to w, colored for the terminal
// profile of w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  k-tape to single-tape, v"+version).Faint())
	}
	fmt.Fprintln(w)
}
