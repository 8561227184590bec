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
	{"   __       _     _      ", "#34d399"},
	{"  / _| __ _| |__ | | ___ ", "#2dd4bf"},
	{" | |_ / _` | '_ \\| |/ _ \\", "#22d3ee"},
	{" |  _| (_| | |_) | |  __/", "#38bdf8"},
	{" |_|  \\__,_|_.__/|_|\\___|", "#60a5fa"},
}

// PrintBanner writes the fable banner to w using the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
