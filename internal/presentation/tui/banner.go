package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the stepwise ASCII art banner to out.
func PrintBanner(out *termenv.Output) {
	rows := []struct{ text, color string }{
		{"       _                      _          ", "#34d399"},
		{"   ___| |_ ___ _ ____      __(_)___  ___ ", "#2dd4bf"},
		{"  / __| __/ _ \\ '_ \\ \\ /\\ / /| / __|/ _ \\", "#22d3ee"},
		{"  \\__ \\ ||  __/ |_) \\ V  V / | \\__ \\  __/", "#38bdf8"},
		{"  |___/\\__\\___| .__/ \\_/\\_/  |_|___/\\___|", "#60a5fa"},
		{"              |_|                         ", "#818cf8"},
	}
	var w io.Writer = out
	fmt.Fprintln(w)
	for _, r := range rows {
		fmt.Fprintln(w, out.String(r.text).Foreground(out.Color(r.color)))
	}
	fmt.Fprintln(w)
}
