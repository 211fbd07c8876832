package app

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const accentColor = "#E01040"

// WriteReport prints a headless run summary to w. Colour and bold are used
// only when w is a terminal that supports them.
func WriteReport(w io.Writer, r Report) error {
	o := termenv.NewOutput(w)
	p := message.NewPrinter(language.English)

	label := func(s string) string {
		return o.String(fmt.Sprintf("%-12s", s)).Faint().String()
	}

	title := o.String("motionmark paths").Bold().Foreground(o.Color(accentColor))
	lines := []string{
		title.String(),
		label("viewport") + p.Sprintf("%dx%d", r.Width, r.Height),
		label("rasterizer") + r.Rasterizer.String(),
		label("complexity") + p.Sprintf("%d (%d elements)", r.Complexity, r.Elements),
		label("frames") + p.Sprintf("%d in %s", r.Frames, r.Elapsed.Round(time.Millisecond)),
		label("strokes") + p.Sprintf("%d (%d segments)", r.Strokes, r.Segments),
		label("mean") + o.String(p.Sprintf("%.1f FPS", r.MeanFPS())).Bold().String(),
	}
	if len(r.Windows) > 0 {
		lo, hi := r.Windows[0].FPS, r.Windows[0].FPS
		for _, s := range r.Windows[1:] {
			lo = min(lo, s.FPS)
			hi = max(hi, s.FPS)
		}
		lines = append(lines, label("windows")+p.Sprintf("%d, %.1f-%.1f FPS", len(r.Windows), lo, hi))
	}
	if r.Interrupted {
		lines = append(lines, o.String("interrupted").Foreground(o.Color(accentColor)).String())
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
