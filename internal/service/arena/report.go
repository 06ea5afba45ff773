package arena

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
)

// WriteReport prints a summary table to w. Colors follow the terminal
// profile of w; plain writers get no escape sequences.
func WriteReport(w io.Writer, s Summary) error {
	return writeReport(termenv.NewOutput(w), s)
}

func writeReport(out *termenv.Output, s Summary) error {
	title := out.String("Arena results").Bold()
	win := out.Color("2")
	loss := out.Color("1")
	draw := out.Color("3")

	avgPlies := 0.0
	if s.Games > 0 {
		avgPlies = float64(s.Plies) / float64(s.Games)
	}

	lines := []string{
		title.String(),
		fmt.Sprintf("  board        %dx%d, %d opening plies, seed %d",
			s.Options.Rows, s.Options.Columns, s.Options.OpeningPlies, s.Options.Seed),
		fmt.Sprintf("  engines      A depth %d, B depth %d", s.Options.DepthA, s.Options.DepthB),
		fmt.Sprintf("  games        %d (avg %.1f plies) in %v", s.Games, avgPlies, s.Duration.Round(time.Millisecond)),
		fmt.Sprintf("  A wins       %s", out.String(fmt.Sprint(s.WinsA)).Foreground(win)),
		fmt.Sprintf("  B wins       %s", out.String(fmt.Sprint(s.WinsB)).Foreground(loss)),
		fmt.Sprintf("  draws        %s", out.String(fmt.Sprint(s.Draws)).Foreground(draw)),
		fmt.Sprintf("  A score      %.3f", s.ScoreA()),
		fmt.Sprintf("  Elo diff     %.1f (LOS %.1f %%)", s.EloDifference(), s.LOS()*100),
		fmt.Sprintf("  ratings      A %d, B %d", s.RatingA, s.RatingB),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
