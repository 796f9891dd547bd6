package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/studypick/internal/model"
	"github.com/verte-zerg/studypick/internal/selector"
)

// Options control class table rendering.
type Options struct {
	Now       time.Time
	Weights   bool
	NameWidth int
}

// ClassLines renders classes numbered from 1, matching the CLI remove index.
func ClassLines(classes []*model.ClassRecord, opts Options) []string {
	headers := []string{"#", "Class", "Exam", "Days", "Confidence"}
	if opts.Weights {
		headers = append(headers, "Weight", "Chance")
	}
	var weights []float64
	total := 0.0
	if opts.Weights {
		weights = selector.Weights(classes, opts.Now)
		for _, w := range weights {
			total += w
		}
	}
	rows := make([][]string, 0, len(classes))
	for i, c := range classes {
		row := []string{
			strconv.Itoa(i + 1),
			truncate(c.Name, opts.NameWidth),
			c.NextTest.Format(model.DateLayout),
			fmt.Sprintf("%.1f", selector.DaysUntil(c, opts.Now)),
			strconv.Itoa(c.Confidence),
		}
		if opts.Weights {
			row = append(row, fmt.Sprintf("%.2f", weights[i]), fmt.Sprintf("%.1f%%", weights[i]/total*100))
		}
		rows = append(rows, row)
	}
	return formatTable(headers, rows, map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true})
}

// StreakLines renders streak entries.
func StreakLines(entries []model.StreakEntry, nameWidth int) []string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{truncate(e.Name, nameWidth), strconv.Itoa(e.Count)})
	}
	return formatTable([]string{"Class", "Sessions"}, rows, map[int]bool{1: true})
}

// WriteLines writes one line per entry.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
