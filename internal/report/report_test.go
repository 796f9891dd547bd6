package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/studypick/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Class", "Confidence", "Days"}
	rows := [][]string{
		{"Algebra", "3", "2.0"},
		{"数学", "10", "12.5"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Class    Confidence  Days" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Algebra           3   2.0" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "数学             10  12.5" {
		t.Fatalf("unexpected wide row line: %q", lines[2])
	}
}

func TestClassLinesWithWeights(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	classes := []*model.ClassRecord{
		{Name: "Algebra", NextTest: now.AddDate(0, 0, 2), Confidence: 3},
		{Name: "History", NextTest: now.AddDate(0, 0, 30), Confidence: 9},
	}
	lines := ClassLines(classes, Options{Now: now, Weights: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1  Algebra  2026-10-21") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[1], "7.33") || !strings.Contains(lines[1], "87.7%") {
		t.Fatalf("expected weight and chance in row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "1.03") {
		t.Fatalf("expected history weight in row: %q", lines[2])
	}
}

func TestStreakLinesTruncatesNames(t *testing.T) {
	entries := []model.StreakEntry{{Name: "Introduction to Thermodynamics", Count: 12}}
	lines := StreakLines(entries, 10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Introduct…") {
		t.Fatalf("expected truncated name, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "12") {
		t.Fatalf("expected count at end, got %q", lines[1])
	}
}

func TestNameWidthFor(t *testing.T) {
	if got := NameWidthFor(80); got != 80-fixedColumnsWidth {
		t.Fatalf("unexpected name width %d", got)
	}
	if got := NameWidthFor(0); got != minNameWidth {
		t.Fatalf("expected min width %d, got %d", minNameWidth, got)
	}
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLines(&buf, []string{"a", "b"}); err != nil {
		t.Fatalf("write lines: %v", err)
	}
	if buf.String() != "a\nb\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
