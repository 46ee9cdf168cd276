package overview

import (
	"strings"
	"testing"

	"github.com/julianstephens/ventureboard/internal/productivity"
)

func TestHeatmap(t *testing.T) {
	cells := make([]productivity.Cell, 10)
	for i := range cells {
		cells[i].Level = i % 5
	}
	rows := strings.Split(Heatmap(cells), "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := strings.Count(rows[0], "■"); got != 7 {
		t.Errorf("expected 7 cells in first row, got %d", got)
	}
	if got := strings.Count(rows[1], "■"); got != 3 {
		t.Errorf("expected 3 cells in second row, got %d", got)
	}
	if Heatmap(nil) != "" {
		t.Error("expected empty heatmap for no cells")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct    int
		filled int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{150, 20},
		{-5, 0},
	}
	for _, tt := range tests {
		b := bar(tt.pct, 20)
		if got := strings.Count(b, "█"); got != tt.filled {
			t.Errorf("bar(%d) filled = %d, want %d", tt.pct, got, tt.filled)
		}
		if got := strings.Count(b, "█") + strings.Count(b, "░"); got != 20 {
			t.Errorf("bar(%d) width = %d", tt.pct, got)
		}
	}
}
