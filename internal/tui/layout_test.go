package tui

import "testing"

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 30, pickerHeaderHeight)

	if l.Header.Height != pickerHeaderHeight {
		t.Errorf("Header.Height = %d, want %d", l.Header.Height, pickerHeaderHeight)
	}
	if l.Content.Height != 30-pickerHeaderHeight-statusBarHeight {
		t.Errorf("Content.Height = %d", l.Content.Height)
	}
	if l.Content.Width != 100 {
		t.Errorf("Content.Width = %d, want 100", l.Content.Width)
	}
}

func TestComputeLayout_Defaults(t *testing.T) {
	l := ComputeLayout(0, 0, listHeaderHeight)
	if l.Content.Width != defaultWidth {
		t.Errorf("Content.Width = %d, want %d", l.Content.Width, defaultWidth)
	}
	if l.Content.Height != defaultHeight-listHeaderHeight-statusBarHeight {
		t.Errorf("Content.Height = %d", l.Content.Height)
	}
}

func TestComputeLayout_MinimumContent(t *testing.T) {
	l := ComputeLayout(80, 2, pickerHeaderHeight)
	if l.Content.Height != minContentHeight {
		t.Errorf("Content.Height = %d, want %d", l.Content.Height, minContentHeight)
	}
}

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		name               string
		selected, total, h int
		wantStart, wantEnd int
	}{
		{"fits", 2, 5, 10, 0, 5},
		{"top", 0, 50, 10, 0, 10},
		{"middle", 25, 50, 10, 20, 30},
		{"bottom", 49, 50, 10, 40, 50},
		{"empty", 0, 0, 10, 0, 0},
		{"no height", 3, 10, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := scrollWindow(tt.selected, tt.total, tt.h)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("scrollWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.selected, tt.total, tt.h, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(112, []int{15, 30, 8, 12, 15, 10})
	if len(widths) != 6 {
		t.Fatalf("len = %d, want 6", len(widths))
	}
	total := 0
	for _, w := range widths {
		if w < 1 {
			t.Errorf("width %d < 1", w)
		}
		total += w
	}
	if total > 100 {
		t.Errorf("total width %d exceeds usable 100", total)
	}
	if widths[1] <= widths[0] {
		t.Errorf("path column (%d) should be wider than name column (%d)", widths[1], widths[0])
	}
}

func TestColumnWidths_TinyTerminal(t *testing.T) {
	for _, w := range columnWidths(4, []int{1, 1, 1}) {
		if w < 1 {
			t.Errorf("width %d < 1", w)
		}
	}
}
