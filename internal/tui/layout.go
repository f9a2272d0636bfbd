// pattern: Functional Core

package tui

// Region defines a rectangular area within the terminal.
type Region struct {
	Width  int // Width in cells
	Height int // Height in lines
}

// Layout holds computed regions for the navigator screens.
type Layout struct {
	Header    Region // Search box (picker) or title (list)
	Content   Region // Result list or project table
	StatusBar Region // Status bar (1 line)
}

// Fixed heights for chrome elements
const (
	pickerHeaderHeight = 3 // Bordered search input
	listHeaderHeight   = 2 // Title + blank line
	statusBarHeight    = 1
	minContentHeight   = 3
)

// defaultWidth and defaultHeight apply before the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ComputeLayout calculates regions for a screen whose header occupies
// headerHeight lines.
func ComputeLayout(width, height, headerHeight int) Layout {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	contentHeight := height - headerHeight - statusBarHeight
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	return Layout{
		Header:    Region{Width: width, Height: headerHeight},
		Content:   Region{Width: width, Height: contentHeight},
		StatusBar: Region{Width: width, Height: statusBarHeight},
	}
}

// scrollWindow returns the half-open range [start, end) of rows to show so
// that selected stays visible in a viewport of the given height.
func scrollWindow(selected, total, height int) (int, int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

// columnWidths splits width across columns proportionally to weights,
// reserving one cell of padding on each side of every column.
func columnWidths(width int, weights []int) []int {
	sum := 0
	for _, w := range weights {
		sum += w
	}
	usable := width - 2*len(weights)
	if usable < len(weights) {
		usable = len(weights)
	}

	widths := make([]int, len(weights))
	for i, w := range weights {
		widths[i] = usable * w / sum
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}
