package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tradedeadline/internal/render"
	"tradedeadline/internal/trade"
)

// ListView is the scrollable history of revealed movements, newest at the
// bottom. The selection follows the newest entry until the user scrolls up.
type ListView struct {
	movements     []trade.Movement
	total         int
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	follow        bool
	x, y          int
	width, height int
}

// NewListView creates a new history view
func NewListView(x, y, width, height int) *ListView {
	maxVisible := height - 2 // Account for border
	if maxVisible < 1 {
		maxVisible = 1
	}

	return &ListView{
		maxVisible: maxVisible,
		follow:     true,
		x:          x,
		y:          y,
		width:      width,
		height:     height,
	}
}

// Update refreshes the revealed movements out of total. A shorter history
// means playback restarted, so the selection goes back to following.
func (l *ListView) Update(movements []trade.Movement, total int) {
	if len(movements) < len(l.movements) {
		l.follow = true
	}
	l.movements = movements
	l.total = total

	if l.follow || l.selectedIndex >= len(l.movements) {
		l.selectedIndex = len(l.movements) - 1
	}
	if l.selectedIndex < 0 {
		l.selectedIndex = 0
	}

	l.adjustScroll()
}

// SelectNext moves selection down; reaching the newest entry resumes following
func (l *ListView) SelectNext() {
	if l.selectedIndex < len(l.movements)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
	l.follow = l.selectedIndex >= len(l.movements)-1
}

// SelectPrev moves selection up and stops following new entries
func (l *ListView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.follow = false
		l.adjustScroll()
	}
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (l *ListView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}

	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// GetSelected returns the highlighted movement
func (l *ListView) GetSelected() (trade.Movement, bool) {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.movements) {
		return l.movements[l.selectedIndex], true
	}
	return trade.Movement{}, false
}

// Draw renders the history panel to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	if l.width < 3 || l.height < 3 {
		return
	}

	c := render.NewCanvas(l.width, l.height)
	c.DrawBox(0, 0, l.width, l.height, render.StyleLabel)

	title := fmt.Sprintf(" Trades %d/%d ", len(l.movements), l.total)
	c.DrawText((l.width-render.TextWidth(title))/2, 0, title, render.StyleLabel)

	if len(l.movements) == 0 {
		c.DrawTextClipped(1, 1, l.width-2, "No trades yet", render.StyleDim)
	}

	visibleCount := min(l.maxVisible, len(l.movements)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		m := l.movements[idx]

		style := render.StyleListItem
		if idx == l.selectedIndex {
			style = render.StyleListSelected
			c.FillRect(1, i+1, l.width-2, 1, ' ', style)
		}
		c.DrawTextClipped(1, i+1, l.width-2, m.ListDisplay(), style)
	}

	if len(l.movements) > l.maxVisible {
		c.Set(l.width-2, 0, '↕', render.StyleLabel)
	}

	c.Blit(screen, l.x, l.y)
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = height - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}
