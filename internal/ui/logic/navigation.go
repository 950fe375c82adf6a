package logic

// Navigator handles cursor movement and viewport management for a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// UpdateState loads the current cursor, viewport and list length
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, total int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	if n.viewportHeight < 1 {
		n.viewportHeight = 1
	}
	n.total = total
}

// Selected returns the selected index
func (n *Navigator) Selected() int {
	return n.selectedIndex
}

// Offset returns the viewport offset
func (n *Navigator) Offset() int {
	return n.viewportOffset
}

// MoveUp moves the cursor one row up
func (n *Navigator) MoveUp() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex - 1)
}

// MoveDown moves the cursor one row down
func (n *Navigator) MoveDown() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + 1)
}

// PageUp moves the cursor one viewport up
func (n *Navigator) PageUp() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex - n.viewportHeight)
}

// PageDown moves the cursor one viewport down
func (n *Navigator) PageDown() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + n.viewportHeight)
}

// Home moves the cursor to the first row
func (n *Navigator) Home() (int, int) {
	return n.SetSelectedIndex(0)
}

// End moves the cursor to the last row
func (n *Navigator) End() (int, int) {
	return n.SetSelectedIndex(n.total - 1)
}

// Clamp re-applies bounds after the list or the viewport changed
func (n *Navigator) Clamp() (int, int) {
	return n.SetSelectedIndex(n.selectedIndex)
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

func (n *Navigator) ensureSelectedVisible() {
	if n.total <= 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return
	}

	n.selectedIndex = max(0, min(n.selectedIndex, n.total-1))

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// Don't leave empty space below the last row
	maxOffset := max(0, n.total-n.viewportHeight)
	n.viewportOffset = max(0, min(n.viewportOffset, maxOffset))
}
