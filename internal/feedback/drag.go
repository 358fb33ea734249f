package feedback

// Drag tracks an in-progress category drag. Indices are -1 when unset.
type Drag struct {
	Dragging     bool `json:"dragging"`
	DraggedIndex int  `json:"draggedIndex"`
	DropIndex    int  `json:"dropIndex"`
}

// NewDrag returns an idle drag indicator.
func NewDrag() Drag {
	return Drag{DraggedIndex: -1, DropIndex: -1}
}

// Start begins dragging the category at index.
func (d *Drag) Start(index int) {
	d.Dragging = true
	d.DraggedIndex = index
	d.DropIndex = index
}

// Over records the current drop target. Ignored when not dragging.
func (d *Drag) Over(index int) {
	if !d.Dragging {
		return
	}
	d.DropIndex = index
}

// Finish ends the drag and returns the move it describes.
// ok is false when no drag was running.
func (d *Drag) Finish() (from, to int, ok bool) {
	if !d.Dragging {
		return -1, -1, false
	}
	from, to = d.DraggedIndex, d.DropIndex
	*d = NewDrag()
	return from, to, true
}

// Cancel drops the drag without a move.
func (d *Drag) Cancel() {
	*d = NewDrag()
}
