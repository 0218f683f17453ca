// Package desk implements the windowed documentation desktop: a fixed set of
// named windows over a taskbar strip, each draggable, resizable and
// maximizable, hosting the file tree, document viewer, notes and metadata
// panels and the embedded editor.
package desk

// WindowID names one of the managed windows.
type WindowID string

const (
	WindowSidebar  WindowID = "sidebar"
	WindowMain     WindowID = "main"
	WindowNotes    WindowID = "notes"
	WindowMetadata WindowID = "metadata"
	WindowEditor   WindowID = "editor"
)

// WindowIDs lists the managed windows in taskbar order.
var WindowIDs = []WindowID{WindowSidebar, WindowMain, WindowNotes, WindowMetadata, WindowEditor}

// Position is a window's top-left corner in desktop cells.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window's extent in desktop cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// geometry snapshots position and size together, for maximize/restore.
type geometry struct {
	Position Position
	Size     Size
}

// WindowState is the full state of one managed window.
type WindowState struct {
	ID        WindowID
	Title     string
	Open      bool
	Position  Position
	Size      Size
	Maximized bool

	// preMaximize holds the geometry to reapply on restore; nil when the
	// window is not maximized.
	preMaximize *geometry
}

// Handle identifies which edge or corner a resize gesture grabbed.
type Handle int

const (
	HandleN Handle = iota
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleNW
)

// movesLeft reports whether the handle moves the window's left edge.
func (h Handle) movesLeft() bool { return h == HandleW || h == HandleNW || h == HandleSW }

// movesRight reports whether the handle moves the window's right edge.
func (h Handle) movesRight() bool { return h == HandleE || h == HandleNE || h == HandleSE }

// movesTop reports whether the handle moves the window's top edge.
func (h Handle) movesTop() bool { return h == HandleN || h == HandleNW || h == HandleNE }

// movesBottom reports whether the handle moves the window's bottom edge.
func (h Handle) movesBottom() bool { return h == HandleS || h == HandleSW || h == HandleSE }

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
)

// gesture tracks one in-flight pointer interaction. At most one gesture is
// active on the desktop at a time.
type gesture struct {
	kind   gestureKind
	window WindowID
	handle Handle
	start  Position // pointer position at gesture start
	origin geometry // window geometry at gesture start
	grab   Position // pointer offset within the window (drag only)
}

// Desktop owns the window states and arbitrates gestures. It is a pure state
// machine: no rendering, no event loop, fully unit-testable.
type Desktop struct {
	viewport Size
	taskbar  int // reserved strip height at the bottom
	minSize  Size

	windows map[WindowID]*WindowState
	order   []WindowID // back-to-front z-order
	active  gesture
}

// NewDesktop creates the desktop with its default window layout.
func NewDesktop(viewport Size, minSize Size, taskbarHeight int) *Desktop {
	d := &Desktop{
		viewport: viewport,
		taskbar:  taskbarHeight,
		minSize:  minSize,
		windows:  make(map[WindowID]*WindowState),
	}

	defaults := []struct {
		id    WindowID
		title string
		open  bool
		pos   Position
		size  Size
	}{
		{WindowSidebar, "Files", true, Position{X: 0, Y: 0}, Size{Width: 28, Height: 20}},
		{WindowMain, "Document", true, Position{X: 30, Y: 0}, Size{Width: 60, Height: 24}},
		{WindowNotes, "Notes", false, Position{X: 40, Y: 6}, Size{Width: 40, Height: 12}},
		{WindowMetadata, "Properties", false, Position{X: 46, Y: 10}, Size{Width: 36, Height: 10}},
		{WindowEditor, "Editor", false, Position{X: 10, Y: 3}, Size{Width: 70, Height: 22}},
	}
	for _, def := range defaults {
		d.windows[def.id] = &WindowState{
			ID:       def.id,
			Title:    def.title,
			Open:     def.open,
			Position: def.pos,
			Size:     def.size,
		}
		d.order = append(d.order, def.id)
	}

	d.clampAll()
	return d
}

// Window returns the state of one window. Callers treat it as read-only;
// mutation goes through the gesture and toggle operations.
func (d *Desktop) Window(id WindowID) *WindowState {
	return d.windows[id]
}

// Order returns the back-to-front z-order.
func (d *Desktop) Order() []WindowID {
	return d.order
}

// Viewport returns the current desktop extent.
func (d *Desktop) Viewport() Size { return d.viewport }

// TaskbarHeight returns the reserved bottom strip height.
func (d *Desktop) TaskbarHeight() int { return d.taskbar }

// SetViewport resizes the desktop, re-clamping every window. A maximized
// window tracks the new viewport.
func (d *Desktop) SetViewport(viewport Size) {
	d.viewport = viewport
	for _, w := range d.windows {
		if w.Maximized {
			w.Position = Position{}
			w.Size = d.maximizedSize()
		}
	}
	d.clampAll()
}

// Toggle opens or closes a window from the taskbar. Closing a window cancels
// any gesture in flight on it.
func (d *Desktop) Toggle(id WindowID) {
	w, ok := d.windows[id]
	if !ok {
		return
	}
	w.Open = !w.Open
	if !w.Open && d.active.kind != gestureNone && d.active.window == id {
		d.active = gesture{}
	}
	if w.Open {
		d.Raise(id)
	}
}

// Raise moves a window to the front of the z-order.
func (d *Desktop) Raise(id WindowID) {
	for i, other := range d.order {
		if other == id {
			d.order = append(append(d.order[:i:i], d.order[i+1:]...), id)
			return
		}
	}
}

// Dragging reports whether a drag gesture is active.
func (d *Desktop) Dragging() bool { return d.active.kind == gestureDrag }

// Resizing reports whether a resize gesture is active.
func (d *Desktop) Resizing() bool { return d.active.kind == gestureResize }

// StartDrag begins dragging a window from the given pointer position.
// Refused while another gesture is active, while the window is maximized,
// or when the window is closed.
func (d *Desktop) StartDrag(id WindowID, pointer Position) bool {
	w, ok := d.windows[id]
	if !ok || !w.Open || w.Maximized || d.active.kind != gestureNone {
		return false
	}
	d.active = gesture{
		kind:   gestureDrag,
		window: id,
		start:  pointer,
		origin: geometry{Position: w.Position, Size: w.Size},
		grab:   Position{X: pointer.X - w.Position.X, Y: pointer.Y - w.Position.Y},
	}
	d.Raise(id)
	return true
}

// StartResize begins resizing a window by the given handle. Same guards as
// StartDrag.
func (d *Desktop) StartResize(id WindowID, handle Handle, pointer Position) bool {
	w, ok := d.windows[id]
	if !ok || !w.Open || w.Maximized || d.active.kind != gestureNone {
		return false
	}
	d.active = gesture{
		kind:   gestureResize,
		window: id,
		handle: handle,
		start:  pointer,
		origin: geometry{Position: w.Position, Size: w.Size},
	}
	d.Raise(id)
	return true
}

// PointerMove advances the active gesture to the new pointer position.
// No-op when no gesture is active.
func (d *Desktop) PointerMove(pointer Position) {
	switch d.active.kind {
	case gestureDrag:
		d.dragTo(pointer)
	case gestureResize:
		d.resizeTo(pointer)
	}
}

// EndGesture releases the active gesture, if any.
func (d *Desktop) EndGesture() {
	d.active = gesture{}
}

// dragTo places the window so the grabbed point stays under the pointer,
// clamped so the window remains fully inside the viewport above the taskbar.
func (d *Desktop) dragTo(pointer Position) {
	w := d.windows[d.active.window]
	w.Position = d.clampPosition(Position{
		X: pointer.X - d.active.grab.X,
		Y: pointer.Y - d.active.grab.Y,
	}, w.Size)
}

// resizeTo applies the pointer delta to the edges the handle moves. Width
// and height clamp at the configured minimum; for top/left handles the
// opposite edge stays fixed, so position shifts with the moved edge.
func (d *Desktop) resizeTo(pointer Position) {
	w := d.windows[d.active.window]
	origin := d.active.origin
	dx := pointer.X - d.active.start.X
	dy := pointer.Y - d.active.start.Y
	handle := d.active.handle

	pos, size := origin.Position, origin.Size

	switch {
	case handle.movesRight():
		size.Width = origin.Size.Width + dx
	case handle.movesLeft():
		size.Width = origin.Size.Width - dx
		pos.X = origin.Position.X + dx
		if size.Width < d.minSize.Width {
			// Keep the right edge stationary while clamping.
			pos.X = origin.Position.X + origin.Size.Width - d.minSize.Width
		}
	}
	switch {
	case handle.movesBottom():
		size.Height = origin.Size.Height + dy
	case handle.movesTop():
		size.Height = origin.Size.Height - dy
		pos.Y = origin.Position.Y + dy
		if size.Height < d.minSize.Height {
			pos.Y = origin.Position.Y + origin.Size.Height - d.minSize.Height
		}
	}

	if size.Width < d.minSize.Width {
		size.Width = d.minSize.Width
	}
	if size.Height < d.minSize.Height {
		size.Height = d.minSize.Height
	}

	w.Position = pos
	w.Size = size
}

// ToggleMaximize maximizes an open window, or restores it to its snapshot.
// A no-op while a gesture is in flight.
func (d *Desktop) ToggleMaximize(id WindowID) {
	w, ok := d.windows[id]
	if !ok || !w.Open || d.active.kind != gestureNone {
		return
	}

	if w.Maximized {
		if w.preMaximize != nil {
			w.Position = w.preMaximize.Position
			w.Size = w.preMaximize.Size
		}
		w.Maximized = false
		w.preMaximize = nil
		return
	}

	w.preMaximize = &geometry{Position: w.Position, Size: w.Size}
	w.Position = Position{}
	w.Size = d.maximizedSize()
	w.Maximized = true
	d.Raise(id)
}

// WindowAt returns the topmost open window containing the pointer, or "".
func (d *Desktop) WindowAt(pointer Position) (WindowID, bool) {
	for i := len(d.order) - 1; i >= 0; i-- {
		w := d.windows[d.order[i]]
		if !w.Open {
			continue
		}
		if pointer.X >= w.Position.X && pointer.X < w.Position.X+w.Size.Width &&
			pointer.Y >= w.Position.Y && pointer.Y < w.Position.Y+w.Size.Height {
			return w.ID, true
		}
	}
	return "", false
}

// HandleAt maps a pointer on a window to a resize handle, if the pointer
// sits on a border edge or corner. The top border is the drag header, so
// only its corner cells resize.
func (d *Desktop) HandleAt(id WindowID, pointer Position) (Handle, bool) {
	w, ok := d.windows[id]
	if !ok {
		return 0, false
	}
	left := pointer.X == w.Position.X
	right := pointer.X == w.Position.X+w.Size.Width-1
	top := pointer.Y == w.Position.Y
	bottom := pointer.Y == w.Position.Y+w.Size.Height-1

	switch {
	case top && left:
		return HandleNW, true
	case top && right:
		return HandleNE, true
	case bottom && left:
		return HandleSW, true
	case bottom && right:
		return HandleSE, true
	case left:
		return HandleW, true
	case right:
		return HandleE, true
	case bottom:
		return HandleS, true
	}
	return 0, false
}

// OnHeader reports whether the pointer is on a window's title row.
func (d *Desktop) OnHeader(id WindowID, pointer Position) bool {
	w, ok := d.windows[id]
	if !ok {
		return false
	}
	return pointer.Y == w.Position.Y &&
		pointer.X > w.Position.X && pointer.X < w.Position.X+w.Size.Width-1
}

func (d *Desktop) maximizedSize() Size {
	return Size{Width: d.viewport.Width, Height: d.viewport.Height - d.taskbar}
}

func (d *Desktop) clampPosition(pos Position, size Size) Position {
	maxX := d.viewport.Width - size.Width
	maxY := d.viewport.Height - d.taskbar - size.Height
	if pos.X > maxX {
		pos.X = maxX
	}
	if pos.Y > maxY {
		pos.Y = maxY
	}
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	return pos
}

func (d *Desktop) clampAll() {
	for _, w := range d.windows {
		if w.Size.Width > d.viewport.Width {
			w.Size.Width = d.viewport.Width
		}
		if limit := d.viewport.Height - d.taskbar; w.Size.Height > limit && limit >= d.minSize.Height {
			w.Size.Height = limit
		}
		w.Position = d.clampPosition(w.Position, w.Size)
	}
}
