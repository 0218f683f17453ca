package desk

import "testing"

func newTestDesktop() *Desktop {
	return NewDesktop(Size{Width: 120, Height: 40}, Size{Width: 24, Height: 6}, 1)
}

func TestToggle(t *testing.T) {
	d := newTestDesktop()

	if d.Window(WindowNotes).Open {
		t.Fatal("notes should start closed")
	}
	d.Toggle(WindowNotes)
	if !d.Window(WindowNotes).Open {
		t.Error("toggle should open")
	}
	d.Toggle(WindowNotes)
	if d.Window(WindowNotes).Open {
		t.Error("toggle should close")
	}
}

func TestDrag(t *testing.T) {
	t.Run("Moves By Pointer Delta", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)
		start := w.Position

		grab := Position{X: start.X + 5, Y: start.Y}
		if !d.StartDrag(WindowMain, grab) {
			t.Fatal("StartDrag refused")
		}
		d.PointerMove(Position{X: grab.X + 7, Y: grab.Y + 3})
		d.EndGesture()

		if w.Position.X != start.X+7 || w.Position.Y != start.Y+3 {
			t.Errorf("got %+v, want (%d,%d)", w.Position, start.X+7, start.Y+3)
		}
	})

	t.Run("Saturates at Viewport Bounds", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)

		grab := Position{X: w.Position.X + 1, Y: w.Position.Y}
		d.StartDrag(WindowMain, grab)
		d.PointerMove(Position{X: -500, Y: -500})
		if w.Position.X != 0 || w.Position.Y != 0 {
			t.Errorf("expected clamp to origin, got %+v", w.Position)
		}

		d.PointerMove(Position{X: 500, Y: 500})
		vp := d.Viewport()
		wantX := vp.Width - w.Size.Width
		wantY := vp.Height - d.TaskbarHeight() - w.Size.Height
		if w.Position.X != wantX || w.Position.Y != wantY {
			t.Errorf("expected clamp to (%d,%d), got %+v", wantX, wantY, w.Position)
		}
	})

	t.Run("Refused While Maximized", func(t *testing.T) {
		d := newTestDesktop()
		d.ToggleMaximize(WindowMain)
		if d.StartDrag(WindowMain, Position{X: 1, Y: 0}) {
			t.Error("drag of a maximized window must be refused")
		}
	})

	t.Run("One Gesture at a Time", func(t *testing.T) {
		d := newTestDesktop()
		d.StartDrag(WindowMain, Position{X: 31, Y: 0})
		if d.StartDrag(WindowSidebar, Position{X: 1, Y: 0}) {
			t.Error("second concurrent gesture must be refused")
		}
		if d.StartResize(WindowSidebar, HandleSE, Position{X: 0, Y: 0}) {
			t.Error("resize during drag must be refused")
		}
		d.EndGesture()
		if !d.StartDrag(WindowSidebar, Position{X: 1, Y: 0}) {
			t.Error("gesture after release must be accepted")
		}
	})
}

func TestResize(t *testing.T) {
	t.Run("Bottom-Right Handle Grows Size Only", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)
		pos, size := w.Position, w.Size

		d.StartResize(WindowMain, HandleSE, Position{X: 0, Y: 0})
		d.PointerMove(Position{X: 6, Y: 4})
		d.EndGesture()

		if w.Size.Width != size.Width+6 || w.Size.Height != size.Height+4 {
			t.Errorf("size: got %+v", w.Size)
		}
		if w.Position != pos {
			t.Errorf("position must not move: got %+v", w.Position)
		}
	})

	t.Run("Top-Left Handle Keeps Bottom-Right Fixed", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)
		pos, size := w.Position, w.Size

		d.StartResize(WindowMain, HandleNW, Position{X: 0, Y: 0})
		d.PointerMove(Position{X: 5, Y: 3})
		d.EndGesture()

		if w.Size.Width != size.Width-5 || w.Size.Height != size.Height-3 {
			t.Errorf("size: got %+v, want (%d,%d)", w.Size, size.Width-5, size.Height-3)
		}
		if w.Position.X != pos.X+5 || w.Position.Y != pos.Y+3 {
			t.Errorf("position: got %+v, want (%d,%d)", w.Position, pos.X+5, pos.Y+3)
		}
		// Bottom-right corner is stationary.
		if w.Position.X+w.Size.Width != pos.X+size.Width ||
			w.Position.Y+w.Size.Height != pos.Y+size.Height {
			t.Error("bottom-right corner moved")
		}
	})

	t.Run("Clamps to Minimum Keeping Opposite Edge", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)
		pos, size := w.Position, w.Size

		d.StartResize(WindowMain, HandleNW, Position{X: 0, Y: 0})
		d.PointerMove(Position{X: 1000, Y: 1000})
		d.EndGesture()

		if w.Size.Width != d.minSize.Width || w.Size.Height != d.minSize.Height {
			t.Errorf("expected min size %+v, got %+v", d.minSize, w.Size)
		}
		if w.Position.X+w.Size.Width != pos.X+size.Width ||
			w.Position.Y+w.Size.Height != pos.Y+size.Height {
			t.Error("opposite corner moved during clamp")
		}
	})

	t.Run("Deltas Are Relative to Gesture Origin", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)
		size := w.Size

		d.StartResize(WindowMain, HandleE, Position{X: 10, Y: 10})
		d.PointerMove(Position{X: 14, Y: 10})
		d.PointerMove(Position{X: 12, Y: 10})
		d.EndGesture()

		if w.Size.Width != size.Width+2 {
			t.Errorf("expected +2 net, got width %d (was %d)", w.Size.Width, size.Width)
		}
	})
}

func TestMaximize(t *testing.T) {
	t.Run("Restore Returns Exact Geometry", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)
		pos, size := w.Position, w.Size

		d.ToggleMaximize(WindowMain)
		if !w.Maximized {
			t.Fatal("expected maximized")
		}
		if w.Position != (Position{}) {
			t.Errorf("maximized position: got %+v", w.Position)
		}
		vp := d.Viewport()
		if w.Size.Width != vp.Width || w.Size.Height != vp.Height-d.TaskbarHeight() {
			t.Errorf("maximized size: got %+v", w.Size)
		}

		d.ToggleMaximize(WindowMain)
		if w.Maximized {
			t.Error("expected restored")
		}
		if w.Position != pos || w.Size != size {
			t.Errorf("restore mismatch: %+v %+v, want %+v %+v", w.Position, w.Size, pos, size)
		}
	})

	t.Run("No-Op While Resizing", func(t *testing.T) {
		d := newTestDesktop()
		w := d.Window(WindowMain)

		d.StartResize(WindowMain, HandleSE, Position{X: 0, Y: 0})
		d.ToggleMaximize(WindowMain)
		if w.Maximized {
			t.Error("maximize during resize must be a no-op")
		}
		d.EndGesture()
	})

	t.Run("Tracks Viewport Resize", func(t *testing.T) {
		d := newTestDesktop()
		d.ToggleMaximize(WindowMain)
		d.SetViewport(Size{Width: 200, Height: 60})

		w := d.Window(WindowMain)
		if w.Size.Width != 200 || w.Size.Height != 60-d.TaskbarHeight() {
			t.Errorf("maximized window did not track viewport: %+v", w.Size)
		}
	})
}

func TestWindowAt(t *testing.T) {
	d := newTestDesktop()

	// Main sits at (30,0) 60x24; sidebar at (0,0) 28x20.
	if id, ok := d.WindowAt(Position{X: 31, Y: 1}); !ok || id != WindowMain {
		t.Errorf("got %v %v", id, ok)
	}
	if id, ok := d.WindowAt(Position{X: 1, Y: 1}); !ok || id != WindowSidebar {
		t.Errorf("got %v %v", id, ok)
	}
	if _, ok := d.WindowAt(Position{X: 119, Y: 39}); ok {
		t.Error("expected miss on empty desktop area")
	}

	// Raising changes which window wins an overlap.
	d.Toggle(WindowEditor) // opens at (10,3) 70x22, raised on open
	if id, ok := d.WindowAt(Position{X: 31, Y: 5}); !ok || id != WindowEditor {
		t.Errorf("expected raised editor on top, got %v %v", id, ok)
	}
}

func TestHandleAt(t *testing.T) {
	d := newTestDesktop()
	w := d.Window(WindowMain)
	x, y := w.Position.X, w.Position.Y
	wd, ht := w.Size.Width, w.Size.Height

	cases := []struct {
		name    string
		pointer Position
		want    Handle
		ok      bool
	}{
		{"Top-Left Corner", Position{X: x, Y: y}, HandleNW, true},
		{"Top-Right Corner", Position{X: x + wd - 1, Y: y}, HandleNE, true},
		{"Bottom-Left Corner", Position{X: x, Y: y + ht - 1}, HandleSW, true},
		{"Bottom-Right Corner", Position{X: x + wd - 1, Y: y + ht - 1}, HandleSE, true},
		{"Left Edge", Position{X: x, Y: y + 5}, HandleW, true},
		{"Right Edge", Position{X: x + wd - 1, Y: y + 5}, HandleE, true},
		{"Bottom Edge", Position{X: x + 5, Y: y + ht - 1}, HandleS, true},
		{"Interior", Position{X: x + 5, Y: y + 5}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := d.HandleAt(WindowMain, tc.pointer)
			if ok != tc.ok || (ok && got != tc.want) {
				t.Errorf("got %v %v, want %v %v", got, ok, tc.want, tc.ok)
			}
		})
	}

	t.Run("Header Is Not a Handle", func(t *testing.T) {
		p := Position{X: x + 5, Y: y}
		if _, ok := d.HandleAt(WindowMain, p); ok {
			t.Error("header cell misread as handle")
		}
		if !d.OnHeader(WindowMain, p) {
			t.Error("expected header hit")
		}
	})
}
