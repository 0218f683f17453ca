package desk

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/finite-collective/docdesk/pkg/docs"
)

var (
	activeBorder   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	inactiveBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	openButton     = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("15"))
	closedButton   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	offlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// View composites the open windows back-to-front onto the desktop, then the
// taskbar strip underneath.
func (m Model) View() string {
	vp := m.desktop.Viewport()
	if vp.Width <= 0 || vp.Height <= m.desktop.TaskbarHeight() {
		return "Loading..."
	}

	height := vp.Height - m.desktop.TaskbarHeight()
	canvas := make([]string, height)
	for i := range canvas {
		canvas[i] = strings.Repeat(" ", vp.Width)
	}

	for _, id := range m.desktop.Order() {
		w := m.desktop.Window(id)
		if !w.Open {
			continue
		}
		overlay(canvas, m.renderWindow(w), w.Position.X, w.Position.Y, w.Size.Width)
	}

	if m.prompting {
		box := m.renderPrompt()
		bw := lipgloss.Width(box)
		overlay(canvas, box, (vp.Width-bw)/2, height/3, bw)
	}

	return strings.Join(canvas, "\n") + "\n" + m.renderTaskbar()
}

// overlay splices a block of lines into the canvas at (x, y), preserving
// whatever shows to the left and right of it.
func overlay(canvas []string, block string, x, y, width int) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(canvas) {
			continue
		}
		base := canvas[row]
		left := ansi.Truncate(base, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(base, x+width, "")
		canvas[row] = left + line + right
	}
}

// fitLine truncates or pads a line to exactly width cells.
func fitLine(line string, width int) string {
	out := ansi.Truncate(line, width, "")
	if pad := width - ansi.StringWidth(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

func (m Model) renderWindow(w *WindowState) string {
	style := inactiveBorder
	if w.ID == m.focused {
		style = activeBorder
	}

	iw := w.Size.Width - 2
	ih := w.Size.Height - 2
	if iw < 1 || ih < 0 {
		return ""
	}

	title := ansi.Truncate(m.titleFor(w), iw-2, "…")
	head := "─ " + title + " "
	if pad := iw - ansi.StringWidth(head); pad > 0 {
		head += strings.Repeat("─", pad)
	}

	var b strings.Builder
	b.WriteString(style.Render("╭" + head + "╮"))

	lines := strings.Split(m.contentFor(w.ID, iw, ih), "\n")
	for row := 0; row < ih; row++ {
		var line string
		if row < len(lines) {
			line = lines[row]
		}
		b.WriteString("\n")
		b.WriteString(style.Render("│"))
		b.WriteString(fitLine(line, iw))
		b.WriteString(style.Render("│"))
	}

	b.WriteString("\n")
	b.WriteString(style.Render("╰" + strings.Repeat("─", iw) + "╯"))
	return b.String()
}

// titleFor decorates the static window title with session state.
func (m Model) titleFor(w *WindowState) string {
	switch w.ID {
	case WindowMain:
		if m.selected != nil {
			title := w.Title + ": " + m.selected.Name
			if rt, ok := m.doc.Metadata[docs.MetaReadingTime].(string); ok {
				title += " (" + rt + ")"
			}
			return title
		}
	case WindowEditor:
		if f := m.editor.ActiveFile(); f != nil {
			title := w.Title + ": " + f.Path
			if m.editor.Modified() {
				title += " *"
			}
			return title
		}
	}
	return w.Title
}

func (m Model) contentFor(id WindowID, width, height int) string {
	switch id {
	case WindowSidebar:
		return m.renderTree(width, height)
	case WindowMain:
		if m.loading {
			return faintStyle.Render("Loading...")
		}
		if m.loadErr != "" {
			return errorStyle.Render("Load failed: " + m.loadErr)
		}
		if m.selected == nil {
			return faintStyle.Render("Select a document")
		}
		return m.content.View()
	case WindowNotes:
		if m.notes == "" {
			return faintStyle.Render("No notes for this document")
		}
		return lipgloss.NewStyle().Width(width).Render(m.notes)
	case WindowMetadata:
		return m.renderMetadata(width)
	case WindowEditor:
		if m.editor.ActiveFile() == nil {
			return faintStyle.Render("No file loaded, press e on a file or n for a new one")
		}
		return m.textarea.View()
	}
	return ""
}

func (m Model) renderTree(width, height int) string {
	if len(m.rows) == 0 {
		return faintStyle.Render("Empty tree")
	}

	start := m.treeStart(height)

	var b strings.Builder
	for i := start; i < len(m.rows) && i-start < height; i++ {
		row := m.rows[i]

		marker := "  "
		if row.node.IsFolder() {
			if m.collapsed[row.id] {
				marker = "▸ "
			} else {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", row.depth) + marker + row.node.Name
		line = ansi.Truncate(line, width-2, "…")

		if i == m.cursor {
			line = cursorStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}

		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) renderMetadata(width int) string {
	if m.selected == nil {
		return faintStyle.Render("No document selected")
	}

	meta := m.doc.Metadata
	if len(meta) == 0 {
		meta = m.selected.Metadata
	}

	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fitLine(labelStyle.Render(label)+" "+value, width))
	}

	field("Path:", m.selected.Path)
	field("Author:", meta.Author())
	field("Difficulty:", meta.Difficulty())
	field("Tags:", strings.Join(meta.Tags(), ", "))
	if t := meta.LastUpdated(); !t.IsZero() {
		field("Updated:", t.Format("2006-01-02 15:04"))
	}
	if rt, ok := meta[docs.MetaReadingTime].(string); ok {
		field("Reading time:", rt)
	}
	if lf, ok := meta[docs.MetaLastFetched].(string); ok {
		field("Fetched:", lf)
	}

	if b.Len() == 0 {
		return faintStyle.Render("No metadata")
	}
	return b.String()
}

func (m Model) renderPrompt() string {
	body := labelStyle.Render("New file") + "\n" + m.nameIn.View() + "\n" + faintStyle.Render("enter to create, esc to cancel")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 1).
		Render(body)
}

// taskbarButton is one clickable toggle on the taskbar strip.
type taskbarButton struct {
	id         WindowID
	label      string
	start, end int
}

func (m Model) taskbarButtons() []taskbarButton {
	x := 0
	btns := make([]taskbarButton, 0, len(WindowIDs))
	for i, id := range WindowIDs {
		label := fmt.Sprintf(" %d %s ", i+1, m.desktop.Window(id).Title)
		btns = append(btns, taskbarButton{id: id, label: label, start: x, end: x + len(label)})
		x += len(label) + 1
	}
	return btns
}

func (m Model) renderTaskbar() string {
	vp := m.desktop.Viewport()

	var b strings.Builder
	for i, btn := range m.taskbarButtons() {
		if i > 0 {
			b.WriteString(" ")
		}
		style := closedButton
		if m.desktop.Window(btn.id).Open {
			style = openButton
		}
		if btn.id == m.focused {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(btn.label))
	}

	status := m.status
	if m.offline {
		status = strings.TrimSpace(offlineStyle.Render("offline") + " " + status)
	}
	if status != "" {
		b.WriteString("  ")
		b.WriteString(faintStyle.Render(status))
	}

	return fitLine(b.String(), vp.Width)
}
