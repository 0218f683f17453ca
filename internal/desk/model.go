package desk

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finite-collective/docdesk/pkg/cache"
	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
)

const requestTimeout = 15 * time.Second

// treeRow is one visible line of the file tree, flattened for rendering.
type treeRow struct {
	node  *docs.Node
	id    string // stable path-like identifier, also for folders
	depth int
}

// Model is the bubbletea model for the documentation desktop.
type Model struct {
	desktop *Desktop
	viewer  *Viewer
	editor  *Editor
	client  *client.Client
	keys    KeyMap

	tree      []*docs.Node
	rows      []treeRow
	cursor    int
	collapsed map[string]bool
	offline   bool

	selected *docs.Node
	doc      docs.Document
	notes    string
	loading  bool
	loadErr  string // inline error shown instead of content

	content  viewport.Model
	textarea textarea.Model
	nameIn   textinput.Model

	focused     WindowID
	prompting   bool       // new-file name prompt is open
	pending     *docs.Node // selection waiting on a discard confirmation
	confirmQuit bool
	status      string
}

// NewModel wires the desktop over a file-service client and document cache.
func NewModel(c *client.Client, dc *cache.Cache, minSize Size, taskbarHeight int) Model {
	ta := textarea.New()
	ta.Placeholder = "Start writing..."
	ta.CharLimit = 0

	ti := textinput.New()
	ti.Placeholder = "path/to/new-file.md"
	ti.CharLimit = 200

	return Model{
		desktop:   NewDesktop(Size{Width: 100, Height: 30}, minSize, taskbarHeight),
		viewer:    NewViewer(c, dc),
		editor:    NewEditor(),
		client:    c,
		keys:      keys,
		collapsed: make(map[string]bool),
		content:   viewport.New(60, 22),
		textarea:  ta,
		nameIn:    ti,
		focused:   WindowSidebar,
	}
}

// Init fetches the documentation tree.
func (m Model) Init() tea.Cmd {
	return fetchTreeCmd(m.client)
}

// Messages.

type treeMsg struct {
	nodes   []*docs.Node
	offline bool
}

type docMsg LoadResult

type notesMsg struct {
	gen     int
	content string
	err     error
}

type editorOpenedMsg struct {
	node    *docs.Node
	content string
	err     error
}

type savedMsg struct {
	path string
	err  error
}

type createdMsg struct {
	node *docs.Node
	err  error
}

func fetchTreeCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		nodes, offline := c.FetchTree(ctx)
		return treeMsg{nodes: nodes, offline: offline}
	}
}

func fetchDocCmd(v *Viewer, gen int, node *docs.Node) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return docMsg(v.Fetch(ctx, gen, node))
	}
}

func fetchNotesCmd(c *client.Client, gen int, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		doc, err := c.GetDocument(ctx, path)
		return notesMsg{gen: gen, content: doc.Content, err: err}
	}
}

func openFileCmd(c *client.Client, node *docs.Node) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		doc, err := c.GetDocument(ctx, node.Path)
		return editorOpenedMsg{node: node, content: doc.Content, err: err}
	}
}

func saveDocCmd(c *client.Client, path, content string, meta docs.Metadata) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := c.SaveDocument(ctx, path, content, meta)
		if err == nil && !result.Success {
			err = fmt.Errorf("file-service rejected save of %s", path)
		}
		return savedMsg{path: path, err: err}
	}
}

func createDocCmd(c *client.Client, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := c.SaveDocument(ctx, path, "", docs.Metadata{})
		if err != nil {
			return createdMsg{err: err}
		}
		return createdMsg{node: docs.NewFile(baseName(result.Path), result.Path, docs.Metadata{})}
	}
}

// Update handles one event.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.desktop.SetViewport(Size{Width: msg.Width, Height: msg.Height})
		m.layout()
		return m, nil

	case treeMsg:
		m.tree = msg.nodes
		m.offline = msg.offline
		m.rebuildRows()
		if m.offline {
			m.status = "file-service unreachable, showing fallback tree"
		}
		// First load selects the first file so the viewer is never empty.
		if m.selected == nil {
			if first := docs.FirstFile(m.tree); first != nil {
				for i, row := range m.rows {
					if row.node == first {
						m.cursor = i
						break
					}
				}
				return m.openSelected()
			}
		}
		return m, nil

	case docMsg:
		result := LoadResult(msg)
		if !m.viewer.Current(result) {
			return m, nil
		}
		m.loading = false
		if result.Err != nil {
			// The previous document must not masquerade as this selection.
			m.doc = docs.Document{}
			m.content.SetContent("")
			m.loadErr = result.Err.Error()
			m.status = fmt.Sprintf("load failed: %v", result.Err)
			return m, nil
		}
		m.applyDocument(result.Doc)
		return m, nil

	case editorOpenedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("open failed: %v", msg.err)
			return m, nil
		}
		m.editor.Load(msg.node, msg.content)
		m.showEditor()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.editor.MarkSaved()
		m.status = "saved " + msg.path

		// The viewer may hold a stale copy of this document now; re-fetch it
		// if it is the one on display.
		cmds := []tea.Cmd{fetchTreeCmd(m.client)}
		if m.selected != nil && m.selected.Path == msg.path {
			result, _ := m.viewer.Select(m.selected)
			m.loading = true
			cmds = append(cmds, fetchDocCmd(m.viewer, result.Gen, m.selected))
		}
		return m, tea.Batch(cmds...)

	case createdMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("create failed: %v", msg.err)
			return m, nil
		}
		m.editor.Load(msg.node, "")
		m.status = "created " + msg.node.Path
		m.showEditor()
		return m, fetchTreeCmd(m.client)

	case notesMsg:
		if !m.viewer.Current(LoadResult{Gen: msg.gen}) {
			return m, nil
		}
		if msg.err == nil {
			m.notes = msg.content
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The quit confirmation and discard confirmation intercept one keystroke.
	if m.confirmQuit {
		m.confirmQuit = false
		if msg.String() == "y" || key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.status = ""
		return m, nil
	}
	if m.pending != nil {
		node := m.pending
		m.pending = nil
		m.status = ""
		if msg.String() == "y" {
			return m.openInEditor(node, true)
		}
		return m, nil
	}

	if m.prompting {
		return m.updateNamePrompt(msg)
	}

	if m.focused == WindowEditor && m.desktop.Window(WindowEditor).Open {
		return m.updateEditorKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.editor.Modified() {
			m.confirmQuit = true
			m.status = "unsaved changes, press y to quit anyway"
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if m.focused == WindowSidebar {
			if key.Matches(msg, m.keys.Up) && m.cursor > 0 {
				m.cursor--
			}
			if key.Matches(msg, m.keys.Down) && m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		return m.openSelected()

	case key.Matches(msg, m.keys.Fold):
		m.toggleFold()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if row, ok := m.currentRow(); ok && row.node.IsFile() {
			return m.openInEditor(row.node, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.NewFile):
		m.prompting = true
		m.nameIn.SetValue("")
		m.nameIn.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Maximize):
		m.desktop.ToggleMaximize(m.focused)
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Cycle):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Taskbar):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(WindowIDs) {
			id := WindowIDs[idx]
			m.desktop.Toggle(id)
			if m.desktop.Window(id).Open {
				m.focused = id
			} else if m.focused == id {
				m.cycleFocus()
			}
			m.layout()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, fetchTreeCmd(m.client)
	}

	return m, nil
}

func (m Model) updateEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.saveEditor()

	case key.Matches(msg, m.keys.Cancel):
		m.textarea.Blur()
		m.focused = WindowMain
		return m, nil

	case msg.String() == "ctrl+c":
		if m.editor.Modified() {
			m.confirmQuit = true
			m.status = "unsaved changes, press y to quit anyway"
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.editor.Edit(m.textarea.Value())
	return m, cmd
}

func (m Model) updateNamePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompting = false
		m.nameIn.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.prompting = false
		m.nameIn.Blur()

		name := NormalizeDocName(m.nameIn.Value())
		if name == "" {
			m.status = "empty file name"
			return m, nil
		}
		return m, createDocCmd(m.client, name)
	}

	var cmd tea.Cmd
	m.nameIn, cmd = m.nameIn.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := Position{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if id, ok := m.desktop.WindowAt(p); ok && id == WindowMain {
				var cmd tea.Cmd
				m.content, cmd = m.content.Update(msg)
				return m, cmd
			}
			return m, nil

		case tea.MouseButtonLeft:
			if p.Y >= m.desktop.Viewport().Height-m.desktop.TaskbarHeight() {
				m.clickTaskbar(p.X)
				m.layout()
				return m, nil
			}

			id, ok := m.desktop.WindowAt(p)
			if !ok {
				return m, nil
			}
			m.desktop.Raise(id)
			m.focused = id

			if handle, ok := m.desktop.HandleAt(id, p); ok {
				m.desktop.StartResize(id, handle, p)
				return m, nil
			}
			if m.desktop.OnHeader(id, p) {
				m.desktop.StartDrag(id, p)
				return m, nil
			}
			if id == WindowSidebar {
				return m.clickTreeRow(p)
			}
		}

	case tea.MouseActionMotion:
		m.desktop.PointerMove(p)
		return m, nil

	case tea.MouseActionRelease:
		if m.desktop.Dragging() || m.desktop.Resizing() {
			m.desktop.EndGesture()
			m.layout()
		}
		return m, nil
	}

	return m, nil
}

// clickTaskbar toggles the window whose taskbar button contains x.
func (m *Model) clickTaskbar(x int) {
	for _, btn := range m.taskbarButtons() {
		if x >= btn.start && x < btn.end {
			m.desktop.Toggle(btn.id)
			if m.desktop.Window(btn.id).Open {
				m.focused = btn.id
			}
			return
		}
	}
}

func (m Model) clickTreeRow(p Position) (tea.Model, tea.Cmd) {
	w := m.desktop.Window(WindowSidebar)
	height := w.Size.Height - 2

	line := p.Y - w.Position.Y - 1
	if line < 0 || line >= height {
		return m, nil
	}

	// The pane scrolls with the cursor; the clicked line is relative to the
	// first visible row, not to the top of the tree.
	row := m.treeStart(height) + line
	if row >= len(m.rows) {
		return m, nil
	}
	m.cursor = row
	return m.openSelected()
}

// treeStart is the first visible row index for a tree pane of the given
// height, keeping the cursor in view.
func (m Model) treeStart(height int) int {
	if height <= 0 || m.cursor < height {
		return 0
	}
	return m.cursor - height + 1
}

// openSelected acts on the tree cursor: folders fold, files load into the
// viewer. Only the latest selection's result is applied.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	row, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if row.node.IsFolder() {
		m.toggleFold()
		return m, nil
	}

	m.selected = row.node
	m.notes = row.node.Notes
	m.status = ""
	m.loadErr = ""

	result, hit := m.viewer.Select(row.node)

	var cmds []tea.Cmd
	if row.node.NotesPath != "" && row.node.Notes == "" {
		cmds = append(cmds, fetchNotesCmd(m.client, result.Gen, row.node.NotesPath))
	}

	if hit {
		m.applyDocument(result.Doc)
	} else {
		m.loading = true
		cmds = append(cmds, fetchDocCmd(m.viewer, result.Gen, row.node))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applyDocument(doc docs.Document) {
	m.doc = doc
	m.loadErr = ""
	w := m.desktop.Window(WindowMain)
	m.content.SetContent(Render(doc.Content, w.Size.Width-2))
	m.content.GotoTop()
}

// openInEditor starts loading a file into the editing session; the fetched
// content arrives as an editorOpenedMsg. An unsaved session asks for
// confirmation first.
func (m Model) openInEditor(node *docs.Node, force bool) (tea.Model, tea.Cmd) {
	if err := m.editor.Guard(force); err != nil {
		m.pending = node
		m.status = "unsaved changes, press y to discard"
		return m, nil
	}
	return m, openFileCmd(m.client, node)
}

func (m *Model) showEditor() {
	if !m.desktop.Window(WindowEditor).Open {
		m.desktop.Toggle(WindowEditor)
	}
	m.desktop.Raise(WindowEditor)
	m.focused = WindowEditor
	m.textarea.SetValue(m.editor.Content())
	m.textarea.Focus()
	m.layout()
}

// saveEditor dispatches the save; the acknowledgement arrives as a savedMsg
// and only then clears the modified flag.
func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	m.editor.Edit(m.textarea.Value())

	path, content, meta, err := m.editor.Snapshot()
	if err != nil {
		m.status = "no file loaded"
		return m, nil
	}
	return m, saveDocCmd(m.client, path, content, meta)
}

func (m *Model) cycleFocus() {
	order := m.desktop.Order()
	start := -1
	for i, id := range order {
		if id == m.focused {
			start = i
			break
		}
	}
	for step := 1; step <= len(order); step++ {
		id := order[(start+step)%len(order)]
		if m.desktop.Window(id).Open {
			m.focused = id
			m.desktop.Raise(id)
			if id != WindowEditor {
				m.textarea.Blur()
			}
			return
		}
	}
}

// toggleFold collapses or expands the folder under the cursor.
func (m *Model) toggleFold() {
	row, ok := m.currentRow()
	if !ok || !row.node.IsFolder() {
		return
	}
	m.collapsed[row.id] = !m.collapsed[row.id]
	m.rebuildRows()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m Model) currentRow() (treeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return treeRow{}, false
	}
	return m.rows[m.cursor], true
}

// rebuildRows flattens the tree into visible rows, honoring folded folders.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	var walk func(nodes []*docs.Node, prefix string, depth int)
	walk = func(nodes []*docs.Node, prefix string, depth int) {
		for _, node := range nodes {
			id := node.Path
			if node.IsFolder() {
				id = prefix + node.Name + "/"
			}
			m.rows = append(m.rows, treeRow{node: node, id: id, depth: depth})
			if node.IsFolder() && !m.collapsed[id] {
				walk(node.Children, id, depth+1)
			}
		}
	}
	walk(m.tree, "", 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// layout syncs the embedded components to the current window geometry.
func (m *Model) layout() {
	if w := m.desktop.Window(WindowMain); w.Open {
		m.content.Width = w.Size.Width - 2
		m.content.Height = w.Size.Height - 2
	}
	if w := m.desktop.Window(WindowEditor); w.Open {
		m.textarea.SetWidth(w.Size.Width - 2)
		m.textarea.SetHeight(w.Size.Height - 2)
	}
	m.nameIn.Width = 40
}
