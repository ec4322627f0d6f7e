package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/tasktree"
	"github.com/alexanderramin/gantt/internal/watch"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// treeLoadedMsg carries a freshly loaded or persisted tree. seq is the
// model's edit sequence when the operation was queued.
type treeLoadedMsg struct {
	roots  []*domain.Task
	title  string
	status string
	err    error
	seq    int
}

// storeChangedMsg is sent when another process wrote to the database.
type storeChangedMsg struct{}

type chartKeyMap struct {
	Up, Down         key.Binding
	Toggle           key.Binding
	MoveUp, MoveDown key.Binding
	AddTask, AddSect key.Binding
	Delete           key.Binding
	Zoom, Unzoom     key.Binding
	Refresh, Quit    key.Binding
}

func defaultChartKeys() chartKeyMap {
	return chartKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		AddTask:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		AddSect:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add section")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Zoom:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		Unzoom:   key.NewBinding(key.WithKeys("-")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k chartKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.MoveUp, k.MoveDown, k.AddTask, k.AddSect, k.Delete, k.Zoom, k.Refresh, k.Quit}
}

// chartModel is the interactive chart. Toggle and move update the local
// tree before the store confirms; everything else reloads from the store.
//
// Store operations run one at a time in the order they were queued, so a
// result always reflects every earlier write. A result queued before the
// latest local edit is discarded; the edit's own result follows it.
type chartModel struct {
	app       *App
	refresher *watch.Refresher
	keys      chartKeyMap
	vp        viewport.Model

	title  string
	roots  []*domain.Task
	rows   []tasktree.Row
	cursor int
	cells  int

	pendingDelete string
	status        string
	err           error
	loading       bool

	seq   int // bumped by every local edit
	busy  bool
	queue []queuedOp
}

type queuedOp struct {
	run  func(seq int) tea.Msg
	seq  int
	load bool
}

// headerLines is the number of chart lines above the first row: month and
// day headers.
const headerLines = 2

func newChartModel(app *App, refresher *watch.Refresher) *chartModel {
	return &chartModel{
		app:       app,
		refresher: refresher,
		keys:      defaultChartKeys(),
		vp:        viewport.New(0, 0),
		cells:     defaultCellsPerDay,
		loading:   true,
	}
}

func (m *chartModel) Init() tea.Cmd {
	return m.load("")
}

// enqueue schedules a store operation stamped with the current edit
// sequence. It returns the operation's Cmd when nothing else is running.
func (m *chartModel) enqueue(load bool, run func(seq int) tea.Msg) tea.Cmd {
	if load && len(m.queue) > 0 && m.queue[len(m.queue)-1].load {
		return nil
	}
	m.queue = append(m.queue, queuedOp{run: run, seq: m.seq, load: load})
	if m.busy {
		return nil
	}
	return m.next()
}

func (m *chartModel) next() tea.Cmd {
	if len(m.queue) == 0 {
		m.busy = false
		return nil
	}
	op := m.queue[0]
	m.queue = m.queue[1:]
	m.busy = true
	return func() tea.Msg { return op.run(op.seq) }
}

// mutate runs fn through the refresher, if any, so change notifications
// caused by our own write collapse into one reload afterwards.
func (m *chartModel) mutate(fn func(ctx context.Context) error) error {
	ctx := context.Background()
	if m.refresher == nil {
		return fn(ctx)
	}
	return m.refresher.Mutate(ctx, fn)
}

func (m *chartModel) load(status string) tea.Cmd {
	return m.enqueue(true, func(seq int) tea.Msg {
		return m.fetch(status, seq)
	})
}

func (m *chartModel) fetch(status string, seq int) treeLoadedMsg {
	ctx := context.Background()
	roots, err := m.app.Tasks.Tree(ctx)
	if err != nil {
		return treeLoadedMsg{err: err, seq: seq}
	}
	p, err := m.app.Projects.Get(ctx)
	if err != nil {
		return treeLoadedMsg{err: err, seq: seq}
	}
	return treeLoadedMsg{roots: roots, title: p.DisplayName(), status: status, seq: seq}
}

// persistThen runs a store operation and reloads the tree on success.
func (m *chartModel) persistThen(status string, op func(ctx context.Context) error) tea.Cmd {
	return m.enqueue(false, func(seq int) tea.Msg {
		if err := m.mutate(op); err != nil {
			return treeLoadedMsg{err: err, seq: seq}
		}
		return m.fetch(status, seq)
	})
}

func (m *chartModel) selected() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Task
}

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-3)
		m.refreshView()
		return m, nil

	case storeChangedMsg:
		return m, m.load("")

	case treeLoadedMsg:
		next := m.next()
		if msg.seq < m.seq {
			return m, next
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, next
		}
		m.err = nil
		m.title, m.status = msg.title, msg.status
		m.setRoots(msg.roots)
		return m, next

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *chartModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Delete) {
		m.pendingDelete = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshView()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.refreshView()
		}

	case key.Matches(msg, m.keys.Toggle):
		if t := m.selected(); t != nil {
			return m, m.toggle(t.ID)
		}

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.move(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m, m.move(1)

	case key.Matches(msg, m.keys.AddTask):
		parentID := ""
		if t := m.selected(); t != nil {
			if t.IsSection() {
				parentID = t.ID
			} else {
				parentID = t.ParentIDOrEmpty()
			}
		}
		tasks := m.app.Tasks
		return m, m.persistThen("Added task", func(ctx context.Context) error {
			_, err := tasks.AddTask(ctx, parentID, "")
			return err
		})

	case key.Matches(msg, m.keys.AddSect):
		tasks := m.app.Tasks
		return m, m.persistThen("Added section", func(ctx context.Context) error {
			_, err := tasks.AddSection(ctx, "")
			return err
		})

	case key.Matches(msg, m.keys.Delete):
		t := m.selected()
		if t == nil {
			return m, nil
		}
		if m.pendingDelete != t.ID {
			m.pendingDelete = t.ID
			m.status = fmt.Sprintf("Press x again to delete %q", t.Title)
			return m, nil
		}
		m.pendingDelete = ""
		id, tasks := t.ID, m.app.Tasks
		return m, m.persistThen("Deleted "+t.Title, func(ctx context.Context) error {
			return tasks.Delete(ctx, id)
		})

	case key.Matches(msg, m.keys.Zoom):
		m.cells = min(m.cells+1, 3)
		m.refreshView()

	case key.Matches(msg, m.keys.Unzoom):
		m.cells = max(m.cells-1, 1)
		m.refreshView()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load("")
	}
	return m, nil
}

// toggle flips the flag locally, then persists the whole tree.
func (m *chartModel) toggle(id string) tea.Cmd {
	m.setRoots(tasktree.ToggleExpanded(m.roots, id))
	return m.persistTree(func(ctx context.Context) ([]*domain.Task, error) {
		return m.app.Tasks.ToggleExpanded(ctx, id)
	})
}

// move swaps the selected node with its neighbour dir steps away among
// its siblings.
func (m *chartModel) move(dir int) tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	loc := tasktree.Locate(m.roots, t.ID)
	j := loc.Index + dir
	if !loc.Found() || j < 0 || j >= len(loc.Siblings) {
		return nil
	}
	movedID, targetID := t.ID, loc.Siblings[j].ID

	m.setRoots(tasktree.Reorder(m.roots, movedID, targetID))
	m.follow(movedID)
	return m.persistTree(func(ctx context.Context) ([]*domain.Task, error) {
		return m.app.Tasks.Reorder(ctx, movedID, targetID)
	})
}

// persistTree records a local edit and queues the operation that writes it
// and returns the persisted tree. A failure reloads from the store so the
// optimistic state is dropped.
func (m *chartModel) persistTree(op func(ctx context.Context) ([]*domain.Task, error)) tea.Cmd {
	m.seq++
	title := m.title
	return m.enqueue(false, func(seq int) tea.Msg {
		var roots []*domain.Task
		err := m.mutate(func(ctx context.Context) error {
			var err error
			roots, err = op(ctx)
			return err
		})
		if err != nil {
			msg := m.fetch("", seq)
			if msg.err == nil {
				msg.err = err
			}
			return msg
		}
		return treeLoadedMsg{roots: roots, title: title, seq: seq}
	})
}

func (m *chartModel) setRoots(roots []*domain.Task) {
	selected := ""
	if t := m.selected(); t != nil {
		selected = t.ID
	}
	m.roots = roots
	m.rows = tasktree.Visible(roots)
	m.follow(selected)
}

// follow keeps the cursor on id when it is still visible.
func (m *chartModel) follow(id string) {
	for i, r := range m.rows {
		if r.Task.ID == id {
			m.cursor = i
			break
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.refreshView()
}

// refreshView re-renders the chart into the viewport and scrolls the
// cursor row into view.
func (m *chartModel) refreshView() {
	chart := formatter.RenderGantt(m.roots, nil, formatter.GanttOptions{
		Today:       m.app.now(),
		CellsPerDay: m.cells,
	})
	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")
	for i := range lines {
		row := i - headerLines
		switch {
		case row == m.cursor && row < len(m.rows):
			lines[i] = formatter.StyleHeader.Render("▌") + lines[i]
		default:
			lines[i] = " " + lines[i]
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))

	line := m.cursor + headerLines
	if line < m.vp.YOffset+headerLines {
		m.vp.SetYOffset(max(line-headerLines, 0))
	} else if m.vp.Height > 0 && line >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

func (m *chartModel) View() string {
	var b strings.Builder
	title := m.title
	if title == "" {
		title = domain.DefaultProjectName
	}
	b.WriteString(formatter.StyleHeader.Render(title))
	if m.loading {
		b.WriteString(formatter.Dim("  loading…"))
	}
	b.WriteString("\n")

	b.WriteString(m.vp.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(formatter.StyleGreen.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpLine(m.keys.ShortHelp()))
	return b.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			formatter.StyleBlue.Render(h.Key), " ", formatter.Dim(h.Desc)))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
