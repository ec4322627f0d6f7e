package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

// counter increments on "+" and resolves async Cmds to keep the drain honest.
type counter struct {
	n      int
	width  int
	loaded bool
}

type loadedMsg struct{}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{} }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case loadedMsg:
		c.loaded = true
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, tea.Batch(
				func() tea.Msg { return incMsg{} },
				func() tea.Msg { return incMsg{} },
			)
		case "q":
			return c, tea.Quit
		}
	case incMsg:
		c.n++
	}
	return c, nil
}

type incMsg struct{}

func (c counter) View() string { return "\x1b[1mcount\x1b[0m" }

func TestDriver_DrainsInitBatchesAndQuit(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()

	c := d.Model.(counter)
	assert.True(t, c.loaded)
	assert.Equal(t, 80, c.width)

	d.PressKey('+')
	assert.Equal(t, 2, d.Model.(counter).n)

	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('+')
	assert.Equal(t, 2, d.Model.(counter).n, "keys after quit are ignored")
	assert.Equal(t, "count", d.PlainView())
}

type tickMsg struct{}

// sleeper schedules a Cmd that never returns in time.
type sleeper struct{ ticks int }

func (s sleeper) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { time.Sleep(time.Second); return tickMsg{} },
		func() tea.Msg { return tickMsg{} },
	)
}

func (s sleeper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tickMsg); ok {
		s.ticks++
	}
	return s, nil
}

func (s sleeper) View() string { return "" }

func TestDriver_SkipsBlockingCmds(t *testing.T) {
	d := New(t, sleeper{}, WithCmdTimeout(20*time.Millisecond))
	d.DrainInit()
	assert.Equal(t, 1, d.Model.(sleeper).ticks)
}
