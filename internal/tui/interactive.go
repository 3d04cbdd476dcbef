package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/chaospanel/internal/panel"
	"github.com/san-kum/chaospanel/internal/param"
)

const barWidth = 32

// Options configure the terminal panel.
type Options struct {
	Title string
	Defs  []param.Def
	Store param.Store
	// Snapshot feeds the store pane; nil hides it.
	Snapshot func() []param.Entry
	Logger   *slog.Logger
}

type status struct {
	last  string
	count int
	err   error
}

type model struct {
	title    string
	tree     *panel.Tree
	snapshot func() []param.Entry

	focus   []*panel.Element
	cursor  int
	editing bool
	input   textinput.Model

	keys      keyMap
	help      help.Model
	showStore bool
	status    *status

	width  int
	height int
}

// NewPanelApp assembles the panel onto a headless tree and wraps it in a
// bubbletea model.
func NewPanelApp(opts Options) (*model, error) {
	st := &status{}
	tree := panel.NewTree()
	p := panel.New(opts.Store, tree,
		panel.WithLogger(opts.Logger),
		panel.WithOnWrite(func(w param.Write) {
			st.last = w.String()
			st.count++
		}),
	)
	if err := p.Assemble(opts.Defs); err != nil {
		return nil, err
	}

	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 256
	in.Width = barWidth

	return &model{
		title:    opts.Title,
		tree:     tree,
		snapshot: opts.Snapshot,
		focus:    tree.Focusable(),
		input:    in,
		keys:     defaultKeys(),
		help:     help.New(),
		status:   st,
		width:    80,
		height:   24,
	}, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.navKey(msg)
	}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) focused() *panel.Element {
	if m.cursor < 0 || m.cursor >= len(m.focus) {
		return nil
	}
	return m.focus[m.cursor]
}

func (m model) navKey(msg tea.KeyMsg) (model, tea.Cmd) {
	e := m.focused()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.focus)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		m.nudge(e, -1)
	case key.Matches(msg, m.keys.Right):
		m.nudge(e, 1)
	case key.Matches(msg, m.keys.BigLeft):
		m.nudge(e, -10)
	case key.Matches(msg, m.keys.BigRight):
		m.nudge(e, 10)
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Edit):
		if e == nil {
			break
		}
		switch e.Kind {
		case panel.KindCheckbox:
			m.status.err = m.tree.Toggle(e.ID)
		case panel.KindText:
			if !key.Matches(msg, m.keys.Edit) {
				break
			}
			m.editing = true
			m.input.SetValue(e.Value)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case key.Matches(msg, m.keys.Store):
		m.showStore = !m.showStore
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m model) nudge(e *panel.Element, steps int) {
	if e == nil || e.Kind != panel.KindRange {
		return
	}
	m.status.err = m.tree.Nudge(e.ID, steps)
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Done) {
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if e := m.focused(); e != nil && e.Value != m.input.Value() {
		m.status.err = m.tree.Input(e.ID, m.input.Value())
	}
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + cyan.Render(m.title) + "  " + dim.Render(fmt.Sprintf("%d controls", len(m.focus))) + "\n")
	b.WriteString(dimmer.Render("  "+strings.Repeat("─", barWidth+12)) + "\n\n")

	body := m.viewControls()
	if m.showStore && m.snapshot != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "    ", m.viewStore())
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString("  " + m.viewStatus() + "\n")
	b.WriteString("  " + m.help.View(m.keys) + "\n")

	return b.String()
}

func (m model) viewControls() string {
	var (
		lines      []string
		cur        strings.Builder
		curFocused bool
		focusLine  int
	)
	target := m.focused()
	flush := func() {
		prefix := "    "
		if curFocused {
			prefix = "  " + cyan.Render("▸ ")
			focusLine = len(lines)
		}
		lines = append(lines, prefix+cur.String())
		cur.Reset()
		curFocused = false
	}

	for _, e := range m.tree.Elements() {
		focused := e == target
		if focused {
			curFocused = true
		}
		switch e.Kind {
		case panel.KindBreak:
			flush()
		case panel.KindLabel:
			if cur.Len() > 0 {
				cur.WriteString(" ")
			}
			cur.WriteString(white.Render(e.Text()))
		case panel.KindRange:
			cur.WriteString(m.viewRange(e, focused))
		case panel.KindCheckbox:
			box := "[ ]"
			if e.Checked {
				box = "[x]"
			}
			if focused {
				cur.WriteString(magenta.Render(box))
			} else {
				cur.WriteString(dim.Render(box))
			}
		case panel.KindText:
			cur.WriteString(m.viewText(e, focused))
		}
	}
	if cur.Len() > 0 || curFocused {
		flush()
	}

	visible := m.height - 10
	if visible < 8 {
		visible = 8
	}
	start := 0
	if len(lines) > visible {
		start = focusLine - visible/2
		if start < 0 {
			start = 0
		}
		if start > len(lines)-visible {
			start = len(lines) - visible
		}
		lines = lines[start : start+visible]
	}
	return strings.Join(lines, "\n")
}

func (m model) viewRange(e *panel.Element, focused bool) string {
	v, err := strconv.ParseFloat(e.Value, 64)
	if err != nil {
		v = e.Attrs.Value
	}
	frac := 0.0
	if span := e.Attrs.Max - e.Attrs.Min; span > 0 {
		frac = (v - e.Attrs.Min) / span
	}
	bar := sliderBar(frac, barWidth, focused)
	lo := dimmer.Render(param.FormatNumber(e.Attrs.Min))
	hi := dimmer.Render(param.FormatNumber(e.Attrs.Max))
	return lo + " " + bar + " " + hi
}

func (m model) viewText(e *panel.Element, focused bool) string {
	if focused && m.editing {
		return m.input.View()
	}
	if e.Value == "" {
		return dimmer.Render("› (empty)")
	}
	if focused {
		return magenta.Render("› " + e.Value)
	}
	return dim.Render("› " + e.Value)
}

func (m model) viewStore() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("store") + "\n")
	for _, e := range m.snapshot() {
		b.WriteString(metricLabel.Render(fmt.Sprintf("%3d %-34s", e.Code, e.Name)))
		b.WriteString(metricValue.Render(e.Value) + "\n")
	}
	return glassPanel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) viewStatus() string {
	if m.status.err != nil {
		return magenta.Render("error: " + m.status.err.Error())
	}
	if m.status.count == 0 {
		return dim.Render("no writes yet")
	}
	return green.Render(m.status.last) + dim.Render(fmt.Sprintf("  (%d writes)", m.status.count))
}

func RunInteractive(opts Options) error {
	app, err := NewPanelApp(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
