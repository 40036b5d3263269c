// Package chat is the terminal front end of the test-case generator.
package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blastlab/testgen/internal/chat"
	"github.com/blastlab/testgen/internal/testcase"
	"github.com/charmbracelet/bubbles/key"
	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const inputHeight = 3

type replyMsg struct {
	pending chat.Pending
	res     *testcase.Result
	err     error
}

type exportedMsg struct {
	path string
	err  error
}

// Options configures a Model.
type Options struct {
	Sender *chat.Sender
	// ExportDir receives CSV exports; defaults to the working directory.
	ExportDir string
	Now       func() time.Time
}

// Model is the bubbletea model for `testgen chat`.
type Model struct {
	ctx      context.Context
	sender   *chat.Sender
	session  string
	export   string
	now      func() time.Time
	input    textarea.Model
	viewport viewport.Model
	spinner  bspinner.Model
	status   string
	width    int
}

// New returns a Model bound to ctx for the lifetime of the program.
func New(ctx context.Context, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe a requirement, Enter to send"
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	sp := bspinner.New()
	sp.Spinner = bspinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := Model{
		ctx:      ctx,
		sender:   opts.Sender,
		session:  uuid.NewString(),
		export:   opts.ExportDir,
		now:      now,
		input:    ta,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
	m.sender.Log = m.sender.Log.With().Str("session", m.session).Logger()
	m.refresh()
	return m
}

// Session is the id attached to every log line of this run.
func (m Model) Session() string { return m.session }

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-inputHeight-3)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m.send()
		case "ctrl+l":
			m.sender.Conv.Clear()
			m.status = "conversation cleared"
			m.refresh()
			return m, nil
		case "ctrl+e":
			return m, m.exportCSV()
		}

	case replyMsg:
		m.sender.Resolve(msg.pending, msg.res, msg.err)
		m.status = ""
		m.refresh()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported to " + msg.path
		}
		return m, nil

	case bspinner.TickMsg:
		if !m.sender.Conv.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) send() (tea.Model, tea.Cmd) {
	p, err := m.sender.Conv.Begin(m.input.Value())
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.input.Reset()
	m.status = ""
	m.refresh()

	gen, ctx := m.sender.Gen, m.ctx
	call := func() tea.Msg {
		res, err := gen.Generate(ctx, p.Requirement)
		return replyMsg{pending: p, res: res, err: err}
	}
	return m, tea.Batch(call, m.spinner.Tick)
}

func (m Model) exportCSV() tea.Cmd {
	cases := m.sender.Conv.LatestTestCases()
	dir, stamp := m.export, m.now().Format("20060102-150405")
	return func() tea.Msg {
		if len(cases) == 0 {
			return exportedMsg{err: fmt.Errorf("no test cases to export")}
		}
		path := filepath.Join(dir, "testcases-"+stamp+".csv")
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{err: err}
		}
		if err := testcase.WriteCSV(f, cases); err != nil {
			_ = f.Close()
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path, err: f.Close()}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderEntries(m.sender.Conv.Entries(), m.spinner.View(), m.width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	header := headerStyle.Render("BLAST TestGen") + "  " + mutedStyle.Render("enter send · ctrl+l clear · ctrl+e export csv · esc quit")
	status := mutedStyle.Render(m.status)
	return header + "\n" + m.viewport.View() + "\n" + m.input.View() + "\n" + status
}
