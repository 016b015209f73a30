// Package listen provides the terminal UI shown while a voice command is
// being recognized.
package listen

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/usecase"
)

// RunFunc runs one listening session and reports interim transcripts
// through onInterim.
type RunFunc func(ctx context.Context, onInterim func(domain.Transcript)) (*usecase.ListenOutput, error)

// Model is the bubbletea model for one listening session.
type Model struct {
	// Dependencies (pointers first for alignment)
	run    RunFunc
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg
	result *usecase.ListenOutput
	err    error

	// Components
	keys    KeyMap
	styles  Styles
	spinner spinner.Model

	// State
	lang     domain.Language
	interim  string
	heard    string
	message  string
	stopping bool
	done     bool
}

// New creates a Model that runs run under ctx in lang.
func New(ctx context.Context, lang domain.Language, run RunFunc) *Model {
	ctx, cancel := context.WithCancel(ctx)
	styles := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return &Model{
		run:     run,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan tea.Msg),
		keys:    DefaultKeyMap(),
		styles:  styles,
		spinner: sp,
		lang:    lang,
	}
}

// Init starts the session.
func (m *Model) Init() tea.Cmd {
	go m.listen()
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// Result returns the session outcome once the program has finished.
func (m *Model) Result() (*usecase.ListenOutput, error) {
	return m.result, m.err
}

// Message returns the localized feedback shown when the session finished.
func (m *Model) Message() string {
	return m.message
}

func (m *Model) listen() {
	defer m.cancel()
	out, err := m.run(m.ctx, func(t domain.Transcript) {
		m.events <- MsgInterim{Transcript: t}
	})
	m.events <- MsgFinished{Output: out, Err: err}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Stop) && !m.done && !m.stopping {
			m.stopping = true
			m.cancel()
		}
		return m, nil

	case MsgInterim:
		m.interim = msg.Transcript.Text
		return m, m.waitForEvent()

	case MsgFinished:
		m.done = true
		m.result, m.err = msg.Output, msg.Err
		var res *usecase.VoiceCommandOutput
		if msg.Output != nil {
			m.heard = msg.Output.Transcript.Text
			res = msg.Output.Result
		}
		m.message = usecase.FeedbackMessage(m.lang, m.heard, res, msg.Err)
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
