package listen

import (
	"strings"

	"github.com/runoshun/vtodo/internal/i18n"
)

// View renders the model.
func (m *Model) View() string {
	var b strings.Builder

	if m.done {
		if m.heard != "" {
			b.WriteString(m.styles.Heard.Render(i18n.Tf(m.lang, i18n.KeyHeard, m.heard)))
			b.WriteString("\n")
		}
		style := m.styles.Success
		if m.err != nil {
			style = m.styles.Failure
		}
		b.WriteString(style.Render(m.message))
		return m.styles.App.Render(b.String()) + "\n"
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.styles.Header.Render(i18n.T(m.lang, i18n.KeyListening)))
	b.WriteString(" ")
	b.WriteString(m.styles.Help.Render("(" + m.lang.Display() + ")"))
	b.WriteString("\n")

	if m.interim != "" {
		b.WriteString(m.styles.Interim.Render(m.interim))
	}
	b.WriteString("\n\n")

	if m.stopping {
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang, i18n.KeyRecognitionStopped)))
	} else {
		b.WriteString(m.styles.Help.Render(i18n.T(m.lang, i18n.KeyStopHint)))
	}

	return m.styles.App.Render(b.String())
}
