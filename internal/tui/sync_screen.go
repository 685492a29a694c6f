package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-field-sync/internal/service"
)

// syncModel shows one pull or push run: a spinner, a progress bar fed by
// the run's SyncContext, the latest notice and the final outcome.
type syncModel struct {
	title    string
	sc       *service.SyncContext
	spinner  spinner.Model
	progress progress.Model

	percent    float64
	done       int
	total      int
	notice     string
	cancelling bool

	finished bool
	result   string
	err      error
}

func newSyncModel(title string, sc *service.SyncContext) syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return syncModel{
		title:    title,
		sc:       sc,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m syncModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.cancel), key.Matches(msg, keys.quit):
			if m.finished {
				return m, tea.Quit
			}
			// the run stops at its next check point and reports back
			m.sc.Cancel()
			m.cancelling = true
		}
		return m, nil

	case progressMsg:
		m.percent = clampPercent(msg.percent)
		return m, nil

	case countMsg:
		m.done = msg.done
		if msg.total > 0 {
			m.total = msg.total
		}
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case syncDoneMsg:
		m.finished = true
		m.result = msg.message
		m.err = msg.err
		if msg.err == nil {
			m.percent = 1
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m syncModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if !m.finished {
		b.WriteString(m.spinner.View() + " ")
	}
	b.WriteString(m.progress.ViewAs(m.percent))
	if m.total > 0 {
		fmt.Fprintf(&b, "  %d/%d", m.done, m.total)
	}
	b.WriteString("\n")

	if m.notice != "" && !m.finished {
		b.WriteString("\n" + noticeStyle.Render(m.notice) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	case m.finished:
		b.WriteString("\n" + noticeStyle.Render(m.result) + "\n")
	case m.cancelling:
		b.WriteString("\n" + helpStyle.Render("cancelling...") + "\n")
	default:
		b.WriteString("\n" + helpStyle.Render("c cancel") + "\n")
	}

	return appStyle.Render(b.String())
}

func clampPercent(p int) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 1
	}
	return float64(p) / 100
}
