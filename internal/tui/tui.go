package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

// RunFunc performs one sync run against sc and returns the message shown
// when it finishes.
type RunFunc func(ctx context.Context, sc *service.SyncContext) (string, error)

type TUI struct {
	session *service.SyncSession
	in      io.Reader
	out     io.Writer

	logger *logger.Logger
}

// New returns a TUI that registers its runs with session so that a cancel
// from the control API reaches them too. nil in or out default to the
// terminal.
func New(session *service.SyncSession, in io.Reader, out io.Writer, logger *logger.Logger) *TUI {
	return &TUI{session: session, in: in, out: out, logger: logger}
}

// RunSync executes run while rendering its progress. Pressing c cancels
// the run through its SyncContext; the program ends once run returns.
func (t *TUI) RunSync(ctx context.Context, title string, run RunFunc) error {
	sc := t.session.Begin(nil)
	defer t.session.End(sc)

	var opts []tea.ProgramOption
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}
	if t.out != nil {
		opts = append(opts, tea.WithOutput(t.out))
	}
	p := tea.NewProgram(newSyncModel(title, sc), opts...)

	bindProgress(sc, p.Send)

	done := make(chan error, 1)
	go func() {
		msg, err := run(ctx, sc)
		done <- err
		p.Send(syncDoneMsg{message: msg, err: err})
	}()

	if _, err := p.Run(); err != nil {
		t.logger.Error().Err(err).Msg("progress view failed")
		sc.Cancel()
		<-done
		return err
	}

	return <-done
}

// bindProgress forwards the SyncContext callbacks to send.
func bindProgress(sc *service.SyncContext, send func(tea.Msg)) {
	total := 0
	sc.OnProgress = func(p int) { send(progressMsg{percent: p}) }
	sc.OnTotal = func(n int) {
		total = n
		send(countMsg{total: n})
	}
	sc.OnCount = func(n int) { send(countMsg{done: n, total: total}) }
	sc.OnNotice = func(text string) { send(noticeMsg{text: text}) }
}
