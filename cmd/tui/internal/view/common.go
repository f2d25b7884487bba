package view

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/client"
)

const defaultTimeout = 10 * time.Second

// Deps is what every screen needs to reach the store.
type Deps struct {
	Client  *client.Client
	Timeout time.Duration
	Today   func() calendar.Date
}

func (d Deps) ctx() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return context.WithTimeout(context.Background(), timeout)
}

func (d Deps) today() calendar.Date {
	if d.Today == nil {
		return calendar.Today()
	}

	return d.Today()
}

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// requestSeq tags fetches so only the answer to the latest one is applied.
type requestSeq struct {
	last uint64
}

func (s *requestSeq) next() uint64 {
	s.last++
	return s.last
}

func (s requestSeq) isLatest(id uint64) bool {
	return id == s.last
}

// userError logs err and returns the text to show for it.
func userError(err error, fallback string) string {
	slog.Error(fallback, "error", err)
	return client.UserMessage(err, fallback)
}
