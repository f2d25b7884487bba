package recurring

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

type Generator interface {
	Generate(ctx context.Context, today calendar.Date) (int, error)
}

// Worker runs the generator once on start and then on every tick until its
// context is cancelled.
type Worker struct {
	gen      Generator
	interval time.Duration
	today    func() calendar.Date
}

func NewWorker(gen Generator, interval time.Duration) *Worker {
	return &Worker{gen: gen, interval: interval, today: calendar.Today}
}

func (w *Worker) Run(ctx context.Context) error {
	slog.Info("recurring expense generator started", "interval", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("recurring expense generator stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	today := w.today()

	count, err := w.gen.Generate(ctx, today)
	if err != nil {
		slog.Error("recurring expense generation failed", "error", err)
		return
	}

	if count > 0 {
		slog.Info("generated recurring expenses", "created", count, "through", today.Key())
	}
}
