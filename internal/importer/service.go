package importer

import (
	"context"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type Suggester interface {
	Suggest(ctx context.Context, description string) (string, error)
}

// Service turns an uploaded file into expense params ready for
// expense.Service.ImportBatch. Rows without a category get the suggested one
// when a rule matches their description.
type Service struct {
	parser    *Parser
	suggester Suggester
}

func NewService(suggester Suggester) *Service {
	return &Service{
		parser:    NewParser(),
		suggester: suggester,
	}
}

func (s *Service) Import(ctx context.Context, r io.Reader) ([]expense.CreateParams, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for i, p := range params {
		if p.Category != "" {
			continue
		}

		suggested, err := s.suggester.Suggest(ctx, p.Description)
		if err != nil {
			slog.WarnContext(ctx, "category suggestion failed", "description", p.Description, "error", err)
			continue
		}

		params[i].Category = suggested
	}

	return params, nil
}
