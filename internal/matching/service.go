package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPattern    = errors.New("pattern is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrRuleExists      = errors.New("a rule for this pattern already exists")
)

// Rule maps every description containing Pattern (case-insensitive) to
// Category.
type Rule struct {
	ID        uuid.UUID
	Pattern   string
	Category  string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
}

type Categories interface {
	Exists(ctx context.Context, name string) (bool, error)
}

type Service struct {
	repo       Repository
	categories Categories
}

func NewService(repo Repository, categories Categories) *Service {
	return &Service{repo: repo, categories: categories}
}

// Suggest returns the category of the longest pattern contained in
// description, or an empty string when no rule matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern, category string) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	ok, err := s.categories.Exists(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("checking category: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	r := &Rule{Pattern: pattern, Category: category}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Rules(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}
