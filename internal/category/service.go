package category

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	ErrEmptyName = errors.New("category name is required")
	ErrExists    = errors.New("category already exists")
)

const listKey = "categories"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context) ([]string, error)
	CreateCategory(ctx context.Context, name string) error
}

// Service serves the known category set. Reads go through an in-process cache
// that Add invalidates.
type Service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

// List returns category names in alphabetical order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	if cached, found := s.cache.Get(listKey); found {
		return slices.Clone(cached.([]string)), nil
	}

	names, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	if names == nil {
		names = []string{}
	}

	s.cache.SetDefault(listKey, names)

	return slices.Clone(names), nil
}

// Exists reports whether name is a known category. Matching is exact.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	return slices.Contains(names, name), nil
}

func (s *Service) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	if err := s.repo.CreateCategory(ctx, name); err != nil {
		return "", err
	}

	s.cache.Delete(listKey)

	return name, nil
}
