package category_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/category"
)

func TestService_List_Caches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().ListCategories(gomock.Any()).Return([]string{"Food", "Housing"}, nil).Times(1)

	svc := category.NewService(repo, time.Minute)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Housing"}, first)

	first[0] = "mutated"

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Housing"}, second)
}

func TestService_List_EmptyIsNonNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)

	got, err := category.NewService(repo, time.Minute).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_Exists(t *testing.T) {
	type testCase struct {
		name string
		arg  string
		want bool
	}

	tests := []testCase{
		{name: "Known", arg: "Food", want: true},
		{name: "CaseMismatch", arg: "food", want: false},
		{name: "Unknown", arg: "Travel", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			repo.EXPECT().ListCategories(gomock.Any()).Return([]string{"Food", "Housing"}, nil)

			got, err := category.NewService(repo, time.Minute).Exists(context.Background(), tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		arg       string
		setupMock func(m *category.MockRepository)
		want      string
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Trimmed",
			arg:  "  Pets ",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), "Pets").Return(nil)
			},
			want: "Pets",
		},
		{
			name:    "Empty",
			arg:     "   ",
			wantErr: category.ErrEmptyName,
		},
		{
			name: "Duplicate",
			arg:  "Food",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), "Food").Return(category.ErrExists)
			},
			wantErr: category.ErrExists,
		},
		{
			name: "RepoError",
			arg:  "Pets",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), "Pets").Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := category.NewService(repo, time.Minute).Add(context.Background(), tt.arg)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Add_InvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().ListCategories(gomock.Any()).Return([]string{"Food"}, nil),
		repo.EXPECT().CreateCategory(gomock.Any(), "Pets").Return(nil),
		repo.EXPECT().ListCategories(gomock.Any()).Return([]string{"Food", "Pets"}, nil),
	)

	svc := category.NewService(repo, time.Minute)

	ok, err := svc.Exists(context.Background(), "Pets")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Add(context.Background(), "Pets")
	require.NoError(t, err)

	ok, err = svc.Exists(context.Background(), "Pets")
	require.NoError(t, err)
	assert.True(t, ok)
}
