package recurring_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	handler "github.com/MrJamesThe3rd/tally/internal/http/recurring"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

func newRouter(t *testing.T, setupMock func(r *recurring.MockRepository, c *recurring.MockCategories)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := recurring.NewMockRepository(ctrl)
	cats := recurring.NewMockCategories(ctrl)

	if setupMock != nil {
		setupMock(repo, cats)
	}

	router := chi.NewRouter()
	router.Route("/recurring-expenses", handler.NewHandler(recurring.NewService(repo, cats)).Routes)

	return router
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return rec.Code, out
}

func TestHandler_List(t *testing.T) {
	end := calendar.MustParseDate("2024-12-31")

	router := newRouter(t, func(r *recurring.MockRepository, _ *recurring.MockCategories) {
		r.EXPECT().ListTemplates(gomock.Any()).Return([]*recurring.Template{{
			ID:          uuid.New(),
			Description: "Rent",
			Amount:      decimal.NewFromInt(900),
			Category:    "Housing",
			Frequency:   recurring.Monthly,
			StartDate:   calendar.MustParseDate("2024-01-01"),
			EndDate:     &end,
		}}, nil)
	})

	status, body := do(t, router, http.MethodGet, "/recurring-expenses", "")
	require.Equal(t, http.StatusOK, status)

	list := body["recurringExpenses"].([]any)
	require.Len(t, list, 1)

	got := list[0].(map[string]any)
	assert.Equal(t, "monthly", got["frequency"])
	assert.Equal(t, "2024-01-01", got["startDate"])
	assert.Equal(t, "2024-12-31", got["endDate"])
	assert.Nil(t, got["lastGenerated"])
	assert.Equal(t, 900.0, got["amount"])
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name        string
		body        string
		setupMock   func(r *recurring.MockRepository, c *recurring.MockCategories)
		wantStatus  int
		wantMessage string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"description":"Gym","amount":"30","category":"Healthcare","frequency":"Weekly","startDate":"2024-03-01"}`,
			setupMock: func(r *recurring.MockRepository, c *recurring.MockCategories) {
				c.EXPECT().Exists(gomock.Any(), "Healthcare").Return(true, nil)
				r.EXPECT().
					CreateTemplate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tmpl *recurring.Template) error {
						assert.Equal(t, recurring.Weekly, tmpl.Frequency)
						assert.Nil(t, tmpl.EndDate)
						tmpl.ID = uuid.New()

						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "InvalidFrequency",
			body:        `{"description":"Gym","amount":30,"category":"Healthcare","frequency":"hourly","startDate":"2024-03-01"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid frequency",
		},
		{
			name:        "EndBeforeStart",
			body:        `{"description":"Gym","amount":30,"category":"Healthcare","frequency":"weekly","startDate":"2024-03-01","endDate":"2024-02-01"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: recurring.ErrEndBeforeStart.Error(),
		},
		{
			name:        "ZeroAmount",
			body:        `{"description":"Gym","amount":0,"category":"Healthcare","frequency":"weekly","startDate":"2024-03-01"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: recurring.ErrInvalidAmount.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, newRouter(t, tt.setupMock), http.MethodPost, "/recurring-expenses/add", tt.body)

			assert.Equal(t, tt.wantStatus, status)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	router := newRouter(t, func(r *recurring.MockRepository, _ *recurring.MockCategories) {
		r.EXPECT().DeleteTemplate(gomock.Any(), id).Return(recurring.ErrNotFound)
	})

	status, body := do(t, router, http.MethodDelete, "/recurring-expenses/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Recurring expense not found", body["message"])
}

func TestHandler_Occurrences(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		router := newRouter(t, func(r *recurring.MockRepository, _ *recurring.MockCategories) {
			r.EXPECT().GetTemplate(gomock.Any(), id).Return(&recurring.Template{
				ID:        id,
				Frequency: recurring.Monthly,
				StartDate: calendar.MustParseDate("2024-01-31"),
			}, nil)
		})

		status, body := do(t, router, http.MethodGet,
			"/recurring-expenses/"+id.String()+"/occurrences?from=2024-02-01&to=2024-04-30", "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []any{"2024-02-29", "2024-03-31", "2024-04-30"}, body["dates"])
	})

	t.Run("MissingRange", func(t *testing.T) {
		status, _ := do(t, newRouter(t, nil), http.MethodGet, "/recurring-expenses/"+id.String()+"/occurrences", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("InvertedRange", func(t *testing.T) {
		status, body := do(t, newRouter(t, nil), http.MethodGet,
			"/recurring-expenses/"+id.String()+"/occurrences?from=2024-05-01&to=2024-04-30", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, recurring.ErrInvalidRange.Error(), body["message"])
	})
}
