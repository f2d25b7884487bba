package expense_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	handler "github.com/MrJamesThe3rd/tally/internal/http/expense"
)

func newRouter(t *testing.T, setupMock func(r *expense.MockRepository, c *expense.MockCategories)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)
	cats := expense.NewMockCategories(ctrl)

	if setupMock != nil {
		setupMock(repo, cats)
	}

	router := chi.NewRouter()
	router.Route("/expenses", handler.NewHandler(expense.NewService(repo, cats)).Routes)

	return router
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec, out
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name        string
		body        string
		setupMock   func(r *expense.MockRepository, c *expense.MockCategories)
		wantStatus  int
		wantMessage string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"description":"Coffee","amount":"12.5","category":"Food","date":"2024-03-01","notes":""}`,
			setupMock: func(r *expense.MockRepository, c *expense.MockCategories) {
				c.EXPECT().Exists(gomock.Any(), "Food").Return(true, nil)
				r.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "MissingDescription",
			body:        `{"description":"","amount":5,"category":"Food","date":"2024-03-01"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: expense.ErrEmptyDescription.Error(),
		},
		{
			name:        "NegativeAmount",
			body:        `{"description":"Coffee","amount":-5,"category":"Food","date":"2024-03-01"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: expense.ErrInvalidAmount.Error(),
		},
		{
			name: "UnknownCategory",
			body: `{"description":"Coffee","amount":5,"category":"Yachts","date":"2024-03-01"}`,
			setupMock: func(_ *expense.MockRepository, c *expense.MockCategories) {
				c.EXPECT().Exists(gomock.Any(), "Yachts").Return(false, nil)
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "unknown category: Yachts",
		},
		{
			name:       "MalformedBody",
			body:       `{"description":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, newRouter(t, tt.setupMock), http.MethodPost, "/expenses/add", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}

			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, 12.5, body["amount"])
				assert.Equal(t, "2024-03-01", body["date"])
				assert.NotEmpty(t, body["id"])
			}
		})
	}
}

func TestHandler_Month(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
			r.EXPECT().
				ListExpenses(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, f expense.ListFilter) ([]*expense.Expense, error) {
					assert.Equal(t, "2024-02-01", f.From.Key())
					assert.Equal(t, "2024-02-29", f.To.Key())

					return []*expense.Expense{{
						ID:          uuid.New(),
						Description: "Rent",
						Amount:      decimal.NewFromInt(900),
						Category:    "Housing",
						Date:        calendar.NewDate(2024, time.February, 1),
					}}, nil
				})
		})

		rec, body := do(t, router, http.MethodGet, "/expenses/month/2024/2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, body["expenses"], 1)
	})

	for _, path := range []string{"/expenses/month/2024/13", "/expenses/month/2024/0", "/expenses/month/2024/feb"} {
		t.Run(path, func(t *testing.T) {
			rec, body := do(t, newRouter(t, nil), http.MethodGet, path, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid month", body["message"])
		})
	}
}

func TestHandler_Day(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
			r.EXPECT().
				ListExpenses(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, f expense.ListFilter) ([]*expense.Expense, error) {
					assert.Equal(t, "2024-02-29", f.From.Key())
					assert.Equal(t, "2024-02-29", f.To.Key())

					return nil, nil
				})
		})

		rec, body := do(t, router, http.MethodGet, "/expenses/day/2024/2/29", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, body["expenses"])
	})

	for _, path := range []string{"/expenses/day/2023/2/29", "/expenses/day/2024/13/1", "/expenses/day/x/1/1"} {
		t.Run(path, func(t *testing.T) {
			rec, body := do(t, newRouter(t, nil), http.MethodGet, path, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid date", body["message"])
		})
	}
}

func TestHandler_Overview(t *testing.T) {
	today := calendar.Today()

	router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
		r.EXPECT().ListExpenses(gomock.Any(), expense.ListFilter{Newest: true}).Return([]*expense.Expense{
			{ID: uuid.New(), Description: "Lunch", Amount: decimal.NewFromInt(7), Category: "Food", Date: today},
			{ID: uuid.New(), Description: "Dinner", Amount: decimal.NewFromInt(3), Category: "Food", Date: today},
		}, nil)
	})

	rec, body := do(t, router, http.MethodGet, "/expenses", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, body["expenses"], 2)
	assert.Equal(t, []any{map[string]any{"name": "Food", "value": 10.0}}, body["categoryData"])

	daily := body["dailyData"].([]any)
	require.Len(t, daily, 7)
	assert.Equal(t, map[string]any{"date": today.Format("01/02"), "amount": 10.0}, daily[6])
	assert.Len(t, body["monthlyData"], 6)
}

func TestHandler_Update(t *testing.T) {
	id := uuid.New()

	t.Run("NotFound", func(t *testing.T) {
		router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
			r.EXPECT().GetExpense(gomock.Any(), id).Return(nil, expense.ErrNotFound)
		})

		rec, body := do(t, router, http.MethodPut, "/expenses/"+id.String(),
			`{"description":"Coffee","amount":5,"category":"Food","date":"2024-03-01"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Expense not found", body["message"])
	})

	t.Run("ReplacesRecord", func(t *testing.T) {
		router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
			r.EXPECT().GetExpense(gomock.Any(), id).Return(&expense.Expense{
				ID:          id,
				Description: "Coffee",
				Amount:      decimal.NewFromInt(5),
				Category:    "Food",
				Date:        calendar.NewDate(2024, time.March, 1),
			}, nil)
			r.EXPECT().
				UpdateExpense(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, e *expense.Expense) error {
					assert.Equal(t, id, e.ID)
					assert.Equal(t, "Espresso", e.Description)
					assert.Empty(t, e.Notes)

					return nil
				})
		})

		rec, body := do(t, router, http.MethodPut, "/expenses/"+id.String(),
			`{"description":"Espresso","amount":"4.20","category":"Food","date":"2024-03-02"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4.2, body["amount"])
		assert.Equal(t, "2024-03-02", body["date"])
	})

	t.Run("InvalidID", func(t *testing.T) {
		rec, _ := do(t, newRouter(t, nil), http.MethodPut, "/expenses/nope", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
			r.EXPECT().DeleteExpense(gomock.Any(), id).Return(nil)
		})

		rec, _ := do(t, router, http.MethodDelete, "/expenses/"+id.String(), "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		router := newRouter(t, func(r *expense.MockRepository, _ *expense.MockCategories) {
			r.EXPECT().DeleteExpense(gomock.Any(), id).Return(expense.ErrNotFound)
		})

		rec, body := do(t, router, http.MethodDelete, "/expenses/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Expense not found", body["message"])
	})
}
