package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/tally/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	healthHandler "github.com/MrJamesThe3rd/tally/internal/http/health"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/tally/internal/http/matching"
	recurringHandler "github.com/MrJamesThe3rd/tally/internal/http/recurring"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

func newRouter(t *testing.T, opts tallyHttp.Options) (http.Handler, *category.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)

	catRepo := category.NewMockRepository(ctrl)
	categories := category.NewService(catRepo, time.Minute)
	expenses := expense.NewService(expense.NewMockRepository(ctrl), categories)
	rules := matching.NewService(matching.NewMockRepository(ctrl), categories)

	router := tallyHttp.New(opts, tallyHttp.Handlers{
		Expenses:   expenseHandler.NewHandler(expenses),
		Import:     importHandler.NewHandler(importer.NewService(rules), expenses),
		Export:     exportHandler.NewHandler(export.NewService(expenses)),
		Categories: categoryHandler.NewHandler(categories),
		Recurring:  recurringHandler.NewHandler(recurring.NewService(recurring.NewMockRepository(ctrl), categories)),
		Matching:   matchingHandler.NewHandler(rules),
		Health:     healthHandler.NewHandler(nil, expenses),
	})

	return router, catRepo
}

func TestRouter_RateLimit(t *testing.T) {
	router, repo := newRouter(t, tallyHttp.Options{
		AllowedOrigins: []string{"*"},
		RateLimit:      rate.Every(time.Hour),
		RateBurst:      2,
	})
	repo.EXPECT().ListCategories(gomock.Any()).Return([]string{"Food"}, nil)

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
		codes[i] = rec.Code
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newRouter(t, tallyHttp.Options{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/expenses/add", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequiresJSON(t *testing.T) {
	router, _ := newRouter(t, tallyHttp.Options{AllowedOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodPost, "/api/categories/add", strings.NewReader("name=Pets"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
