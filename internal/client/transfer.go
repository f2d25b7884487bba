package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

// ImportResult is the outcome of an upload. Exactly one field is set:
// Imported when the rows were stored, Conflicts when some of them matched
// stored expenses and nothing was written.
type ImportResult struct {
	Imported  *api.ImportResponse
	Conflicts *api.ImportConflictResponse
}

// Import uploads a CSV file to the store.
func (c *Client) Import(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(fw, file); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/expenses/import", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var out api.ImportResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %w", ErrTransport, err)
		}

		return &ImportResult{Imported: &out}, nil
	case http.StatusConflict:
		var out api.ImportConflictResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %w", ErrTransport, err)
		}

		return &ImportResult{Conflicts: &out}, nil
	default:
		return nil, statusError(resp)
	}
}

// ConfirmImport stores reviewed rows without duplicate detection.
func (c *Client) ConfirmImport(ctx context.Context, rows []api.ExpenseRequest) (*api.ImportResponse, error) {
	if len(rows) == 0 {
		return &api.ImportResponse{Expenses: []api.Expense{}}, nil
	}

	var out api.ImportResponse
	if err := c.do(ctx, http.MethodPost, "/expenses/import/confirm", nil, api.ConfirmImportRequest{Expenses: rows}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Export streams the CSV export of [from, to] into w and returns the file
// name the store suggested.
func (c *Client) Export(ctx context.Context, w io.Writer, from, to *calendar.Date) (string, error) {
	query := url.Values{}
	if from != nil {
		query.Set("from", from.Key())
	}

	if to != nil {
		query.Set("to", to.Key())
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/expenses/export", query, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("Accept", "text/csv")

	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("%w: reading export: %w", ErrTransport, err)
	}

	name := "expenses.csv"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = filepath.Base(params["filename"])
	}

	return name, nil
}

// Suggest asks for the category of a description. It returns "" when no
// rule matches.
func (c *Client) Suggest(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", nil
	}

	query := url.Values{}
	query.Set("description", description)

	var out api.SuggestResponse
	if err := c.do(ctx, http.MethodGet, "/matching/suggest", query, nil, &out); err != nil {
		return "", err
	}

	return out.Category, nil
}

// LearnRule stores a description pattern for a category. A pattern that is
// already known is not an error.
func (c *Client) LearnRule(ctx context.Context, pattern, category string) error {
	err := c.do(ctx, http.MethodPost, "/matching", nil, api.RuleRequest{Pattern: pattern, Category: category}, nil)
	if IsStatus(err, http.StatusConflict) {
		return nil
	}

	return err
}

func (c *Client) Rules(ctx context.Context) ([]api.Rule, error) {
	var out api.RulesResponse
	if err := c.do(ctx, http.MethodGet, "/matching", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Rules, nil
}

