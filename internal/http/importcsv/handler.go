package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
	"github.com/MrJamesThe3rd/tally/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxFileSize+1<<20)

	if err := r.ParseMultipartForm(importer.MaxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Message(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}

		response.Message(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())

		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.Message(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(params) == 0 {
		response.Message(w, http.StatusBadRequest, "No expenses found in file")
		return
	}

	result, err := h.expenseSvc.ImportBatch(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := api.ImportConflictResponse{
			Message:   "Some rows match expenses that are already stored",
			New:       make([]api.ExpenseRequest, 0, len(result.New)),
			Conflicts: make([]api.Conflict, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, api.FromParams(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, api.Conflict{
				Incoming: api.FromParams(c.Incoming),
				Existing: api.FromExpense(c.Existing),
			})
		}

		response.JSON(w, http.StatusConflict, resp)

		return
	}

	response.JSON(w, http.StatusCreated, toImportResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req api.ConfirmImportRequest
	if !response.Decode(w, r, &req) {
		return
	}

	params := make([]expense.CreateParams, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		params = append(params, e.Params())
	}

	es, err := h.expenseSvc.CreateBatch(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toImportResponse(es))
}

func toImportResponse(es []*expense.Expense) api.ImportResponse {
	return api.ImportResponse{
		Imported: len(es),
		Expenses: api.FromExpenses(es),
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if expense.IsValidation(err) {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Internal(w, r, "Error importing expenses", err)
}
