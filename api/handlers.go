/*
handlers.go - HTTP API handlers for the HR console core

PURPOSE:
  Exposes the roster store, the analytics engine, the CSV pipeline and the
  assistant delegate via REST. Handles HTTP request/response and JSON
  serialization, delegating domain work to the core packages.

ENDPOINTS:
  Collaborators:
    GET    /api/collaborators          List
    POST   /api/collaborators          Add (with hire payload)
    PUT    /api/collaborators/{id}     Full replacement
    POST   /api/collaborators/delete   Bulk delete (cascades to records)
    POST   /api/collaborators/import   CSV body -> partial-success batch
    GET    /api/collaborators/export   CSV download

  Records:
    GET    /api/records                List (type/collaboratorId filters)
    POST   /api/records                Add (EGRESO flips status)
    PUT    /api/records/{id}           Full replacement (same type only)
    POST   /api/records/delete         Bulk delete
    POST   /api/records/import         CSV body -> partial-success batch
    GET    /api/records/export         CSV download

  Analytics:
    GET    /api/dashboard              KPIs + monthly activity + sanctions
    GET    /api/analysis               Impact analysis over a filter window

  Assistant:
    POST   /api/assistant              Question -> answer (never errors out)

ERROR HANDLING:
  - 400: invalid body, bad dates, malformed CSV the tokenizer rejects
  - 404: unknown collaborator/record id
  - 409: record type change on edit
  - 500: internal failures
  Import validation failures are NOT HTTP errors: the batch applies
  partially and the response carries the per-row message list.

SEE ALSO:
  - dto.go: request/response data structures
  - server.go: router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cortsfranco/CicedoHR/analytics"
	"github.com/cortsfranco/CicedoHR/assistant"
	"github.com/cortsfranco/CicedoHR/csvio"
	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/shopspring/decimal"
)

// QueryDelegate answers a free-text question over a dataset snapshot.
type QueryDelegate interface {
	Ask(ctx context.Context, question string, snap roster.Snapshot) (string, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *roster.Store
	Delegate QueryDelegate // nil disables the assistant endpoint
}

// NewHandler creates a handler around the given store and delegate.
func NewHandler(store *roster.Store, delegate QueryDelegate) *Handler {
	return &Handler{Store: store, Delegate: delegate}
}

// =============================================================================
// COLLABORATOR HANDLERS
// =============================================================================

// ListCollaborators returns the collaborator collection.
func (h *Handler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Collaborators())
}

// CreateCollaborator inserts a collaborator together with its hire record.
func (h *Handler) CreateCollaborator(w http.ResponseWriter, r *http.Request) {
	var req CreateCollaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hireDate, err := roster.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire date (use YYYY-MM-DD)", err)
		return
	}
	contractType := roster.ContractType(req.ContractType)
	if !contractType.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid contract type", nil)
		return
	}

	collaborator, hireRecord := h.Store.AddCollaborator(r.Context(), roster.Collaborator{
		Name:         req.Name,
		DNI:          req.DNI,
		Legajo:       req.Legajo,
		CUIL:         req.CUIL,
		Position:     req.Position,
		UG:           req.UG,
		HireDate:     hireDate,
		ContractType: contractType,
		Category:     req.Category,
		CCT:          req.CCT,
		Service:      req.Service,
		Turn:         req.Turn,
		Observations: req.Observations,
	}, roster.HireIntake{
		Salary:       req.Hire.Salary,
		Cost:         req.Hire.Cost,
		Observations: req.Hire.Observations,
	})

	writeJSON(w, http.StatusCreated, CreateCollaboratorResponse{
		Collaborator: collaborator,
		HireRecord:   hireRecord,
	})
}

// UpdateCollaborator replaces a collaborator by id.
func (h *Handler) UpdateCollaborator(w http.ResponseWriter, r *http.Request) {
	var c roster.Collaborator
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c.ID = chi.URLParam(r, "id")

	if err := h.Store.UpdateCollaborator(r.Context(), c); err != nil {
		if errors.Is(err, roster.ErrCollaboratorNotFound) {
			writeError(w, http.StatusNotFound, "Collaborator not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update collaborator", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCollaborators removes collaborators by id, cascading to their
// records.
func (h *Handler) DeleteCollaborators(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	collaboratorsRemoved, recordsRemoved := h.Store.DeleteCollaborators(r.Context(), req.IDs)
	writeJSON(w, http.StatusOK, DeleteResponse{
		CollaboratorsRemoved: collaboratorsRemoved,
		RecordsRemoved:       recordsRemoved,
	})
}

// ImportCollaborators validates a CSV body and applies the accepted rows.
func (h *Handler) ImportCollaborators(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.readCSV(w, r)
	if !ok {
		return
	}

	accepted, errs := csvio.ValidateCollaborators(rows, h.Store.Collaborators())
	imported := h.Store.ImportCollaborators(r.Context(), accepted)
	writeJSON(w, http.StatusOK, ImportResponse{Imported: imported, Errors: messageList(errs)})
}

// ExportCollaborators streams the collection as CSV.
func (h *Handler) ExportCollaborators(w http.ResponseWriter, r *http.Request) {
	writeCSV(w, "colaboradores.csv", csvio.ExportCollaborators(h.Store.Collaborators()))
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns the record collection, optionally filtered by type
// and collaborator id.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.Store.Records()

	typeFilter := r.URL.Query().Get("type")
	collaboratorFilter := r.URL.Query().Get("collaboratorId")
	if typeFilter == "" && collaboratorFilter == "" {
		writeJSON(w, http.StatusOK, records)
		return
	}

	filtered := make([]roster.HRRecord, 0, len(records))
	for _, rec := range records {
		if typeFilter != "" && string(rec.Type) != typeFilter {
			continue
		}
		if collaboratorFilter != "" && rec.CollaboratorID != collaboratorFilter {
			continue
		}
		filtered = append(filtered, rec)
	}
	writeJSON(w, http.StatusOK, filtered)
}

// CreateRecord appends a record; a termination flips its collaborator to
// Inactivo as part of the same operation.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := roster.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	details, err := roster.ParseDetails(req.Type, req.Details)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid details payload", err)
		return
	}

	rec, err := h.Store.AddRecord(r.Context(), date, req.CollaboratorID, details, req.Cost, req.Observations)
	if err != nil {
		if errors.Is(err, roster.ErrCollaboratorNotFound) {
			writeError(w, http.StatusNotFound, "Collaborator not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create record", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateRecord replaces a record by id. Changing the type is rejected.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var rec roster.HRRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rec.ID = chi.URLParam(r, "id")

	if err := h.Store.UpdateRecord(r.Context(), rec); err != nil {
		switch {
		case errors.Is(err, roster.ErrRecordNotFound):
			writeError(w, http.StatusNotFound, "Record not found", err)
		case errors.Is(err, roster.ErrRecordTypeChanged):
			writeError(w, http.StatusConflict, "Record type cannot be changed", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update record", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecords removes records by id. Collaborator statuses are never
// reverted.
func (h *Handler) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	removed := h.Store.DeleteRecords(r.Context(), req.IDs)
	writeJSON(w, http.StatusOK, DeleteResponse{RecordsRemoved: removed})
}

// ImportRecords validates a CSV body and applies the accepted rows,
// flipping collaborators referenced by accepted termination rows.
func (h *Handler) ImportRecords(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.readCSV(w, r)
	if !ok {
		return
	}

	accepted, errs := csvio.ValidateRecords(rows, h.Store.Collaborators())
	imported := h.Store.ImportRecords(r.Context(), accepted)
	writeJSON(w, http.StatusOK, ImportResponse{Imported: imported, Errors: messageList(errs)})
}

// ExportRecords streams the collection as CSV.
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	writeCSV(w, "registros.csv", csvio.ExportRecords(h.Store.Records()))
}

// =============================================================================
// ANALYTICS HANDLERS
// =============================================================================

// Dashboard returns the headline KPIs and the dashboard series over the
// full collections.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	writeJSON(w, http.StatusOK, DashboardResponse{
		KPIs:                 analytics.Headline(snap.Collaborators, snap.Records),
		MonthlyActivity:      analytics.MonthlyActivity(snap.Records),
		SanctionDistribution: analytics.SanctionDistribution(snap.Records),
	})
}

// Analysis returns the impact-analysis aggregates for the filter described
// by the query parameters. The window defaults to the span of the record
// collection.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	q := r.URL.Query()

	filter, err := buildFilter(snap, q.Get("start"), q.Get("end"), q.Get("ug"), q.Get("contract_type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	manualDaily := decimal.Zero
	if raw := q.Get("daily_salary"); raw != "" {
		manualDaily, err = decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid daily_salary", err)
			return
		}
	}

	sortKey := analytics.SortByCost
	if q.Get("sort_key") == string(analytics.SortByCount) {
		sortKey = analytics.SortByCount
	}
	descending := q.Get("sort_dir") != "asc"

	filtered := analytics.FilterRecords(snap, filter)
	breakdown := analytics.SortBreakdown(analytics.TerminationBreakdown(filtered), sortKey, descending)

	writeJSON(w, http.StatusOK, AnalysisResponse{
		Start:                filter.Start.Format("2006-01-02"),
		End:                  filter.End.Format("2006-01-02"),
		TurnoverRate:         analytics.TurnoverRate(snap, filtered, filter),
		TurnoverCost:         analytics.TurnoverCost(filtered),
		AbsenteeismCost:      analytics.AbsenteeismCost(snap, filtered, manualDaily),
		TerminationsByReason: breakdown,
		Correlation:          analytics.CorrelationSeries(filtered),
		SanctionCostByMonth:  analytics.SanctionCostByMonth(filtered),
	})
}

// buildFilter resolves the analysis window: explicit bounds win, otherwise
// the span of the record collection, otherwise the trailing year.
func buildFilter(snap roster.Snapshot, start, end, ug, contractType string) (analytics.Filter, error) {
	f := analytics.Filter{UG: ug, ContractType: roster.ContractType(contractType)}

	if len(snap.Records) > 0 {
		min, max := snap.Records[0].Date, snap.Records[0].Date
		for _, rec := range snap.Records[1:] {
			if rec.Date.Time.Before(min.Time) {
				min = rec.Date
			}
			if rec.Date.Time.After(max.Time) {
				max = rec.Date
			}
		}
		f.Start, f.End = min.Time, max.Time
	} else {
		today := roster.Today()
		f.Start, f.End = today.AddDate(-1, 0, 0), today.Time
	}

	if start != "" {
		d, err := roster.ParseDate(start)
		if err != nil {
			return analytics.Filter{}, err
		}
		f.Start = d.Time
	}
	if end != "" {
		d, err := roster.ParseDate(end)
		if err != nil {
			return analytics.Filter{}, err
		}
		f.End = d.Time
	}
	return f, nil
}

// =============================================================================
// ASSISTANT HANDLER
// =============================================================================

// Ask forwards the question to the query delegate. Delegate failures are
// logged and converted to the fixed apology answer; this endpoint never
// propagates them.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "Question must not be empty", nil)
		return
	}
	if h.Delegate == nil {
		writeJSON(w, http.StatusOK, AskResponse{Answer: assistant.Apology})
		return
	}

	answer, err := h.Delegate.Ask(r.Context(), req.Question, h.Store.Snapshot())
	if err != nil {
		log.Printf("api: assistant query failed: %v", err)
		answer = assistant.Apology
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// =============================================================================
// HELPERS
// =============================================================================

// readCSV reads and tokenizes the request body. A tokenizer failure is a
// caller-level error: 400 with zero extracted rows.
func (h *Handler) readCSV(w http.ResponseWriter, r *http.Request) ([]csvio.Row, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return nil, false
	}
	rows, err := csvio.Parse(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Malformed CSV", err)
		return nil, false
	}
	return rows, true
}

// messageList normalizes a nil error slice to an empty JSON array.
func messageList(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeCSV(w http.ResponseWriter, filename, content string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, content)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
