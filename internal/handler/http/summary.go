package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/sitecrew/workforce-backend-go/internal/handler/http/response"
	"github.com/sitecrew/workforce-backend-go/internal/service/export"
)

type SummaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	BulkGenerate(w http.ResponseWriter, r *http.Request)
	Regenerate(w http.ResponseWriter, r *http.Request)
	StaffSign(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
	renderers      map[string]export.Renderer
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
		renderers: map[string]export.Renderer{
			"pdf":   export.NewPDFRenderer(),
			"excel": export.NewExcelRenderer(),
		},
	}
}

func (h *summaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req summary.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.summaryService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Summary generated", result)
}

func (h *summaryHandlerImpl) BulkGenerate(w http.ResponseWriter, r *http.Request) {
	var req summary.BulkGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.summaryService.BulkGenerate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk generation completed", result)
}

func (h *summaryHandlerImpl) Regenerate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Summary ID is required", nil)
		return
	}

	result, err := h.summaryService.Regenerate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary regenerated", result)
}

func (h *summaryHandlerImpl) StaffSign(w http.ResponseWriter, r *http.Request) {
	var req summary.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SummaryID = chi.URLParam(r, "id")

	result, err := h.summaryService.StaffSign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary signed", result)
}

func (h *summaryHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req summary.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SummaryID = chi.URLParam(r, "id")

	result, err := h.summaryService.AdminDecide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

func (h *summaryHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req summary.BulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.summaryService.BulkApprove(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk approval completed", result)
}

func (h *summaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Summary ID is required", nil)
		return
	}

	result, err := h.summaryService.GetSummary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *summaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := summary.ListFilter{
		EmployeeID: query.Get("employee_id"),
		Status:     query.Get("status"),
	}
	filter.Month, _ = strconv.Atoi(query.Get("month"))
	filter.Year, _ = strconv.Atoi(query.Get("year"))
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.summaryService.ListSummaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalItems + int64(result.Limit) - 1) / int64(result.Limit))
	response.SuccessWithMeta(w, result.Summaries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalItems,
		TotalPages: totalPages,
	})
}

func (h *summaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Summary ID is required", nil)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	renderer, ok := h.renderers[format]
	if !ok {
		response.BadRequest(w, "Unsupported export format", map[string]string{"format": "must be 'pdf' or 'excel'"})
		return
	}

	m, err := h.summaryService.GetSummaryRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := renderer.Render(m)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(m, renderer)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
