package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/report"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// statusFor maps error kinds to HTTP status codes.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindReportGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.WithContext(r.Context(), s.logger).Error("Request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	resp := errorResponse{Error: err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		resp.Retryable = appErr.Retryable()
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, statusFor(err), err)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":   "gxpassess",
		"routes": Routes(),
	})
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.svc.Company(r.Context())
	if !ok {
		s.fail(w, r, apperr.NotFound("get company", "no company registered"))
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutCompany(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if !s.decode(w, r, &profile) {
		return
	}
	saved, err := s.svc.Register(r.Context(), profile)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Dashboard(r.Context()))
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Catalog())
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.svc.LoadDraft(r.Context())
	if !ok {
		s.fail(w, r, apperr.NotFound("get draft", "no draft saved"))
		return
	}
	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	var draft models.Draft
	if !s.decode(w, r, &draft) {
		return
	}
	if err := s.svc.SaveDraft(r.Context(), draft); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DiscardDraft(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// completeRequest carries the answers to finalize. Without responses the
// saved draft is finalized.
type completeRequest struct {
	Responses models.ResponseSet `json:"responses"`
}

func (s *Server) handleCompleteAssessment(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if r.ContentLength != 0 {
		if !s.decode(w, r, &req) {
			return
		}
	}
	if req.Responses == nil {
		draft, ok := s.svc.LoadDraft(r.Context())
		if !ok {
			s.fail(w, r, apperr.Validation("complete assessment", "no responses given and no draft saved"))
			return
		}
		req.Responses = draft.Responses
	}

	rec, err := s.svc.Complete(r.Context(), req.Responses, r.URL.Query().Get("edit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/assessments/"+rec.ID)
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.List(r.Context()))
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetSystems(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.svc.Systems(r.Context(), rec.ID))
}

func (s *Server) handlePutSystems(w http.ResponseWriter, r *http.Request) {
	var systems []models.SystemEntry
	if !s.decode(w, r, &systems) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.svc.SaveSystems(r.Context(), id, systems); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.svc.Systems(r.Context(), id))
}

type download struct {
	contentType string
	ext         string
}

var downloads = map[string]download{
	report.FormatHTML:       {contentType: "text/html; charset=utf-8", ext: "html"},
	report.FormatPDF:        {contentType: "application/pdf", ext: "pdf"},
	report.FormatJSON:       {contentType: "application/json", ext: "json"},
	report.FormatMarkdown:   {contentType: "text/markdown; charset=utf-8", ext: "md"},
	report.FormatActionPlan: {contentType: "application/yaml", ext: "yaml"},
}

// handleReport renders a report. Without a stored assessment the demo
// source is used and labeled as such.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := r.URL.Query().Get("format")
	if format == "" {
		format = report.FormatHTML
	}
	dl, ok := downloads[format]
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("unknown report format: %s", format))
		return
	}

	id := r.URL.Query().Get("assessment")
	rec, err := s.svc.Resolve(ctx, id)
	if err != nil && !(apperr.IsNotFound(err) && (id == "" || id == "latest")) {
		s.fail(w, r, err)
		return
	}
	var systems []models.SystemEntry
	if rec != nil {
		systems = s.svc.Systems(ctx, rec.ID)
	}
	src := report.ResolveSource(s.reports.Catalog(), rec, systems, rec != nil)

	rep, err := s.reports.Build(src)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := s.reports.Render(ctx, rep, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", dl.contentType)
	w.Header().Set("X-Report-Source", string(src.Kind))
	disposition := "inline"
	if format == report.FormatPDF {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, rep.FileName(dl.ext)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
