package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/assessment"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/report"
	"github.com/Veraticus/gxpassess/internal/storage"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

type stubPDF struct{ err error }

func (s stubPDF) Render(context.Context, []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7"), nil
}

type testEnv struct {
	srv *Server
	svc *assessment.Service
	log *logger.MockLogger
}

func newEnv(t *testing.T, pdf report.PDFRenderer) *testEnv {
	t.Helper()
	log := logger.NewMockLogger()
	c := catalog.Default()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ids := 0

	store := storage.NewStore(storage.NewMemoryKV(), storage.WithLogger(log))
	svc := assessment.New(store, c,
		assessment.WithLogger(log),
		assessment.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		assessment.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)
	gen, err := report.NewGenerator(c, report.WithLogger(log), report.WithPDFRenderer(pdf))
	require.NoError(t, err)

	return &testEnv{srv: New(svc, gen, WithLogger(log)), svc: svc, log: log}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func fullAnswers(c *catalog.Catalog, v models.ResponseValue) models.ResponseSet {
	r := models.NewResponseSet()
	for _, a := range c.Areas {
		for _, q := range a.Questions {
			r.Set(a.ID, q.ID, v)
		}
	}
	return r
}

const companyJSON = `{"name":"Acme Pharma","segment":"Biotechnology","contact_email":"qa@acme.example"}`

func TestIndex(t *testing.T) {
	e := newEnv(t, stubPDF{})
	rec := e.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[struct {
		Routes []Route `json:"routes"`
	}](t, rec)
	assert.Equal(t, Routes(), body.Routes)
	assert.True(t, e.log.HasMessage("INFO", "access"))
}

func TestCompany(t *testing.T) {
	e := newEnv(t, stubPDF{})

	rec := e.do(t, http.MethodGet, "/api/company", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "no company registered")

	rec = e.do(t, http.MethodPut, "/api/company", companyJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/company", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Pharma", decodeBody[models.CompanyProfile](t, rec).Name)

	rec = e.do(t, http.MethodPut, "/api/company", `{"name":"Acme"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, decodeBody[errorResponse](t, rec).Retryable)

	rec = e.do(t, http.MethodPut, "/api/company", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/company", `{"nickname":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogAndDashboard(t *testing.T) {
	e := newEnv(t, stubPDF{})

	rec := e.do(t, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeBody[catalog.Catalog](t, rec)
	assert.Len(t, c.Areas, 12)

	rec = e.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	d := decodeBody[assessment.Dashboard](t, rec)
	assert.Nil(t, d.Company)
	assert.False(t, d.HasDraft)
}

func TestDraftLifecycle(t *testing.T) {
	e := newEnv(t, stubPDF{})

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/draft", "").Code)

	rec := e.do(t, http.MethodPut, "/api/draft", `{"responses":{"quality":{"qms_1":4}},"current_area":0}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/api/draft", "")
	require.Equal(t, http.StatusOK, rec.Code)
	d := decodeBody[models.Draft](t, rec)
	v, ok := d.Responses.Get("quality", "qms_1")
	require.True(t, ok)
	assert.Equal(t, models.ResponseValue(4), v)

	rec = e.do(t, http.MethodPut, "/api/draft", `{"responses":{"quality":{"qms_1":9}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/api/draft", "").Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/draft", "").Code)
}

func TestCompleteAndBrowseAssessments(t *testing.T) {
	e := newEnv(t, stubPDF{})
	ctx := context.Background()
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/company", companyJSON).Code)

	body, err := json.Marshal(map[string]any{"responses": fullAnswers(e.svc.Catalog(), 4)})
	require.NoError(t, err)
	rec := e.do(t, http.MethodPost, "/api/assessments", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/assessments/id-1", rec.Header().Get("Location"))
	created := decodeBody[models.AssessmentRecord](t, rec)
	assert.Equal(t, 80, created.OverallScore)

	// Finalize the saved draft as an edit of the first record.
	draft := models.Draft{Responses: fullAnswers(e.svc.Catalog(), 2)}
	require.NoError(t, e.svc.SaveDraft(ctx, draft))
	rec = e.do(t, http.MethodPost, "/api/assessments?edit=id-1", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	edited := decodeBody[models.AssessmentRecord](t, rec)
	assert.Equal(t, "id-1", edited.EditOf)
	assert.Equal(t, 40, edited.OverallScore)

	rec = e.do(t, http.MethodGet, "/api/assessments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]models.AssessmentSummary](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "id-2", list[0].ID)

	rec = e.do(t, http.MethodGet, "/api/assessments/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id-2", decodeBody[models.AssessmentRecord](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/assessments/missing", "").Code)
}

func TestCompleteRejectsIncomplete(t *testing.T) {
	e := newEnv(t, stubPDF{})
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/api/company", companyJSON).Code)

	rec := e.do(t, http.MethodPost, "/api/assessments", `{"responses":{"quality":{"qms_1":3}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "incomplete areas")

	rec = e.do(t, http.MethodPost, "/api/assessments", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "no draft saved")
}

func TestSystems(t *testing.T) {
	e := newEnv(t, stubPDF{})
	ctx := context.Background()
	_, err := e.svc.Register(ctx, models.CompanyProfile{Name: "Acme", Segment: "CRO", ContactEmail: "qa@acme.example"})
	require.NoError(t, err)
	rec, err := e.svc.Complete(ctx, fullAnswers(e.svc.Catalog(), 3), "")
	require.NoError(t, err)

	path := "/api/assessments/" + rec.ID + "/systems"
	resp := e.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[[]models.SystemEntry](t, resp))

	resp = e.do(t, http.MethodPut, path, `[{"name":"TrackWise","type":"QMS","monthly_cost":100,"support_cost":0,"infrastructure_cost":0,"users":5,"gxp_critical":true}]`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	systems := decodeBody[[]models.SystemEntry](t, resp)
	require.Len(t, systems, 1)
	assert.Equal(t, "TrackWise", systems[0].Name)

	resp = e.do(t, http.MethodPut, path, `[{"name":"","type":"QMS"}]`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = e.do(t, http.MethodPut, "/api/assessments/missing/systems", `[]`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReports(t *testing.T) {
	e := newEnv(t, stubPDF{})

	t.Run("demo fallback when nothing is stored", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/reports", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "demo", rec.Header().Get("X-Report-Source"))
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), report.DemoLabel)
	})

	t.Run("unknown assessment", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/reports?assessment=nope", "").Code)
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/reports?format=docx", "").Code)
	})

	ctx := context.Background()
	_, err := e.svc.Register(ctx, models.CompanyProfile{Name: "Acme Pharma", Segment: "CRO", ContactEmail: "qa@acme.example"})
	require.NoError(t, err)
	stored, err := e.svc.Complete(ctx, fullAnswers(e.svc.Catalog(), 4), "")
	require.NoError(t, err)

	t.Run("real pdf", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/reports?assessment="+stored.ID+"&format=pdf", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "real", rec.Header().Get("X-Report-Source"))
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="GxP_Assessment_Report_Acme_Pharma_2024-06-01.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.7", rec.Body.String())
	})

	t.Run("latest json", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/reports?format=json", "")
		require.Equal(t, http.StatusOK, rec.Code)
		doc := decodeBody[map[string]any](t, rec)
		assert.Equal(t, false, doc["demo"])
		assert.Equal(t, stored.ID, doc["assessment_id"])
	})
}

func TestReportRenderFailureIsBadGateway(t *testing.T) {
	e := newEnv(t, stubPDF{err: errors.New("chrome crashed")})
	rec := e.do(t, http.MethodGet, "/reports?format=pdf", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, decodeBody[errorResponse](t, rec).Retryable)
	assert.True(t, e.log.HasMessage("ERROR", "Request failed"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Validation("op", "bad"), http.StatusUnprocessableEntity},
		{apperr.NotFound("op", "missing"), http.StatusNotFound},
		{apperr.StorageWrite("k", errors.New("disk full")), http.StatusInternalServerError},
		{apperr.ReportGeneration("op", errors.New("x")), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("op", "x")), http.StatusNotFound},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	e := newEnv(t, stubPDF{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- e.srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
