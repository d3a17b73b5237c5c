// Package assessment orchestrates registration, draft autosave, completion
// and editing of assessments over a storage.Store.
package assessment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/scoring"
	"github.com/Veraticus/gxpassess/internal/storage"
	"github.com/Veraticus/gxpassess/internal/wizard"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Service is the single entry point used by the CLI, TUI and HTTP server.
type Service struct {
	store   *storage.Store
	catalog *catalog.Catalog
	logger  logger.Logger
	now     func() time.Time
	newID   func() string
	mu      sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator for record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// New returns a Service over store using catalog c.
func New(store *storage.Store, c *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: c,
		logger:  logger.GetGlobalLogger(),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the question catalog.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Store returns the underlying store.
func (s *Service) Store() *storage.Store { return s.store }

// Register validates and saves the company profile.
func (s *Service) Register(ctx context.Context, profile models.CompanyProfile) (models.CompanyProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.ContactEmail = strings.TrimSpace(profile.ContactEmail)
	if err := profile.Validate(); err != nil {
		return models.CompanyProfile{}, err
	}
	profile.Segment = models.CanonicalSegment(profile.Segment)

	if existing, ok := s.Company(ctx); ok && !existing.RegisteredAt.IsZero() {
		profile.RegisteredAt = existing.RegisteredAt
	}
	if profile.RegisteredAt.IsZero() {
		profile.RegisteredAt = s.now().UTC()
	}

	if err := s.store.Save(ctx, storage.KeyCompany, profile); err != nil {
		return models.CompanyProfile{}, err
	}
	s.logger.Info("Company registered", "company", profile.Name, "segment", profile.Segment)
	return profile, nil
}

// Company returns the registered profile. ok is false before registration.
func (s *Service) Company(ctx context.Context) (models.CompanyProfile, bool) {
	var profile models.CompanyProfile
	s.store.Load(ctx, storage.KeyCompany, &profile)
	return profile, profile.IsRegistered()
}

// Start returns a wizard resuming the saved draft, or a fresh one.
func (s *Service) Start(ctx context.Context) *wizard.Wizard {
	if d, ok := s.LoadDraft(ctx); ok {
		return wizard.Resume(s.catalog, d)
	}
	return wizard.New(s.catalog)
}

// SaveDraft autosaves in-progress answers.
func (s *Service) SaveDraft(ctx context.Context, d models.Draft) error {
	if err := s.validateResponses("save draft", d.Responses); err != nil {
		return err
	}
	if d.StartedAt.IsZero() {
		if prev, ok := s.LoadDraft(ctx); ok && prev.AssessmentID == d.AssessmentID {
			d.StartedAt = prev.StartedAt
		}
	}
	now := s.now().UTC()
	if d.StartedAt.IsZero() {
		d.StartedAt = now
	}
	d.SavedAt = now
	return s.store.Save(ctx, storage.KeyDraft, d)
}

// LoadDraft returns the autosaved draft, if any.
func (s *Service) LoadDraft(ctx context.Context) (*models.Draft, bool) {
	var d models.Draft
	if !s.store.Load(ctx, storage.KeyDraft, &d) || d.Responses == nil {
		return nil, false
	}
	return &d, true
}

// DiscardDraft deletes the autosaved draft.
func (s *Service) DiscardDraft(ctx context.Context) error {
	return s.store.Delete(ctx, storage.KeyDraft)
}

// Complete scores a fully answered response set and writes a new record.
// When editOf names an existing record, its systems inventory is carried
// over to the new one; the original record is left unchanged.
func (s *Service) Complete(ctx context.Context, responses models.ResponseSet, editOf string) (*models.AssessmentRecord, error) {
	const op = "complete assessment"

	company, ok := s.Company(ctx)
	if !ok {
		return nil, apperr.Validation(op, "company must be registered before completing an assessment")
	}
	if err := s.validateResponses(op, responses); err != nil {
		return nil, err
	}
	if incomplete := s.incompleteAreas(responses); len(incomplete) > 0 {
		return nil, apperr.Validation(op, "incomplete areas: %s", strings.Join(incomplete, ", "))
	}

	var original *models.AssessmentRecord
	if editOf != "" {
		rec, err := s.Get(ctx, editOf)
		if err != nil {
			return nil, err
		}
		original = rec
	}

	now := s.now().UTC()
	started := now
	if d, ok := s.LoadDraft(ctx); ok && !d.StartedAt.IsZero() {
		started = d.StartedAt
	}

	result := scoring.Score(s.catalog, responses)
	rec := &models.AssessmentRecord{
		ID:             s.newID(),
		CompanyName:    company.Name,
		CompanySegment: company.Segment,
		AssessmentDate: started,
		CompletionDate: now,
		Status:         models.RecordCompleted,
		EditOf:         editOf,
		OverallScore:   result.Overall,
		AreasCompleted: scoring.AreasCompleted(s.catalog, responses),
		TotalAreas:     len(s.catalog.Areas),
		Responses:      responses.Clone(),
		AreaScores:     result.AreaScores,
		CompanyData:    company,
	}
	log := s.logger.With("assessment_id", rec.ID)

	if err := s.store.Delay(ctx); err != nil {
		return nil, fmt.Errorf("waiting to save assessment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, storage.ResultsKey(rec.ID), rec); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, storage.KeyLatestResults, rec); err != nil {
		return nil, err
	}

	summaries := storage.LoadOr(ctx, s.store, storage.KeyAssessments, []models.AssessmentSummary{})
	summaries = append(summaries, rec.Summary())
	if err := s.store.Save(ctx, storage.KeyAssessments, summaries); err != nil {
		return nil, err
	}

	if original != nil {
		systems := s.Systems(ctx, original.ID)
		if len(systems) > 0 {
			if err := s.store.Save(ctx, storage.SystemsKey(rec.ID), systems); err != nil {
				return nil, err
			}
		}
		log.Info("Copied systems inventory from edited assessment", "edit_of", original.ID, "systems", len(systems))
	}

	if err := s.store.Delete(ctx, storage.KeyDraft); err != nil {
		log.Warn("Failed to clear draft", "error", err)
	}

	log.Info("Assessment completed", "overall_score", rec.OverallScore, "edit_of", editOf)
	return rec, nil
}

// Get returns a finalized record by id.
func (s *Service) Get(ctx context.Context, id string) (*models.AssessmentRecord, error) {
	var rec models.AssessmentRecord
	if id == "" || !s.store.Load(ctx, storage.ResultsKey(id), &rec) {
		return nil, apperr.NotFound("get assessment", "assessment %q not found", id)
	}
	return &rec, nil
}

// Latest returns the most recently completed record.
func (s *Service) Latest(ctx context.Context) (*models.AssessmentRecord, bool) {
	var rec models.AssessmentRecord
	if !s.store.Load(ctx, storage.KeyLatestResults, &rec) || rec.ID == "" {
		return nil, false
	}
	return &rec, true
}

// Resolve returns the record for id; "" and "latest" select the latest one.
func (s *Service) Resolve(ctx context.Context, id string) (*models.AssessmentRecord, error) {
	if id == "" || id == "latest" {
		rec, ok := s.Latest(ctx)
		if !ok {
			return nil, apperr.NotFound("get assessment", "no completed assessment")
		}
		return rec, nil
	}
	return s.Get(ctx, id)
}

// List returns every assessment summary, newest first.
func (s *Service) List(ctx context.Context) []models.AssessmentSummary {
	summaries := storage.LoadOr(ctx, s.store, storage.KeyAssessments, []models.AssessmentSummary{})
	out := make([]models.AssessmentSummary, len(summaries))
	for i, sum := range summaries {
		out[len(summaries)-1-i] = sum
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletionDate.After(out[j].CompletionDate)
	})
	return out
}

// ForEdit returns a wizard preloaded with the answers of record id.
func (s *Service) ForEdit(ctx context.Context, id string) (*wizard.Wizard, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return wizard.ForEdit(s.catalog, rec), nil
}

// Systems returns the systems inventory of an assessment.
func (s *Service) Systems(ctx context.Context, assessmentID string) []models.SystemEntry {
	return storage.LoadOr(ctx, s.store, storage.SystemsKey(assessmentID), []models.SystemEntry{})
}

// SaveSystems replaces the systems inventory of an existing assessment.
func (s *Service) SaveSystems(ctx context.Context, assessmentID string, systems []models.SystemEntry) error {
	if _, err := s.Get(ctx, assessmentID); err != nil {
		return err
	}
	if err := models.ValidateSystems(systems); err != nil {
		return err
	}
	if systems == nil {
		systems = []models.SystemEntry{}
	}
	return s.store.Save(ctx, storage.SystemsKey(assessmentID), systems)
}

// AddSystem appends one entry to the inventory of an assessment.
func (s *Service) AddSystem(ctx context.Context, assessmentID string, entry models.SystemEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SaveSystems(ctx, assessmentID, append(s.Systems(ctx, assessmentID), entry))
}

// RemoveSystem deletes the named entry, matched case-insensitively, from the
// inventory of an assessment.
func (s *Service) RemoveSystem(ctx context.Context, assessmentID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	systems := s.Systems(ctx, assessmentID)
	kept := systems[:0]
	for _, sys := range systems {
		if !strings.EqualFold(strings.TrimSpace(sys.Name), strings.TrimSpace(name)) {
			kept = append(kept, sys)
		}
	}
	if len(kept) == len(systems) {
		return apperr.NotFound("remove system", "system %q not in inventory of %s", name, assessmentID)
	}
	return s.SaveSystems(ctx, assessmentID, kept)
}

// CustomSystems returns the company-wide custom system templates.
func (s *Service) CustomSystems(ctx context.Context) []models.SystemEntry {
	return storage.LoadOr(ctx, s.store, storage.KeyCustomSystems, []models.SystemEntry{})
}

// AddCustomSystem appends a custom system template.
func (s *Service) AddCustomSystem(ctx context.Context, entry models.SystemEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	systems := append(s.CustomSystems(ctx), entry)
	if err := models.ValidateSystems(systems); err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyCustomSystems, systems)
}

// Dashboard summarizes the current state for the landing views.
type Dashboard struct {
	Company         *models.CompanyProfile    `json:"company,omitempty"`
	Latest          *models.AssessmentSummary `json:"latest,omitempty"`
	Assessments     int                       `json:"assessments"`
	DraftCompletion int                       `json:"draft_completion"`
	HasDraft        bool                      `json:"has_draft"`
}

// Dashboard returns the profile, latest result and draft progress.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	var d Dashboard
	if profile, ok := s.Company(ctx); ok {
		d.Company = &profile
	}
	if rec, ok := s.Latest(ctx); ok {
		sum := rec.Summary()
		d.Latest = &sum
	}
	d.Assessments = len(s.List(ctx))
	if draft, ok := s.LoadDraft(ctx); ok {
		d.HasDraft = true
		d.DraftCompletion = scoring.OverallCompletion(s.catalog, draft.Responses)
	}
	return d
}

func (s *Service) validateResponses(op string, responses models.ResponseSet) error {
	for areaID, answers := range responses {
		area, ok := s.catalog.Area(areaID)
		if !ok {
			return apperr.Validation(op, "unknown area %q", areaID)
		}
		for questionID, v := range answers {
			if !area.HasQuestion(questionID) {
				return apperr.Validation(op, "question %q is not part of area %q", questionID, areaID)
			}
			if !v.Valid() {
				return apperr.Validation(op, "response %d to %q is outside %d-%d",
					int(v), questionID, int(models.MinResponse), int(models.MaxResponse))
			}
		}
	}
	return nil
}

func (s *Service) incompleteAreas(responses models.ResponseSet) []string {
	var names []string
	for _, area := range s.catalog.Areas {
		if !scoring.IsAreaComplete(area, responses.Area(area.ID)) {
			names = append(names, area.Name)
		}
	}
	return names
}
