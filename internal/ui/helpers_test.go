package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/scoring"
)

type fakeBackend struct {
	registerErr error
	completeErr error
	saveErr     error
	catalog     *catalog.Catalog
	company     models.CompanyProfile
	drafts      []models.Draft
	completed   []models.ResponseSet
	mu          sync.Mutex
	registered  bool
}

func newFakeBackend(c *catalog.Catalog) *fakeBackend {
	return &fakeBackend{catalog: c}
}

func (f *fakeBackend) Company(context.Context) (models.CompanyProfile, bool) {
	return f.company, f.registered
}

func (f *fakeBackend) Register(_ context.Context, p models.CompanyProfile) (models.CompanyProfile, error) {
	if f.registerErr != nil {
		return models.CompanyProfile{}, f.registerErr
	}
	if err := p.Validate(); err != nil {
		return models.CompanyProfile{}, err
	}
	f.company, f.registered = p, true
	return p, nil
}

func (f *fakeBackend) SaveDraft(_ context.Context, d models.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, d)
	return f.saveErr
}

func (f *fakeBackend) Complete(_ context.Context, r models.ResponseSet, editOf string) (*models.AssessmentRecord, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	f.completed = append(f.completed, r)
	res := scoring.Score(f.catalog, r)
	return &models.AssessmentRecord{
		ID:           "rec-1",
		EditOf:       editOf,
		CompanyName:  f.company.Name,
		Responses:    r,
		AreaScores:   res.AreaScores,
		OverallScore: res.Overall,
	}, nil
}

func (f *fakeBackend) lastDraft() models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drafts[len(f.drafts)-1]
}

var errBoom = errors.New("boom")

// testCatalog has two areas with two questions each.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Areas: []models.AssessmentArea{
		{ID: "a", Name: "Area A", Weight: 50, Questions: []models.Question{{ID: "a1", Text: "First A"}, {ID: "a2", Text: "Second A"}}},
		{ID: "b", Name: "Area B", Weight: 50, Questions: []models.Question{{ID: "b1", Text: "First B"}, {ID: "b2", Text: "Second B"}}},
	}}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message, nil for a nil command.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
