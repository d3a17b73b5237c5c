package ui

import (
	"context"

	"github.com/Veraticus/gxpassess/internal/models"
)

// Backend is the part of the assessment service the terminal app uses.
type Backend interface {
	Company(ctx context.Context) (models.CompanyProfile, bool)
	Register(ctx context.Context, profile models.CompanyProfile) (models.CompanyProfile, error)
	SaveDraft(ctx context.Context, d models.Draft) error
	Complete(ctx context.Context, responses models.ResponseSet, editOf string) (*models.AssessmentRecord, error)
}
