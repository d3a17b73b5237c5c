package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/Veraticus/gxpassess/internal/apperr"
)

// Company segments offered at registration.
const (
	SegmentPharmaceutical = "Pharmaceutical"
	SegmentBiotechnology  = "Biotechnology"
	SegmentMedicalDevices = "Medical Devices"
	SegmentCRO            = "CRO"
	SegmentCDMO           = "CDMO"
	SegmentDiagnostics    = "Diagnostics"
	SegmentOther          = "Other"
)

// Segments returns the registration segments in display order.
func Segments() []string {
	return []string{
		SegmentPharmaceutical,
		SegmentBiotechnology,
		SegmentMedicalDevices,
		SegmentCRO,
		SegmentCDMO,
		SegmentDiagnostics,
		SegmentOther,
	}
}

// IsValidSegment checks if segment is one of Segments, ignoring case.
func IsValidSegment(segment string) bool {
	for _, s := range Segments() {
		if strings.EqualFold(s, segment) {
			return true
		}
	}
	return false
}

// CanonicalSegment returns the registered spelling of segment.
func CanonicalSegment(segment string) string {
	for _, s := range Segments() {
		if strings.EqualFold(s, segment) {
			return s
		}
	}
	return segment
}

// CompanyProfile is the registered organization.
type CompanyProfile struct {
	RegisteredAt time.Time `json:"registered_at"`
	Name         string    `json:"name"`
	Segment      string    `json:"segment"`
	Country      string    `json:"country,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email"`
	Employees    int       `json:"employees,omitempty"`
}

// IsRegistered reports whether the profile has been filled in.
func (c *CompanyProfile) IsRegistered() bool {
	return c.Name != ""
}

// Validate checks the required registration fields.
func (c *CompanyProfile) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Segment) == "" {
		missing = append(missing, "segment")
	}
	if strings.TrimSpace(c.ContactEmail) == "" {
		missing = append(missing, "contact email")
	}
	if len(missing) > 0 {
		return apperr.Validation("register company", "missing required fields: %s", strings.Join(missing, ", "))
	}

	if !IsValidSegment(c.Segment) {
		return apperr.Validation("register company", "unknown segment %q (expected one of %s)",
			c.Segment, strings.Join(Segments(), ", "))
	}
	if _, err := mail.ParseAddress(c.ContactEmail); err != nil {
		return apperr.Validation("register company", "invalid contact email %q", c.ContactEmail)
	}
	if c.Employees < 0 {
		return apperr.Validation("register company", "employees must not be negative")
	}
	return nil
}
