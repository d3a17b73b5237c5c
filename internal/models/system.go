package models

import (
	"strings"

	"github.com/Veraticus/gxpassess/internal/apperr"
)

// System types in the order the inventory is presented.
const (
	SystemTypeQMS   = "QMS"
	SystemTypeLIMS  = "LIMS"
	SystemTypeERP   = "ERP"
	SystemTypeMES   = "MES"
	SystemTypeEDMS  = "EDMS"
	SystemTypeCTMS  = "CTMS"
	SystemTypeLMS   = "LMS"
	SystemTypeOther = "Other"
)

// SystemTypes returns the canonical system types.
func SystemTypes() []string {
	return []string{
		SystemTypeQMS,
		SystemTypeLIMS,
		SystemTypeERP,
		SystemTypeMES,
		SystemTypeEDMS,
		SystemTypeCTMS,
		SystemTypeLMS,
		SystemTypeOther,
	}
}

// Deployment models.
const (
	DeploymentCloud  = "cloud"
	DeploymentOnPrem = "on-premise"
	DeploymentHybrid = "hybrid"
)

// SystemEntry is a manually entered system of the inventory.
type SystemEntry struct {
	Name               string   `json:"name" yaml:"name"`
	Type               string   `json:"type" yaml:"type"`
	Vendor             string   `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Deployment         string   `json:"deployment,omitempty" yaml:"deployment,omitempty"`
	Integrations       []string `json:"integrations,omitempty" yaml:"integrations,omitempty"`
	MonthlyCost        float64  `json:"monthly_cost" yaml:"monthly_cost"`
	SupportCost        float64  `json:"support_cost" yaml:"support_cost"`
	InfrastructureCost float64  `json:"infrastructure_cost" yaml:"infrastructure_cost"`
	Users              int      `json:"users" yaml:"users"`
	GxPCritical        bool     `json:"gxp_critical" yaml:"gxp_critical"`
}

// AnnualCost is twelve months of license cost plus the yearly support and
// infrastructure costs.
func (s SystemEntry) AnnualCost() float64 {
	return s.MonthlyCost*12 + s.SupportCost + s.InfrastructureCost
}

// Validate checks required fields and cost ranges.
func (s SystemEntry) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return apperr.Validation("save system", "system name is required")
	}
	if strings.TrimSpace(s.Type) == "" {
		return apperr.Validation("save system", "system %q: type is required", s.Name)
	}
	if s.MonthlyCost < 0 || s.SupportCost < 0 || s.InfrastructureCost < 0 {
		return apperr.Validation("save system", "system %q: costs must not be negative", s.Name)
	}
	if s.Users < 0 {
		return apperr.Validation("save system", "system %q: users must not be negative", s.Name)
	}
	return nil
}

// ValidateSystems validates every entry and rejects duplicate names.
func ValidateSystems(systems []SystemEntry) error {
	seen := make(map[string]bool, len(systems))
	for _, s := range systems {
		if err := s.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if seen[key] {
			return apperr.Validation("save system", "duplicate system name %q", s.Name)
		}
		seen[key] = true
	}
	return nil
}
