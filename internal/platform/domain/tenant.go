package domain

import (
	"encoding/json"
	"time"
)

// TenantStatus is the lifecycle state of a tenant. Only active and trial
// tenants are served; the other states keep the record but refuse traffic.
type TenantStatus string

const (
	StatusActive    TenantStatus = "active"
	StatusTrial     TenantStatus = "trial"
	StatusInactive  TenantStatus = "inactive"
	StatusSuspended TenantStatus = "suspended"
)

// Valid reports whether s is one of the known lifecycle states.
func (s TenantStatus) Valid() bool {
	switch s {
	case StatusActive, StatusTrial, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// CanServe reports whether requests for this tenant should be let through.
func (s TenantStatus) CanServe() bool {
	return s == StatusActive || s == StatusTrial
}

type PlanTier string

const (
	PlanBasic        PlanTier = "basic"
	PlanProfessional PlanTier = "professional"
	PlanEnterprise   PlanTier = "enterprise"
)

func (p PlanTier) Valid() bool {
	switch p {
	case PlanBasic, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

type Tenant struct {
	ID           string
	Name         string
	Subdomain    string
	CustomDomain string // optional, empty when the tenant only uses the shared domain
	Status       TenantStatus
	Plan         PlanTier

	// EncryptionKey is the tenant's data-encryption secret, sealed under the
	// master key and base64 encoded. Assigned once at creation, never rotated
	// through this field.
	EncryptionKey string

	Settings     json.RawMessage
	Integrations json.RawMessage
	Contact      json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmptyJSON is the stored default for the tenant blob columns.
var EmptyJSON = json.RawMessage(`{}`)
