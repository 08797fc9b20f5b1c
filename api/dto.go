/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication. Collections travel as the roster
  entities themselves (their JSON tags ARE the console's wire format);
  DTOs exist for requests and for composite analytics responses.

NAMING CONVENTION:
  - *Request: request body types from clients
  - *Response: composite response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

import (
	"encoding/json"

	"github.com/cortsfranco/CicedoHR/analytics"
	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateCollaboratorRequest carries a new collaborator plus the hire-record
// payload that must accompany it.
type CreateCollaboratorRequest struct {
	Name         string `json:"name"`
	DNI          string `json:"dni"`
	Legajo       string `json:"legajo"`
	CUIL         string `json:"cuil"`
	Position     string `json:"position"`
	UG           string `json:"ug"`
	HireDate     string `json:"hireDate"`
	ContractType string `json:"contractType"`
	Category     string `json:"category"`
	CCT          string `json:"cct"`
	Service      string `json:"service"`
	Turn         string `json:"turn"`
	Observations string `json:"observations"`

	Hire struct {
		Salary       decimal.Decimal `json:"salary"`
		Cost         decimal.Decimal `json:"cost"`
		Observations string          `json:"observations"`
	} `json:"hire"`
}

// CreateRecordRequest carries a new record; Details is decoded against
// Type by roster.ParseDetails in the handler.
type CreateRecordRequest struct {
	Date           string            `json:"date"`
	CollaboratorID string            `json:"collaboratorId"`
	Type           roster.RecordType `json:"type"`
	Details        json.RawMessage   `json:"details"`
	Cost           decimal.Decimal   `json:"cost"`
	Observations   string            `json:"observations"`
}

// BulkDeleteRequest selects entities by id.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// AskRequest is a natural-language question for the assistant.
type AskRequest struct {
	Question string `json:"question"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CreateCollaboratorResponse returns the inserted collaborator and its
// synthetic hire record.
type CreateCollaboratorResponse struct {
	Collaborator roster.Collaborator `json:"collaborator"`
	HireRecord   roster.HRRecord     `json:"hireRecord"`
}

// DeleteResponse reports how much a delete removed.
type DeleteResponse struct {
	CollaboratorsRemoved int `json:"collaboratorsRemoved,omitempty"`
	RecordsRemoved       int `json:"recordsRemoved"`
}

// ImportResponse reports a partial-success batch: accepted rows are
// applied even when other rows failed, and the full ordered error list is
// returned for inspection.
type ImportResponse struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// DashboardResponse bundles the aggregates the main dashboard renders.
type DashboardResponse struct {
	KPIs                 analytics.HeadlineKPIs    `json:"kpis"`
	MonthlyActivity      []analytics.ActivityPoint `json:"monthlyActivity"`
	SanctionDistribution []analytics.SanctionCount `json:"sanctionDistribution"`
}

// AnalysisResponse bundles the impact-analysis aggregates for one filter
// configuration.
type AnalysisResponse struct {
	Start                string                        `json:"start"`
	End                  string                        `json:"end"`
	TurnoverRate         float64                       `json:"turnoverRate"`
	TurnoverCost         decimal.Decimal               `json:"turnoverCost"`
	AbsenteeismCost      decimal.Decimal               `json:"absenteeismCost"`
	TerminationsByReason []analytics.ReasonBreakdown   `json:"terminationsByReason"`
	Correlation          []analytics.CorrelationPoint  `json:"correlation"`
	SanctionCostByMonth  []analytics.SanctionCostPoint `json:"sanctionCostByMonth"`
}

// AskResponse is the assistant's answer text.
type AskResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
