/*
Package roster provides the HR entity model and the store that owns it.

PURPOSE:
  This package contains the two authoritative record kinds of the console:
  Collaborator (a person on the payroll) and HRRecord (a dated HR event tied
  to exactly one collaborator). It also contains the Store that owns both
  collections and the mutation rules that keep them consistent.

KEY CONCEPTS IN THIS FILE (types.go):
  - Collaborator: person record with unique DNI and legajo
  - HRRecord: dated event (hire, termination, sanction, absence)
  - RecordDetails: closed sum type over the four event payloads
  - Enumerations: status, contract type, record type, reasons

DESIGN PRINCIPLES:
  1. Tag/payload agreement is structural: a record's type tag is derived
     from its details payload (Kind()), never stored independently of it.
  2. Precision: costs and salaries use decimal.Decimal, never float64.
  3. Interop: JSON field names and enum values match the console's export
     format, so persisted blobs and CSV files from the original tool load
     unchanged.

SEE ALSO:
  - details.go: payload variants and the ParseDetails constructor
  - store.go: mutation operations and persistence subscription
  - seed.go: bundled fallback dataset
*/
package roster

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Costs and salaries serialize as JSON numbers, matching the format of
	// the console's persisted blobs and CSV details payloads.
	decimal.MarshalJSONWithoutQuotes = true
}

// =============================================================================
// ENUMERATIONS
// =============================================================================
// Enum values are Spanish because they are data, not UI: they appear in
// persisted JSON, CSV files and the assistant context, and must round-trip
// against files produced by the original console.

type CollaboratorStatus string

const (
	StatusActive   CollaboratorStatus = "Activo"
	StatusInactive CollaboratorStatus = "Inactivo"
)

func (s CollaboratorStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type ContractType string

const (
	ContractOccasional ContractType = "Eventual"
	ContractIndefinite ContractType = "Indeterminado"
	ContractFixedTerm  ContractType = "Plazo Fijo"
)

func (c ContractType) Valid() bool {
	switch c {
	case ContractOccasional, ContractIndefinite, ContractFixedTerm:
		return true
	}
	return false
}

type RecordType string

const (
	RecordHire        RecordType = "INGRESO"
	RecordTermination RecordType = "EGRESO"
	RecordSanction    RecordType = "SANCION"
	RecordAbsence     RecordType = "AUSENCIA"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordHire, RecordTermination, RecordSanction, RecordAbsence:
		return true
	}
	return false
}

type TerminationReason string

const (
	ReasonResignation      TerminationReason = "Renuncia"
	ReasonDismissalCause   TerminationReason = "Despido con justa causa"
	ReasonDismissalNoCause TerminationReason = "Despido sin justa causa"
	ReasonMutualAgreement  TerminationReason = "Mutuo acuerdo (241)"
	ReasonContractEnd      TerminationReason = "Fin de contrato"
	ReasonRetirement       TerminationReason = "Jubilación"
)

func (r TerminationReason) Valid() bool {
	switch r {
	case ReasonResignation, ReasonDismissalCause, ReasonDismissalNoCause,
		ReasonMutualAgreement, ReasonContractEnd, ReasonRetirement:
		return true
	}
	return false
}

type SanctionType string

const (
	SanctionVerbalWarning    SanctionType = "Apercibimiento verbal"
	SanctionWrittenWarning   SanctionType = "Apercibimiento escrito"
	SanctionSuspensionLight  SanctionType = "Suspensión Leve"
	SanctionSuspensionMedium SanctionType = "Suspensión Media"
	SanctionSuspensionSevere SanctionType = "Suspensión Grave"
)

func (s SanctionType) Valid() bool {
	switch s {
	case SanctionVerbalWarning, SanctionWrittenWarning,
		SanctionSuspensionLight, SanctionSuspensionMedium, SanctionSuspensionSevere:
		return true
	}
	return false
}

type AbsenceReason string

const (
	AbsenceUnjustified AbsenceReason = "Falta Injustificada"
	AbsenceART         AbsenceReason = "ART"
	AbsenceParental    AbsenceReason = "Maternidad / Paternidad"
	AbsenceJustified   AbsenceReason = "Falta Justificada"
	AbsenceStudyDay    AbsenceReason = "Día de Estudio"
	AbsenceFamilyCare  AbsenceReason = "Cuidado Familiar"
	AbsenceLateness    AbsenceReason = "Tardanza"
)

func (r AbsenceReason) Valid() bool {
	switch r {
	case AbsenceUnjustified, AbsenceART, AbsenceParental,
		AbsenceJustified, AbsenceStudyDay, AbsenceFamilyCare, AbsenceLateness:
		return true
	}
	return false
}

// =============================================================================
// COLLABORATOR
// =============================================================================

// Collaborator is a person record. DNI and Legajo are unique across the
// whole collection. Status is derived state: it flips to Inactivo exactly
// when a termination record is accepted for this collaborator and is never
// flipped back (a re-hire is a brand-new collaborator).
type Collaborator struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	DNI          string             `json:"dni"`
	Legajo       string             `json:"legajo"`
	CUIL         string             `json:"cuil"`
	Position     string             `json:"position"`
	UG           string             `json:"ug"`
	Status       CollaboratorStatus `json:"status"`
	HireDate     Date               `json:"hireDate"`
	ContractType ContractType       `json:"contractType"`
	Category     string             `json:"category"`
	CCT          string             `json:"cct"`
	Service      string             `json:"service"`
	Turn         string             `json:"turn"`
	Observations string             `json:"observations"`
}

// =============================================================================
// HR RECORD
// =============================================================================

// HRRecord is a dated HR event. UG and Position are snapshots taken at
// event time, not live joins to the collaborator. Type always agrees with
// the shape of Details; use NewRecord so the tag is derived from the
// payload rather than set by hand.
type HRRecord struct {
	ID             string          `json:"id"`
	Date           Date            `json:"date"`
	CollaboratorID string          `json:"collaboratorId"`
	UG             string          `json:"ug"`
	Position       string          `json:"position"`
	Type           RecordType      `json:"type"`
	Details        RecordDetails   `json:"details"`
	Cost           decimal.Decimal `json:"cost"`
	Observations   string          `json:"observations"`
}

// NewRecord builds a record whose type tag is derived from the payload.
func NewRecord(date Date, collaboratorID, ug, position string, details RecordDetails, cost decimal.Decimal, observations string) HRRecord {
	return HRRecord{
		ID:             NewRecordID(),
		Date:           date,
		CollaboratorID: collaboratorID,
		UG:             ug,
		Position:       position,
		Type:           details.Kind(),
		Details:        details,
		Cost:           cost,
		Observations:   observations,
	}
}

// =============================================================================
// IDENTIFIERS
// =============================================================================
// The original console prefixed collaborator ids with "c" and record ids
// with "r"; the prefixes are kept so mixed datasets stay readable.

func NewCollaboratorID() string { return "c" + uuid.NewString() }

func NewRecordID() string { return "r" + uuid.NewString() }
