/*
details.go - Typed payload variants for HR records

PURPOSE:
  The original console stored record details as a free-form JSON object
  whose shape depended on a companion type string, checked ad hoc on every
  read. Here the four shapes are a closed sum type: each variant knows its
  own record type (Kind), so "tag matches payload" holds by construction.

VARIANTS:
  HireDetails        INGRESO   { salary }
  TerminationDetails EGRESO    { reason }
  SanctionDetails    SANCION   { type, reason }
  AbsenceDetails     AUSENCIA  { reason, days }

PARSING:
  ParseDetails is the single entry point for decoding an untyped payload
  against a declared record type. Both the CSV import validator and the
  JSON codec for HRRecord go through it, so there is exactly one place
  where shape rules live.

SEE ALSO:
  - types.go: HRRecord and the enumerations referenced here
  - csvio/records.go: import validation built on ParseDetails
*/
package roster

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordDetails is the closed set of event payloads. Implementations live
// in this file only.
type RecordDetails interface {
	// Kind returns the record type this payload belongs to.
	Kind() RecordType
}

// HireDetails carries the monthly salary agreed at hire time.
type HireDetails struct {
	Salary decimal.Decimal `json:"salary"`
}

func (HireDetails) Kind() RecordType { return RecordHire }

// TerminationDetails carries the reason the collaborator left.
type TerminationDetails struct {
	Reason TerminationReason `json:"reason"`
}

func (TerminationDetails) Kind() RecordType { return RecordTermination }

// SanctionDetails carries the sanction severity plus a free-text reason.
type SanctionDetails struct {
	Type   SanctionType `json:"type"`
	Reason string       `json:"reason"`
}

func (SanctionDetails) Kind() RecordType { return RecordSanction }

// AbsenceDetails carries the absence reason and its length in days.
type AbsenceDetails struct {
	Reason AbsenceReason `json:"reason"`
	Days   int           `json:"days"`
}

func (AbsenceDetails) Kind() RecordType { return RecordAbsence }

// =============================================================================
// PARSING
// =============================================================================

// ParseDetails decodes a raw JSON payload against the declared record type
// and enforces the shape rules for that type. It is the only way untyped
// details enter the model.
func ParseDetails(rt RecordType, raw []byte) (RecordDetails, error) {
	switch rt {
	case RecordHire:
		var p struct {
			Salary *json.Number `json:"salary"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("details must carry a numeric 'salary' field: %w", err)
		}
		if p.Salary == nil {
			return nil, fmt.Errorf("details must carry a numeric 'salary' field")
		}
		salary, err := decimal.NewFromString(p.Salary.String())
		if err != nil {
			return nil, fmt.Errorf("details 'salary' is not a valid number: %w", err)
		}
		return HireDetails{Salary: salary}, nil

	case RecordTermination:
		var p struct {
			Reason TerminationReason `json:"reason"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid termination details: %w", err)
		}
		if !p.Reason.Valid() {
			return nil, fmt.Errorf("details 'reason' %q is not a valid termination reason", p.Reason)
		}
		return TerminationDetails{Reason: p.Reason}, nil

	case RecordSanction:
		var p struct {
			Type   SanctionType `json:"type"`
			Reason string       `json:"reason"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid sanction details: %w", err)
		}
		if !p.Type.Valid() {
			return nil, fmt.Errorf("details 'type' %q is not a valid sanction type", p.Type)
		}
		if p.Reason == "" {
			return nil, fmt.Errorf("details 'reason' must be a non-empty string")
		}
		return SanctionDetails{Type: p.Type, Reason: p.Reason}, nil

	case RecordAbsence:
		var p struct {
			Reason AbsenceReason `json:"reason"`
			Days   *json.Number  `json:"days"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid absence details: %w", err)
		}
		if !p.Reason.Valid() {
			return nil, fmt.Errorf("details 'reason' %q is not a valid absence reason", p.Reason)
		}
		if p.Days == nil {
			return nil, fmt.Errorf("details must carry a numeric 'days' field")
		}
		days, err := p.Days.Int64()
		if err != nil || days < 1 {
			return nil, fmt.Errorf("details 'days' must be an integer of at least 1")
		}
		return AbsenceDetails{Reason: p.Reason, Days: int(days)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownRecordType, rt)
}

// =============================================================================
// JSON CODEC FOR HR RECORDS
// =============================================================================
// Marshalling is the default struct encoding (the concrete payload encodes
// itself); only decoding needs dispatch, because the wire shape of the
// details object depends on the type tag.

func (r *HRRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             string          `json:"id"`
		Date           Date            `json:"date"`
		CollaboratorID string          `json:"collaboratorId"`
		UG             string          `json:"ug"`
		Position       string          `json:"position"`
		Type           RecordType      `json:"type"`
		Details        json.RawMessage `json:"details"`
		Cost           decimal.Decimal `json:"cost"`
		Observations   string          `json:"observations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	details, err := ParseDetails(raw.Type, raw.Details)
	if err != nil {
		return fmt.Errorf("record %s: %w", raw.ID, err)
	}

	*r = HRRecord{
		ID:             raw.ID,
		Date:           raw.Date,
		CollaboratorID: raw.CollaboratorID,
		UG:             raw.UG,
		Position:       raw.Position,
		Type:           raw.Type,
		Details:        details,
		Cost:           raw.Cost,
		Observations:   raw.Observations,
	}
	return nil
}
