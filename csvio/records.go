/*
records.go - Row validator for record imports

PURPOSE:
  Turns parsed CSV rows into HR records ready for bulk append. Records
  have no natural key, so there is no uniqueness check; the referential
  check against the collaborator collection and the type-dependent details
  shape are the load-bearing validations here.

CHECKS PER ROW:
  1. Required fields present
  2. collaboratorId resolves to an existing collaborator
  3. type is one of the four event types
  4. cost parses as a finite number (zero is fine)
  5. details parses as JSON and satisfies the shape its type demands
     (delegated to roster.ParseDetails, the single shape authority)
  6. date parses as YYYY-MM-DD

Accepting a termination row does NOT flip collaborator status here; that
side effect belongs to the store's import step, once per distinct
collaborator in the batch.
*/
package csvio

import (
	"fmt"

	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/shopspring/decimal"
)

// ValidateRecords partitions rows into accepted records and ordered
// per-row error messages. Accepted rows carry freshly synthesized
// identifiers.
func ValidateRecords(rows []Row, collaborators []roster.Collaborator) ([]roster.HRRecord, []string) {
	known := make(map[string]struct{}, len(collaborators))
	for _, c := range collaborators {
		known[c.ID] = struct{}{}
	}

	var accepted []roster.HRRecord
	var errs []string
	for i, row := range rows {
		line := i + 2

		if row["date"] == "" || row["collaboratorId"] == "" || row["ug"] == "" ||
			row["position"] == "" || row["type"] == "" || row["details"] == "" {
			errs = append(errs, fmt.Sprintf("row %d: missing required fields", line))
			continue
		}

		if _, ok := known[row["collaboratorId"]]; !ok {
			errs = append(errs, fmt.Sprintf("row %d: collaborator id %q does not exist", line, row["collaboratorId"]))
			continue
		}

		recordType := roster.RecordType(row["type"])
		if !recordType.Valid() {
			errs = append(errs, fmt.Sprintf("row %d: record type %q is not valid", line, row["type"]))
			continue
		}

		cost, err := decimal.NewFromString(row["cost"])
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: cost %q is not a valid number", line, row["cost"]))
			continue
		}

		details, err := roster.ParseDetails(recordType, []byte(row["details"]))
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		date, err := roster.ParseDate(row["date"])
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: date %q is not a valid date (use YYYY-MM-DD)", line, row["date"]))
			continue
		}

		accepted = append(accepted, roster.HRRecord{
			ID:             roster.NewRecordID(),
			Date:           date,
			CollaboratorID: row["collaboratorId"],
			UG:             row["ug"],
			Position:       row["position"],
			Type:           recordType,
			Details:        details,
			Cost:           cost,
			Observations:   row["observations"],
		})
	}
	return accepted, errs
}
