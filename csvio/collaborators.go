/*
collaborators.go - Row validator for collaborator imports

PURPOSE:
  Turns parsed CSV rows into collaborators ready for bulk append. Each row
  is checked in order and rejected at its first failure; scanning always
  continues to the next row, so one bad line never sinks the batch.

CHECKS PER ROW:
  1. Required fields present and non-empty
  2. DNI and legajo unique against the existing collection AND against
     rows already accepted earlier in this batch
  3. Status and contract type are members of their enums
  4. Hire date parses as YYYY-MM-DD

Error messages reference the 1-based source line (header is line 1, first
data row is line 2).
*/
package csvio

import (
	"fmt"

	"github.com/cortsfranco/CicedoHR/roster"
)

// collaboratorRequired lists the fields a collaborator row must carry.
// Extra columns are ignored; category, cct, service, turn and observations
// are optional and default to empty.
var collaboratorRequired = []string{
	"name", "dni", "legajo", "cuil", "position", "ug", "hireDate", "contractType", "status",
}

// ValidateCollaborators partitions rows into accepted collaborators and
// ordered per-row error messages. Accepted rows carry freshly synthesized
// identifiers.
func ValidateCollaborators(rows []Row, existing []roster.Collaborator) ([]roster.Collaborator, []string) {
	seenDNI := make(map[string]struct{}, len(existing))
	seenLegajo := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		seenDNI[c.DNI] = struct{}{}
		seenLegajo[c.Legajo] = struct{}{}
	}

	var accepted []roster.Collaborator
	var errs []string
	for i, row := range rows {
		line := i + 2

		missing := false
		for _, field := range collaboratorRequired {
			if row[field] == "" {
				missing = true
				break
			}
		}
		if missing {
			errs = append(errs, fmt.Sprintf("row %d: missing required fields", line))
			continue
		}

		if _, dup := seenDNI[row["dni"]]; dup {
			errs = append(errs, fmt.Sprintf("row %d: DNI %q already exists or is duplicated in the file", line, row["dni"]))
			continue
		}
		if _, dup := seenLegajo[row["legajo"]]; dup {
			errs = append(errs, fmt.Sprintf("row %d: legajo %q already exists or is duplicated in the file", line, row["legajo"]))
			continue
		}

		status := roster.CollaboratorStatus(row["status"])
		if !status.Valid() {
			errs = append(errs, fmt.Sprintf("row %d: status %q is not valid", line, row["status"]))
			continue
		}
		contractType := roster.ContractType(row["contractType"])
		if !contractType.Valid() {
			errs = append(errs, fmt.Sprintf("row %d: contract type %q is not valid", line, row["contractType"]))
			continue
		}

		hireDate, err := roster.ParseDate(row["hireDate"])
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: hire date %q is not a valid date (use YYYY-MM-DD)", line, row["hireDate"]))
			continue
		}

		seenDNI[row["dni"]] = struct{}{}
		seenLegajo[row["legajo"]] = struct{}{}

		accepted = append(accepted, roster.Collaborator{
			ID:           roster.NewCollaboratorID(),
			Name:         row["name"],
			DNI:          row["dni"],
			Legajo:       row["legajo"],
			CUIL:         row["cuil"],
			Position:     row["position"],
			UG:           row["ug"],
			Status:       status,
			HireDate:     hireDate,
			ContractType: contractType,
			Category:     row["category"],
			CCT:          row["cct"],
			Service:      row["service"],
			Turn:         row["turn"],
			Observations: row["observations"],
		})
	}
	return accepted, errs
}
