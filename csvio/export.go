/*
export.go - CSV exporters for both collections

PURPOSE:
  Serializes the collections in the column orders the import validators
  accept, so an exported file re-imports cleanly (modulo synthesized
  identifiers). Output starts with a UTF-8 BOM because the files are meant
  to open directly in spreadsheet applications.
*/
package csvio

import (
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/cortsfranco/CicedoHR/roster"
)

var collaboratorHeader = []string{
	"id", "name", "dni", "legajo", "cuil", "position", "ug", "status",
	"hireDate", "contractType", "category", "cct", "service", "turn", "observations",
}

var recordHeader = []string{
	"id", "date", "collaboratorId", "ug", "position", "type", "details", "cost", "observations",
}

// ExportCollaborators renders the collaborator collection as CSV text.
func ExportCollaborators(collaborators []roster.Collaborator) string {
	var b strings.Builder
	b.WriteString("\uFEFF")

	w := csv.NewWriter(&b)
	w.Write(collaboratorHeader)
	for _, c := range collaborators {
		w.Write([]string{
			c.ID, c.Name, c.DNI, c.Legajo, c.CUIL, c.Position, c.UG, string(c.Status),
			c.HireDate.String(), string(c.ContractType), c.Category, c.CCT, c.Service, c.Turn, c.Observations,
		})
	}
	w.Flush()
	return b.String()
}

// ExportRecords renders the record collection as CSV text. The details
// column holds the payload as a JSON object; the CSV writer quotes it and
// doubles internal quotes.
func ExportRecords(records []roster.HRRecord) string {
	var b strings.Builder
	b.WriteString("\uFEFF")

	w := csv.NewWriter(&b)
	w.Write(recordHeader)
	for _, r := range records {
		details, err := json.Marshal(r.Details)
		if err != nil {
			// Payloads are plain structs; this cannot fail for model data.
			details = []byte("{}")
		}
		w.Write([]string{
			r.ID, r.Date.String(), r.CollaboratorID, r.UG, r.Position, string(r.Type),
			string(details), r.Cost.String(), r.Observations,
		})
	}
	w.Flush()
	return b.String()
}
