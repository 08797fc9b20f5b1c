/*
Package analytics provides the derived-analytics computation layer.

PURPOSE:
  Pure, re-entrant aggregations over the roster collections: headline
  KPIs, monthly activity series, sanction distribution, turnover rate and
  cost breakdown, absenteeism cost estimate, and the monthly correlation
  series behind the impact-analysis view.

DESIGN PRINCIPLES:
  1. No state: every function takes the current collections as input and
     returns a freshly computed result. Calling twice with the same input
     yields the same output.
  2. No caching: results are recomputed on every read. O(n) per query is
     the accepted cost of never managing staleness.
  3. Money stays decimal.Decimal end to end; rates are float64 because
     they are display percentages, not ledger values.

KEY CONCEPTS IN THIS FILE (filter.go):
  - Filter: an inclusive day-granular date window plus optional
    management-unit and contract-type filters
  - FilterRecords: the collaborator-joined record selection every
    range-scoped aggregation starts from

SEE ALSO:
  - dashboard.go: headline KPIs and the dashboard series
  - impact.go: turnover, absenteeism and correlation analytics
*/
package analytics

import (
	"time"

	"github.com/cortsfranco/CicedoHR/roster"
)

// =============================================================================
// FILTER
// =============================================================================

// Filter scopes range-based aggregations. Start and End are inclusive at
// day granularity: Start is floored to 00:00:00 and End is ceiled to
// 23:59:59.999999999 before comparison. UG and ContractType are optional;
// the zero value means "all".
type Filter struct {
	Start        time.Time
	End          time.Time
	UG           string
	ContractType roster.ContractType
}

// Window returns the effective comparison bounds of the filter.
func (f Filter) Window() (start, end time.Time) {
	start = time.Date(f.Start.Year(), f.Start.Month(), f.Start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(f.End.Year(), f.End.Month(), f.End.Day(), 23, 59, 59, 999999999, time.UTC)
	return start, end
}

// FilterRecords selects the records inside the filter window that pass the
// management-unit and contract-type filters. The contract-type filter is
// resolved by joining each record to its collaborator; a record whose
// collaborator no longer exists is orphaned and always excluded.
func FilterRecords(snap roster.Snapshot, f Filter) []roster.HRRecord {
	start, end := f.Window()

	byID := make(map[string]roster.Collaborator, len(snap.Collaborators))
	for _, c := range snap.Collaborators {
		byID[c.ID] = c
	}

	out := make([]roster.HRRecord, 0, len(snap.Records))
	for _, r := range snap.Records {
		owner, ok := byID[r.CollaboratorID]
		if !ok {
			continue
		}
		if r.Date.Time.Before(start) || r.Date.Time.After(end) {
			continue
		}
		if f.UG != "" && r.UG != f.UG {
			continue
		}
		if f.ContractType != "" && owner.ContractType != f.ContractType {
			continue
		}
		out = append(out, r)
	}
	return out
}

// =============================================================================
// MONTH BUCKETS
// =============================================================================
// Series bucket by calendar month and label each bucket the way the
// dashboard renders it ("ene 23"). Buckets are keyed on year*12+month, so
// chronological order never depends on parsing the label back.

var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

func monthIndex(d roster.Date) int { return d.MonthIndex() }

func monthLabel(index int) string {
	year := index / 12
	month := index % 12
	return spanishMonths[month] + " " + twoDigits(year%100)
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
