/*
dashboard.go - Headline KPIs and dashboard series

PURPOSE:
  The three aggregates the main dashboard renders: headline counters,
  the monthly hire/termination activity series, and the sanction-type
  distribution. All take the collections they aggregate as arguments;
  callers pass either the full record collection or a filtered subset.
*/
package analytics

import (
	"sort"

	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/shopspring/decimal"
)

// =============================================================================
// HEADLINE KPIS
// =============================================================================

// HeadlineKPIs are the dashboard counters: active headcount, record counts
// by type, and the summed cost of every record in scope.
type HeadlineKPIs struct {
	ActiveCollaborators int             `json:"activeCollaborators"`
	Hires               int             `json:"hires"`
	Terminations        int             `json:"terminations"`
	Sanctions           int             `json:"sanctions"`
	Absences            int             `json:"absences"`
	TotalCost           decimal.Decimal `json:"totalCost"`
}

// Headline computes the dashboard counters.
func Headline(collaborators []roster.Collaborator, records []roster.HRRecord) HeadlineKPIs {
	kpis := HeadlineKPIs{TotalCost: decimal.Zero}
	for _, c := range collaborators {
		if c.Status == roster.StatusActive {
			kpis.ActiveCollaborators++
		}
	}
	for _, r := range records {
		switch r.Type {
		case roster.RecordHire:
			kpis.Hires++
		case roster.RecordTermination:
			kpis.Terminations++
		case roster.RecordSanction:
			kpis.Sanctions++
		case roster.RecordAbsence:
			kpis.Absences++
		}
		kpis.TotalCost = kpis.TotalCost.Add(r.Cost)
	}
	return kpis
}

// =============================================================================
// MONTHLY ACTIVITY
// =============================================================================

// ActivityPoint is one calendar-month bucket of hires and terminations.
type ActivityPoint struct {
	Label        string `json:"label"`
	Hires        int    `json:"hires"`
	Terminations int    `json:"terminations"`
}

// MonthlyActivity buckets records by calendar month, counting hires and
// terminations per bucket. Every record contributes its month to the bucket
// set, so a month holding only sanctions or absences still appears with zero
// counts. Buckets come back in chronological order.
func MonthlyActivity(records []roster.HRRecord) []ActivityPoint {
	type bucket struct {
		hires        int
		terminations int
	}
	buckets := make(map[int]*bucket)
	for _, r := range records {
		idx := monthIndex(r.Date)
		b := buckets[idx]
		if b == nil {
			b = &bucket{}
			buckets[idx] = b
		}
		switch r.Type {
		case roster.RecordHire:
			b.hires++
		case roster.RecordTermination:
			b.terminations++
		}
	}

	out := make([]ActivityPoint, 0, len(buckets))
	for _, idx := range sortedKeys(buckets) {
		b := buckets[idx]
		out = append(out, ActivityPoint{
			Label:        monthLabel(idx),
			Hires:        b.hires,
			Terminations: b.terminations,
		})
	}
	return out
}

// =============================================================================
// SANCTION DISTRIBUTION
// =============================================================================

// SanctionCount is the number of sanction records of one severity.
type SanctionCount struct {
	Type  roster.SanctionType `json:"type"`
	Count int                 `json:"count"`
}

// SanctionDistribution counts sanction records by severity, in first-seen
// order.
func SanctionDistribution(records []roster.HRRecord) []SanctionCount {
	counts := make(map[roster.SanctionType]int)
	var order []roster.SanctionType
	for _, r := range records {
		details, ok := r.Details.(roster.SanctionDetails)
		if !ok {
			continue
		}
		if _, seen := counts[details.Type]; !seen {
			order = append(order, details.Type)
		}
		counts[details.Type]++
	}

	out := make([]SanctionCount, 0, len(order))
	for _, t := range order {
		out = append(out, SanctionCount{Type: t, Count: counts[t]})
	}
	return out
}

func sortedKeys[V any](m map[int]*V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
