/*
impact.go - Turnover, absenteeism and correlation analytics

PURPOSE:
  The impact-analysis aggregates: turnover rate over a date window,
  turnover cost grouped by termination reason (sortable), the absenteeism
  cost estimate, the monthly termination/sanction correlation series, and
  the monthly sanction cost by severity.

HEADCOUNT MODEL:
  Headcount at a date counts collaborators hired on or before that date
  who were either never terminated or terminated strictly after it. The
  termination dates come from the FULL record collection, not the filtered
  subset: a UG filter narrows which terminations are counted in the rate's
  numerator, but not who was employed.

SALARY MODEL:
  The effective daily salary for absenteeism is a caller-supplied override
  when positive; otherwise the average monthly salary over every hire
  record in the full history, divided by 22 working days.
*/
package analytics

import (
	"sort"
	"time"

	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/shopspring/decimal"
)

var workingDaysPerMonth = decimal.NewFromInt(22)

// =============================================================================
// TURNOVER
// =============================================================================

// TurnoverRate returns terminations-in-range as a percentage of the
// average of the headcounts at the window's start and end. An empty
// average yields 0, never a division error.
func TurnoverRate(snap roster.Snapshot, filtered []roster.HRRecord, f Filter) float64 {
	start, end := f.Window()

	terminations := 0
	for _, r := range filtered {
		if r.Type == roster.RecordTermination {
			terminations++
		}
	}

	atStart := headcountAt(snap, start)
	atEnd := headcountAt(snap, end)
	avg := float64(atStart+atEnd) / 2
	if avg == 0 {
		return 0
	}
	return float64(terminations) / avg * 100
}

// headcountAt counts collaborators employed at the given instant.
func headcountAt(snap roster.Snapshot, at time.Time) int {
	terminatedAt := make(map[string]roster.Date)
	for _, r := range snap.Records {
		if r.Type == roster.RecordTermination {
			terminatedAt[r.CollaboratorID] = r.Date
		}
	}

	count := 0
	for _, c := range snap.Collaborators {
		if !c.HireDate.OnOrBefore(at) {
			continue
		}
		if term, ok := terminatedAt[c.ID]; ok && !term.StrictlyAfter(at) {
			continue
		}
		count++
	}
	return count
}

// TurnoverCost sums the cost of every termination record in the subset.
func TurnoverCost(filtered []roster.HRRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range filtered {
		if r.Type == roster.RecordTermination {
			total = total.Add(r.Cost)
		}
	}
	return total
}

// =============================================================================
// TERMINATION BREAKDOWN
// =============================================================================

// ReasonBreakdown is one termination reason with its count and total cost.
type ReasonBreakdown struct {
	Reason roster.TerminationReason `json:"reason"`
	Count  int                      `json:"count"`
	Cost   decimal.Decimal          `json:"cost"`
}

// BreakdownSortKey selects the field a breakdown is ordered by.
type BreakdownSortKey string

const (
	SortByCount BreakdownSortKey = "count"
	SortByCost  BreakdownSortKey = "cost"
)

// TerminationBreakdown groups termination records by reason, in first-seen
// order, carrying count and total cost per group.
func TerminationBreakdown(filtered []roster.HRRecord) []ReasonBreakdown {
	index := make(map[roster.TerminationReason]int)
	var out []ReasonBreakdown
	for _, r := range filtered {
		details, ok := r.Details.(roster.TerminationDetails)
		if !ok {
			continue
		}
		i, seen := index[details.Reason]
		if !seen {
			i = len(out)
			index[details.Reason] = i
			out = append(out, ReasonBreakdown{Reason: details.Reason, Cost: decimal.Zero})
		}
		out[i].Count++
		out[i].Cost = out[i].Cost.Add(r.Cost)
	}
	return out
}

// SortBreakdown orders a breakdown by count or cost, ascending or
// descending. Ties keep the original grouping order (stable sort).
func SortBreakdown(items []ReasonBreakdown, key BreakdownSortKey, descending bool) []ReasonBreakdown {
	out := append([]ReasonBreakdown(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch key {
		case SortByCount:
			if out[i].Count == out[j].Count {
				return false
			}
			less = out[i].Count < out[j].Count
		default: // SortByCost
			cmp := out[i].Cost.Cmp(out[j].Cost)
			if cmp == 0 {
				return false
			}
			less = cmp < 0
		}
		if descending {
			return !less
		}
		return less
	})
	return out
}

// =============================================================================
// ABSENTEEISM
// =============================================================================

// AbsenteeismCost estimates the cost of absences in the subset: total
// absence days times the effective daily salary. manualDailySalary, when
// positive, overrides the derived daily salary.
func AbsenteeismCost(snap roster.Snapshot, filtered []roster.HRRecord, manualDailySalary decimal.Decimal) decimal.Decimal {
	totalDays := int64(0)
	for _, r := range filtered {
		if details, ok := r.Details.(roster.AbsenceDetails); ok {
			totalDays += int64(details.Days)
		}
	}
	if totalDays == 0 {
		return decimal.Zero
	}

	daily := manualDailySalary
	if !daily.IsPositive() {
		daily = averageHireSalary(snap.Records).Div(workingDaysPerMonth)
	}
	return daily.Mul(decimal.NewFromInt(totalDays))
}

// averageHireSalary averages the latest hire-record salary per
// collaborator over the full unfiltered history; 0 when no hire data
// exists.
func averageHireSalary(records []roster.HRRecord) decimal.Decimal {
	salaries := make(map[string]decimal.Decimal)
	for _, r := range records {
		if details, ok := r.Details.(roster.HireDetails); ok {
			salaries[r.CollaboratorID] = details.Salary
		}
	}
	if len(salaries) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, s := range salaries {
		sum = sum.Add(s)
	}
	return sum.Div(decimal.NewFromInt(int64(len(salaries))))
}

// =============================================================================
// CORRELATION SERIES
// =============================================================================

// CorrelationPoint is one calendar-month bucket of termination count,
// termination cost, and sanction count.
type CorrelationPoint struct {
	Label           string          `json:"label"`
	Terminations    int             `json:"terminations"`
	TerminationCost decimal.Decimal `json:"terminationCost"`
	Sanctions       int             `json:"sanctions"`
}

// CorrelationSeries buckets the subset by calendar month, pairing
// termination activity with sanction activity to expose a leading or
// lagging relationship. Every record in the subset contributes its month
// to the bucket set, so months without terminations or sanctions appear
// with zero counts. An empty subset yields an empty, non-nil series.
func CorrelationSeries(filtered []roster.HRRecord) []CorrelationPoint {
	type bucket struct {
		terminations int
		cost         decimal.Decimal
		sanctions    int
	}
	buckets := make(map[int]*bucket)
	for _, r := range filtered {
		idx := monthIndex(r.Date)
		b := buckets[idx]
		if b == nil {
			b = &bucket{cost: decimal.Zero}
			buckets[idx] = b
		}
		switch r.Type {
		case roster.RecordTermination:
			b.terminations++
			b.cost = b.cost.Add(r.Cost)
		case roster.RecordSanction:
			b.sanctions++
		}
	}

	out := make([]CorrelationPoint, 0, len(buckets))
	for _, idx := range sortedKeys(buckets) {
		b := buckets[idx]
		out = append(out, CorrelationPoint{
			Label:           monthLabel(idx),
			Terminations:    b.terminations,
			TerminationCost: b.cost,
			Sanctions:       b.sanctions,
		})
	}
	return out
}

// =============================================================================
// SANCTION COST BY MONTH
// =============================================================================

// SanctionCostPoint is one calendar-month bucket of sanction cost grouped
// by severity.
type SanctionCostPoint struct {
	Label string                                  `json:"label"`
	Costs map[roster.SanctionType]decimal.Decimal `json:"costs"`
}

// SanctionCostByMonth buckets sanction records by calendar month and sums
// cost per severity within each bucket.
func SanctionCostByMonth(filtered []roster.HRRecord) []SanctionCostPoint {
	buckets := make(map[int]*SanctionCostPoint)
	for _, r := range filtered {
		details, ok := r.Details.(roster.SanctionDetails)
		if !ok {
			continue
		}
		idx := monthIndex(r.Date)
		b := buckets[idx]
		if b == nil {
			b = &SanctionCostPoint{
				Label: monthLabel(idx),
				Costs: make(map[roster.SanctionType]decimal.Decimal),
			}
			buckets[idx] = b
		}
		current, seen := b.Costs[details.Type]
		if !seen {
			current = decimal.Zero
		}
		b.Costs[details.Type] = current.Add(r.Cost)
	}

	out := make([]SanctionCostPoint, 0, len(buckets))
	for _, idx := range sortedKeys(buckets) {
		out = append(out, *buckets[idx])
	}
	return out
}
