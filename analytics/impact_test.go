package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortsfranco/CicedoHR/analytics"
	"github.com/cortsfranco/CicedoHR/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func yearFilter(year int) analytics.Filter {
	return analytics.Filter{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func seedSnapshot() roster.Snapshot {
	return roster.Snapshot{
		Collaborators: roster.SeedCollaborators(),
		Records:       roster.SeedRecords(),
	}
}

// =============================================================================
// FILTERING
// =============================================================================

func TestFilterRecords_WindowIsDayInclusive(t *testing.T) {
	// GIVEN: Records on the window's first day, last day, and one day past
	// WHEN: Filtering
	// THEN: Both boundary days are in, the day after is out

	snap := roster.Snapshot{
		Collaborators: []roster.Collaborator{{ID: "c1"}},
		Records: []roster.HRRecord{
			record(roster.NewDate(2023, time.January, 1), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 1}, 0),
			record(roster.NewDate(2023, time.December, 31), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 1}, 0),
			record(roster.NewDate(2024, time.January, 1), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 1}, 0),
		},
	}

	filtered := analytics.FilterRecords(snap, yearFilter(2023))
	assert.Len(t, filtered, 2)
}

func TestFilterRecords_UGAndContractType(t *testing.T) {
	snap := seedSnapshot()

	// UG filter matches on the record's snapshotted UG.
	f := yearFilter(2023)
	f.UG = "UG3-VITSA CORDOBA"
	for _, r := range analytics.FilterRecords(snap, f) {
		assert.Equal(t, "UG3-VITSA CORDOBA", r.UG)
	}

	// Contract-type filter joins through the collaborator.
	f = yearFilter(2023)
	f.ContractType = roster.ContractOccasional
	filtered := analytics.FilterRecords(snap, f)
	for _, r := range filtered {
		assert.Equal(t, "c5", r.CollaboratorID, "only c5 is Eventual")
	}
	assert.NotEmpty(t, filtered)
}

func TestFilterRecords_ExcludesOrphans(t *testing.T) {
	// A record referencing a collaborator that no longer exists never
	// reaches an aggregation.
	snap := roster.Snapshot{
		Records: []roster.HRRecord{
			record(roster.NewDate(2023, time.June, 1), "c-gone", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 1}, 0),
		},
	}
	assert.Empty(t, analytics.FilterRecords(snap, yearFilter(2023)))
}

// =============================================================================
// TURNOVER
// =============================================================================

func TestTurnoverRate_SeedDataset2023(t *testing.T) {
	// GIVEN: The seed dataset over calendar 2023
	//   Headcount at Jan 1 2023: c1..c4 hired, none terminated yet -> 4
	//   Headcount at Dec 31 2023: all five hired, c4 terminated Jun 30 -> 4
	//   Terminations in range: 1
	// THEN: 1 / 4 * 100 = 25%

	snap := seedSnapshot()
	f := yearFilter(2023)
	filtered := analytics.FilterRecords(snap, f)

	rate := analytics.TurnoverRate(snap, filtered, f)
	assert.InDelta(t, 25.0, rate, 0.001)
}

func TestTurnoverRate_EmptyHeadcount(t *testing.T) {
	// No collaborators employed in the window: the rate is 0, not NaN.
	snap := roster.Snapshot{}
	f := yearFilter(2023)
	assert.Zero(t, analytics.TurnoverRate(snap, nil, f))
}

func TestTurnoverRate_FilteredNumeratorFullHeadcount(t *testing.T) {
	// GIVEN: A UG filter that excludes the termination record
	// WHEN: Computing the rate
	// THEN: The numerator drops to 0 but headcount still reflects everyone

	snap := seedSnapshot()
	f := yearFilter(2023)
	f.UG = "UG1-LEXXOR"
	filtered := analytics.FilterRecords(snap, f)

	assert.Zero(t, analytics.TurnoverRate(snap, filtered, f))
}

func TestTurnoverCost_SumsTerminationsOnly(t *testing.T) {
	snap := seedSnapshot()
	filtered := analytics.FilterRecords(snap, yearFilter(2023))
	assert.True(t, analytics.TurnoverCost(filtered).Equal(decimal.NewFromInt(5000)))
}

// =============================================================================
// TERMINATION BREAKDOWN
// =============================================================================

func TestTerminationBreakdown_GroupsByReason(t *testing.T) {
	records := []roster.HRRecord{
		record(roster.NewDate(2023, time.March, 1), "c1", roster.TerminationDetails{Reason: roster.ReasonResignation}, 100),
		record(roster.NewDate(2023, time.March, 2), "c2", roster.TerminationDetails{Reason: roster.ReasonContractEnd}, 300),
		record(roster.NewDate(2023, time.March, 3), "c3", roster.TerminationDetails{Reason: roster.ReasonResignation}, 200),
	}

	breakdown := analytics.TerminationBreakdown(records)
	require.Len(t, breakdown, 2)
	assert.Equal(t, roster.ReasonResignation, breakdown[0].Reason)
	assert.Equal(t, 2, breakdown[0].Count)
	assert.True(t, breakdown[0].Cost.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, roster.ReasonContractEnd, breakdown[1].Reason)
}

func TestSortBreakdown_ByCostDescending(t *testing.T) {
	items := []analytics.ReasonBreakdown{
		{Reason: roster.ReasonResignation, Count: 2, Cost: decimal.NewFromInt(300)},
		{Reason: roster.ReasonContractEnd, Count: 1, Cost: decimal.NewFromInt(900)},
	}

	sorted := analytics.SortBreakdown(items, analytics.SortByCost, true)
	assert.Equal(t, roster.ReasonContractEnd, sorted[0].Reason)

	// The input ordering is never mutated.
	assert.Equal(t, roster.ReasonResignation, items[0].Reason)
}

func TestSortBreakdown_TiesKeepGroupingOrder(t *testing.T) {
	items := []analytics.ReasonBreakdown{
		{Reason: roster.ReasonResignation, Count: 1, Cost: decimal.NewFromInt(100)},
		{Reason: roster.ReasonRetirement, Count: 1, Cost: decimal.NewFromInt(100)},
		{Reason: roster.ReasonContractEnd, Count: 1, Cost: decimal.NewFromInt(100)},
	}

	for _, descending := range []bool{true, false} {
		sorted := analytics.SortBreakdown(items, analytics.SortByCount, descending)
		assert.Equal(t, roster.ReasonResignation, sorted[0].Reason)
		assert.Equal(t, roster.ReasonRetirement, sorted[1].Reason)
		assert.Equal(t, roster.ReasonContractEnd, sorted[2].Reason)
	}
}

// =============================================================================
// ABSENTEEISM
// =============================================================================

func TestAbsenteeismCost_DerivedDailySalary(t *testing.T) {
	// GIVEN: Two collaborators earning 2200 each (avg 2200, daily 100) and
	//        3 absence days in the subset
	// THEN: 3 * 100 = 300

	snap := roster.Snapshot{
		Collaborators: []roster.Collaborator{{ID: "c1"}, {ID: "c2"}},
		Records: []roster.HRRecord{
			record(roster.NewDate(2023, time.January, 1), "c1", roster.HireDetails{Salary: decimal.NewFromInt(2200)}, 0),
			record(roster.NewDate(2023, time.January, 1), "c2", roster.HireDetails{Salary: decimal.NewFromInt(2200)}, 0),
			record(roster.NewDate(2023, time.May, 1), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 3}, 0),
		},
	}
	filtered := analytics.FilterRecords(snap, yearFilter(2023))

	cost := analytics.AbsenteeismCost(snap, filtered, decimal.Zero)
	assert.True(t, cost.Equal(decimal.NewFromInt(300)), "cost was %s", cost)
}

func TestAbsenteeismCost_ManualOverride(t *testing.T) {
	snap := roster.Snapshot{
		Collaborators: []roster.Collaborator{{ID: "c1"}},
		Records: []roster.HRRecord{
			record(roster.NewDate(2023, time.May, 1), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 4}, 0),
		},
	}
	filtered := analytics.FilterRecords(snap, yearFilter(2023))

	cost := analytics.AbsenteeismCost(snap, filtered, decimal.NewFromInt(250))
	assert.True(t, cost.Equal(decimal.NewFromInt(1000)))
}

func TestAbsenteeismCost_LatestHireSalaryWins(t *testing.T) {
	// Two hire records for the same collaborator: the later one replaces
	// the earlier in the salary map, so the average uses 3300, not 1100.
	snap := roster.Snapshot{
		Collaborators: []roster.Collaborator{{ID: "c1"}},
		Records: []roster.HRRecord{
			record(roster.NewDate(2022, time.January, 1), "c1", roster.HireDetails{Salary: decimal.NewFromInt(1100)}, 0),
			record(roster.NewDate(2023, time.January, 1), "c1", roster.HireDetails{Salary: decimal.NewFromInt(3300)}, 0),
			record(roster.NewDate(2023, time.May, 1), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 2}, 0),
		},
	}
	filtered := analytics.FilterRecords(snap, yearFilter(2023))

	cost := analytics.AbsenteeismCost(snap, filtered, decimal.Zero)
	assert.True(t, cost.Equal(decimal.NewFromInt(300)), "cost was %s", cost)
}

func TestAbsenteeismCost_NoAbsences(t *testing.T) {
	assert.True(t, analytics.AbsenteeismCost(seedSnapshot(), nil, decimal.Zero).IsZero())
}

func TestAbsenteeismCost_NoHireData(t *testing.T) {
	// No hire records at all: the derived daily salary is 0, and so is the
	// estimate.
	snap := roster.Snapshot{
		Collaborators: []roster.Collaborator{{ID: "c1"}},
		Records: []roster.HRRecord{
			record(roster.NewDate(2023, time.May, 1), "c1", roster.AbsenceDetails{Reason: roster.AbsenceART, Days: 2}, 0),
		},
	}
	filtered := analytics.FilterRecords(snap, yearFilter(2023))
	assert.True(t, analytics.AbsenteeismCost(snap, filtered, decimal.Zero).IsZero())
}

// =============================================================================
// CORRELATION AND SANCTION COST SERIES
// =============================================================================

func TestCorrelationSeries_BucketsByMonth(t *testing.T) {
	records := []roster.HRRecord{
		record(roster.NewDate(2023, time.June, 30), "c1", roster.TerminationDetails{Reason: roster.ReasonContractEnd}, 5000),
		record(roster.NewDate(2023, time.June, 2), "c2", roster.SanctionDetails{Type: roster.SanctionVerbalWarning, Reason: "x"}, 0),
		record(roster.NewDate(2023, time.July, 1), "c3", roster.SanctionDetails{Type: roster.SanctionVerbalWarning, Reason: "y"}, 0),
	}

	series := analytics.CorrelationSeries(records)
	require.Len(t, series, 2)

	assert.Equal(t, "jun 23", series[0].Label)
	assert.Equal(t, 1, series[0].Terminations)
	assert.True(t, series[0].TerminationCost.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 1, series[0].Sanctions)

	assert.Equal(t, "jul 23", series[1].Label)
	assert.Equal(t, 0, series[1].Terminations)
	assert.Equal(t, 1, series[1].Sanctions)
}

func TestCorrelationSeries_HireOnlyMonthBucketsWithZeroCounts(t *testing.T) {
	// GIVEN: A month holding only a hire record
	// WHEN: Building the series
	// THEN: The month still appears, with zero terminations and sanctions

	records := []roster.HRRecord{
		record(roster.NewDate(2023, time.March, 10), "c1", roster.HireDetails{Salary: decimal.NewFromInt(2000)}, 200),
	}

	series := analytics.CorrelationSeries(records)
	require.Len(t, series, 1)
	assert.Equal(t, "mar 23", series[0].Label)
	assert.Equal(t, 0, series[0].Terminations)
	assert.True(t, series[0].TerminationCost.IsZero())
	assert.Equal(t, 0, series[0].Sanctions)
}

func TestCorrelationSeries_EmptyIsNonNil(t *testing.T) {
	series := analytics.CorrelationSeries(nil)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestSanctionCostByMonth_GroupsBySeverity(t *testing.T) {
	records := []roster.HRRecord{
		record(roster.NewDate(2023, time.April, 5), "c1", roster.SanctionDetails{Type: roster.SanctionSuspensionLight, Reason: "a"}, 200),
		record(roster.NewDate(2023, time.April, 20), "c2", roster.SanctionDetails{Type: roster.SanctionSuspensionLight, Reason: "b"}, 300),
		record(roster.NewDate(2023, time.April, 25), "c3", roster.SanctionDetails{Type: roster.SanctionWrittenWarning, Reason: "c"}, 0),
	}

	series := analytics.SanctionCostByMonth(records)
	require.Len(t, series, 1)
	assert.Equal(t, "abr 23", series[0].Label)
	assert.True(t, series[0].Costs[roster.SanctionSuspensionLight].Equal(decimal.NewFromInt(500)))
	assert.True(t, series[0].Costs[roster.SanctionWrittenWarning].IsZero())
}
