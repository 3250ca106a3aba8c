package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend-go/internal/domain/leave"
	"github.com/sitecrew/workforce-backend-go/internal/domain/rate"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/sitecrew/workforce-backend-go/internal/pkg/validator"
)

const dayKeyFormat = "2006-01-02"

var minutesPerHour = decimal.NewFromInt(60)

// AggregationEngine computes the raw monthly metrics for one employee from
// the attendance and leave streams. It produces transient values only; the
// summary service owns persistence.
type AggregationEngine struct {
	eventRepo attendance.EventRepository
	grantRepo leave.GrantRepository

	defaultOTThreshold  decimal.Decimal
	defaultExpectedDays int
	now                 func() time.Time
}

func NewAggregationEngine(
	eventRepo attendance.EventRepository,
	grantRepo leave.GrantRepository,
	defaultOTThresholdHours float64,
	defaultExpectedWorkingDays int,
) *AggregationEngine {
	return &AggregationEngine{
		eventRepo:           eventRepo,
		grantRepo:           grantRepo,
		defaultOTThreshold:  decimal.NewFromFloat(defaultOTThresholdHours),
		defaultExpectedDays: defaultExpectedWorkingDays,
		now:                 time.Now,
	}
}

// projectAcc accumulates per-project minutes while walking the events.
type projectAcc struct {
	id         string
	name       string
	days       map[string]struct{}
	regularMin int64
	otMin      int64
}

// Aggregate computes the attendance metrics for (employeeID, month, year).
// Fails with summary.ErrNoAttendanceData when the period has neither
// attendance events nor approved leave, so callers can skip generation
// instead of producing a zero-valued summary.
func (e *AggregationEngine) Aggregate(ctx context.Context, employeeID string, month, year int, policy rate.Policy, companyID string) (summary.AggregationResult, error) {
	if month < 1 || month > 12 {
		return summary.AggregationResult{}, validator.ValidationErrors{
			{Field: "month", Message: "must be between 1 and 12"},
		}
	}
	if year < 1 {
		return summary.AggregationResult{}, validator.ValidationErrors{
			{Field: "year", Message: "must be a positive year"},
		}
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	events, err := e.eventRepo.ListByEmployeePeriod(ctx, employeeID, periodStart, periodEnd, companyID)
	if err != nil {
		return summary.AggregationResult{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	grants, err := e.grantRepo.ListApprovedByEmployeePeriod(ctx, employeeID, periodStart, periodEnd, companyID)
	if err != nil {
		return summary.AggregationResult{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	if len(events) == 0 && len(grants) == 0 {
		return summary.AggregationResult{}, summary.ErrNoAttendanceData
	}

	threshold := policy.OTThresholdHours
	if !threshold.IsPositive() {
		threshold = e.defaultOTThreshold
	}
	thresholdMin := threshold.Mul(minutesPerHour).IntPart()

	// Events within a day are processed in clock-in order so the minutes
	// beyond the threshold land on the tail of the day.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ClockIn.Before(events[j].ClockIn)
	})

	today := e.now().UTC().Format(dayKeyFormat)

	workedDates := make(map[string]struct{})
	dayUsedMin := make(map[string]int64)
	projects := make(map[string]*projectAcc)
	var regularMin, otMin int64
	inProgressToday := false

	for _, ev := range events {
		day := ev.Date.Format(dayKeyFormat)

		if !ev.Complete() {
			// An open check-in on the current date is in progress, not
			// absent; on a past date it simply never becomes a working day.
			if day == today {
				inProgressToday = true
			}
			continue
		}

		workedDates[day] = struct{}{}

		dur := ev.DurationMinutes()
		if dur < 0 {
			continue
		}

		used := dayUsedMin[day]
		evRegular, evOT := splitOvertime(used, dur, thresholdMin)
		dayUsedMin[day] = used + dur

		regularMin += evRegular
		otMin += evOT

		if ev.ProjectID != nil {
			acc, ok := projects[*ev.ProjectID]
			if !ok {
				name := ""
				if ev.ProjectName != nil {
					name = *ev.ProjectName
				}
				acc = &projectAcc{id: *ev.ProjectID, name: name, days: make(map[string]struct{})}
				projects[*ev.ProjectID] = acc
			}
			acc.days[day] = struct{}{}
			acc.regularMin += evRegular
			acc.otMin += evOT
		}
	}

	leaveDays := prorateLeave(grants, periodStart, periodEnd)

	expectedDays := policy.ExpectedWorkingDays
	if expectedDays <= 0 {
		expectedDays = e.defaultExpectedDays
	}

	workingDays := len(workedDates)

	inProgress := 0
	if inProgressToday {
		if _, worked := workedDates[today]; !worked {
			inProgress = 1
		}
	}

	absentDays := 0
	absentDec := decimal.NewFromInt(int64(expectedDays - workingDays - inProgress)).Sub(leaveDays)
	if absentDec.IsPositive() {
		absentDays = int(absentDec.IntPart())
	}

	breakdown := make([]summary.ProjectBreakdownEntry, 0, len(projects))
	for _, acc := range projects {
		breakdown = append(breakdown, summary.ProjectBreakdownEntry{
			ProjectID:   acc.id,
			ProjectName: acc.name,
			Days:        len(acc.days),
			Hours:       minutesToHours(acc.regularMin),
			OTHours:     minutesToHours(acc.otMin),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].ProjectName != breakdown[j].ProjectName {
			return breakdown[i].ProjectName < breakdown[j].ProjectName
		}
		return breakdown[i].ProjectID < breakdown[j].ProjectID
	})

	return summary.AggregationResult{
		TotalWorkingDays:  workingDays,
		TotalWorkedHours:  minutesToHours(regularMin),
		TotalOTHours:      minutesToHours(otMin),
		ApprovedLeaveDays: leaveDays,
		AbsentDays:        absentDays,
		Breakdown:         breakdown,
	}, nil
}

// splitOvertime reallocates the part of an event's duration that pushes the
// day past the threshold from regular minutes into OT minutes. Reallocation,
// not additive double-counting.
func splitOvertime(usedMin, durMin, thresholdMin int64) (regular, ot int64) {
	switch {
	case usedMin >= thresholdMin:
		return 0, durMin
	case usedMin+durMin > thresholdMin:
		regular = thresholdMin - usedMin
		return regular, durMin - regular
	default:
		return durMin, 0
	}
}

// prorateLeave sums approved leave days, counting only the fraction of each
// grant's range that falls inside [periodStart, periodEnd).
func prorateLeave(grants []leave.Grant, periodStart, periodEnd time.Time) decimal.Decimal {
	lastDay := periodEnd.AddDate(0, 0, -1)
	total := decimal.Zero

	for _, g := range grants {
		start := truncateToDay(g.StartDate)
		end := truncateToDay(g.EndDate)

		if start.Before(periodStart) {
			start = periodStart
		}
		if end.After(lastDay) {
			end = lastDay
		}
		if end.Before(start) {
			continue
		}

		days := int64(end.Sub(start).Hours()/24) + 1
		fraction := g.DayFraction
		if fraction.IsZero() {
			fraction = decimal.NewFromInt(1)
		}
		total = total.Add(decimal.NewFromInt(days).Mul(fraction))
	}

	return total
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func minutesToHours(min int64) decimal.Decimal {
	return decimal.NewFromInt(min).Div(minutesPerHour)
}
