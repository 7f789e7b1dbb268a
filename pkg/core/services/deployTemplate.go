package services

import (
	"context"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

// DeployRosterTemplate expands a weekly roster pattern into one concrete
// shift per matching calendar date within [startDate, endDate] and delegates
// the generated list to BulkCreateShifts. Template defaults do not bypass
// availability rules: every generated occurrence is individually
// conflict-checked like any other shift.
func DeployRosterTemplate(ctx context.Context, store CreateShiftStore, detector ConflictDetector, logger *zap.Logger, template model.RosterTemplate, startDate, endDate time.Time) (*BulkResult, error) {
	if template.OrganizationID == "" {
		return nil, db.NewValidationError("organizationId", "is required")
	}
	if endDate.Before(startDate) {
		return nil, db.NewValidationError("endDate", "must not be before startDate")
	}

	startMinutes, err := model.MinutesOfDay(template.Pattern.StartTime)
	if err != nil {
		return nil, db.NewValidationError("pattern.startTime", err.Error())
	}
	endMinutes, err := model.MinutesOfDay(template.Pattern.EndTime)
	if err != nil {
		return nil, db.NewValidationError("pattern.endTime", err.Error())
	}
	if endMinutes <= startMinutes {
		return nil, db.NewValidationError("pattern.endTime", "must be after pattern.startTime")
	}

	dates, err := expandWeeklyPattern(template.Pattern.DayOfWeek, startDate, endDate)
	if err != nil {
		return nil, err
	}

	logger.Info("Deploying roster template",
		zap.String("organization_id", template.OrganizationID),
		zap.Stringer("day_of_week", template.Pattern.DayOfWeek),
		zap.Int("occurrences", len(dates)))

	specs := make([]model.ShiftSpec, 0, len(dates))
	for _, date := range dates {
		specs = append(specs, model.ShiftSpec{
			EmployeeID:     template.DefaultEmployeeID,
			EmployeeEmail:  template.DefaultEmployeeEmail,
			ClientID:       template.DefaultClientID,
			ClientEmail:    template.DefaultClientEmail,
			OrganizationID: template.OrganizationID,
			StartTime:      date.Add(time.Duration(startMinutes) * time.Minute),
			EndTime:        date.Add(time.Duration(endMinutes) * time.Minute),
			BreakMinutes:   template.Pattern.BreakMinutes,
			Notes:          templateNotes(template),
		})
	}

	return BulkCreateShifts(ctx, store, detector, logger, specs), nil
}

// expandWeeklyPattern lists the midnight UTC instants of every date in
// [startDate, endDate] falling on the given weekday.
func expandWeeklyPattern(day time.Weekday, startDate, endDate time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekday(day)},
		Dtstart:   truncateToDay(startDate),
		Until:     truncateToDay(endDate),
	})
	if err != nil {
		return nil, db.NewValidationError("pattern.dayOfWeek", err.Error())
	}
	return rule.All(), nil
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func rruleWeekday(day time.Weekday) rrule.Weekday {
	switch day {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}

func templateNotes(template model.RosterTemplate) string {
	if len(template.SupportItems) == 0 {
		return ""
	}
	return "Support items: " + strings.Join(template.SupportItems, ", ")
}
