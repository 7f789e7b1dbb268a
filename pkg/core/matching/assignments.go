package matching

import (
	"fmt"
	"time"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// assignmentConflicts compares active legacy schedule entries against the
// proposed window in minute-of-day space. Legacy data carries no timezone, so
// the comparison is calendar/local-time based rather than instant based.
// Entries with unparseable dates or times are skipped.
func assignmentConflicts(assignments []model.ClientAssignment, start, end time.Time) []model.Conflict {
	proposedDate := model.DayKey(start)
	proposedStart := model.MinuteOfDay(start)
	proposedEnd := model.MinuteOfDay(end)

	var conflicts []model.Conflict
	for _, assignment := range assignments {
		if !assignment.IsActive {
			continue
		}
		for _, entry := range assignment.Schedule {
			entryDate, err := model.NormalizeDate(entry.Date)
			if err != nil || entryDate != proposedDate {
				continue
			}

			entryStart, err := model.MinutesOfDay(entry.StartTime)
			if err != nil {
				continue
			}
			entryEnd, err := model.MinutesOfDay(entry.EndTime)
			if err != nil {
				continue
			}

			if minutesOverlap(proposedStart, proposedEnd, entryStart, entryEnd) {
				conflicts = append(conflicts, model.Conflict{
					Source: model.ConflictSourceAssignment,
					Detail: fmt.Sprintf("recurring schedule with %s on %s from %s to %s",
						assignment.ClientEmail, entryDate, entry.StartTime, entry.EndTime),
				})
			}
		}
	}
	return conflicts
}

// shiftConflict describes an overlapping scheduled shift.
func shiftConflict(shift model.Shift) model.Conflict {
	return model.Conflict{
		Source:  model.ConflictSourceShift,
		ShiftID: shift.ID,
		Detail: fmt.Sprintf("existing %s shift %s to %s",
			shift.Status,
			shift.StartTime.UTC().Format(time.RFC3339),
			shift.EndTime.UTC().Format(time.RFC3339)),
	}
}
