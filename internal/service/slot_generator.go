package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/models"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
)

const (
	msgEmptyWindow = "start_time must be before end_time"
	msgShortWindow = "window shorter than one slot"
	msgCancelled   = "cancelled before slots were stored"
	msgStorage     = "failed to store slots for this date"
)

// SlotDay holds the candidate slots generated for one date.
type SlotDay struct {
	Date  models.Date
	Slots []models.TimeSlot
}

// SlotPlan is the expansion of a bulk request. Days are unique and ascending;
// DateErrors holds dates that produce no slots, keyed by YYYY-MM-DD.
type SlotPlan struct {
	TeacherID  string
	Start      models.ClockTime
	End        models.ClockTime
	Days       []SlotDay
	DateErrors map[string]string
}

// SlotCount returns the number of candidates across all days.
func (p *SlotPlan) SlotCount() int {
	total := 0
	for _, day := range p.Days {
		total += len(day.Slots)
	}
	return total
}

// GenerateSlots expands req into hour long candidates per date. It performs no
// I/O. Malformed input fails the whole request; an empty or short window is
// reported per date.
func GenerateSlots(req dto.BulkCreateTimeSlotsRequest, maxDates int) (*SlotPlan, error) {
	start, err := models.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidRange.Code, appErrors.ErrInvalidRange.Status, fmt.Sprintf("invalid start_time %q", req.StartTime))
	}
	end, err := models.ParseClockTime(req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidRange.Code, appErrors.ErrInvalidRange.Status, fmt.Sprintf("invalid end_time %q", req.EndTime))
	}

	dates, err := uniqueDates(req.SlotDates)
	if err != nil {
		return nil, err
	}
	if maxDates > 0 && len(dates) > maxDates {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d dates per request", maxDates))
	}

	plan := &SlotPlan{
		TeacherID:  req.TeacherID,
		Start:      start,
		End:        end,
		Days:       make([]SlotDay, 0, len(dates)),
		DateErrors: map[string]string{},
	}

	var windowErr string
	switch {
	case start >= end:
		windowErr = msgEmptyWindow
	case end.Sub(start) < models.SlotDuration:
		windowErr = msgShortWindow
	}

	for _, date := range dates {
		if windowErr != "" {
			plan.DateErrors[date.String()] = windowErr
			continue
		}
		plan.Days = append(plan.Days, SlotDay{Date: date, Slots: expandWindow(req.TeacherID, date, start, end)})
	}
	return plan, nil
}

// expandWindow walks [start, end) in whole slots; a trailing partial slot is dropped.
func expandWindow(teacherID string, date models.Date, start, end models.ClockTime) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, int(end.Sub(start)/models.SlotDuration))
	for t := start; t.Add(models.SlotDuration) <= end; t = t.Add(models.SlotDuration) {
		slots = append(slots, models.TimeSlot{
			TeacherID: teacherID,
			SlotDate:  date,
			SlotStart: t,
			SlotEnd:   t.Add(models.SlotDuration),
			Status:    models.SlotStatusAvailable,
		})
	}
	return slots
}

func uniqueDates(raw []string) ([]models.Date, error) {
	seen := make(map[string]struct{}, len(raw))
	dates := make([]models.Date, 0, len(raw))
	for _, value := range raw {
		date, err := models.ParseDate(value)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidDate.Code, appErrors.ErrInvalidDate.Status, fmt.Sprintf("invalid slot date %q", value))
		}
		key := date.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j].Time)
	})
	return dates, nil
}
