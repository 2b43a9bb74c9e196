package dto

import "github.com/noah-isme/lms-slot-api/internal/models"

// UpsertAvailabilityRequest is the body of PUT /teachers/:id/availability.
// Times are HH:MM; a segment's times are only checked when the segment is enabled.
type UpsertAvailabilityRequest struct {
	WeekdayAvailable bool              `json:"weekday_available"`
	WeekdayStart     *models.ClockTime `json:"weekday_start"`
	WeekdayEnd       *models.ClockTime `json:"weekday_end"`
	WeekendAvailable bool              `json:"weekend_available"`
	WeekendStart     *models.ClockTime `json:"weekend_start"`
	WeekendEnd       *models.ClockTime `json:"weekend_end"`
}

// DefaultAvailability is the template clients fall back to when a teacher has
// never saved availability. Both segments start disabled.
func DefaultAvailability() UpsertAvailabilityRequest {
	weekdayStart, weekdayEnd := models.NewClockTime(9, 0), models.NewClockTime(17, 0)
	weekendStart, weekendEnd := models.NewClockTime(10, 0), models.NewClockTime(14, 0)
	return UpsertAvailabilityRequest{
		WeekdayStart: &weekdayStart,
		WeekdayEnd:   &weekdayEnd,
		WeekendStart: &weekendStart,
		WeekendEnd:   &weekendEnd,
	}
}
