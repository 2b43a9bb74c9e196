package dto

import "github.com/noah-isme/lms-slot-api/internal/models"

// BulkCreateTimeSlotsRequest is the body of POST /time-slots/bulk. Dates and
// times stay raw strings so malformed values map onto INVALID_DATE and
// INVALID_RANGE instead of a generic decode failure.
type BulkCreateTimeSlotsRequest struct {
	TeacherID string   `json:"teacher_id" validate:"required"`
	SlotDates []string `json:"slot_dates" validate:"required,min=1,dive,required"`
	StartTime string   `json:"start_time" validate:"required"`
	EndTime   string   `json:"end_time" validate:"required"`
}

// BulkCreateTimeSlotsResponse summarises a bulk creation. PerDateErrors is
// keyed by YYYY-MM-DD.
type BulkCreateTimeSlotsResponse struct {
	Created       []models.TimeSlot    `json:"created"`
	Skipped       []models.SkippedSlot `json:"skipped"`
	PerDateErrors map[string]string    `json:"per_date_errors"`
}

// NewBulkCreateTimeSlotsResponse returns a response with non-nil collections
// so clients always receive arrays and objects.
func NewBulkCreateTimeSlotsResponse() *BulkCreateTimeSlotsResponse {
	return &BulkCreateTimeSlotsResponse{
		Created:       []models.TimeSlot{},
		Skipped:       []models.SkippedSlot{},
		PerDateErrors: map[string]string{},
	}
}

// TimeSlotListQuery holds the optional inclusive date bounds of a listing.
type TimeSlotListQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// TimeSlotExportQuery extends the listing query with an output format.
type TimeSlotExportQuery struct {
	TimeSlotListQuery
	Format string `form:"format"`
}
