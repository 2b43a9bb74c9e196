package models

import "time"

// SlotStatus is the booking state of a time slot.
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// SlotDuration is the fixed length of every generated slot.
const SlotDuration = time.Hour

// TimeSlot is one bookable interval [SlotStart, SlotEnd) of a teacher on SlotDate.
type TimeSlot struct {
	ID        string     `db:"id" json:"id"`
	TeacherID string     `db:"teacher_id" json:"teacher_id"`
	SlotDate  Date       `db:"slot_date" json:"slot_date"`
	SlotStart ClockTime  `db:"slot_start" json:"slot_start"`
	SlotEnd   ClockTime  `db:"slot_end" json:"slot_end"`
	Status    SlotStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Overlaps reports whether two slots of the same teacher and day intersect.
// Intervals are half-open, so back-to-back slots do not overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	if s.TeacherID != o.TeacherID || !s.SlotDate.Equal(o.SlotDate.Time) {
		return false
	}
	return s.SlotStart < o.SlotEnd && o.SlotStart < s.SlotEnd
}

// Deletable reports whether the slot may be removed by its owner.
func (s TimeSlot) Deletable() bool {
	return s.Status == SlotStatusAvailable
}

// TimeSlotFilter narrows slot listings. Bounds are inclusive.
type TimeSlotFilter struct {
	TeacherID string
	From      *Date
	To        *Date
}

// SkipReason explains why a generated slot was not persisted.
type SkipReason string

const (
	SkipReasonDuplicate SkipReason = "duplicate"
	SkipReasonOverlap   SkipReason = "overlap"
)

// SkippedSlot is a generated candidate that already existed or collided with
// a stored slot.
type SkippedSlot struct {
	SlotDate  Date       `json:"slot_date"`
	SlotStart ClockTime  `json:"slot_start"`
	SlotEnd   ClockTime  `json:"slot_end"`
	Reason    SkipReason `json:"reason"`
}

// SlotInsertResult is the outcome of one batch insert.
type SlotInsertResult struct {
	Inserted []TimeSlot
	Skipped  []SkippedSlot
}

// Skip converts a candidate into a skipped entry.
func (s TimeSlot) Skip(reason SkipReason) SkippedSlot {
	return SkippedSlot{SlotDate: s.SlotDate, SlotStart: s.SlotStart, SlotEnd: s.SlotEnd, Reason: reason}
}
