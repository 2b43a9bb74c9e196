package models

import "time"

// TeacherAvailability is a teacher's recurring weekly availability template.
// Exactly one row exists per teacher once it has been saved.
type TeacherAvailability struct {
	ID               string     `db:"id" json:"id"`
	TeacherID        string     `db:"teacher_id" json:"teacher_id"`
	WeekdayAvailable bool       `db:"weekday_available" json:"weekday_available"`
	WeekdayStart     *ClockTime `db:"weekday_start" json:"weekday_start"`
	WeekdayEnd       *ClockTime `db:"weekday_end" json:"weekday_end"`
	WeekendAvailable bool       `db:"weekend_available" json:"weekend_available"`
	WeekendStart     *ClockTime `db:"weekend_start" json:"weekend_start"`
	WeekendEnd       *ClockTime `db:"weekend_end" json:"weekend_end"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
