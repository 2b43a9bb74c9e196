package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-slot-api/internal/models"
)

// AvailabilityRepository persists the single availability template of each teacher.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const availabilityColumns = `id, teacher_id, weekday_available, weekday_start, weekday_end, weekend_available, weekend_start, weekend_end, created_at, updated_at`

// GetByTeacher returns the stored availability or sql.ErrNoRows.
func (r *AvailabilityRepository) GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherAvailability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM teacher_availability WHERE teacher_id = $1`
	var availability models.TeacherAvailability
	if err := r.db.GetContext(ctx, &availability, query, teacherID); err != nil {
		if err = notFoundOnMalformedID(err); err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get teacher availability: %w", err)
	}
	return &availability, nil
}

// Upsert inserts the teacher's availability or overwrites the existing row.
// The stored id and created_at are written back into availability.
func (r *AvailabilityRepository) Upsert(ctx context.Context, availability *models.TeacherAvailability) error {
	if availability.ID == "" {
		availability.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if availability.CreatedAt.IsZero() {
		availability.CreatedAt = now
	}
	availability.UpdatedAt = now

	const query = `INSERT INTO teacher_availability (id, teacher_id, weekday_available, weekday_start, weekday_end, weekend_available, weekend_start, weekend_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (teacher_id) DO UPDATE
		SET weekday_available = EXCLUDED.weekday_available,
		    weekday_start = EXCLUDED.weekday_start,
		    weekday_end = EXCLUDED.weekday_end,
		    weekend_available = EXCLUDED.weekend_available,
		    weekend_start = EXCLUDED.weekend_start,
		    weekend_end = EXCLUDED.weekend_end,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		availability.ID,
		availability.TeacherID,
		availability.WeekdayAvailable,
		availability.WeekdayStart,
		availability.WeekdayEnd,
		availability.WeekendAvailable,
		availability.WeekendStart,
		availability.WeekendEnd,
		availability.CreatedAt,
		availability.UpdatedAt,
	)
	if err := row.Scan(&availability.ID, &availability.CreatedAt); err != nil {
		return fmt.Errorf("upsert teacher availability: %w", err)
	}
	return nil
}
