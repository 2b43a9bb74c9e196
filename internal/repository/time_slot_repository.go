package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-slot-api/internal/models"
)

// ErrSlotNotAvailable is returned by Delete when the slot is booked or blocked.
var ErrSlotNotAvailable = errors.New("time slot is not available")

// TimeSlotRepository persists generated teacher time slots.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs the repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

const timeSlotColumns = `id, teacher_id, slot_date, slot_start, slot_end, status, created_at`

// ListByTeacher returns the teacher's slots ordered by date then start time.
func (r *TimeSlotRepository) ListByTeacher(ctx context.Context, filter models.TimeSlotFilter) ([]models.TimeSlot, error) {
	conditions := []string{"teacher_id = $1"}
	args := []interface{}{filter.TeacherID}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("slot_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("slot_date <= $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM teacher_time_slots WHERE %s ORDER BY slot_date ASC, slot_start ASC", timeSlotColumns, strings.Join(conditions, " AND "))
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

// FindByID returns a single slot or sql.ErrNoRows.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + ` FROM teacher_time_slots WHERE id = $1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		if err = notFoundOnMalformedID(err); err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find time slot: %w", err)
	}
	return &slot, nil
}

type slotDayKey struct {
	teacherID string
	date      string
}

func (k slotDayKey) lockKey() string {
	return k.teacherID + "|" + k.date
}

// InsertBatch stores slots in a single transaction. Each (teacher, date) pair
// is serialised with a transaction scoped advisory lock, taken in sorted order.
// Candidates that repeat or overlap a stored slot are skipped, not failed.
// Any storage error rolls the whole batch back.
func (r *TimeSlotRepository) InsertBatch(ctx context.Context, slots []models.TimeSlot) (*models.SlotInsertResult, error) {
	result := &models.SlotInsertResult{}
	if len(slots) == 0 {
		return result, nil
	}

	groups := make(map[slotDayKey][]models.TimeSlot)
	keys := make([]slotDayKey, 0)
	for _, slot := range slots {
		key := slotDayKey{teacherID: slot.TeacherID, date: slot.SlotDate.String()}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], slot)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].lockKey() < keys[j].lockKey()
	})

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert time slots: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, key := range keys {
		if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key.lockKey()); err != nil {
			return nil, fmt.Errorf("lock time slots %s: %w", key.lockKey(), err)
		}

		var existing []models.TimeSlot
		if err = tx.SelectContext(ctx, &existing, `SELECT `+timeSlotColumns+` FROM teacher_time_slots WHERE teacher_id = $1 AND slot_date = $2 FOR UPDATE`, key.teacherID, key.date); err != nil {
			return nil, fmt.Errorf("load time slots %s: %w", key.lockKey(), err)
		}

		for _, slot := range groups[key] {
			if reason, clash := classify(slot, existing); clash {
				result.Skipped = append(result.Skipped, slot.Skip(reason))
				continue
			}

			slot.ID = uuid.NewString()
			if slot.Status == "" {
				slot.Status = models.SlotStatusAvailable
			}
			err = tx.QueryRowxContext(ctx, `INSERT INTO teacher_time_slots (id, teacher_id, slot_date, slot_start, slot_end, status)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (teacher_id, slot_date, slot_start) DO NOTHING
				RETURNING created_at`,
				slot.ID, slot.TeacherID, slot.SlotDate, slot.SlotStart, slot.SlotEnd, slot.Status,
			).Scan(&slot.CreatedAt)
			if errors.Is(err, sql.ErrNoRows) {
				err = nil
				result.Skipped = append(result.Skipped, slot.Skip(models.SkipReasonDuplicate))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("insert time slot %s %s: %w", key.lockKey(), slot.SlotStart, err)
			}
			existing = append(existing, slot)
			result.Inserted = append(result.Inserted, slot)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit time slots: %w", err)
	}
	return result, nil
}

func classify(candidate models.TimeSlot, existing []models.TimeSlot) (models.SkipReason, bool) {
	for _, slot := range existing {
		if slot.SlotStart == candidate.SlotStart {
			return models.SkipReasonDuplicate, true
		}
		if slot.Overlaps(candidate) {
			return models.SkipReasonOverlap, true
		}
	}
	return "", false
}

// Delete removes an available slot. It returns sql.ErrNoRows when the slot does
// not exist and ErrSlotNotAvailable when it is booked or blocked. The row is
// locked first so a concurrent booking either commits before and wins, or waits.
func (r *TimeSlotRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete time slot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var slot models.TimeSlot
	if err = tx.GetContext(ctx, &slot.Status, `SELECT status FROM teacher_time_slots WHERE id = $1 FOR UPDATE`, id); err != nil {
		if err = notFoundOnMalformedID(err); err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("lock time slot: %w", err)
	}
	if !slot.Deletable() {
		err = ErrSlotNotAvailable
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM teacher_time_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete time slot: %w", err)
	}
	return nil
}
