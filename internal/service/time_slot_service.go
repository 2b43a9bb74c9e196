package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/models"
	"github.com/noah-isme/lms-slot-api/internal/repository"
	"github.com/noah-isme/lms-slot-api/pkg/config"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
	"github.com/noah-isme/lms-slot-api/pkg/export"
)

type timeSlotRepository interface {
	ListByTeacher(ctx context.Context, filter models.TimeSlotFilter) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	InsertBatch(ctx context.Context, slots []models.TimeSlot) (*models.SlotInsertResult, error)
	Delete(ctx context.Context, id string) error
}

// TimeSlotService orchestrates generation, listing and deletion of teacher slots.
type TimeSlotService struct {
	users     teacherLookup
	slots     timeSlotRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.SlotsConfig
}

// NewTimeSlotService wires the slot lifecycle. cache and metrics may be nil.
func NewTimeSlotService(users teacherLookup, slots timeSlotRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg config.SlotsConfig) *TimeSlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSlotService{
		users:     users,
		slots:     slots,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// CreateBulk generates hour long slots for every requested date and stores
// them one date per transaction. Dates that yield nothing, fail to store or are
// cut off by cancellation are reported in PerDateErrors; the call only fails
// outright on invalid input, missing permissions, or when every date failed
// to store.
func (s *TimeSlotService) CreateBulk(ctx context.Context, actor *models.JWTClaims, req dto.BulkCreateTimeSlotsRequest) (*dto.BulkCreateTimeSlotsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk slot payload")
	}
	plan, err := GenerateSlots(req, s.cfg.MaxDatesPerRequest)
	if err != nil {
		return nil, err
	}
	if actor != nil && !actor.CanManageTeacher(plan.TeacherID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot create slots for another teacher")
	}
	if err := ensureTeacher(ctx, s.users, plan.TeacherID); err != nil {
		return nil, err
	}

	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	resp := dto.NewBulkCreateTimeSlotsResponse()
	for date, msg := range plan.DateErrors {
		resp.PerDateErrors[date] = msg
		s.metrics.RecordDateError("window")
	}

	attempted, failed := 0, 0
	for i, day := range plan.Days {
		if ctx.Err() != nil {
			for _, rest := range plan.Days[i:] {
				resp.PerDateErrors[rest.Date.String()] = msgCancelled
				s.metrics.RecordDateError("cancelled")
			}
			break
		}

		attempted++
		start := time.Now()
		result, err := s.slots.InsertBatch(ctx, day.Slots)
		s.metrics.ObserveDBQuery("insert_time_slots", time.Since(start))
		if err != nil {
			failed++
			reason, msg := "storage", msgStorage
			if ctx.Err() != nil {
				reason, msg = "cancelled", msgCancelled
			}
			resp.PerDateErrors[day.Date.String()] = msg
			s.metrics.RecordDateError(reason)
			s.logger.Error("bulk slot insert failed",
				zap.String("teacher_id", plan.TeacherID),
				zap.String("slot_date", day.Date.String()),
				zap.Error(err),
			)
			continue
		}

		resp.Created = append(resp.Created, result.Inserted...)
		resp.Skipped = append(resp.Skipped, result.Skipped...)
		for _, skipped := range result.Skipped {
			s.metrics.RecordSlotSkipped(string(skipped.Reason))
		}
	}

	if len(resp.Created) > 0 {
		s.metrics.RecordSlotsCreated(len(resp.Created))
		s.invalidateTeacher(plan.TeacherID)
	}
	if attempted > 0 && failed == attempted && ctx.Err() == nil {
		return nil, appErrors.Clone(appErrors.ErrStorage, "failed to store time slots")
	}

	s.logger.Info("bulk time slots processed",
		zap.String("teacher_id", plan.TeacherID),
		zap.Int("dates", len(plan.Days)+len(plan.DateErrors)),
		zap.Int("candidates", plan.SlotCount()),
		zap.Int("created", len(resp.Created)),
		zap.Int("skipped", len(resp.Skipped)),
		zap.Int("date_errors", len(resp.PerDateErrors)),
	)
	return resp, nil
}

// List returns the teacher's slots ordered by date and start time, served from
// cache when possible. The boolean reports a cache hit.
func (s *TimeSlotService) List(ctx context.Context, teacherID string, query dto.TimeSlotListQuery) ([]models.TimeSlot, bool, error) {
	filter, err := buildSlotFilter(teacherID, query)
	if err != nil {
		return nil, false, err
	}

	key := slotCacheKey(filter)
	var cached []models.TimeSlot
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	if err := ensureTeacher(ctx, s.users, teacherID); err != nil {
		return nil, false, err
	}
	slots, err := s.slots.ListByTeacher(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list time slots")
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	_ = s.cache.Set(ctx, key, slots, s.cfg.CacheTTL)
	return slots, false, nil
}

// Export renders the same listing as List in the requested format.
func (s *TimeSlotService) Export(ctx context.Context, teacherID string, query dto.TimeSlotExportQuery) (*export.File, error) {
	format, err := export.ParseFormat(query.Format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	slots, _, err := s.List(ctx, teacherID, query.TimeSlotListQuery)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Title:   "Time slots for teacher " + teacherID,
		Headers: []string{"ID", "Date", "Start", "End", "Status"},
		Rows:    make([][]string, 0, len(slots)),
	}
	for _, slot := range slots {
		data.Rows = append(data.Rows, []string{slot.ID, slot.SlotDate.String(), slot.SlotStart.String(), slot.SlotEnd.String(), string(slot.Status)})
	}
	file, err := export.Render(format, "time-slots-"+teacherID, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return file, nil
}

// Delete removes an available slot owned by the actor, or any slot for admins.
func (s *TimeSlotService) Delete(ctx context.Context, actor *models.JWTClaims, slotID string) error {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load time slot")
	}
	if actor != nil && !actor.CanManageTeacher(slot.TeacherID) {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot delete another teacher's slot")
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		case errors.Is(err, repository.ErrSlotNotAvailable):
			return appErrors.Clone(appErrors.ErrConflict, "only available slots can be deleted")
		default:
			return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete time slot")
		}
	}

	s.metrics.RecordSlotDeleted()
	s.invalidateTeacher(slot.TeacherID)
	s.logger.Info("time slot deleted", zap.String("slot_id", slotID), zap.String("teacher_id", slot.TeacherID))
	return nil
}

// invalidateTeacher drops every cached listing of the teacher. It runs on a
// fresh context so a cancelled request still clears stale entries.
func (s *TimeSlotService) invalidateTeacher(teacherID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("slots:teacher:%s:*", teacherID))
}

func buildSlotFilter(teacherID string, query dto.TimeSlotListQuery) (models.TimeSlotFilter, error) {
	filter := models.TimeSlotFilter{TeacherID: teacherID}
	if query.From != "" {
		from, err := models.ParseDate(query.From)
		if err != nil {
			return filter, appErrors.Wrap(err, appErrors.ErrInvalidDate.Code, appErrors.ErrInvalidDate.Status, "invalid from date")
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := models.ParseDate(query.To)
		if err != nil {
			return filter, appErrors.Wrap(err, appErrors.ErrInvalidDate.Code, appErrors.ErrInvalidDate.Status, "invalid to date")
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(filter.To.Time) {
		return filter, appErrors.Clone(appErrors.ErrInvalidRange, "from must not be after to")
	}
	return filter, nil
}

func slotCacheKey(filter models.TimeSlotFilter) string {
	from, to := "-", "-"
	if filter.From != nil {
		from = filter.From.String()
	}
	if filter.To != nil {
		to = filter.To.String()
	}
	return fmt.Sprintf("slots:teacher:%s:%s:%s", filter.TeacherID, from, to)
}
