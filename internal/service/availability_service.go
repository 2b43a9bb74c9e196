package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/models"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
)

// ErrAvailabilityNotSet is returned by Get for a teacher that never saved
// availability. It carries the NOT_FOUND code.
var ErrAvailabilityNotSet = appErrors.Clone(appErrors.ErrNotFound, "availability not set")

type availabilityRepository interface {
	GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherAvailability, error)
	Upsert(ctx context.Context, availability *models.TeacherAvailability) error
}

type teacherLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AvailabilityService manages the weekly availability template of teachers.
type AvailabilityService struct {
	users  teacherLookup
	repo   availabilityRepository
	logger *zap.Logger
}

// NewAvailabilityService builds the service.
func NewAvailabilityService(users teacherLookup, repo availabilityRepository, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{users: users, repo: repo, logger: logger}
}

// Get returns the stored availability. A teacher that never saved one yields
// NOT_FOUND "availability not set"; callers fall back to defaults.
func (s *AvailabilityService) Get(ctx context.Context, teacherID string) (*models.TeacherAvailability, error) {
	if err := ensureTeacher(ctx, s.users, teacherID); err != nil {
		return nil, err
	}
	availability, err := s.repo.GetByTeacher(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAvailabilityNotSet
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load availability")
	}
	return availability, nil
}

// Upsert validates and overwrites the teacher's single availability record.
func (s *AvailabilityService) Upsert(ctx context.Context, teacherID string, req dto.UpsertAvailabilityRequest) (*models.TeacherAvailability, error) {
	if err := validateSegment("weekday", req.WeekdayAvailable, req.WeekdayStart, req.WeekdayEnd); err != nil {
		return nil, err
	}
	if err := validateSegment("weekend", req.WeekendAvailable, req.WeekendStart, req.WeekendEnd); err != nil {
		return nil, err
	}
	if err := ensureTeacher(ctx, s.users, teacherID); err != nil {
		return nil, err
	}

	availability := &models.TeacherAvailability{
		TeacherID:        teacherID,
		WeekdayAvailable: req.WeekdayAvailable,
		WeekdayStart:     req.WeekdayStart,
		WeekdayEnd:       req.WeekdayEnd,
		WeekendAvailable: req.WeekendAvailable,
		WeekendStart:     req.WeekendStart,
		WeekendEnd:       req.WeekendEnd,
	}
	if err := s.repo.Upsert(ctx, availability); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to save availability")
	}
	s.logger.Info("teacher availability saved",
		zap.String("teacher_id", teacherID),
		zap.Bool("weekday_available", availability.WeekdayAvailable),
		zap.Bool("weekend_available", availability.WeekendAvailable),
	)
	return availability, nil
}

// validateSegment only inspects enabled segments; disabled ones are stored as sent.
func validateSegment(name string, enabled bool, start, end *models.ClockTime) error {
	if !enabled {
		return nil
	}
	if start == nil || end == nil {
		return appErrors.Clone(appErrors.ErrValidation, name+"_start and "+name+"_end are required when "+name+"_available is true")
	}
	if *start >= *end {
		return appErrors.Clone(appErrors.ErrValidation, name+"_start must be before "+name+"_end")
	}
	return nil
}

// ensureTeacher resolves teacherID to an active user holding the teacher role.
func ensureTeacher(ctx context.Context, users teacherLookup, teacherID string) error {
	user, err := users.FindByID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load teacher")
	}
	if !user.Active || !user.IsTeacher() {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return nil
}
