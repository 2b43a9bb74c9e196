package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-slot-api/internal/models"
)

func TestAvailabilityRepositoryGetByTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "weekday_available", "weekday_start", "weekday_end", "weekend_available", "weekend_start", "weekend_end", "created_at", "updated_at"}).
		AddRow("av-1", "t1", true, "09:00:00", "17:00:00", false, nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + availabilityColumns + " FROM teacher_availability WHERE teacher_id = $1")).
		WithArgs("t1").
		WillReturnRows(rows)

	availability, err := repo.GetByTeacher(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, availability.WeekdayAvailable)
	require.NotNil(t, availability.WeekdayStart)
	assert.Equal(t, "09:00", availability.WeekdayStart.String())
	assert.Equal(t, "17:00", availability.WeekdayEnd.String())
	assert.Nil(t, availability.WeekendStart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryGetByTeacherMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectQuery("FROM teacher_availability").WithArgs("t1").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByTeacher(context.Background(), "t1")
	assert.Equal(t, sql.ErrNoRows, err)

	mock.ExpectQuery("FROM teacher_availability").WithArgs("abc").WillReturnError(&pq.Error{Code: pqInvalidTextRepresentation})
	_, err = repo.GetByTeacher(context.Background(), "abc")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	start, end := models.NewClockTime(9, 0), models.NewClockTime(12, 0)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO teacher_availability .* ON CONFLICT \\(teacher_id\\) DO UPDATE").
		WithArgs(sqlmock.AnyArg(), "t1", true, "09:00:00", "12:00:00", false, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("existing-id", created))

	availability := &models.TeacherAvailability{TeacherID: "t1", WeekdayAvailable: true, WeekdayStart: &start, WeekdayEnd: &end}
	require.NoError(t, repo.Upsert(context.Background(), availability))
	assert.Equal(t, "existing-id", availability.ID)
	assert.Equal(t, created, availability.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryUpsertError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectQuery("INSERT INTO teacher_availability").WillReturnError(errors.New("boom"))

	err := repo.Upsert(context.Background(), &models.TeacherAvailability{TeacherID: "t1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert teacher availability")
}
