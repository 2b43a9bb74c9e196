package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-slot-api/internal/repository"
	"github.com/noah-isme/lms-slot-api/internal/service"
	"github.com/noah-isme/lms-slot-api/pkg/config"
)

func assertNotFound(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusNotFound, w.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestMalformedIDsAnswerNotFound(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlmock")

	users := repository.NewUserRepository(db)
	slots := NewTimeSlotHandler(service.NewTimeSlotService(users, repository.NewTimeSlotRepository(db), nil, nil, nil, nil, config.SlotsConfig{MaxDatesPerRequest: 62}))
	availability := NewAvailabilityHandler(service.NewAvailabilityService(users, repository.NewAvailabilityRepository(db), nil))
	malformed := &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	params := gin.Params{{Key: "id", Value: "abc"}}

	mock.ExpectQuery("FROM teacher_time_slots WHERE id = \\$1").WithArgs("abc").WillReturnError(malformed)
	c, w := newContext(http.MethodDelete, "/time-slots/abc", nil, params)
	slots.Delete(c)
	assertNotFound(t, w)

	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs("abc").WillReturnError(malformed)
	c, w = newContext(http.MethodGet, "/teachers/abc/availability", nil, params)
	availability.Get(c)
	assertNotFound(t, w)

	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs("abc").WillReturnError(malformed)
	c, w = newContext(http.MethodGet, "/teachers/abc/time-slots", nil, params)
	slots.List(c)
	assertNotFound(t, w)

	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs("abc").WillReturnError(malformed)
	body := []byte(`{"teacher_id":"abc","slot_dates":["2024-01-01"],"start_time":"09:00","end_time":"10:00"}`)
	c, w = newContext(http.MethodPost, "/time-slots/bulk", body, nil)
	slots.BulkCreate(c)
	assertNotFound(t, w)

	assert.NoError(t, mock.ExpectationsWereMet())
}
