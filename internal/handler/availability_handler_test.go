package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/models"
	"github.com/noah-isme/lms-slot-api/internal/service"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
)

type availabilityServiceMock struct {
	resp      *models.TeacherAvailability
	err       error
	teacherID string
	req       dto.UpsertAvailabilityRequest
}

func (m *availabilityServiceMock) Get(ctx context.Context, teacherID string) (*models.TeacherAvailability, error) {
	m.teacherID = teacherID
	return m.resp, m.err
}

func (m *availabilityServiceMock) Upsert(ctx context.Context, teacherID string, req dto.UpsertAvailabilityRequest) (*models.TeacherAvailability, error) {
	m.teacherID = teacherID
	m.req = req
	return m.resp, m.err
}

func newContext(method, target string, body []byte, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	return c, w
}

func TestAvailabilityHandlerGetNotSet(t *testing.T) {
	svc := &availabilityServiceMock{err: service.ErrAvailabilityNotSet}
	handler := NewAvailabilityHandler(svc)
	c, w := newContext(http.MethodGet, "/teachers/t1/availability", nil, gin.Params{{Key: "id", Value: "t1"}})

	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "t1", svc.teacherID)
	var body struct {
		Error appErrors.Error `json:"error"`
		Meta  struct {
			Defaults dto.UpsertAvailabilityRequest `json:"defaults"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "availability not set", body.Error.Message)
	assert.False(t, body.Meta.Defaults.WeekdayAvailable)
	require.NotNil(t, body.Meta.Defaults.WeekdayStart)
	assert.Equal(t, "09:00", body.Meta.Defaults.WeekdayStart.String())
	require.NotNil(t, body.Meta.Defaults.WeekendEnd)
	assert.Equal(t, "14:00", body.Meta.Defaults.WeekendEnd.String())
}

func TestAvailabilityHandlerGetUnknownTeacherHasNoDefaults(t *testing.T) {
	svc := &availabilityServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "teacher not found")}
	c, w := newContext(http.MethodGet, "/teachers/t9/availability", nil, gin.Params{{Key: "id", Value: "t9"}})

	NewAvailabilityHandler(svc).Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "defaults")
}

func TestAvailabilityHandlerGet(t *testing.T) {
	start, end := models.NewClockTime(9, 0), models.NewClockTime(17, 0)
	svc := &availabilityServiceMock{resp: &models.TeacherAvailability{TeacherID: "t1", WeekdayAvailable: true, WeekdayStart: &start, WeekdayEnd: &end}}
	c, w := newContext(http.MethodGet, "/teachers/t1/availability", nil, gin.Params{{Key: "id", Value: "t1"}})

	NewAvailabilityHandler(svc).Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"weekday_start":"09:00"`)
	assert.Contains(t, w.Body.String(), `"weekend_start":null`)
}

func TestAvailabilityHandlerUpsert(t *testing.T) {
	svc := &availabilityServiceMock{resp: &models.TeacherAvailability{TeacherID: "t1"}}
	body := []byte(`{"weekday_available":true,"weekday_start":"08:00","weekday_end":"12:00","weekend_available":false}`)
	c, w := newContext(http.MethodPut, "/teachers/t1/availability", body, gin.Params{{Key: "id", Value: "t1"}})

	NewAvailabilityHandler(svc).Upsert(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.req.WeekdayStart)
	assert.Equal(t, models.NewClockTime(8, 0), *svc.req.WeekdayStart)
	assert.Nil(t, svc.req.WeekendStart)
}

func TestAvailabilityHandlerUpsertRejectsMalformedTime(t *testing.T) {
	svc := &availabilityServiceMock{}
	body := []byte(`{"weekday_available":true,"weekday_start":"8am","weekday_end":"12:00"}`)
	c, w := newContext(http.MethodPut, "/teachers/t1/availability", body, gin.Params{{Key: "id", Value: "t1"}})

	NewAvailabilityHandler(svc).Upsert(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.teacherID)
}
