package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/middleware"
	"github.com/noah-isme/lms-slot-api/internal/models"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
	"github.com/noah-isme/lms-slot-api/pkg/export"
)

type timeSlotServiceMock struct {
	bulkResp  *dto.BulkCreateTimeSlotsResponse
	slots     []models.TimeSlot
	cacheHit  bool
	file      *export.File
	err       error
	actor     *models.JWTClaims
	bulkReq   dto.BulkCreateTimeSlotsRequest
	listQuery dto.TimeSlotListQuery
	deletedID string
}

func (m *timeSlotServiceMock) CreateBulk(ctx context.Context, actor *models.JWTClaims, req dto.BulkCreateTimeSlotsRequest) (*dto.BulkCreateTimeSlotsResponse, error) {
	m.actor = actor
	m.bulkReq = req
	return m.bulkResp, m.err
}

func (m *timeSlotServiceMock) List(ctx context.Context, teacherID string, query dto.TimeSlotListQuery) ([]models.TimeSlot, bool, error) {
	m.listQuery = query
	return m.slots, m.cacheHit, m.err
}

func (m *timeSlotServiceMock) Export(ctx context.Context, teacherID string, query dto.TimeSlotExportQuery) (*export.File, error) {
	return m.file, m.err
}

func (m *timeSlotServiceMock) Delete(ctx context.Context, actor *models.JWTClaims, slotID string) error {
	m.actor = actor
	m.deletedID = slotID
	return m.err
}

func TestTimeSlotHandlerBulkCreate(t *testing.T) {
	resp := dto.NewBulkCreateTimeSlotsResponse()
	resp.Created = append(resp.Created, models.TimeSlot{ID: "s1", TeacherID: "t1", SlotDate: models.NewDate(2024, 1, 1), SlotStart: models.NewClockTime(9, 0), SlotEnd: models.NewClockTime(10, 0), Status: models.SlotStatusAvailable})
	resp.PerDateErrors["2024-01-02"] = "window shorter than one slot"
	svc := &timeSlotServiceMock{bulkResp: resp}
	body := []byte(`{"teacher_id":"t1","slot_dates":["2024-01-01","2024-01-02"],"start_time":"09:00","end_time":"10:00"}`)
	c, w := newContext(http.MethodPost, "/time-slots/bulk", body, nil)
	claims := &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher}
	c.Set(middleware.ContextUserKey, claims)

	NewTimeSlotHandler(svc).BulkCreate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Same(t, claims, svc.actor)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, svc.bulkReq.SlotDates)

	var envelope struct {
		Data struct {
			Created []struct {
				SlotDate  string `json:"slot_date"`
				SlotStart string `json:"slot_start"`
				SlotEnd   string `json:"slot_end"`
				Status    string `json:"status"`
			} `json:"created"`
			Skipped       []interface{}     `json:"skipped"`
			PerDateErrors map[string]string `json:"per_date_errors"`
		} `json:"data"`
		Meta map[string]float64 `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Created, 1)
	assert.Equal(t, "2024-01-01", envelope.Data.Created[0].SlotDate)
	assert.Equal(t, "09:00", envelope.Data.Created[0].SlotStart)
	assert.Equal(t, "available", envelope.Data.Created[0].Status)
	assert.NotNil(t, envelope.Data.Skipped)
	assert.Equal(t, "window shorter than one slot", envelope.Data.PerDateErrors["2024-01-02"])
	assert.Equal(t, float64(1), envelope.Meta["created"])
}

func TestTimeSlotHandlerBulkCreateInvalidBody(t *testing.T) {
	svc := &timeSlotServiceMock{}
	c, w := newContext(http.MethodPost, "/time-slots/bulk", []byte(`{"slot_dates":"2024-01-01"}`), nil)

	NewTimeSlotHandler(svc).BulkCreate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.bulkReq.TeacherID)
}

func TestTimeSlotHandlerBulkCreateMapsDomainErrors(t *testing.T) {
	cases := map[*appErrors.Error]int{
		appErrors.ErrInvalidDate:  http.StatusBadRequest,
		appErrors.ErrInvalidRange: http.StatusBadRequest,
		appErrors.ErrForbidden:    http.StatusForbidden,
		appErrors.ErrNotFound:     http.StatusNotFound,
	}
	for appErr, status := range cases {
		svc := &timeSlotServiceMock{err: appErr}
		c, w := newContext(http.MethodPost, "/time-slots/bulk", []byte(`{"teacher_id":"t1"}`), nil)
		NewTimeSlotHandler(svc).BulkCreate(c)
		assert.Equal(t, status, w.Code, appErr.Code)
	}
}

func TestTimeSlotHandlerList(t *testing.T) {
	svc := &timeSlotServiceMock{slots: []models.TimeSlot{{ID: "s1"}, {ID: "s2"}}, cacheHit: true}
	c, w := newContext(http.MethodGet, "/teachers/t1/time-slots?from=2024-01-01&to=2024-01-31", nil, gin.Params{{Key: "id", Value: "t1"}})

	NewTimeSlotHandler(svc).List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.TimeSlotListQuery{From: "2024-01-01", To: "2024-01-31"}, svc.listQuery)
	var envelope struct {
		Data []models.TimeSlot     `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, float64(2), envelope.Meta["count"])
}

func TestTimeSlotHandlerExport(t *testing.T) {
	svc := &timeSlotServiceMock{file: &export.File{Name: "time-slots-t1.csv", ContentType: "text/csv", Body: []byte("ID,Date\n")}}
	c, w := newContext(http.MethodGet, "/teachers/t1/time-slots/export?format=csv", nil, gin.Params{{Key: "id", Value: "t1"}})

	NewTimeSlotHandler(svc).Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="time-slots-t1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID,Date\n", w.Body.String())
}

func TestTimeSlotHandlerDelete(t *testing.T) {
	svc := &timeSlotServiceMock{}
	c, w := newContext(http.MethodDelete, "/time-slots/s1", nil, gin.Params{{Key: "id", Value: "s1"}})

	NewTimeSlotHandler(svc).Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "s1", svc.deletedID)
	assert.Nil(t, svc.actor)
}

func TestTimeSlotHandlerDeleteConflict(t *testing.T) {
	svc := &timeSlotServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "only available slots can be deleted")}
	c, w := newContext(http.MethodDelete, "/time-slots/s1", nil, gin.Params{{Key: "id", Value: "s1"}})

	NewTimeSlotHandler(svc).Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}
