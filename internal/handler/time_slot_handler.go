package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/middleware"
	"github.com/noah-isme/lms-slot-api/internal/models"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
	"github.com/noah-isme/lms-slot-api/pkg/export"
	"github.com/noah-isme/lms-slot-api/pkg/response"
)

type timeSlotService interface {
	CreateBulk(ctx context.Context, actor *models.JWTClaims, req dto.BulkCreateTimeSlotsRequest) (*dto.BulkCreateTimeSlotsResponse, error)
	List(ctx context.Context, teacherID string, query dto.TimeSlotListQuery) ([]models.TimeSlot, bool, error)
	Export(ctx context.Context, teacherID string, query dto.TimeSlotExportQuery) (*export.File, error)
	Delete(ctx context.Context, actor *models.JWTClaims, slotID string) error
}

// TimeSlotHandler exposes slot generation, listing and deletion.
type TimeSlotHandler struct {
	service timeSlotService
}

// NewTimeSlotHandler constructs the handler.
func NewTimeSlotHandler(service timeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{service: service}
}

// BulkCreate godoc
// @Summary Bulk create hour long time slots
// @Description Duplicates and overlapping slots are skipped; dates that produce nothing are listed in per_date_errors.
// @Tags TimeSlots
// @Accept json
// @Produce json
// @Param payload body dto.BulkCreateTimeSlotsRequest true "Dates and window"
// @Success 201 {object} response.Envelope{data=dto.BulkCreateTimeSlotsResponse}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /time-slots/bulk [post]
func (h *TimeSlotHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk slot payload"))
		return
	}
	result, err := h.service.CreateBulk(c.Request.Context(), middleware.ClaimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, map[string]interface{}{
		"created": len(result.Created),
		"skipped": len(result.Skipped),
		"errors":  len(result.PerDateErrors),
	})
}

// List godoc
// @Summary List a teacher's time slots
// @Tags TimeSlots
// @Produce json
// @Param id path string true "Teacher ID"
// @Param from query string false "First date, YYYY-MM-DD"
// @Param to query string false "Last date, YYYY-MM-DD"
// @Success 200 {object} response.Envelope{data=[]models.TimeSlot}
// @Security BearerAuth
// @Router /teachers/{id}/time-slots [get]
func (h *TimeSlotHandler) List(c *gin.Context) {
	var query dto.TimeSlotListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	slots, hit, err := h.service.List(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	middleware.SetMeta(c, "count", len(slots))
	response.JSON(c, http.StatusOK, slots, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download a teacher's time slots
// @Tags TimeSlots
// @Produce text/csv,application/pdf
// @Param id path string true "Teacher ID"
// @Param format query string false "csv (default) or pdf"
// @Param from query string false "First date, YYYY-MM-DD"
// @Param to query string false "Last date, YYYY-MM-DD"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /teachers/{id}/time-slots/export [get]
func (h *TimeSlotHandler) Export(c *gin.Context) {
	var query dto.TimeSlotExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}

// Delete godoc
// @Summary Delete an available time slot
// @Tags TimeSlots
// @Param id path string true "Slot ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /time-slots/{id} [delete]
func (h *TimeSlotHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.ClaimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
