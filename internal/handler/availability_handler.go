package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-slot-api/internal/dto"
	"github.com/noah-isme/lms-slot-api/internal/models"
	"github.com/noah-isme/lms-slot-api/internal/service"
	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
	"github.com/noah-isme/lms-slot-api/pkg/response"
)

type availabilityService interface {
	Get(ctx context.Context, teacherID string) (*models.TeacherAvailability, error)
	Upsert(ctx context.Context, teacherID string, req dto.UpsertAvailabilityRequest) (*models.TeacherAvailability, error)
}

// AvailabilityHandler exposes /teachers/:id/availability.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Get godoc
// @Summary Get teacher availability
// @Description Returns 404 when the teacher never saved availability; meta.defaults then holds the template clients fall back to.
// @Tags Availability
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope{data=models.TeacherAvailability}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers/{id}/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	availability, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if isAvailabilityNotSet(err) {
			response.Error(c, err, map[string]interface{}{"defaults": dto.DefaultAvailability()})
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability)
}

// Upsert godoc
// @Summary Create or overwrite teacher availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.UpsertAvailabilityRequest true "Availability payload"
// @Success 200 {object} response.Envelope{data=models.TeacherAvailability}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers/{id}/availability [put]
func (h *AvailabilityHandler) Upsert(c *gin.Context) {
	var req dto.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	availability, err := h.service.Upsert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability)
}

func isAvailabilityNotSet(err error) bool {
	var appErr *appErrors.Error
	return errors.As(err, &appErr) && appErr == service.ErrAvailabilityNotSet
}
