package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/calbook-api/internal/service"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
	"github.com/noah-isme/calbook-api/pkg/response"
)

// AvailabilityHandler manages schedules and their slots.
type AvailabilityHandler struct {
	service *service.ScheduleService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(svc *service.ScheduleService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// List godoc
// @Summary List all availability as flat schedule+slot rows
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	rows, err := h.service.ListAvailability(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// GetSchedule godoc
// @Summary Get a schedule with its slots
// @Tags Availability
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /availability/schedules/{id} [get]
func (h *AvailabilityHandler) GetSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	schedule, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// CreateSchedule godoc
// @Summary Create a schedule with slots
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /availability/schedules [post]
func (h *AvailabilityHandler) CreateSchedule(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// UpdateSchedule godoc
// @Summary Update a schedule; slots are reconciled against the stored set
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param payload body service.UpdateScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /availability/schedules/{id} [put]
func (h *AvailabilityHandler) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	schedule, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// ReplaceAvailability godoc
// @Summary Replace all availability from flat rows (legacy bulk update)
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body handler.replaceAvailabilityRequest true "Availability rows"
// @Success 200 {object} response.Envelope
// @Router /availability [put]
func (h *AvailabilityHandler) ReplaceAvailability(c *gin.Context) {
	var req replaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "availability must be an array"))
		return
	}
	rows, err := h.service.ReplaceAvailability(c.Request.Context(), req.Availability)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// DeleteSchedule godoc
// @Summary Delete a schedule and its slots
// @Tags Availability
// @Param id path int true "Schedule ID"
// @Success 204
// @Router /availability/schedules/{id} [delete]
func (h *AvailabilityHandler) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type replaceAvailabilityRequest struct {
	Availability []service.AvailabilityEntry `json:"availability"`
}
