package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/calbook-api/internal/service"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
	"github.com/noah-isme/calbook-api/pkg/response"
)

type slotsService interface {
	ListSlots(ctx context.Context, eventTypeID int64, date string) ([]service.Slot, error)
}

// SlotsHandler serves the public availability query.
type SlotsHandler struct {
	service slotsService
}

// NewSlotsHandler constructs handler.
func NewSlotsHandler(svc slotsService) *SlotsHandler {
	return &SlotsHandler{service: svc}
}

// List godoc
// @Summary List bookable slots for an event type on a date
// @Tags Slots
// @Produce json
// @Param eventTypeId query int true "Event type ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *SlotsHandler) List(c *gin.Context) {
	rawID := c.Query("eventTypeId")
	date := c.Query("date")
	if rawID == "" || date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "eventTypeId and date are required"))
		return
	}

	eventTypeID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "eventTypeId must be an integer"))
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), eventTypeID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}
