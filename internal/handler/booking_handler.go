package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/calbook-api/internal/models"
	"github.com/noah-isme/calbook-api/internal/service"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
	"github.com/noah-isme/calbook-api/pkg/response"
)

// BookingHandler manages booking endpoints.
type BookingHandler struct {
	service *service.BookingService
	export  *service.ExportService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(svc *service.BookingService, exportSvc *service.ExportService) *BookingHandler {
	return &BookingHandler{service: svc, export: exportSvc}
}

// Create godoc
// @Summary Book a slot
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body service.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Param filter query string false "upcoming, past, canceled or unconfirmed"
// @Param status query string false "confirmed, unconfirmed, canceled or all"
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	filter := models.BookingFilter{
		Filter: c.Query("filter"),
		Status: c.Query("status"),
	}
	bookings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings)
}

// Cancel godoc
// @Summary Cancel a booking
// @Tags Bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Param token query string false "Manage token"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := h.service.Cancel(c.Request.Context(), id, c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking)
}

// Calendar godoc
// @Summary Download a booking as an iCalendar file
// @Tags Bookings
// @Produce text/calendar
// @Param id path int true "Booking ID"
// @Success 200 {string} string "ICS payload"
// @Router /bookings/{id}/calendar.ics [get]
func (h *BookingHandler) Calendar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	content, filename, err := h.service.CalendarFile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar", content)
}

// Export godoc
// @Summary Export bookings as CSV or PDF
// @Tags Bookings
// @Param format query string true "csv or pdf"
// @Param filter query string false "upcoming, past, canceled or unconfirmed"
// @Param status query string false "confirmed, unconfirmed, canceled or all"
// @Success 200 {string} string "File download"
// @Router /bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	filter := models.BookingFilter{
		Filter: c.Query("filter"),
		Status: c.Query("status"),
	}
	result, err := h.export.Bookings(c.Request.Context(), filter, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
