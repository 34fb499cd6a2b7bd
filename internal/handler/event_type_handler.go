package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/calbook-api/internal/service"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
	"github.com/noah-isme/calbook-api/pkg/response"
)

// EventTypeHandler manages event type endpoints.
type EventTypeHandler struct {
	service *service.EventTypeService
}

// NewEventTypeHandler constructs handler.
func NewEventTypeHandler(svc *service.EventTypeService) *EventTypeHandler {
	return &EventTypeHandler{service: svc}
}

// List godoc
// @Summary List event types
// @Tags EventTypes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /event-types [get]
func (h *EventTypeHandler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types)
}

// Get godoc
// @Summary Get event type by id
// @Tags EventTypes
// @Produce json
// @Param id path int true "Event type ID"
// @Success 200 {object} response.Envelope
// @Router /event-types/{id} [get]
func (h *EventTypeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	eventType, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, eventType)
}

// GetBySlug godoc
// @Summary Get a visible event type by public slug
// @Tags EventTypes
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} response.Envelope
// @Router /event-types/slug/{slug} [get]
func (h *EventTypeHandler) GetBySlug(c *gin.Context) {
	eventType, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, eventType)
}

// Create godoc
// @Summary Create event type
// @Tags EventTypes
// @Accept json
// @Produce json
// @Param payload body service.EventTypeRequest true "Event type payload"
// @Success 201 {object} response.Envelope
// @Router /event-types [post]
func (h *EventTypeHandler) Create(c *gin.Context) {
	var req service.EventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	eventType, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, eventType)
}

// Update godoc
// @Summary Update event type
// @Tags EventTypes
// @Accept json
// @Produce json
// @Param id path int true "Event type ID"
// @Param payload body service.EventTypeRequest true "Event type payload"
// @Success 200 {object} response.Envelope
// @Router /event-types/{id} [put]
func (h *EventTypeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.EventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	eventType, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, eventType)
}

// Delete godoc
// @Summary Delete event type
// @Tags EventTypes
// @Param id path int true "Event type ID"
// @Success 204
// @Router /event-types/{id} [delete]
func (h *EventTypeHandler) Delete(c *gin.Context) {
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

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be an integer"))
		return 0, false
	}
	return id, true
}
