package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/calbook-api/internal/service"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
	"github.com/noah-isme/calbook-api/pkg/response"
)

type slotsServiceMock struct {
	slots  []service.Slot
	err    error
	lastID int64
	date   string
}

func (m *slotsServiceMock) ListSlots(ctx context.Context, eventTypeID int64, date string) ([]service.Slot, error) {
	m.lastID = eventTypeID
	m.date = date
	return m.slots, m.err
}

func TestSlotsHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	mockSvc := &slotsServiceMock{
		slots: []service.Slot{{Start: start, End: start.Add(30 * time.Minute), Formatted: "9:00 AM"}},
	}
	handler := NewSlotsHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/slots?eventTypeId=1&date=2026-09-07", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), mockSvc.lastID)
	assert.Equal(t, "2026-09-07", mockSvc.date)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestSlotsHandlerListMissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotsHandler(&slotsServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/slots?date=2026-09-07", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotsHandlerListBadEventTypeID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotsHandler(&slotsServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/slots?eventTypeId=abc&date=2026-09-07", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotsHandlerListHiddenEventType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSlotsHandler(&slotsServiceMock{err: appErrors.ErrEventTypeHidden})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/slots?eventTypeId=1&date=2026-09-07", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
