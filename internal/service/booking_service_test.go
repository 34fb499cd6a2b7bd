package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/calbook-api/internal/interval"
	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type bookingStoreStub struct {
	created    *models.Booking
	conflict   bool
	findResult *models.Booking
	canceled   *models.Booking
	listResult []models.BookingWithEventType
	listNow    time.Time
}

func (s *bookingStoreStub) Create(ctx context.Context, b *models.Booking) error {
	b.ID = 42
	b.PublicID = "11111111-2222-3333-4444-555555555555"
	s.created = b
	return nil
}

func (s *bookingStoreStub) HasConflict(ctx context.Context, eventTypeID int64, iv interval.Interval, excludeID int64) (bool, error) {
	return s.conflict, nil
}

func (s *bookingStoreStub) List(ctx context.Context, filter models.BookingFilter, now time.Time) ([]models.BookingWithEventType, error) {
	s.listNow = now
	return s.listResult, nil
}

func (s *bookingStoreStub) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	if s.findResult == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
	}
	return s.findResult, nil
}

func (s *bookingStoreStub) Cancel(ctx context.Context, id int64) (*models.Booking, error) {
	return s.canceled, nil
}

type invalidatorStub struct {
	prefixes []string
}

func (s *invalidatorStub) InvalidatePrefix(ctx context.Context, prefix string) error {
	s.prefixes = append(s.prefixes, prefix)
	return nil
}

func newBookingServiceForTest(t *testing.T, store *bookingStoreStub, eventTypes *eventTypeRepoStub, cache *invalidatorStub, opts BookingOptions) *BookingService {
	t.Helper()
	var inv slotCacheInvalidator
	if cache != nil {
		inv = cache
	}
	return NewBookingService(store, eventTypes, inv, opts, nil, zap.NewNop())
}

func validBookingRequest() CreateBookingRequest {
	start := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	return CreateBookingRequest{
		EventTypeID:   1,
		AttendeeName:  "Asha",
		AttendeeEmail: "asha@example.com",
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
	}
}

func TestBookingCreate(t *testing.T) {
	store := &bookingStoreStub{}
	cache := &invalidatorStub{}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, cache, BookingOptions{DefaultTimezone: "Asia/Kolkata"})

	result, err := svc.Create(context.Background(), validBookingRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Booking)
	assert.Equal(t, int64(42), result.Booking.ID)
	assert.Equal(t, models.BookingConfirmed, result.Booking.Status)
	assert.Equal(t, "Asia/Kolkata", result.Booking.AttendeeTZ)
	assert.Equal(t, []string{"slots:1:"}, cache.prefixes)
}

func TestBookingCreateKeepsExplicitTimezone(t *testing.T) {
	store := &bookingStoreStub{}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{DefaultTimezone: "Asia/Kolkata"})

	req := validBookingRequest()
	req.AttendeeTZ = "Europe/Berlin"
	result, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", result.Booking.AttendeeTZ)
}

func TestBookingCreateValidationFailure(t *testing.T) {
	svc := newBookingServiceForTest(t, &bookingStoreStub{}, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})

	req := validBookingRequest()
	req.AttendeeEmail = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBookingCreateHiddenEventType(t *testing.T) {
	hidden := visibleEventType()
	hidden.IsVisible = false
	svc := newBookingServiceForTest(t, &bookingStoreStub{}, &eventTypeRepoStub{eventType: hidden}, nil, BookingOptions{})

	_, err := svc.Create(context.Background(), validBookingRequest())
	assert.ErrorIs(t, err, appErrors.ErrEventTypeHidden)
}

func TestBookingCreateInvertedInterval(t *testing.T) {
	svc := newBookingServiceForTest(t, &bookingStoreStub{}, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})

	req := validBookingRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidInterval.Code, appErrors.FromError(err).Code)
}

func TestBookingCreateDurationMismatch(t *testing.T) {
	svc := newBookingServiceForTest(t, &bookingStoreStub{}, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})

	req := validBookingRequest()
	req.EndTime = req.StartTime.Add(45 * time.Minute)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDurationMismatch.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "30 minutes")
}

func TestBookingCreateSlotConflict(t *testing.T) {
	svc := newBookingServiceForTest(t, &bookingStoreStub{conflict: true}, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})

	_, err := svc.Create(context.Background(), validBookingRequest())
	assert.ErrorIs(t, err, appErrors.ErrSlotConflict)
}

func TestBookingCreateIssuesManageToken(t *testing.T) {
	svc := newBookingServiceForTest(t, &bookingStoreStub{}, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{ManageTokenSecret: "secret"})

	result, err := svc.Create(context.Background(), validBookingRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.ManageToken)
}

func TestBookingCancelRequiresValidToken(t *testing.T) {
	booking := &models.Booking{ID: 42, PublicID: "abc", EventTypeID: 1, EndTime: time.Now().Add(time.Hour)}
	store := &bookingStoreStub{findResult: booking, canceled: booking}
	opts := BookingOptions{RequireManageToken: true, ManageTokenSecret: "secret"}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, nil, opts)

	_, err := svc.Cancel(context.Background(), 42, "")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = svc.Cancel(context.Background(), 42, "garbage")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	token, err := svc.issueManageToken(booking)
	require.NoError(t, err)
	canceled, err := svc.Cancel(context.Background(), 42, token)
	require.NoError(t, err)
	assert.Equal(t, booking, canceled)
}

func TestBookingCancelTokenForOtherBookingRejected(t *testing.T) {
	booking := &models.Booking{ID: 42, PublicID: "abc", EventTypeID: 1, EndTime: time.Now().Add(time.Hour)}
	other := &models.Booking{ID: 43, PublicID: "def", EventTypeID: 1, EndTime: time.Now().Add(time.Hour)}
	store := &bookingStoreStub{findResult: booking, canceled: booking}
	opts := BookingOptions{RequireManageToken: true, ManageTokenSecret: "secret"}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, nil, opts)

	token, err := svc.issueManageToken(other)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), 42, token)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestBookingCancelWithoutEnforcement(t *testing.T) {
	booking := &models.Booking{ID: 42, PublicID: "abc", EventTypeID: 1}
	store := &bookingStoreStub{findResult: booking, canceled: booking}
	cache := &invalidatorStub{}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, cache, BookingOptions{})

	canceled, err := svc.Cancel(context.Background(), 42, "")
	require.NoError(t, err)
	assert.Equal(t, booking, canceled)
	assert.Equal(t, []string{"slots:1:"}, cache.prefixes)
}

func TestBookingListPassesClock(t *testing.T) {
	store := &bookingStoreStub{listResult: []models.BookingWithEventType{}}
	svc := newBookingServiceForTest(t, store, &eventTypeRepoStub{eventType: visibleEventType()}, nil, BookingOptions{})
	fixed := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.List(context.Background(), models.BookingFilter{Filter: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, fixed, store.listNow)
}
