package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

type eventTypeStoreStub struct {
	types   []models.EventType
	created *models.EventType
	updated *models.EventType
	deleted int64
}

func (s *eventTypeStoreStub) List(ctx context.Context) ([]models.EventType, error) {
	return s.types, nil
}

func (s *eventTypeStoreStub) FindByID(ctx context.Context, id int64) (*models.EventType, error) {
	if s.updated != nil {
		return s.updated, nil
	}
	if s.created != nil {
		return s.created, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "event type not found")
}

func (s *eventTypeStoreStub) FindVisibleBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	for i := range s.types {
		if s.types[i].Slug == slug && s.types[i].IsVisible {
			return &s.types[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "event type not found")
}

func (s *eventTypeStoreStub) Create(ctx context.Context, et *models.EventType) error {
	et.ID = 1
	s.created = et
	return nil
}

func (s *eventTypeStoreStub) Update(ctx context.Context, et *models.EventType) error {
	s.updated = et
	return nil
}

func (s *eventTypeStoreStub) Delete(ctx context.Context, id int64) error {
	s.deleted = id
	return nil
}

func newEventTypeServiceForTest(t *testing.T, store *eventTypeStoreStub, cache *invalidatorStub) *EventTypeService {
	t.Helper()
	var inv slotCacheInvalidator
	if cache != nil {
		inv = cache
	}
	return NewEventTypeService(store, inv, nil, zap.NewNop())
}

func TestEventTypeCreateAppliesDefaults(t *testing.T) {
	store := &eventTypeStoreStub{}
	svc := newEventTypeServiceForTest(t, store, nil)

	et, err := svc.Create(context.Background(), EventTypeRequest{Title: "Intro Call", Slug: "  intro  ", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, "intro", et.Slug)
	assert.True(t, et.IsVisible)
	assert.Equal(t, "Cal Video", et.Location)
}

func TestEventTypeCreateRespectsExplicitVisibility(t *testing.T) {
	store := &eventTypeStoreStub{}
	svc := newEventTypeServiceForTest(t, store, nil)

	hidden := false
	et, err := svc.Create(context.Background(), EventTypeRequest{Title: "Secret", Slug: "secret", Duration: 15, IsVisible: &hidden, Location: "Office"})
	require.NoError(t, err)
	assert.False(t, et.IsVisible)
	assert.Equal(t, "Office", et.Location)
}

func TestEventTypeCreateValidation(t *testing.T) {
	svc := newEventTypeServiceForTest(t, &eventTypeStoreStub{}, nil)

	cases := []EventTypeRequest{
		{Slug: "intro", Duration: 30},
		{Title: "Intro", Duration: 30},
		{Title: "Intro", Slug: "intro"},
		{Title: "Intro", Slug: "intro", Duration: 0},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestEventTypeUpdateInvalidatesSlotCache(t *testing.T) {
	store := &eventTypeStoreStub{}
	cache := &invalidatorStub{}
	svc := newEventTypeServiceForTest(t, store, cache)

	_, err := svc.Update(context.Background(), 7, EventTypeRequest{Title: "Intro Call", Slug: "intro", Duration: 45})
	require.NoError(t, err)
	assert.Equal(t, []string{"slots:7:"}, cache.prefixes)
	assert.Equal(t, int64(7), store.updated.ID)
}

func TestEventTypeGetBySlugSkipsHidden(t *testing.T) {
	store := &eventTypeStoreStub{
		types: []models.EventType{
			{ID: 1, Slug: "intro", IsVisible: false},
		},
	}
	svc := newEventTypeServiceForTest(t, store, nil)

	_, err := svc.GetBySlug(context.Background(), "intro")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventTypeDeleteInvalidatesSlotCache(t *testing.T) {
	store := &eventTypeStoreStub{}
	cache := &invalidatorStub{}
	svc := newEventTypeServiceForTest(t, store, cache)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, int64(3), store.deleted)
	assert.Equal(t, []string{"slots:3:"}, cache.prefixes)
}
