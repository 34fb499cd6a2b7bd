package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

func TestCacheRepositoryNilClientDegradesToNoop(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "slots:1:2026-09-07", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "slots:1:2026-09-07", []string{"9:00 AM"}, time.Minute))
	assert.NoError(t, repo.InvalidatePrefix(ctx, "slots:"))
}
