package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/lms-slot-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "slots:teacher:t1:-:-", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "slots:teacher:t1:-:-", []string{"a"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "slots:teacher:t1:*"))
	assert.Error(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}
