package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", 0, time.Minute))
}

func TestNilCache_PassesThrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	calls := 0
	type row struct{ Name string }
	for i := 0; i < 2; i++ {
		v, err := GetOrLoadJSON(c, ctx, "k", 0, func(context.Context) (*row, error) {
			calls++
			return &row{Name: "Tigo"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Tigo", v.Name)
	}
	assert.Equal(t, 2, calls, "without redis every call reaches the loader")

	boom := errors.New("boom")
	_, err := GetOrLoadJSON(c, ctx, "k", 0, func(context.Context) (*row, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, c.InvalidatePrefix(ctx, "crud:"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestMatchPrefix_EscapesGlob(t *testing.T) {
	assert.Equal(t, "crud:/plans|*", MatchPrefix("crud:/plans|"))
	assert.Equal(t, `crud:/a\?b\*\[c\]*`, MatchPrefix("crud:/a?b*[c]"))
	assert.Equal(t, `x\\y*`, MatchPrefix(`x\y`))
}
