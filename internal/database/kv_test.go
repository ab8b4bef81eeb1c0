package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := Open(sqlite.Open(dsn))
	require.NoError(t, err)
	return NewKV(db)
}

func TestKVGetMissing(t *testing.T) {
	kv := newTestKV(t)

	value, ok, err := kv.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestKVPutOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	require.NoError(t, kv.Put(ctx, "settings", `{"frequency":10}`))
	require.NoError(t, kv.Put(ctx, "settings", `{"frequency":15}`))
	require.NoError(t, kv.Put(ctx, "history", `[]`))

	value, ok, err := kv.Get(ctx, "settings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"frequency":15}`, value)

	var count int64
	require.NoError(t, kv.db.Table("records").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
