package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"love-backend/internal/db"
)

// 测试快照读写往返
func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	assert.False(t, store.HasData())

	snapshot := NewSnapshot()
	snapshot.Records = append(snapshot.Records, db.Record{
		ID:      "r1",
		Content: "今天给她做了早餐",
		Type:    "quick",
		Date:    "2025-09-22 08:00:00",
	})
	snapshot.StarrySky.Stars = 7
	snapshot.Background = Background{Type: "bg1"}

	assert.NoError(t, store.Save(snapshot))
	assert.True(t, store.HasData())

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Len(t, loaded.Records, 1)
	assert.Equal(t, "今天给她做了早餐", loaded.Records[0].Content)
	assert.Equal(t, 7, loaded.StarrySky.Stars)
	assert.Equal(t, "bg1", loaded.Background.Type)
}

// 测试文件不存在时返回初始快照
func TestLocalStoreLoadDefault(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	snapshot, err := store.Load()
	assert.NoError(t, err)
	assert.Empty(t, snapshot.Records)
	assert.Equal(t, 0, snapshot.StarrySky.Stars)
	assert.NotEmpty(t, snapshot.Tips)
	assert.Equal(t, "default", snapshot.Background.Type)
}

// 测试匿名用户ID首次生成后保持稳定
func TestLocalStoreUserID(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	id1, err := store.UserID()
	assert.NoError(t, err)
	assert.Contains(t, id1, "user_")

	id2, err := store.UserID()
	assert.NoError(t, err)
	assert.Equal(t, id1, id2)
}

// 测试同步完成标志
func TestLocalStoreSyncFlag(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	assert.False(t, store.SyncCompleted())
	assert.NoError(t, store.SetSyncCompleted())
	assert.True(t, store.SyncCompleted())
}
