package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"love-backend/internal/common"
	"love-backend/internal/db"
)

const (
	dataFile          = "data.json"
	userIDFile        = "user_id"
	syncCompletedFile = "sync_completed"
)

// Background 背景设置，仅存在于本地，远端不保存
type Background struct {
	Type      string `json:"type"`
	ImageData string `json:"imageData,omitempty"`
}

// Snapshot 本地数据快照，等价于浏览器端的loveAppData整块JSON
type Snapshot struct {
	Records       []db.Record      `json:"records"`
	StarrySky     db.StarrySky     `json:"starrySky"`
	Rewards       []db.Reward      `json:"rewards"`
	Memories      []db.Memory      `json:"memories"`
	Anniversaries []db.Anniversary `json:"anniversaries"`
	Tips          []string         `json:"tips"`
	Background    Background       `json:"background"`
}

// NewSnapshot 初始快照
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Records:       []db.Record{},
		StarrySky:     db.StarrySky{Achievements: []string{}},
		Rewards:       []db.Reward{},
		Memories:      []db.Memory{},
		Anniversaries: []db.Anniversary{},
		Tips:          append([]string(nil), common.DefaultTips...),
		Background:    Background{Type: "default"},
	}
}

// LocalStore 把快照和两个标志键持久化到一个目录，
// 对应浏览器端的localStorage（数据键 + userId键 + 同步完成键）。
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// HasData 本地是否已有数据（决定是否需要迁移）
func (s *LocalStore) HasData() bool {
	_, err := os.Stat(s.path(dataFile))
	return err == nil
}

// Load 读取快照，文件不存在时返回初始快照
func (s *LocalStore) Load() (*Snapshot, error) {
	raw, err := os.ReadFile(s.path(dataFile))
	if os.IsNotExist(err) {
		return NewSnapshot(), nil
	}
	if err != nil {
		return nil, err
	}
	snapshot := NewSnapshot()
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save 同步落盘，本地写入成功后远端同步才会发起
func (s *LocalStore) Save(snapshot *Snapshot) error {
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(dataFile), raw, 0o644)
}

// UserID 匿名用户ID，首次访问时生成并持久化
func (s *LocalStore) UserID() (string, error) {
	raw, err := os.ReadFile(s.path(userIDFile))
	if err == nil && len(raw) > 0 {
		return strings.TrimSpace(string(raw)), nil
	}
	id := "user_" + uuid.NewString()
	if err := os.WriteFile(s.path(userIDFile), []byte(id), 0o644); err != nil {
		return "", err
	}
	return id, nil
}

// SyncCompleted 迁移是否已完成（完成后不再重复迁移）
func (s *LocalStore) SyncCompleted() bool {
	raw, err := os.ReadFile(s.path(syncCompletedFile))
	return err == nil && strings.TrimSpace(string(raw)) == "true"
}

func (s *LocalStore) SetSyncCompleted() error {
	return os.WriteFile(s.path(syncCompletedFile), []byte("true"), 0o644)
}
