package client

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SyncState 同步状态机：UNSYNCED → MIGRATING → SYNCED
type SyncState int

const (
	StateUnsynced SyncState = iota
	StateMigrating
	StateSynced
)

func (s SyncState) String() string {
	switch s {
	case StateMigrating:
		return "MIGRATING"
	case StateSynced:
		return "SYNCED"
	default:
		return "UNSYNCED"
	}
}

// Sync 启动时执行一次：
// 未迁移且有本地数据 → 整块快照走批量保存（服务端一次事务），
// 成功后落盘同步标志，失败保持UNSYNCED下次启动重试；
// 已迁移或无本地数据 → 拉取远端快照浅合并到本地，
// 本地独有的tips和背景设置保留。
func (a *App) Sync() error {
	if !a.store.SyncCompleted() && a.store.HasData() {
		a.state = StateMigrating
		logrus.WithField("userId", a.userID).Info("开始本地数据迁移")

		res := a.api.MigrateLocalData(a.userID, a.data)
		if !res.Success {
			a.state = StateUnsynced
			logrus.WithField("message", res.Message).Warn("数据迁移失败，下次启动重试")
			return fmt.Errorf("数据迁移失败: %s", res.Message)
		}
		if err := a.store.SetSyncCompleted(); err != nil {
			a.state = StateUnsynced
			return err
		}
		logrus.Info("数据迁移成功")
	}

	remote, res := a.api.FetchUserData(a.userID)
	if res.Success && remote != nil {
		a.mergeRemote(remote)
		if err := a.store.Save(a.data); err != nil {
			return err
		}
		if !a.store.SyncCompleted() {
			if err := a.store.SetSyncCompleted(); err != nil {
				return err
			}
		}
		a.state = StateSynced
		return nil
	}

	// 远端不可用时本地数据继续作为数据源
	logrus.WithField("message", res.Message).Warn("拉取远端数据失败，使用本地数据")
	if a.store.SyncCompleted() {
		a.state = StateSynced
	}
	return nil
}

// mergeRemote 远端字段覆盖本地同名字段，本地独有字段不动（对象展开语义）
func (a *App) mergeRemote(remote *UserData) {
	a.data.Records = remote.Records
	a.data.StarrySky = remote.StarrySky
	a.data.Rewards = remote.Rewards
	a.data.Memories = remote.Memories
	a.data.Anniversaries = remote.Anniversaries
	if a.data.StarrySky.Achievements == nil {
		a.data.StarrySky.Achievements = []string{}
	}
}
