package client

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"love-backend/internal/common"
	"love-backend/internal/db"
	"love-backend/internal/starrysky"
)

var (
	ErrTitleRequired = errors.New("标题不能为空")
	ErrDateRequired  = errors.New("日期不能为空")
	ErrRewardMissing = errors.New("奖励不存在")
)

// App 客户端侧的核心：本地快照先行提交，远端镜像尽力而为。
// 每次变更先过校验/星空引擎，再同步写本地，最后异步镜像到远端，
// 远端失败只记日志，绝不影响本地结果。
type App struct {
	store   *LocalStore
	api     *APIClient
	data    *Snapshot
	userID  string
	state   SyncState
	mirrors sync.WaitGroup
}

func NewApp(store *LocalStore, api *APIClient) (*App, error) {
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	userID, err := store.UserID()
	if err != nil {
		return nil, err
	}
	state := StateUnsynced
	if store.SyncCompleted() {
		state = StateSynced
	}
	return &App{store: store, api: api, data: data, userID: userID, state: state}, nil
}

func (a *App) Data() *Snapshot { return a.data }

func (a *App) UserID() string { return a.userID }

func (a *App) State() SyncState { return a.state }

// SubmitRecord 记录一次付出：星空引擎计算新状态，写本地，镜像远端
func (a *App) SubmitRecord(content, recordType string) (string, error) {
	now := time.Now()
	state := starrysky.State{
		Stars:          a.data.StarrySky.Stars,
		MorningStars:   a.data.StarrySky.MorningStars,
		TodayRecords:   a.data.StarrySky.TodayRecords,
		LastRecordDate: a.data.StarrySky.LastRecordDate,
		Achievements:   a.data.StarrySky.Achievements,
	}
	res, err := starrysky.Submit(state, content, now, len(a.data.Records)+1)
	if err != nil {
		return "", err
	}

	if recordType == "" {
		recordType = "normal"
	}
	record := db.Record{
		ID:        uuid.NewString(),
		UserID:    a.userID,
		Content:   content,
		Type:      recordType,
		Date:      now.Format(common.DateTimeLayout),
		CreatedAt: now,
	}
	a.data.Records = append(a.data.Records, record)
	a.applyStarryState(res.State, now)

	if err := a.store.Save(a.data); err != nil {
		return "", err
	}

	starry := a.data.StarrySky
	a.mirror("record", func() Result { return a.api.SaveRecord(a.userID, record) })
	a.mirror("starrySky", func() Result { return a.api.SaveStarrySky(a.userID, starry) })

	return res.Message, nil
}

// ExchangeReward 兑换一张奖励券
func (a *App) ExchangeReward(rewardType string) (string, error) {
	name, err := starrysky.RewardName(rewardType)
	if err != nil {
		return "", err
	}
	reward := db.Reward{
		ID:     uuid.NewString(),
		UserID: a.userID,
		Type:   rewardType,
		Name:   name,
		Date:   time.Now().Format(common.DateTimeLayout),
	}
	a.data.Rewards = append(a.data.Rewards, reward)

	if err := a.store.Save(a.data); err != nil {
		return "", err
	}
	a.mirror("reward", func() Result { return a.api.SaveReward(a.userID, reward) })

	return starrysky.ExchangeMessage(name), nil
}

// ClaimReward 使用一张奖励券（upsert同一id，无删除路径）
func (a *App) ClaimReward(id string) error {
	for i := range a.data.Rewards {
		if a.data.Rewards[i].ID != id {
			continue
		}
		a.data.Rewards[i].IsClaimed = true
		if err := a.store.Save(a.data); err != nil {
			return err
		}
		reward := a.data.Rewards[i]
		a.mirror("reward", func() Result { return a.api.SaveReward(a.userID, reward) })
		return nil
	}
	return ErrRewardMissing
}

// AddMemory 添加一条回忆
func (a *App) AddMemory(title, content, imageURL string) (string, error) {
	if title == "" {
		return "", ErrTitleRequired
	}
	memory := db.Memory{
		ID:       uuid.NewString(),
		UserID:   a.userID,
		Title:    title,
		Content:  content,
		Date:     time.Now().Format(common.DateTimeLayout),
		ImageURL: imageURL,
	}
	a.data.Memories = append(a.data.Memories, memory)

	if err := a.store.Save(a.data); err != nil {
		return "", err
	}
	a.mirror("memory", func() Result { return a.api.SaveMemory(a.userID, memory) })

	return "回忆添加成功！", nil
}

// AddAnniversary 添加一个纪念日
func (a *App) AddAnniversary(title, date string, isRecurring bool, description string) (string, error) {
	if title == "" {
		return "", ErrTitleRequired
	}
	if date == "" {
		return "", ErrDateRequired
	}
	if _, err := time.Parse(common.DateLayout, date); err != nil {
		return "", err
	}
	anniversary := db.Anniversary{
		ID:          uuid.NewString(),
		UserID:      a.userID,
		Title:       title,
		Date:        date,
		IsRecurring: isRecurring,
		Description: description,
	}
	a.data.Anniversaries = append(a.data.Anniversaries, anniversary)

	if err := a.store.Save(a.data); err != nil {
		return "", err
	}
	a.mirror("anniversary", func() Result { return a.api.SaveAnniversary(a.userID, anniversary) })

	return "纪念日添加成功！", nil
}

// NextAnniversary 距离最近的下一个纪念日
func (a *App) NextAnniversary(now time.Time) (*db.Anniversary, int, bool) {
	var (
		closest *db.Anniversary
		minDays int
	)
	for i := range a.data.Anniversaries {
		ann := &a.data.Anniversaries[i]
		days, ok := common.DaysUntilNext(ann.Date, ann.IsRecurring, now)
		if !ok {
			continue
		}
		if closest == nil || days < minDays {
			closest = ann
			minDays = days
		}
	}
	return closest, minDays, closest != nil
}

// SetBackground 背景设置只存本地，远端不建模
func (a *App) SetBackground(bgType, imageData string) error {
	a.data.Background = Background{Type: bgType, ImageData: imageData}
	return a.store.Save(a.data)
}

// TodayTip 随机一条小贴士
func (a *App) TodayTip() string {
	if len(a.data.Tips) == 0 {
		return ""
	}
	return a.data.Tips[int(time.Now().UnixNano())%len(a.data.Tips)]
}

func (a *App) applyStarryState(s starrysky.State, now time.Time) {
	starry := &a.data.StarrySky
	if starry.ID == "" {
		starry.ID = uuid.NewString()
	}
	starry.UserID = a.userID
	starry.Stars = s.Stars
	starry.MorningStars = s.MorningStars
	starry.TodayRecords = s.TodayRecords
	starry.LastRecordDate = s.LastRecordDate
	starry.Achievements = s.Achievements
	starry.LastUpdated = now
}

// mirror 远端镜像，发后不管：结果只记日志，不重试也不上报给调用方
func (a *App) mirror(op string, call func() Result) {
	a.mirrors.Add(1)
	go func() {
		defer a.mirrors.Done()
		res := call()
		if res.Success {
			logrus.WithField("op", op).Debug("远端同步成功")
			return
		}
		logrus.WithFields(logrus.Fields{"op": op, "message": res.Message}).Warn("远端同步失败（已忽略）")
	}()
}

// Flush 等待在途的远端镜像发完，退出前调用。
// 超时后放弃等待，镜像结果本来就只记日志。
func (a *App) Flush(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		a.mirrors.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		logrus.Warn("远端同步未在超时前完成，放弃等待")
	}
}
