package starrysky

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"love-backend/internal/common"
)

var (
	ErrContentTooShort = errors.New("记录内容不能为空且至少5个字符")
	ErrDailyLimit      = errors.New("今日记录已达上限（5条），明天再来吧")
	ErrUnknownReward   = errors.New("未知的奖励类型")
)

// 成就ID
const (
	AchFirstStarLight   = "first_star_light"  // 累计10颗星星
	AchStarForest       = "star_forest"       // 累计50颗星星
	AchStarMaster       = "star_master"       // 累计100颗星星
	AchMorningCollector = "morning_collector" // 累计10颗晨辉星
	AchPersistentLove   = "persistent_love"   // 累计记录30次
)

// State 星空状态，对应 starrySky 表的计数字段
type State struct {
	Stars          int      `json:"stars"`
	MorningStars   int      `json:"morningStars"`
	TodayRecords   int      `json:"todayRecords"`
	LastRecordDate string   `json:"lastRecordDate"`
	Achievements   []string `json:"achievements"`
}

// Result 一次提交被接受后的结果
type Result struct {
	State    State
	NewDay   bool
	Unlocked []string
	Message  string
}

// Submit 校验一条付出记录并计算新的星空状态。
// totalRecords 为包含本次提交在内的累计记录数。
// 拒绝时返回错误且不产生任何状态变化。
func Submit(s State, content string, now time.Time, totalRecords int) (Result, error) {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < common.MinRecordLength {
		return Result{}, ErrContentTooShort
	}

	today := now.Format(common.DateLayout)
	newDay := s.LastRecordDate != today

	if !newDay && s.TodayRecords >= common.MaxRecordsPerDay {
		return Result{}, ErrDailyLimit
	}

	next := State{
		Stars:          s.Stars + 1,
		MorningStars:   s.MorningStars,
		LastRecordDate: today,
		Achievements:   append([]string(nil), s.Achievements...),
	}
	var msg string
	if newDay {
		next.MorningStars++
		next.TodayRecords = 1
		msg = "新的一天！获得1颗晨辉星☀️和1颗星星⭐"
	} else {
		next.TodayRecords = s.TodayRecords + 1
		msg = "记录成功！获得1颗星星⭐"
	}

	unlocked := checkAchievements(&next, totalRecords)
	if len(unlocked) > 0 {
		msg += "，解锁新成就🏆"
	}

	return Result{State: next, NewDay: newDay, Unlocked: unlocked, Message: msg}, nil
}

// checkAchievements 解锁达到阈值的成就，成就只增不减、不重复
func checkAchievements(s *State, totalRecords int) []string {
	thresholds := []struct {
		id string
		ok bool
	}{
		{AchFirstStarLight, s.Stars >= 10},
		{AchStarForest, s.Stars >= 50},
		{AchStarMaster, s.Stars >= 100},
		{AchMorningCollector, s.MorningStars >= 10},
		{AchPersistentLove, totalRecords >= 30},
	}

	var unlocked []string
	for _, t := range thresholds {
		if t.ok && !has(s.Achievements, t.id) {
			s.Achievements = append(s.Achievements, t.id)
			unlocked = append(unlocked, t.id)
		}
	}
	return unlocked
}

func has(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// RewardName 校验奖励类型并返回名称
func RewardName(rewardType string) (string, error) {
	name, ok := common.RewardNames[rewardType]
	if !ok {
		return "", ErrUnknownReward
	}
	return name, nil
}

// ExchangeMessage 兑换成功提示
func ExchangeMessage(name string) string {
	return fmt.Sprintf("兑换成功！获得了%s", name)
}
