package starrysky

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 9, 22, 15, 13, 21, 0, time.Local)

// 测试新的一天首次记录
func TestSubmitNewDay(t *testing.T) {
	s := State{Stars: 3, MorningStars: 1, TodayRecords: 4, LastRecordDate: "2025-09-21"}

	res, err := Submit(s, "今天给她做了早餐", testNow, 8)
	assert.NoError(t, err)
	assert.True(t, res.NewDay)
	assert.Equal(t, 4, res.State.Stars)
	assert.Equal(t, 2, res.State.MorningStars)
	assert.Equal(t, 1, res.State.TodayRecords)
	assert.Equal(t, "2025-09-22", res.State.LastRecordDate)
	assert.Contains(t, res.Message, "晨辉星")
}

// 测试同一天追加记录
func TestSubmitSameDay(t *testing.T) {
	s := State{Stars: 3, MorningStars: 1, TodayRecords: 2, LastRecordDate: "2025-09-22"}

	res, err := Submit(s, "一起散步聊了很久", testNow, 9)
	assert.NoError(t, err)
	assert.False(t, res.NewDay)
	assert.Equal(t, 4, res.State.Stars)
	assert.Equal(t, 1, res.State.MorningStars)
	assert.Equal(t, 3, res.State.TodayRecords)
}

// 测试每日上限：第6条被拒绝且状态不变，重复提交同样被拒绝
func TestSubmitDailyLimit(t *testing.T) {
	s := State{Stars: 10, MorningStars: 2, TodayRecords: 5, LastRecordDate: "2025-09-22"}

	for i := 0; i < 3; i++ {
		_, err := Submit(s, "今天的第六条记录啦", testNow, 20)
		assert.ErrorIs(t, err, ErrDailyLimit)
	}
	// 状态未被修改
	assert.Equal(t, 10, s.Stars)
	assert.Equal(t, 5, s.TodayRecords)
}

// 测试新的一天不受前一天上限影响
func TestSubmitNewDayResetsLimit(t *testing.T) {
	s := State{Stars: 10, TodayRecords: 5, LastRecordDate: "2025-09-21"}

	res, err := Submit(s, "新的一天继续记录", testNow, 21)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.State.TodayRecords)
}

// 测试内容过短被拒绝且不改变星星数
func TestSubmitContentTooShort(t *testing.T) {
	s := State{Stars: 9, TodayRecords: 1, LastRecordDate: "2025-09-22"}

	_, err := Submit(s, "爱你哦", testNow, 10)
	assert.ErrorIs(t, err, ErrContentTooShort)

	_, err = Submit(s, "    ", testNow, 10)
	assert.ErrorIs(t, err, ErrContentTooShort)

	assert.Equal(t, 9, s.Stars)
}

// 测试9颗星星的用户在新的一天记录后解锁第一颗星光
func TestSubmitFirstStarLight(t *testing.T) {
	s := State{Stars: 9, MorningStars: 0, TodayRecords: 0, LastRecordDate: ""}

	res, err := Submit(s, "第一次在新的一天记录", testNow, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, res.State.Stars)
	assert.Equal(t, 1, res.State.MorningStars)
	assert.Contains(t, res.Unlocked, AchFirstStarLight)
	assert.Contains(t, res.State.Achievements, AchFirstStarLight)
}

// 测试成就只增不减且不重复
func TestAchievementsMonotonic(t *testing.T) {
	s := State{Stars: 9, TodayRecords: 1, LastRecordDate: "2025-09-22", Achievements: []string{}}

	for i := 0; i < 4; i++ {
		res, err := Submit(s, "坚持记录每一天的付出", testNow, 10+i)
		assert.NoError(t, err)
		// 已有成就必须保留
		for _, a := range s.Achievements {
			assert.Contains(t, res.State.Achievements, a)
		}
		// 无重复
		seen := map[string]int{}
		for _, a := range res.State.Achievements {
			seen[a]++
			assert.Equal(t, 1, seen[a])
		}
		s = res.State
	}
	assert.Contains(t, s.Achievements, AchFirstStarLight)
}

// 测试累计30条记录解锁持续的爱
func TestPersistentLove(t *testing.T) {
	s := State{Stars: 20, TodayRecords: 1, LastRecordDate: "2025-09-22"}

	res, err := Submit(s, "第三十次记录我们的点滴", testNow, 30)
	assert.NoError(t, err)
	assert.Contains(t, res.Unlocked, AchPersistentLove)
}

// 测试晨辉星与星空大师成就阈值
func TestHighTierAchievements(t *testing.T) {
	s := State{
		Stars:          99,
		MorningStars:   9,
		TodayRecords:   0,
		LastRecordDate: "2025-09-21",
		Achievements:   []string{AchFirstStarLight, AchStarForest},
	}

	res, err := Submit(s, "一百颗星星的约定达成", testNow, 50)
	assert.NoError(t, err)
	assert.Contains(t, res.Unlocked, AchStarMaster)
	assert.Contains(t, res.Unlocked, AchMorningCollector)
	assert.NotContains(t, res.Unlocked, AchStarForest)
}

// 测试奖励类型校验
func TestRewardName(t *testing.T) {
	name, err := RewardName("make_up")
	assert.NoError(t, err)
	assert.Equal(t, "和好券", name)

	_, err = RewardName("lottery")
	assert.ErrorIs(t, err, ErrUnknownReward)
}
