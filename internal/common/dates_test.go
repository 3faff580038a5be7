package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 9, 22, 10, 0, 0, 0, time.Local)

// 测试循环纪念日：今年未到
func TestDaysUntilNextUpcoming(t *testing.T) {
	days, ok := DaysUntilNext("2020-10-01", true, now)
	assert.True(t, ok)
	assert.Equal(t, 9, days)
}

// 测试循环纪念日：今年已过，算明年
func TestDaysUntilNextRollsOver(t *testing.T) {
	days, ok := DaysUntilNext("2020-02-14", true, now)
	assert.True(t, ok)
	next := time.Date(2026, 2, 14, 0, 0, 0, 0, now.Location())
	today := time.Date(2025, 9, 22, 0, 0, 0, 0, now.Location())
	assert.Equal(t, int(next.Sub(today).Hours()/24), days)
}

// 测试当天的纪念日
func TestDaysUntilNextToday(t *testing.T) {
	days, ok := DaysUntilNext("2024-09-22", true, now)
	assert.True(t, ok)
	assert.Equal(t, 0, days)
}

// 测试非循环纪念日
func TestDaysUntilNextNonRecurring(t *testing.T) {
	days, ok := DaysUntilNext("2025-09-30", false, now)
	assert.True(t, ok)
	assert.Equal(t, 8, days)

	// 已过期的非循环纪念日不再提醒
	_, ok = DaysUntilNext("2025-09-01", false, now)
	assert.False(t, ok)
}

// 测试非法日期
func TestDaysUntilNextInvalid(t *testing.T) {
	_, ok := DaysUntilNext("not-a-date", true, now)
	assert.False(t, ok)
	_, ok = DaysUntilNext("", true, now)
	assert.False(t, ok)
}
