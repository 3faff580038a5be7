package common

import "time"

// DaysUntilNext 计算距离下一次纪念日的天数。
// recurring 为 true 时按每年循环，今年已过则算明年；
// 非循环纪念日已过期时返回 ok=false。
func DaysUntilNext(dateStr string, recurring bool, now time.Time) (int, bool) {
	d, err := time.ParseInLocation(DateLayout, dateStr, now.Location())
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if !recurring {
		if d.Before(today) {
			return 0, false
		}
		return int(d.Sub(today).Hours() / 24), true
	}

	next := time.Date(today.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	}
	return int(next.Sub(today).Hours() / 24), true
}
