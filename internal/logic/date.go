package logic

import (
	"strings"
	"time"

	"love-backend/internal/common"
)

// NormalizeDate 把客户端传来的日期统一为 "2006-01-02 15:04:05"。
// 支持ISO带时区格式（2025-09-22T15:13:21.000Z）和斜杠本地格式（2023/9/22 15:13:21），
// 为空时取当前时间，已规范或无法识别的字符串原样返回。
func NormalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Format(common.DateTimeLayout)
	}
	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC().Format(common.DateTimeLayout)
		}
	}
	if strings.Contains(s, "/") {
		replaced := strings.ReplaceAll(s, "/", "-")
		for _, layout := range []string{"2006-1-2 15:04:05", "2006-1-2"} {
			if t, err := time.ParseInLocation(layout, replaced, time.Local); err == nil {
				return t.Format(common.DateTimeLayout)
			}
		}
	}
	return s
}

// NormalizeDay 纪念日只保留日期部分 "2006-01-02"
func NormalizeDay(s string, now time.Time) string {
	normalized := NormalizeDate(s, now)
	if len(normalized) >= len(common.DateLayout) {
		return normalized[:len(common.DateLayout)]
	}
	return normalized
}
