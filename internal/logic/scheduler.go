package logic

import (
	"time"

	"github.com/sirupsen/logrus"

	"love-backend/internal/common"
	"love-backend/internal/db"
)

// ReminderWindowDays 提前提醒的天数
const ReminderWindowDays = 7

// CheckAnniversaryReminders 检查7天内到期的纪念日并记录提醒
func CheckAnniversaryReminders() {
	logrus.Info("开始检查纪念日提醒...")

	if db.GetDB() == nil {
		logrus.Warn("数据库未初始化，跳过纪念日提醒检查")
		return
	}

	var anniversaries []db.Anniversary
	if err := db.GetDB().Find(&anniversaries).Error; err != nil {
		logrus.WithError(err).Error("获取纪念日列表失败")
		return
	}

	now := time.Now()
	reminded := 0
	for _, a := range anniversaries {
		days, ok := common.DaysUntilNext(a.Date, a.IsRecurring, now)
		if !ok || days > ReminderWindowDays {
			continue
		}
		reminded++
		logrus.WithFields(logrus.Fields{
			"userId": a.UserID,
			"title":  a.Title,
			"date":   a.Date,
			"days":   days,
		}).Info("纪念日即将到来")
	}

	logrus.Infof("纪念日提醒检查完成: 共%d条纪念日, %d条即将到期", len(anniversaries), reminded)
}

// StartScheduler 启动定时任务，每天早上9:00检查纪念日
func StartScheduler() {
	logrus.Info("启动定时任务调度器...")

	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())

			// 今天9点已过则等到明天9点
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}

			sleepDuration := next.Sub(now)
			logrus.Infof("下次纪念日提醒检查时间: %s (等待 %v)", next.Format(common.DateTimeLayout), sleepDuration)
			time.Sleep(sleepDuration)

			CheckAnniversaryReminders()
		}
	}()
}
