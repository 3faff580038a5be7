package logic

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"love-backend/internal/db"
)

// 按主键id做存在性检查后更新或插入，保存同一个id两次只会留下一行最新内容。

func upsertRecord(tx *gorm.DB, r *db.Record) error {
	var existing db.Record
	err := tx.Where("id = ?", r.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(r).Error
	}
	if err != nil {
		return err
	}
	existing.Content = r.Content
	existing.Type = r.Type
	existing.Date = r.Date
	return tx.Save(&existing).Error
}

// upsertStarrySky 星空数据按userId单行upsert
func upsertStarrySky(tx *gorm.DB, s *db.StarrySky) error {
	var existing db.StarrySky
	err := tx.Where("user_id = ?", s.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.Achievements == nil {
			s.Achievements = []string{}
		}
		s.LastUpdated = time.Now()
		return tx.Create(s).Error
	}
	if err != nil {
		return err
	}
	existing.Stars = s.Stars
	existing.MorningStars = s.MorningStars
	existing.TodayRecords = s.TodayRecords
	existing.LastRecordDate = s.LastRecordDate
	if s.Achievements != nil {
		existing.Achievements = s.Achievements
	}
	existing.LastUpdated = time.Now()
	s.ID = existing.ID
	return tx.Save(&existing).Error
}

func upsertReward(tx *gorm.DB, r *db.Reward) error {
	var existing db.Reward
	err := tx.Where("id = ?", r.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(r).Error
	}
	if err != nil {
		return err
	}
	existing.Type = r.Type
	existing.Name = r.Name
	existing.Date = r.Date
	existing.IsClaimed = r.IsClaimed
	return tx.Save(&existing).Error
}

func upsertMemory(tx *gorm.DB, m *db.Memory) error {
	var existing db.Memory
	err := tx.Where("id = ?", m.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(m).Error
	}
	if err != nil {
		return err
	}
	existing.Title = m.Title
	existing.Content = m.Content
	existing.Date = m.Date
	existing.ImageURL = m.ImageURL
	return tx.Save(&existing).Error
}

func upsertAnniversary(tx *gorm.DB, a *db.Anniversary) error {
	var existing db.Anniversary
	err := tx.Where("id = ?", a.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(a).Error
	}
	if err != nil {
		return err
	}
	existing.Title = a.Title
	existing.Date = a.Date
	existing.IsRecurring = a.IsRecurring
	existing.Description = a.Description
	return tx.Save(&existing).Error
}
