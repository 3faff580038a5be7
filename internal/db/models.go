package db

import (
	"time"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"size:50" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record 付出记录表
// Date 统一存 "2006-01-02 15:04:05" 格式
type Record struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Content   string    `gorm:"type:text" json:"content"`
	Type      string    `gorm:"size:20" json:"recordType"`
	Date      string    `gorm:"size:19" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// StarrySky 星空表，每个用户只有一行
// achievements 以JSON存储，成就只增不减
type StarrySky struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"size:36;uniqueIndex" json:"userId"`
	Stars          int       `json:"stars"`
	MorningStars   int       `json:"morningStars"`
	TodayRecords   int       `json:"todayRecords"`
	LastRecordDate string    `gorm:"size:10" json:"lastRecordDate"`
	Achievements   []string  `gorm:"serializer:json;type:text" json:"achievements"`
	LastUpdated    time.Time `json:"lastUpdated"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
}

func (StarrySky) TableName() string {
	return "starry_sky"
}

type Reward struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    string `gorm:"size:36;index" json:"userId"`
	Type      string `gorm:"size:20" json:"type"`
	Name      string `gorm:"size:100" json:"name"`
	Date      string `gorm:"size:19" json:"date"`
	IsClaimed bool   `gorm:"default:false" json:"isClaimed"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
}

type Memory struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	UserID   string `gorm:"size:36;index" json:"userId"`
	Title    string `gorm:"size:100" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Date     string `gorm:"size:19" json:"date"`
	ImageURL string `gorm:"size:255" json:"imageUrl"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
}

type Anniversary struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	UserID      string `gorm:"size:36;index" json:"userId"`
	Title       string `gorm:"size:100" json:"title"`
	Date        string `gorm:"size:10" json:"date"`
	IsRecurring bool   `gorm:"default:true" json:"isRecurring"`
	Description string `gorm:"type:text" json:"description"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
}
