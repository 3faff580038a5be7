package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var db *gorm.DB

func GetDB() *gorm.DB {
	return db
}

// SetDB 测试用：替换全局连接
func SetDB(conn *gorm.DB) {
	db = conn
}

// InitDB 连接MySQL并自动迁移表结构。
// 连接失败时只记录日志不退出，服务继续运行，数据库相关接口单独报错。
func InitDB() {
	cfg := LoadConfig()
	cfg.Print()

	conn, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Error("failed to connect database, API will serve without persistence")
		return
	}
	db = conn
	logrus.Info("Connected to MySQL!")

	// 自动迁移表结构（create if not exists）
	if err := db.AutoMigrate(&User{}, &Record{}, &StarrySky{}, &Reward{}, &Memory{}, &Anniversary{}); err != nil {
		logrus.WithError(err).Error("auto migrate failed")
	}
}
