package db

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MySQLDSN string
}

func LoadConfig() *Config {
	// .env 不存在时忽略，直接读环境变量
	_ = godotenv.Load()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:123456@tcp(127.0.0.1:3306)/love_app?charset=utf8mb4&parseTime=True&loc=Local"
	}
	return &Config{
		MySQLDSN: dsn,
	}
}

func (c *Config) Print() {
	logrus.WithField("dsn", c.MySQLDSN).Info("MySQL DSN loaded")
}
