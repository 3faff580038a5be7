package main

import (
	"love-backend/internal/db"
	"love-backend/internal/logic"
)

func main() {
	db.InitDB()

	// 启动纪念日提醒调度器
	logic.StartScheduler()

	// 启动Gin路由
	cfg := LoadConfig()
	cfg.Print()
	router := logic.SetupRouter()
	router.Run(":" + cfg.Port)
}
