package main

import (
	"os"
	"testing"
)

// 设置测试环境变量
func setupTestEnv() {
	os.Setenv("MYSQL_DSN", "test_mysql_dsn")
	os.Setenv("PORT", "3001")
}

// 清理测试环境变量
func cleanupTestEnv() {
	os.Unsetenv("MYSQL_DSN")
	os.Unsetenv("PORT")
}

// TestMain 在所有测试开始前运行
func TestMain(m *testing.M) {
	setupTestEnv()
	code := m.Run()
	cleanupTestEnv()
	os.Exit(code)
}
