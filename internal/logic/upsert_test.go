package logic

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"love-backend/internal/db"
)

// setupIntegrationDB 连接MYSQL_TEST_DSN指定的测试库，未设置时跳过。
// 测试结束后清理写入的行并把全局连接还原为nil。
func setupIntegrationDB(t *testing.T, userID string) *gorm.DB {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN未设置，跳过MySQL集成测试")
	}

	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := conn.AutoMigrate(&db.User{}, &db.Record{}, &db.StarrySky{},
		&db.Reward{}, &db.Memory{}, &db.Anniversary{}); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}

	db.SetDB(conn)
	t.Cleanup(func() {
		for _, table := range []string{"records", "starry_sky", "rewards", "memories", "anniversaries"} {
			conn.Exec("DELETE FROM "+table+" WHERE user_id = ?", userID)
		}
		conn.Exec("DELETE FROM users WHERE id = ?", userID)
		db.SetDB(nil)
	})
	return conn
}

// 测试同一id保存两次只留一行且内容为最新
func TestUpsertRecordIdempotent(t *testing.T) {
	conn := setupIntegrationDB(t, "it-upsert-user")
	assert.NoError(t, ensureUser(conn, "it-upsert-user"))

	first := db.Record{
		ID: "it-r1", UserID: "it-upsert-user",
		Content: "第一次写下的内容", Type: "normal", Date: "2025-09-22 10:00:00",
	}
	assert.NoError(t, upsertRecord(conn, &first))

	second := db.Record{
		ID: "it-r1", UserID: "it-upsert-user",
		Content: "第二次更新后的内容", Type: "deep", Date: "2025-09-22 11:00:00",
	}
	assert.NoError(t, upsertRecord(conn, &second))

	var rows []db.Record
	assert.NoError(t, conn.Where("id = ?", "it-r1").Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.Equal(t, "第二次更新后的内容", rows[0].Content)
	assert.Equal(t, "deep", rows[0].Type)
}

// 测试星空数据按userId保持单行，入参无成就时保留已有成就
func TestUpsertStarrySkySingleton(t *testing.T) {
	conn := setupIntegrationDB(t, "it-starry-user")
	assert.NoError(t, ensureUser(conn, "it-starry-user"))

	first := db.StarrySky{
		UserID: "it-starry-user", Stars: 10, MorningStars: 1,
		TodayRecords: 1, LastRecordDate: "2025-09-22",
		Achievements: []string{"first_star_light"},
	}
	assert.NoError(t, upsertStarrySky(conn, &first))

	second := db.StarrySky{
		UserID: "it-starry-user", Stars: 11, MorningStars: 1,
		TodayRecords: 2, LastRecordDate: "2025-09-22",
	}
	assert.NoError(t, upsertStarrySky(conn, &second))
	assert.Equal(t, first.ID, second.ID)

	var rows []db.StarrySky
	assert.NoError(t, conn.Where("user_id = ?", "it-starry-user").Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.Equal(t, 11, rows[0].Stars)
	assert.Contains(t, rows[0].Achievements, "first_star_light")
}

// 测试批量保存整体回滚：一条失败时合法的那条也不落库
func TestSaveUserDataRollsBack(t *testing.T) {
	conn := setupIntegrationDB(t, "it-rollback-user")
	router := setupTestRouter()

	// 超出id列长度的主键触发写入失败
	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{"id": "it-ok", "content": "这条记录本身是合法的", "date": "2025-09-22 10:00:00"},
			{"id": strings.Repeat("x", 80), "content": "这条的主键超长", "date": "2025-09-22 10:01:00"},
		},
	}
	w := postJSON(router, "/api/user/it-rollback-user/save", payload)
	assert.Equal(t, 500, w.Code)

	var count int64
	assert.NoError(t, conn.Model(&db.Record{}).Where("user_id = ?", "it-rollback-user").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// 测试批量保存成功路径：各集合落库且可经聚合接口读回
func TestSaveUserDataPersistsAll(t *testing.T) {
	conn := setupIntegrationDB(t, "it-save-user")
	router := setupTestRouter()

	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{"id": "it-s-r1", "content": "一起做了晚饭", "date": "2025-09-22 18:00:00"},
		},
		"starrySky": map[string]interface{}{
			"stars": 5, "morningStars": 1, "todayRecords": 1, "lastRecordDate": "2025-09-22",
		},
		"anniversaries": []map[string]interface{}{
			{"id": "it-s-a1", "title": "相识纪念日", "date": "2024-02-14"},
		},
	}
	w := postJSON(router, "/api/user/it-save-user/save", payload)
	assert.Equal(t, 200, w.Code)

	var recordCount int64
	assert.NoError(t, conn.Model(&db.Record{}).Where("user_id = ?", "it-save-user").Count(&recordCount).Error)
	assert.Equal(t, int64(1), recordCount)

	var starry db.StarrySky
	assert.NoError(t, conn.Where("user_id = ?", "it-save-user").First(&starry).Error)
	assert.Equal(t, 5, starry.Stars)
}
