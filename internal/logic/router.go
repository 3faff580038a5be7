package logic

import (
	"errors"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"love-backend/internal/common"
	"love-backend/internal/db"

	"golang.org/x/sync/errgroup"
)

// SetupRouter 路由入口
func SetupRouter() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")

	api.GET("/ping", PingHandler)
	api.GET("/user/:userId", GetUserDataHandler)
	api.POST("/user/:userId/save", SaveUserDataHandler)
	api.GET("/user/:userId/:collection", GetCollectionHandler)
	api.POST("/records", SaveRecordHandler)
	api.POST("/starry-sky", SaveStarrySkyHandler)
	api.POST("/rewards", SaveRewardHandler)
	api.POST("/memories", SaveMemoryHandler)
	api.POST("/anniversaries", SaveAnniversaryHandler)
	api.GET("/tips", TipsHandler)
	api.GET("/tips/ai", AITipHandler)
	api.POST("/check_reminders", CheckRemindersHandler)

	return r
}

// PingHandler 健康检查
func PingHandler(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "message": "Server is running"})
}

// requireDB 数据库未就绪时统一报500
func requireDB(c *gin.Context) *gorm.DB {
	gdb := db.GetDB()
	if gdb == nil {
		c.JSON(500, gin.H{"success": false, "message": "数据库不可用", "error": "database not initialized"})
		return nil
	}
	return gdb
}

func fail(c *gin.Context, message string, err error) {
	c.JSON(500, gin.H{"success": false, "message": message, "error": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(400, gin.H{"success": false, "message": message})
}

// ensureUser 用户不存在时按 User_<id> 懒创建
func ensureUser(tx *gorm.DB, userID string) error {
	var user db.User
	err := tx.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&db.User{ID: userID, Username: "User_" + userID}).Error
	}
	return err
}

// GetUserDataHandler 获取用户全部数据，五个集合并行读取
func GetUserDataHandler(c *gin.Context) {
	gdb := requireDB(c)
	if gdb == nil {
		return
	}
	userID := c.Param("userId")

	if err := ensureUser(gdb, userID); err != nil {
		fail(c, "获取用户数据失败", err)
		return
	}

	var (
		records       []db.Record
		starry        db.StarrySky
		starryMissing bool
		rewards       []db.Reward
		memories      []db.Memory
		anniversaries []db.Anniversary
	)

	var g errgroup.Group
	g.Go(func() error {
		return gdb.Where("user_id = ?", userID).Order("date desc").Find(&records).Error
	})
	g.Go(func() error {
		err := gdb.Where("user_id = ?", userID).First(&starry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			starryMissing = true
			return nil
		}
		return err
	})
	g.Go(func() error {
		return gdb.Where("user_id = ?", userID).Find(&rewards).Error
	})
	g.Go(func() error {
		return gdb.Where("user_id = ?", userID).Order("date desc").Find(&memories).Error
	})
	g.Go(func() error {
		return gdb.Where("user_id = ?", userID).Find(&anniversaries).Error
	})
	if err := g.Wait(); err != nil {
		fail(c, "获取用户数据失败", err)
		return
	}

	// 星空数据不存在时创建零值行再读一次
	if starryMissing {
		starry = db.StarrySky{
			ID:           uuid.NewString(),
			UserID:       userID,
			Achievements: []string{},
			LastUpdated:  time.Now(),
		}
		if err := gdb.Create(&starry).Error; err != nil {
			fail(c, "获取用户数据失败", err)
			return
		}
		if err := gdb.Where("user_id = ?", userID).First(&starry).Error; err != nil {
			fail(c, "获取用户数据失败", err)
			return
		}
	}

	c.JSON(200, gin.H{
		"success": true,
		"data": gin.H{
			"userId":        userID,
			"records":       records,
			"starrySky":     starry,
			"rewards":       rewards,
			"memories":      memories,
			"anniversaries": anniversaries,
		},
	})
}

// SaveUserDataHandler 批量保存（本地数据迁移入口），整体事务，任一条失败全部回滚
func SaveUserDataHandler(c *gin.Context) {
	userID := c.Param("userId")

	var payload struct {
		Records       []db.Record      `json:"records"`
		StarrySky     *db.StarrySky    `json:"starrySky"`
		Rewards       []db.Reward      `json:"rewards"`
		Memories      []db.Memory      `json:"memories"`
		Anniversaries []db.Anniversary `json:"anniversaries"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "请求体格式错误")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}

	now := time.Now()
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, userID); err != nil {
			return err
		}
		for i := range payload.Records {
			r := payload.Records[i]
			r.UserID = userID
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			if r.Type == "" {
				r.Type = "normal"
			}
			r.Date = NormalizeDate(r.Date, now)
			if err := upsertRecord(tx, &r); err != nil {
				return err
			}
		}
		if payload.StarrySky != nil {
			s := *payload.StarrySky
			s.UserID = userID
			if err := upsertStarrySky(tx, &s); err != nil {
				return err
			}
		}
		for i := range payload.Rewards {
			r := payload.Rewards[i]
			r.UserID = userID
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			r.Date = NormalizeDate(r.Date, now)
			if err := upsertReward(tx, &r); err != nil {
				return err
			}
		}
		for i := range payload.Memories {
			m := payload.Memories[i]
			m.UserID = userID
			if m.ID == "" {
				m.ID = uuid.NewString()
			}
			m.Date = NormalizeDate(m.Date, now)
			if err := upsertMemory(tx, &m); err != nil {
				return err
			}
		}
		for i := range payload.Anniversaries {
			a := payload.Anniversaries[i]
			a.UserID = userID
			if a.ID == "" {
				a.ID = uuid.NewString()
			}
			a.Date = NormalizeDay(a.Date, now)
			if err := upsertAnniversary(tx, &a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fail(c, "保存用户数据失败", err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "数据保存成功"})
}

// GetCollectionHandler 获取单个集合，集合名走白名单
func GetCollectionHandler(c *gin.Context) {
	userID := c.Param("userId")
	collection := c.Param("collection")

	valid := map[string]bool{
		"records": true, "starrySky": true, "rewards": true,
		"memories": true, "anniversaries": true,
	}
	if !valid[collection] {
		badRequest(c, "无效的集合名称")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}

	switch collection {
	case "records":
		var rows []db.Record
		if err := gdb.Where("user_id = ?", userID).Order("date desc").Find(&rows).Error; err != nil {
			fail(c, "获取records数据失败", err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": rows})
	case "starrySky":
		// 星空数据每个用户只有一条
		var row db.StarrySky
		err := gdb.Where("user_id = ?", userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(200, gin.H{"success": true, "data": db.StarrySky{Achievements: []string{}}})
			return
		}
		if err != nil {
			fail(c, "获取starrySky数据失败", err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": row})
	case "rewards":
		var rows []db.Reward
		if err := gdb.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			fail(c, "获取rewards数据失败", err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": rows})
	case "memories":
		var rows []db.Memory
		if err := gdb.Where("user_id = ?", userID).Order("date desc").Find(&rows).Error; err != nil {
			fail(c, "获取memories数据失败", err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": rows})
	case "anniversaries":
		var rows []db.Anniversary
		if err := gdb.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			fail(c, "获取anniversaries数据失败", err)
			return
		}
		c.JSON(200, gin.H{"success": true, "data": rows})
	}
}

// SaveRecordHandler 保存单条记录
func SaveRecordHandler(c *gin.Context) {
	var req struct {
		ID         string `json:"id"`
		UserID     string `json:"userId"`
		Content    string `json:"content"`
		RecordType string `json:"recordType"`
		Type       string `json:"type"`
		Date       string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Content == "" {
		badRequest(c, "userId和content是必需的")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}
	if err := ensureUser(gdb, req.UserID); err != nil {
		fail(c, "保存记录失败", err)
		return
	}

	// 兼容老客户端的type字段
	recordType := req.RecordType
	if recordType == "" {
		recordType = req.Type
	}
	if recordType == "" {
		recordType = "normal"
	}
	record := db.Record{
		ID:      req.ID,
		UserID:  req.UserID,
		Content: req.Content,
		Type:    recordType,
		Date:    NormalizeDate(req.Date, time.Now()),
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := upsertRecord(gdb, &record); err != nil {
		fail(c, "保存记录失败", err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "记录保存成功", "data": gin.H{"id": record.ID}})
}

// SaveStarrySkyHandler 保存星空数据，按userId单行upsert
func SaveStarrySkyHandler(c *gin.Context) {
	var req struct {
		ID             string   `json:"id"`
		UserID         string   `json:"userId"`
		Stars          int      `json:"stars"`
		MorningStars   int      `json:"morningStars"`
		TodayRecords   int      `json:"todayRecords"`
		LastRecordDate string   `json:"lastRecordDate"`
		Achievements   []string `json:"achievements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		badRequest(c, "userId是必需的")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}
	if err := ensureUser(gdb, req.UserID); err != nil {
		fail(c, "保存星空数据失败", err)
		return
	}
	starry := db.StarrySky{
		ID:             req.ID,
		UserID:         req.UserID,
		Stars:          req.Stars,
		MorningStars:   req.MorningStars,
		TodayRecords:   req.TodayRecords,
		LastRecordDate: req.LastRecordDate,
		Achievements:   req.Achievements,
	}
	if err := upsertStarrySky(gdb, &starry); err != nil {
		fail(c, "保存星空数据失败", err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "星空数据保存成功", "data": gin.H{"id": starry.ID}})
}

// SaveRewardHandler 保存单条奖励
func SaveRewardHandler(c *gin.Context) {
	var req struct {
		ID        string `json:"id"`
		UserID    string `json:"userId"`
		Type      string `json:"type"`
		Name      string `json:"name"`
		Date      string `json:"date"`
		IsClaimed bool   `json:"isClaimed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Name == "" {
		badRequest(c, "userId和name是必需的")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}
	if err := ensureUser(gdb, req.UserID); err != nil {
		fail(c, "保存奖励失败", err)
		return
	}
	reward := db.Reward{
		ID:        req.ID,
		UserID:    req.UserID,
		Type:      req.Type,
		Name:      req.Name,
		Date:      NormalizeDate(req.Date, time.Now()),
		IsClaimed: req.IsClaimed,
	}
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	if err := upsertReward(gdb, &reward); err != nil {
		fail(c, "保存奖励失败", err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "奖励保存成功", "data": gin.H{"id": reward.ID}})
}

// SaveMemoryHandler 保存单条回忆
func SaveMemoryHandler(c *gin.Context) {
	var req struct {
		ID       string `json:"id"`
		UserID   string `json:"userId"`
		Title    string `json:"title"`
		Content  string `json:"content"`
		Date     string `json:"date"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Title == "" {
		badRequest(c, "userId和title是必需的")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}
	if err := ensureUser(gdb, req.UserID); err != nil {
		fail(c, "保存回忆失败", err)
		return
	}
	memory := db.Memory{
		ID:       req.ID,
		UserID:   req.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Date:     NormalizeDate(req.Date, time.Now()),
		ImageURL: req.ImageURL,
	}
	if memory.ID == "" {
		memory.ID = uuid.NewString()
	}
	if err := upsertMemory(gdb, &memory); err != nil {
		fail(c, "保存回忆失败", err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "回忆保存成功", "data": gin.H{"id": memory.ID}})
}

// SaveAnniversaryHandler 保存单条纪念日
func SaveAnniversaryHandler(c *gin.Context) {
	var req struct {
		ID          string `json:"id"`
		UserID      string `json:"userId"`
		Title       string `json:"title"`
		Date        string `json:"date"`
		IsRecurring *bool  `json:"isRecurring"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Title == "" || req.Date == "" {
		badRequest(c, "userId、title和date是必需的")
		return
	}
	gdb := requireDB(c)
	if gdb == nil {
		return
	}
	if err := ensureUser(gdb, req.UserID); err != nil {
		fail(c, "保存纪念日失败", err)
		return
	}
	isRecurring := true
	if req.IsRecurring != nil {
		isRecurring = *req.IsRecurring
	}
	anniversary := db.Anniversary{
		ID:          req.ID,
		UserID:      req.UserID,
		Title:       req.Title,
		Date:        NormalizeDay(req.Date, time.Now()),
		IsRecurring: isRecurring,
		Description: req.Description,
	}
	if anniversary.ID == "" {
		anniversary.ID = uuid.NewString()
	}
	if err := upsertAnniversary(gdb, &anniversary); err != nil {
		fail(c, "保存纪念日失败", err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "纪念日保存成功", "data": gin.H{"id": anniversary.ID}})
}

// TipsHandler 恋爱小贴士
func TipsHandler(c *gin.Context) {
	tips := common.DefaultTips
	c.JSON(200, gin.H{
		"success": true,
		"data": gin.H{
			"tips":     tips,
			"todayTip": tips[rand.Intn(len(tips))],
		},
	})
}

// CheckRemindersHandler 手动触发纪念日提醒检查
func CheckRemindersHandler(c *gin.Context) {
	CheckAnniversaryReminders()
	c.JSON(200, gin.H{"success": true, "message": "纪念日提醒检查已执行"})
}
