package logic

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms"
	langopenai "github.com/tmc/langchaingo/llms/openai"

	"love-backend/internal/common"
)

// AITipHandler AI生成今日小贴士，未配置token时报错走默认小贴士
func AITipHandler(c *gin.Context) {
	if common.HunyuanToken == "" {
		c.JSON(500, gin.H{"success": false, "message": "AI小贴士未配置", "error": "HUNYUAN_TOKEN is empty"})
		return
	}

	llm, err := langopenai.New(
		langopenai.WithToken(common.HunyuanToken),
		langopenai.WithModel(common.HunyuanModel),
		langopenai.WithBaseURL(common.HunyuanBaseUrl))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "AI初始化失败", "error": err.Error()})
		return
	}

	tip, err := llms.GenerateFromSinglePrompt(context.Background(), llm, common.RolePrompt,
		llms.WithMaxTokens(100))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "AI生成小贴士失败", "error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "data": gin.H{"todayTip": tip}})
}
