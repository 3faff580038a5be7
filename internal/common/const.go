package common

import "os"

const (
	// RolePrompt 用于AI恋爱小贴士生成
	RolePrompt = "你是一位温柔的恋爱顾问，请用一两句话给出一条具体、温暖的恋爱相处建议，帮助情侣更好地经营感情。"

	// MaxRecordsPerDay 每日记录上限
	MaxRecordsPerDay = 5
	// MinRecordLength 记录内容最少字符数
	MinRecordLength = 5

	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// RewardNames 奖励类型与名称
var RewardNames = map[string]string{
	"make_up":  "和好券",
	"wish":     "心愿券",
	"ceremony": "专属仪式券",
}

// DefaultTips 默认恋爱小贴士
var DefaultTips = []string{
	"恋爱中最重要的是真诚和沟通。",
	"学会换位思考，理解对方的感受。",
	"定期表达感谢和爱意，不要把对方的好视为理所当然。",
	"给彼此一些个人空间，保持独立的自我。",
	"共同创造新的回忆，保持关系的新鲜感。",
}

var HunyuanToken string
var HunyuanModel = "hunyuan-turbos-latest"
var HunyuanBaseUrl = "https://api.hunyuan.cloud.tencent.com/v1"

func init() {
	// AI小贴士为可选功能，token为空时使用默认小贴士
	HunyuanToken = os.Getenv("HUNYUAN_TOKEN")
}
