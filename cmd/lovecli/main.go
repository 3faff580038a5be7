package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"love-backend/internal/client"
)

// 退出前给在途的远端镜像留的时间
const flushTimeout = 5 * time.Second

var (
	stateDir string
	apiURL   string
)

func newApp() (*client.App, error) {
	store, err := client.NewLocalStore(stateDir)
	if err != nil {
		return nil, err
	}
	return client.NewApp(store, client.NewAPIClient(apiURL))
}

var rootCmd = &cobra.Command{
	Use:   "lovecli",
	Short: "恋爱记录本地客户端",
	Long: `恋爱记录应用的命令行客户端。

数据先写本地快照，再尽力同步到远端API；
远端不可用时本地数据照常工作，下次sync时重试迁移。`,
	SilenceUsage: true,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "迁移本地数据到远端并拉取最新快照",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.Sync(); err != nil {
			return err
		}
		fmt.Printf("同步完成，状态: %s\n", app.State())
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <content>",
	Short: "记录一次付出",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordType, _ := cmd.Flags().GetString("type")
		app, err := newApp()
		if err != nil {
			return err
		}
		msg, err := app.SubmitRecord(args[0], recordType)
		if err != nil {
			return err
		}
		app.Flush(flushTimeout)
		fmt.Println(msg)
		return nil
	},
}

var memoryCmd = &cobra.Command{
	Use:   "memory <title>",
	Short: "添加一条回忆",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, _ := cmd.Flags().GetString("content")
		imageURL, _ := cmd.Flags().GetString("image-url")
		app, err := newApp()
		if err != nil {
			return err
		}
		msg, err := app.AddMemory(args[0], content, imageURL)
		if err != nil {
			return err
		}
		app.Flush(flushTimeout)
		fmt.Println(msg)
		return nil
	},
}

var anniversaryCmd = &cobra.Command{
	Use:   "anniversary <title> <date>",
	Short: "添加一个纪念日（date格式 2006-01-02）",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recurring, _ := cmd.Flags().GetBool("recurring")
		description, _ := cmd.Flags().GetString("description")
		app, err := newApp()
		if err != nil {
			return err
		}
		msg, err := app.AddAnniversary(args[0], args[1], recurring, description)
		if err != nil {
			return err
		}
		app.Flush(flushTimeout)
		fmt.Println(msg)
		return nil
	},
}

var rewardCmd = &cobra.Command{
	Use:   "reward <type>",
	Short: "兑换奖励券（make_up/wish/ceremony）",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		msg, err := app.ExchangeReward(args[0])
		if err != nil {
			return err
		}
		app.Flush(flushTimeout)
		fmt.Println(msg)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "查看星空状态与同步状态",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		data := app.Data()
		starry := data.StarrySky
		fmt.Printf("用户: %s\n", app.UserID())
		fmt.Printf("同步状态: %s\n", app.State())
		fmt.Printf("星星: %d  晨辉星: %d  今日记录: %d/5\n", starry.Stars, starry.MorningStars, starry.TodayRecords)
		fmt.Printf("记录: %d条  回忆: %d条  奖励: %d张  纪念日: %d个\n",
			len(data.Records), len(data.Memories), len(data.Rewards), len(data.Anniversaries))
		if len(starry.Achievements) > 0 {
			fmt.Printf("成就: %v\n", starry.Achievements)
		}
		if next, days, ok := app.NextAnniversary(time.Now()); ok {
			fmt.Printf("下一个纪念日: %s 还有%d天\n", next.Title, days)
		}
		fmt.Printf("今日小贴士: %s\n", app.TodayTip())
		return nil
	},
}

func init() {
	defaultDir := os.Getenv("LOVEAPP_HOME")
	if defaultDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		defaultDir = filepath.Join(home, ".loveapp")
	}
	defaultAPI := os.Getenv("LOVEAPP_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:3001/api"
	}

	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultDir, "本地数据目录")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultAPI, "远端API地址")

	recordCmd.Flags().String("type", "normal", "记录类型（quick/deep/normal）")
	memoryCmd.Flags().String("content", "", "回忆内容")
	memoryCmd.Flags().String("image-url", "", "照片地址")
	anniversaryCmd.Flags().Bool("recurring", true, "是否每年循环")
	anniversaryCmd.Flags().String("description", "", "备注")

	rootCmd.AddCommand(syncCmd, recordCmd, memoryCmd, anniversaryCmd, rewardCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
