package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"love-backend/internal/db"
)

// Result API统一响应壳
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// UserData 服务端返回的用户全量数据
type UserData struct {
	UserID        string           `json:"userId"`
	Records       []db.Record      `json:"records"`
	StarrySky     db.StarrySky     `json:"starrySky"`
	Rewards       []db.Reward      `json:"rewards"`
	Memories      []db.Memory      `json:"memories"`
	Anniversaries []db.Anniversary `json:"anniversaries"`
}

// APIClient 远端API客户端。网络错误和非2xx都折叠成 {success:false}，
// 调用方拿不到异常，本地数据始终保持可用。
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *APIClient) request(method, path string, body interface{}) Result {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return Result{Success: false, Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("HTTP错误! 状态码: %d", resp.StatusCode)}
	}
	return result
}

// Ping 检查后端是否可用
func (c *APIClient) Ping() Result {
	return c.request(http.MethodGet, "/ping", nil)
}

// FetchUserData 拉取用户全量数据
func (c *APIClient) FetchUserData(userID string) (*UserData, Result) {
	result := c.request(http.MethodGet, "/user/"+userID, nil)
	if !result.Success || result.Data == nil {
		return nil, result
	}
	var data UserData
	if err := json.Unmarshal(result.Data, &data); err != nil {
		return nil, Result{Success: false, Message: err.Error()}
	}
	return &data, result
}

// MigrateLocalData 把整个本地快照发给批量保存端点（一次事务）
func (c *APIClient) MigrateLocalData(userID string, snapshot *Snapshot) Result {
	return c.request(http.MethodPost, "/user/"+userID+"/save", snapshot)
}

func (c *APIClient) SaveRecord(userID string, record db.Record) Result {
	record.UserID = userID
	return c.request(http.MethodPost, "/records", record)
}

func (c *APIClient) SaveStarrySky(userID string, starry db.StarrySky) Result {
	starry.UserID = userID
	return c.request(http.MethodPost, "/starry-sky", starry)
}

func (c *APIClient) SaveReward(userID string, reward db.Reward) Result {
	reward.UserID = userID
	return c.request(http.MethodPost, "/rewards", reward)
}

func (c *APIClient) SaveMemory(userID string, memory db.Memory) Result {
	memory.UserID = userID
	return c.request(http.MethodPost, "/memories", memory)
}

func (c *APIClient) SaveAnniversary(userID string, anniversary db.Anniversary) Result {
	anniversary.UserID = userID
	return c.request(http.MethodPost, "/anniversaries", anniversary)
}
