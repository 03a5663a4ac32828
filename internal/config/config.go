package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ReportModePost = "post"
	ReportModeFile = "file"
)

type Sock5Proxy struct {
	Host   string `yaml:"Host"`
	Port   int32  `yaml:"Port"`
	Enable bool   `yaml:"Enable"`
}

type Slack struct {
	APIToken        string `yaml:"APIToken"`        // 環境変数 MESSAGING_API_TOKEN で上書き
	SourceChannelID string `yaml:"SourceChannelID"` // 環境変数 SOURCE_CHANNEL_ID で上書き
	TargetChannelID string `yaml:"TargetChannelID"` // 環境変数 TARGET_CHANNEL_ID で上書き
}

type LLM struct {
	BaseURL string `yaml:"BaseURL"` // OpenAI API 互換のエンドポイント
	APIKey  string `yaml:"APIKey"`  // 環境変数 LLM_API_KEY で上書き
	Model   string `yaml:"Model"`   // gpt-4o-mini, deepseek-chat など
}

type Report struct {
	Mode          string `yaml:"Mode"`          // "post"=メッセージ投稿 / "file"=ファイルアップロード
	TrendAnalysis bool   `yaml:"TrendAnalysis"` // 日付をまたいだトレンド分析を追加するか
	PromptFile    string `yaml:"PromptFile"`    // 感情分析プロンプトの上書きファイル（任意）
}

type Schedule struct {
	Enable bool   `yaml:"Enable"` // true なら cron 式による常駐実行、false なら1回実行
	Cron   string `yaml:"Cron"`   // cron 式、例 "0 23 * * *"
}

type Debug struct {
	ConversationFile string `yaml:"ConversationFile"` // デバッグモードの入力ファイル
	ResultFile       string `yaml:"ResultFile"`       // デバッグモードの出力ファイル
}

type Config struct {
	Sock5Proxy Sock5Proxy `yaml:"Sock5Proxy"`
	Slack      Slack      `yaml:"Slack"`
	LLM        LLM        `yaml:"LLM"`
	Report     Report     `yaml:"Report"`
	Schedule   Schedule   `yaml:"Schedule"`
	Debug      Debug      `yaml:"Debug"`
}

// Load 設定を読み込む。設定ファイルは任意で、認証情報は環境変数が常に優先される。
// 認証情報の不足はエラーではなくデバッグモードの選択条件になる。
func Load(filename string) (*Config, error) {
	var c Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err = yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("設定ファイルの解析に失敗: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	c.applyEnv()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("MESSAGING_API_TOKEN"); v != "" {
		c.Slack.APIToken = v
	}
	if v := os.Getenv("SOURCE_CHANNEL_ID"); v != "" {
		c.Slack.SourceChannelID = v
	}
	if v := os.Getenv("TARGET_CHANNEL_ID"); v != "" {
		c.Slack.TargetChannelID = v
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.Report.Mode == "" {
		c.Report.Mode = ReportModePost
	}
	if c.Debug.ConversationFile == "" {
		c.Debug.ConversationFile = "debug/conversation_history.txt"
	}
	if c.Debug.ResultFile == "" {
		c.Debug.ResultFile = "debug/result.txt"
	}
}

// Validate 設定の有効性を検証する
func (c *Config) Validate() error {
	if c.Report.Mode != ReportModePost && c.Report.Mode != ReportModeFile {
		return fmt.Errorf("Report.Mode は 'post' または 'file' でなければならない")
	}
	if c.Schedule.Enable && c.Schedule.Cron == "" {
		return fmt.Errorf("Schedule.Cron は空にできない（Schedule.Enable が true の場合）")
	}
	return nil
}

// DebugMode ライブモードに必要な4つの値のいずれかが欠けていれば true。
// 混在モードは存在せず、1つでも欠ければ実行全体がデバッグモードになる。
func (c *Config) DebugMode() bool {
	return c.LLM.APIKey == "" ||
		c.Slack.APIToken == "" ||
		c.Slack.SourceChannelID == "" ||
		c.Slack.TargetChannelID == ""
}
