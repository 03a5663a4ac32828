package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/udonlab/kanjo-trace-bot/internal/config"

	"github.com/sashabaranov/go-openai"
)

// openAIClientInterface OpenAI クライアントのインターフェース。テスト時の mock 注入用
type openAIClientInterface interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	config       *config.LLM
	openaiClient openAIClientInterface
}

// NewClient OpenAI API 互換クライアントを作成する。httpClient が nil の場合はデフォルトを使う
func NewClient(cfg *config.LLM, httpClient *http.Client) *Client {
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		openaiConfig.HTTPClient = httpClient
	}

	return &Client{
		config:       cfg,
		openaiClient: openai.NewClientWithConfig(openaiConfig),
	}
}

// ChatCompletion system + user の2メッセージで1回の補完を実行し、応答テキストを返す。
// ストリーミングなし、リトライなしの同期呼び出し。
func (c *Client) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := c.openaiClient.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM API の呼び出しに失敗: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM API が空の結果を返した")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content), nil
}
