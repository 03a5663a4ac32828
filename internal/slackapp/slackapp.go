package slackapp

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/udonlab/kanjo-trace-bot/internal/chatlog"
	"github.com/udonlab/kanjo-trace-bot/internal/logger"

	"github.com/slack-go/slack"
)

// slackAPI Slack Web API クライアントのインターフェース。テスト時の mock 注入用
type slackAPI interface {
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

type App struct {
	client slackAPI
}

// NewApp Slack クライアントを作成する。httpClient が nil の場合はデフォルトを使う
func NewApp(token string, httpClient *http.Client) *App {
	options := make([]slack.Option, 0)
	if httpClient != nil {
		options = append(options, slack.OptionHTTPClient(httpClient))
	}
	return &App{client: slack.New(token, options...)}
}

// FetchConversationHistory チャンネル履歴を1回の呼び出しで取得する（ページングなし）。
// 転送エラーはここでログに残し、nil を返して「データなし」として扱わせる。
func (app *App) FetchConversationHistory(ctx context.Context, channelID string) []chatlog.RawMessage {
	resp, err := app.client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
	})
	if err != nil {
		logger.Errorf("[SlackApp] 会話履歴の取得に失敗: %v", err)
		return nil
	}

	messages := make([]chatlog.RawMessage, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		messages = append(messages, chatlog.RawMessage{
			UserID: msg.User,
			Text:   msg.Text,
			Ts:     msg.Timestamp,
		})
	}

	logger.Infof("[SlackApp] チャンネル %s から %d 件のメッセージを取得", channelID, len(messages))
	return messages
}

// PostMessage チャンネルにテキストメッセージを投稿する
func (app *App) PostMessage(ctx context.Context, channelID, text string) bool {
	_, _, err := app.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		logger.Errorf("[SlackApp] メッセージの投稿に失敗: %v", err)
		return false
	}

	logger.Infof("[SlackApp] チャンネル %s にメッセージを投稿した", channelID)
	return true
}

// UploadFile ローカルファイルをチャンネルにアップロードする
func (app *App) UploadFile(ctx context.Context, channelID, filePath, title, initialComment string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		logger.Errorf("[SlackApp] アップロード対象ファイルの確認に失敗: %v", err)
		return false
	}

	_, err = app.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        channelID,
		File:           filePath,
		Filename:       filepath.Base(filePath),
		FileSize:       int(info.Size()),
		Title:          title,
		InitialComment: initialComment,
	})
	if err != nil {
		logger.Errorf("[SlackApp] ファイルのアップロードに失敗: %v", err)
		return false
	}

	logger.Infof("[SlackApp] チャンネル %s にファイルをアップロードした", channelID)
	return true
}
