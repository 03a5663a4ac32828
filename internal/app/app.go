package app

import (
	"context"

	"github.com/udonlab/kanjo-trace-bot/internal/analyzer"
	"github.com/udonlab/kanjo-trace-bot/internal/chatlog"
	"github.com/udonlab/kanjo-trace-bot/internal/config"
	"github.com/udonlab/kanjo-trace-bot/internal/logger"
	"github.com/udonlab/kanjo-trace-bot/internal/report"
	"github.com/udonlab/kanjo-trace-bot/internal/slackapp"
)

// Mode 実行モード。起動時に一度だけ決定し、実行全体を通して切り替わらない
type Mode int

const (
	ModeLive  Mode = iota // Slack との送受信を行う
	ModeDebug             // ローカルファイルに読み書きする
)

// slackGateway メッセージプラットフォームとの送受信（テスト時の mock 注入用）
type slackGateway interface {
	FetchConversationHistory(ctx context.Context, channelID string) []chatlog.RawMessage
	PostMessage(ctx context.Context, channelID, text string) bool
	UploadFile(ctx context.Context, channelID, filePath, title, initialComment string) bool
}

// emotionAnalyzer 感情分析の能力（テスト時の mock 注入用）
type emotionAnalyzer interface {
	AnalyzeByDate(ctx context.Context, buckets map[string][]string) map[string]string
	AnalyzeTrend(ctx context.Context, byDate map[string]string) (string, error)
}

// App パイプライン全体を繋ぐオーケストレーター。
// slack と analyzer は任意の能力として保持し、nil なら「その能力なし」として分岐する。
type App struct {
	cfg      *config.Config
	mode     Mode
	slack    slackGateway
	analyzer emotionAnalyzer
}

func New(cfg *config.Config, slackApp *slackapp.App, anl *analyzer.Analyzer) *App {
	mode := ModeLive
	if cfg.DebugMode() {
		mode = ModeDebug
	}

	a := &App{cfg: cfg, mode: mode}
	if slackApp != nil {
		a.slack = slackApp
	}
	if anl != nil {
		a.analyzer = anl
	}
	return a
}

// Run 感情分析パイプラインを1回実行する。成功なら true。
// 取得 → 日付ごとの分解 → 感情分析 → 整形 → 出力、の順に逐次処理する。
func (a *App) Run(ctx context.Context) bool {
	buckets := a.loadConversations(ctx)
	if len(buckets) == 0 {
		logger.Errorf("[App] 会話データを取得できなかったため終了する")
		return false
	}

	if a.analyzer == nil {
		// LLM API キーが無ければ分析はできない。デバッグモードでデータがある場合は
		// 生の会話データの書き出しに切り替え、成功として扱う。
		if a.mode == ModeDebug {
			content := report.RenderRaw(buckets)
			if !report.SaveToFile(a.cfg.Debug.ResultFile, content) {
				return false
			}
			logger.Infof("[App] 会話データをファイル %s に保存した", a.cfg.Debug.ResultFile)
			return true
		}
		logger.Errorf("[App] LLM API キーが設定されていないため分析できない")
		return false
	}

	byDate := a.analyzer.AnalyzeByDate(ctx, buckets)
	content := report.Render(byDate)

	if a.cfg.Report.TrendAnalysis && len(byDate) > 1 {
		trend, err := a.analyzer.AnalyzeTrend(ctx, byDate)
		if err != nil {
			logger.Warnf("[App] トレンド分析に失敗したためセクションを省略する: %v", err)
		} else {
			content = report.AppendTrend(content, trend)
		}
	}

	return a.outputResults(ctx, content)
}

// loadConversations モードに応じて会話データを取得し、日付ごとに分解する。
// デバッグモードはローカルファイルの整形済みテキストを読むため RawMessage を経由しない。
func (a *App) loadConversations(ctx context.Context) map[string][]string {
	var conversationText string

	if a.mode == ModeDebug {
		conversationText = chatlog.ReadConversationFile(a.cfg.Debug.ConversationFile)
	} else {
		messages := a.slack.FetchConversationHistory(ctx, a.cfg.Slack.SourceChannelID)
		if len(messages) == 0 {
			return nil
		}
		conversationText = chatlog.FormatMessages(messages)
	}

	if conversationText == "" {
		return nil
	}
	return chatlog.ParseByDate(conversationText)
}

func (a *App) outputResults(ctx context.Context, content string) bool {
	if a.mode == ModeDebug {
		if !report.SaveToFile(a.cfg.Debug.ResultFile, content) {
			return false
		}
		logger.Infof("[App] 感情分析の結果をファイル %s に保存した", a.cfg.Debug.ResultFile)
		return true
	}

	switch a.cfg.Report.Mode {
	case config.ReportModeFile:
		if !report.UploadAsFile(ctx, a.slack, a.cfg.Slack.TargetChannelID, content) {
			return false
		}
		logger.Infof("[App] 感情分析の結果をチャンネル %s にファイルとして送信した", a.cfg.Slack.TargetChannelID)
		return true
	default:
		if !a.slack.PostMessage(ctx, a.cfg.Slack.TargetChannelID, content) {
			return false
		}
		logger.Infof("[App] 感情分析の結果をチャンネル %s に投稿した", a.cfg.Slack.TargetChannelID)
		return true
	}
}
