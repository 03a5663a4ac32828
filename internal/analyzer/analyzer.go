package analyzer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/udonlab/kanjo-trace-bot/internal/llm"
	"github.com/udonlab/kanjo-trace-bot/internal/logger"
)

// completionClient テキスト補完を実行するクライアント（テスト時の mock 注入用）
type completionClient interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Analyzer struct {
	llmClient  completionClient
	promptCore string
}

// NewAnalyzer 感情分析器を作成する。promptFile が存在すればプロンプトの中核部分を差し替える
func NewAnalyzer(llmClient *llm.Client, promptFile string) *Analyzer {
	core := emotionPromptCore
	if promptFile != "" {
		if override := readPromptFile(promptFile); override != "" {
			core = override
			logger.Infof("[Analyzer] 感情分析プロンプトを %s から読み込んだ", promptFile)
		}
	}
	return &Analyzer{
		llmClient:  llmClient,
		promptCore: core,
	}
}

// AnalyzeByDate 日付ごとのメッセージ群を1日付1回の補完呼び出しで感情分析する。
// ある日付の呼び出しが失敗しても他の日付の処理は続行し、その日付の値は
// "分析エラー: <原因>" というマーカー文字列になる。
func (a *Analyzer) AnalyzeByDate(ctx context.Context, buckets map[string][]string) map[string]string {
	results := make(map[string]string, len(buckets))

	for date, messages := range buckets {
		prompt := buildEmotionPrompt(a.promptCore, date, strings.Join(messages, "\n"))

		analysis, err := a.llmClient.ChatCompletion(ctx, systemPrompt, prompt)
		if err != nil {
			logger.Errorf("[Analyzer] %s の感情分析に失敗: %v", date, err)
			results[date] = fmt.Sprintf("分析エラー: %v", err)
			continue
		}

		results[date] = analysis
		logger.Infof("[Analyzer] %s の感情分析が完了", date)
	}

	return results
}

// AnalyzeTrend 日付ごとの分析結果を時系列にまとめ、1回の補完で感情の変化傾向を分析する
func (a *Analyzer) AnalyzeTrend(ctx context.Context, byDate map[string]string) (string, error) {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var sb strings.Builder
	for _, date := range dates {
		sb.WriteString(fmt.Sprintf("日付: %s\n%s\n\n", date, byDate[date]))
	}

	trend, err := a.llmClient.ChatCompletion(ctx, systemPrompt, buildTrendPrompt(sb.String()))
	if err != nil {
		return "", fmt.Errorf("トレンド分析に失敗: %w", err)
	}
	return trend, nil
}

func readPromptFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("[Analyzer] プロンプトファイルの読み込みに失敗: %v", err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}
