package analyzer

import "fmt"

const systemPrompt = "You are a helpful assistant."

// emotionPromptCore 感情分析プロンプトの中核部分。
// config の Report.PromptFile で指定したファイルの内容に差し替えられる。
const emotionPromptCore = `これらのメッセージからユーザーの感情状態を簡潔に分析してください。
ポジティブな感情、ネガティブな感情、中立的な感情などを特定し、
その日のユーザーの全体的な感情状態を3-5文程度で簡潔に要約してください。
冗長な説明は避け、要点のみを述べてください。`

// trendPromptCore 日付をまたいだ感情トレンド分析のプロンプト
const trendPromptCore = `以下は日付ごとの感情分析結果です。これらの結果を時系列で分析し、
感情の変化や傾向、パターンを特定してください。
特に注目すべき変化や転換点があれば強調してください。
分析は簡潔に、5-7文程度にまとめてください。冗長な説明は避け、要点のみを述べてください。`

func buildEmotionPrompt(core, date, messages string) string {
	return fmt.Sprintf("以下は特定の日付（%s）のチャットメッセージです。\n%s\n\nメッセージ:\n%s\n", date, core, messages)
}

func buildTrendPrompt(allAnalyses string) string {
	return fmt.Sprintf("%s\n\n%s", trendPromptCore, allAnalyses)
}
