package report

import (
	"fmt"
	"sort"
	"strings"
)

// Render 日付ごとの感情分析結果をレポート本文に整形する。
// 日付は辞書順（＝ゼロ埋め ISO 形式なので時系列順）でソートするため、出力は決定的になる。
func Render(byDate map[string]string) string {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var sb strings.Builder
	sb.WriteString("=== 日付ごとの感情分析 ===\n")
	for _, date := range dates {
		sb.WriteString(fmt.Sprintf("\n日付: %s\n", date))
		sb.WriteString(byDate[date])
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderRaw 分析器が使えない場合の生データ出力。日付ごとに会話行をそのまま並べる
func RenderRaw(buckets map[string][]string) string {
	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var sb strings.Builder
	sb.WriteString("=== 日付ごとの会話データ ===\n")
	for _, date := range dates {
		sb.WriteString(fmt.Sprintf("\n日付: %s\n", date))
		sb.WriteString(strings.Join(buckets[date], "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// AppendTrend レポート本文の末尾にトレンド分析セクションを追加する
func AppendTrend(content, trend string) string {
	if trend == "" {
		return content
	}
	return content + "\n=== 感情トレンド分析 ===\n" + trend + "\n"
}
