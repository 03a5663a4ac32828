package chatlog

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/udonlab/kanjo-trace-bot/internal/logger"
)

// RawMessage チャンネル履歴から取得した1件のメッセージ。
// Ts は Slack 形式の epoch 秒文字列（例 "1740700631.000200"）。
type RawMessage struct {
	UserID string
	Text   string
	Ts     string
}

// messagePattern "U08BTPRSAHZ: メッセージ本文 (timestamp: 2025-02-28 07:57:11)" 形式にマッチする。
// 本文は非貪欲で改行をまたぐため、次の timestamp マーカーまでが1メッセージの境界になる。
// 本文自体に「(timestamp: 日時)」が含まれるケースはそこで打ち切られる（仕様上の既知の制限）。
var messagePattern = regexp.MustCompile(`(?s)([A-Z0-9]+):\s+(.*?)\s+\(timestamp:\s+(\d{4}-\d{2}-\d{2})\s+\d{2}:\d{2}:\d{2}\)`)

// FormatMessages メッセージ群を分析用のテキスト形式に整形する。
// UserID か Ts を欠くメッセージは黙って捨てる。時刻はローカルタイムゾーンの秒精度。
func FormatMessages(messages []RawMessage) string {
	formatted := make([]string, 0, len(messages))

	for _, msg := range messages {
		if msg.UserID == "" || msg.Ts == "" {
			continue
		}
		sec, err := strconv.ParseFloat(msg.Ts, 64)
		if err != nil {
			continue
		}
		readable := time.Unix(int64(sec), 0).Format("2006-01-02 15:04:05")
		formatted = append(formatted, fmt.Sprintf("%s: %s (timestamp: %s)", msg.UserID, msg.Text, readable))
	}

	return strings.Join(formatted, "\n")
}

// ParseByDate 会話テキストを走査して日付ごとのメッセージ群に分解する。
// 戻り値は "YYYY-MM-DD" をキーとし、出現順の "ユーザーID: 本文" を値とする。
// パターンに合わない部分は黙って読み飛ばすベストエフォート方式で、時刻部分は捨てる。
func ParseByDate(conversationText string) map[string][]string {
	buckets := make(map[string][]string)

	for _, m := range messagePattern.FindAllStringSubmatch(conversationText, -1) {
		userID, body, date := m[1], m[2], m[3]
		buckets[date] = append(buckets[date], fmt.Sprintf("%s: %s", userID, strings.TrimSpace(body)))
	}

	return buckets
}

// ReadConversationFile デバッグ用の会話履歴ファイルを読み込む。失敗時は空文字列を返す
func ReadConversationFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("[Chatlog] 会話履歴ファイルの読み込みに失敗: %v", err)
		return ""
	}
	return string(data)
}
