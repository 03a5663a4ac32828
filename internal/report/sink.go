package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/udonlab/kanjo-trace-bot/internal/logger"
)

const (
	uploadFilePattern = "analysis_results-*.txt"
	uploadTitle       = "感情分析結果"
	uploadComment     = "チャット履歴の感情分析結果:"
)

// uploader ファイルをチャンネルにアップロードできるゲートウェイ（テスト時の mock 注入用）
type uploader interface {
	UploadFile(ctx context.Context, channelID, filePath, title, initialComment string) bool
}

// SaveToFile 内容をファイルに書き出す。親ディレクトリは必要に応じて作成し、既存ファイルは上書きする
func SaveToFile(path, content string) bool {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Errorf("[Report] 出力ディレクトリの作成に失敗: %v", err)
			return false
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		logger.Errorf("[Report] 結果のファイル保存に失敗: %v", err)
		return false
	}
	return true
}

// UploadAsFile 内容を一時ファイルに書き出してチャンネルにアップロードする。
// 一時ファイルはアップロードの成否にかかわらず必ず削除する。
func UploadAsFile(ctx context.Context, up uploader, channelID, content string) bool {
	tempFile, err := os.CreateTemp("", uploadFilePattern)
	if err != nil {
		logger.Errorf("[Report] 一時ファイルの作成に失敗: %v", err)
		return false
	}
	tempPath := tempFile.Name()
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			logger.Warnf("[Report] 一時ファイルの削除に失敗: %v", err)
		}
	}()

	if _, err = tempFile.WriteString(content); err != nil {
		tempFile.Close()
		logger.Errorf("[Report] 一時ファイルの書き込みに失敗: %v", err)
		return false
	}
	if err = tempFile.Close(); err != nil {
		logger.Errorf("[Report] 一時ファイルのクローズに失敗: %v", err)
		return false
	}

	return up.UploadFile(ctx, channelID, tempPath, uploadTitle, uploadComment)
}
