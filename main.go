package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/udonlab/kanjo-trace-bot/internal/analyzer"
	"github.com/udonlab/kanjo-trace-bot/internal/app"
	"github.com/udonlab/kanjo-trace-bot/internal/config"
	"github.com/udonlab/kanjo-trace-bot/internal/logger"
	"github.com/udonlab/kanjo-trace-bot/internal/scheduler"
	"github.com/udonlab/kanjo-trace-bot/internal/svc"

	"github.com/joho/godotenv"
)

var configFile = flag.String("f", "etc/config.yaml", "the config file")

func main() {
	os.Exit(run())
}

func run() (code int) {
	// 未処理の障害はここで受け止め、プロセスのクラッシュではなく失敗終了に変換する
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("予期しないエラーが発生した: %v", r)
			code = 1
		}
	}()

	flag.Parse()

	// ローカル実行時は .env から環境変数を読み込む（CI では存在しない）
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logger.Warnf(".env の読み込みに失敗, %s", err)
		} else {
			logger.Infof(".env から環境変数を読み込んだ")
		}
	}

	// 設定を読み込む
	c, err := config.Load(*configFile)
	if err != nil {
		logger.Errorf("設定の読み込みに失敗, %s", err)
		return 1
	}

	if c.DebugMode() {
		logger.Infof("必要な認証情報が不足しているためデバッグモードで実行する")
	}

	// サービスコンテキストを作成
	svcCtx := svc.NewServiceContext(c)

	var anl *analyzer.Analyzer
	if svcCtx.LLMClient != nil {
		anl = analyzer.NewAnalyzer(svcCtx.LLMClient, c.Report.PromptFile)
	}

	application := app.New(c, svcCtx.SlackApp, anl)

	// 常駐モード: cron 式に従って定期実行し、シグナルで優雅に終了する
	if c.Schedule.Enable {
		schedulerInstance := scheduler.NewScheduler(application, c.Schedule.Cron)
		if err := schedulerInstance.Start(); err != nil {
			logger.Errorf("[Scheduler] スケジューラの起動に失敗: %s", err)
			return 1
		}

		ch := make(chan os.Signal, 2)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch

		logger.Infof("サービスを終了する...")
		schedulerInstance.Stop()
		logger.Infof("サービスを停止した")
		return 0
	}

	// 1回実行モード: 実行結果を終了コードで報告する
	if application.Run(context.Background()) {
		return 0
	}
	return 1
}
