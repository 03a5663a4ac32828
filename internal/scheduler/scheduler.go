package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/udonlab/kanjo-trace-bot/internal/logger"

	"github.com/robfig/cron/v3"
)

// runner 定期実行されるパイプライン（テスト時の mock 注入用）
type runner interface {
	Run(ctx context.Context) bool
}

type Scheduler struct {
	cron     *cron.Cron
	runner   runner
	cronSpec string
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
}

func NewScheduler(r runner, cronSpec string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		runner:   r,
		cronSpec: cronSpec,
	}
}

// Start スケジューラを起動する
func (s *Scheduler) Start() error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	_, err := s.cron.AddFunc(s.cronSpec, s.runAnalysis)
	if err != nil {
		return fmt.Errorf("定期実行タスクの登録に失敗: %w", err)
	}

	s.cron.Start()
	logger.Infof("[Scheduler] スケジューラを起動した: %s", s.cronSpec)
	return nil
}

// Stop スケジューラを停止し、実行中のタスクの完了を待つ
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Infof("[Scheduler] スケジューラを停止した")
}

// runAnalysis cron から呼ばれる1回分の実行
func (s *Scheduler) runAnalysis() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		logger.Infof("[Scheduler] 停止済みのため実行しない")
		return
	default:
	}

	logger.Infof("[Scheduler] 感情分析の定期実行を開始する")
	if s.runner.Run(ctx) {
		logger.Infof("[Scheduler] 定期実行が完了した")
	} else {
		logger.Errorf("[Scheduler] 定期実行が失敗した")
	}
}
