package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler는 크론 스케줄러입니다
type Scheduler struct {
	cron *cron.Cron
}

// New는 한국 시간 기준 스케줄러를 생성합니다.
// 이전 실행이 끝나지 않았으면 다음 실행은 건너뜁니다.
func New() *Scheduler {
	location, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		zap.S().Warnf("⚠️  시간대 로드 실패, UTC 사용: %v", err)
		location = time.UTC
	}

	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// AddFunc는 크론 작업을 추가합니다
func (s *Scheduler) AddFunc(spec string, cmd func()) error {
	_, err := s.cron.AddFunc(spec, cmd)
	return err
}

// Start는 스케줄러를 시작합니다
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop은 스케줄러를 중지하고 실행 중인 작업이 끝날 때까지 기다립니다
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// NextRun은 가장 빠른 다음 실행 시각을 반환합니다. 시작 전이면 0 값입니다
func (s *Scheduler) NextRun() time.Time {
	var next time.Time
	for _, entry := range s.cron.Entries() {
		if !entry.Next.IsZero() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}

// cronLogger는 cron 라이브러리 로그를 zap으로 보냅니다
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.S().Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.S().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
