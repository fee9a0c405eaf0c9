package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lottohistory/config"
	"lottohistory/logger"
	"lottohistory/scheduler"
	"lottohistory/tasks"
	"lottohistory/telegram"
)

var (
	flagConfig  string
	flagStart   int
	flagEnd     int
	flagOutput  string
	flagDelay   time.Duration
	flagService bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lottohistory",
		Short: "동행복권 로또 6/45 당첨 결과 수집기",
		Long: `동행복권 당첨 결과 페이지에서 회차별 당첨번호, 보너스번호, 추첨일,
등수별 당첨금을 수집해 하나의 JSON 파일로 저장합니다.`,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "설정 파일 경로 (기본값: config.json이 있으면 사용)")
	cmd.Flags().IntVar(&flagStart, "start", 0, "시작 회차")
	cmd.Flags().IntVar(&flagEnd, "end", 0, "종료 회차 (0이면 최신 회차)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "출력 JSON 파일 경로")
	cmd.Flags().DurationVar(&flagDelay, "delay", 0, "요청 간격 (예: 500ms)")
	cmd.Flags().BoolVar(&flagService, "service", false, "스케줄러 모드 (LOTTO_SCHEDULE 주기로 수집)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("설정 오류: %w", err)
	}

	// 로그 파일 초기화
	if err := logger.Init(cfg.LogDir, cfg.LogLevel); err != nil {
		log.Printf("로그 초기화 실패: %v", err)
		return err
	}
	defer logger.Close()

	logger.Info("╔════════════════════════════════════════╗")
	logger.Info("║    동행복권 로또 6/45 당첨 결과 수집기    ║")
	logger.Info("╚════════════════════════════════════════╝")

	cfg.Print()

	var bot *telegram.Bot
	if cfg.TelegramEnabled() {
		bot = telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		logger.Info("✅ 텔레그램 봇 초기화 완료")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagService {
		return runScheduler(ctx, cfg, bot)
	}

	// 회차별 실패는 무시하고 정상 종료
	_, err = tasks.CollectHistory(ctx, cfg, bot)
	return err
}

// applyFlags는 명시적으로 지정된 플래그만 설정에 반영합니다
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.StartDrawNo = flagStart
	}
	if flags.Changed("end") {
		cfg.EndDrawNo = flagEnd
	}
	if flags.Changed("output") {
		cfg.OutputPath = flagOutput
	}
	if flags.Changed("delay") {
		cfg.RequestDelay = flagDelay
	}
}

// runScheduler는 시작 시 1회 수집한 뒤 스케줄에 따라 반복 수집합니다
func runScheduler(ctx context.Context, cfg config.Config, bot *telegram.Bot) error {
	logger.Info("🔄 스케줄러 모드 시작 (스케줄: %s)", cfg.Schedule)

	sched := scheduler.New()
	if err := sched.AddFunc(cfg.Schedule, func() {
		if _, err := tasks.CollectHistory(ctx, cfg, bot); err != nil {
			logger.Error("❌ 예약 수집 실패: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("수집 스케줄 등록 실패: %w", err)
	}

	// 시작 시 즉시 1회 실행
	if _, err := tasks.CollectHistory(ctx, cfg, bot); err != nil {
		logger.Error("❌ 시작 수집 실패: %v", err)
	}

	sched.Start()
	logger.Info("✅ 스케줄러 시작 완료 (다음 실행: %s)", sched.NextRun().Format("2006-01-02 15:04"))
	logger.Info("   종료하려면 Ctrl+C를 누르세요.")

	<-ctx.Done()

	logger.Warning("⚠️  종료 신호를 받았습니다. 스케줄러를 중지합니다...")
	sched.Stop()
	logger.Info("✅ 프로그램 종료")

	return nil
}
