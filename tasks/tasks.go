package tasks

import (
	"context"
	"fmt"

	"lottohistory/archive"
	"lottohistory/config"
	"lottohistory/logger"
	"lottohistory/lottery"
	"lottohistory/telegram"
)

// CollectHistory는 설정된 범위의 당첨 결과를 수집해 파일로 저장합니다.
//
// 회차별 실패는 치명적이지 않습니다. 최신 회차 조회나 파일 저장에
// 실패한 경우에만 에러를 반환합니다.
func CollectHistory(ctx context.Context, cfg config.Config, bot *telegram.Bot) (Summary, error) {
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("          🎱 로또 당첨 결과 수집")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// 수집이 중단되어도 저장과 알림은 마무리
	finishCtx := context.WithoutCancel(ctx)

	client, err := lottery.NewClient(cfg.ResultURL, cfg.LatestURL)
	if err != nil {
		return Summary{}, notifyFailure(finishCtx, bot, fmt.Errorf("클라이언트 생성 실패: %w", err))
	}

	end := cfg.EndDrawNo
	if end == 0 {
		end, err = client.LatestDrawNo(ctx)
		if err != nil {
			return Summary{}, notifyFailure(finishCtx, bot, fmt.Errorf("최신 회차 조회 실패: %w", err))
		}
		logger.Info("최신 회차: %d회", end)
	}
	if end < cfg.StartDrawNo {
		return Summary{}, notifyFailure(finishCtx, bot,
			fmt.Errorf("종료 회차(%d)가 시작 회차(%d)보다 작습니다", end, cfg.StartDrawNo))
	}

	logger.Info("수집 범위: %d회 ~ %d회 (요청 간격 %s)", cfg.StartDrawNo, end, cfg.RequestDelay)

	records, summary := NewCollector(client, cfg.RequestDelay).Collect(ctx, cfg.StartDrawNo, end)

	if err := archive.Save(cfg.OutputPath, records); err != nil {
		return summary, notifyFailure(finishCtx, bot, fmt.Errorf("결과 저장 실패: %w", err))
	}
	summary.OutputPath = cfg.OutputPath
	logger.Info("💾 %d건을 %s에 저장했습니다", len(records), cfg.OutputPath)

	if cfg.S3Enabled() {
		uploadArchive(finishCtx, cfg)
	}

	logSummary(summary)

	if bot != nil {
		bot.SendMessageSafe(finishCtx, FormatSummaryMessage(summary, records))
	}

	return summary, nil
}

// uploadArchive는 출력 파일을 S3에 올립니다. 실패해도 수집 결과는 유지됩니다
func uploadArchive(ctx context.Context, cfg config.Config) {
	uploader, err := archive.NewS3Uploader(ctx, cfg.S3Bucket)
	if err != nil {
		logger.Error("❌ S3 업로더 생성 실패: %v", err)
		return
	}
	if err := uploader.UploadFile(ctx, cfg.S3Key, cfg.OutputPath); err != nil {
		logger.Error("❌ %v", err)
		return
	}
	logger.Info("☁️  S3 업로드 완료: s3://%s/%s", cfg.S3Bucket, cfg.S3Key)
}

func logSummary(s Summary) {
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("수집 결과: %d건 성공, 조회 실패 %d건, 파싱 실패 %d건", s.Collected, s.FetchFailures, s.ParseFailures)
	if len(s.FailedDraws) > 0 {
		logger.Info("실패 회차: %s", joinDraws(s.FailedDraws))
	}
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func notifyFailure(ctx context.Context, bot *telegram.Bot, err error) error {
	logger.Error("❌ %v", err)
	if bot != nil {
		bot.SendMessageSafe(ctx, fmt.Sprintf("❌ <b>로또 당첨 결과 수집 실패</b>\n\n%v", err))
	}
	return err
}
