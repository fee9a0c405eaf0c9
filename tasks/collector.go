package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lottohistory/logger"
	"lottohistory/lottery"
)

// ErrDrawNoMismatch는 페이지의 회차가 요청한 회차와 다를 때 반환됩니다
var ErrDrawNoMismatch = errors.New("요청한 회차와 페이지의 회차가 다릅니다")

// DrawFetcher는 회차별 당첨 결과 HTML을 가져옵니다
type DrawFetcher interface {
	FetchDrawPage(ctx context.Context, drawNo int) (string, error)
}

// Summary는 한 번의 수집 결과 요약입니다
type Summary struct {
	Start         int
	End           int
	Collected     int
	FetchFailures int
	ParseFailures int
	FailedDraws   []int
	Interrupted   bool
	OutputPath    string
}

// Collector는 회차 범위를 순서대로 조회하고 파싱합니다
type Collector struct {
	fetcher DrawFetcher
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewCollector는 요청 사이에 delay만큼 쉬는 Collector를 생성합니다
func NewCollector(fetcher DrawFetcher, delay time.Duration) *Collector {
	return &Collector{
		fetcher: fetcher,
		delay:   delay,
		sleep:   sleepContext,
	}
}

// Collect는 start부터 end까지(포함) 회차를 오름차순으로 수집합니다.
//
// 조회나 파싱에 실패한 회차는 로그를 남기고 건너뜁니다. ctx가 취소되면
// 그때까지 수집한 결과를 반환합니다.
func (c *Collector) Collect(ctx context.Context, start, end int) ([]lottery.DrawRecord, Summary) {
	summary := Summary{Start: start, End: end}

	var records []lottery.DrawRecord
	if end >= start {
		records = make([]lottery.DrawRecord, 0, end-start+1)
	}

	for drawNo := start; drawNo <= end; drawNo++ {
		if drawNo > start {
			if err := c.sleep(ctx, c.delay); err != nil {
				summary.Interrupted = true
				break
			}
		}

		html, err := c.fetcher.FetchDrawPage(ctx, drawNo)
		if err != nil {
			if ctx.Err() != nil {
				summary.Interrupted = true
				break
			}
			logger.Warning("❌ %d회 조회 실패: %v", drawNo, err)
			summary.FetchFailures++
			summary.FailedDraws = append(summary.FailedDraws, drawNo)
			continue
		}

		record, err := parseDraw(html, drawNo)
		if err != nil {
			logger.Warning("❌ %d회 파싱 실패 [%s]: %v", drawNo, failureKind(err), err)
			summary.ParseFailures++
			summary.FailedDraws = append(summary.FailedDraws, drawNo)
			continue
		}

		records = append(records, *record)
		logger.Info("✅ %d회 수집 완료 (%s) %v + %d", record.DrawNo, record.DrawDate, record.WinningNumbers, record.BonusNumber)
	}

	if summary.Interrupted {
		logger.Warning("⚠️  수집이 중단되었습니다")
	}

	summary.Collected = len(records)
	return records, summary
}

func parseDraw(html string, drawNo int) (*lottery.DrawRecord, error) {
	result, err := lottery.ParseDrawPage(html)
	if err != nil {
		return nil, err
	}
	if result.Record.DrawNo != drawNo {
		return nil, fmt.Errorf("%w: 요청 %d회, 페이지 %d회", ErrDrawNoMismatch, drawNo, result.Record.DrawNo)
	}
	if result.SkippedRows > 0 {
		logger.Debug("   → %d회 당첨금 표에서 %d개 행을 건너뜀", drawNo, result.SkippedRows)
	}
	return &result.Record, nil
}

// failureKind는 파싱 실패 종류를 로그용 문자열로 변환합니다
func failureKind(err error) string {
	switch {
	case errors.Is(err, lottery.ErrMissingWinningNumbers):
		return "당첨번호 없음"
	case errors.Is(err, lottery.ErrMalformedDrawDate):
		return "추첨일 형식 오류"
	case errors.Is(err, lottery.ErrMissingDrawNo):
		return "회차 정보 없음"
	case errors.Is(err, ErrDrawNoMismatch):
		return "회차 불일치"
	default:
		return "HTML 오류"
	}
}

// sleepContext는 d만큼 대기합니다. ctx가 먼저 끝나면 ctx.Err()를 반환합니다
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
