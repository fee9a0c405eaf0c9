package tasks

import (
	"fmt"
	"strings"

	"lottohistory/lottery"
)

// 메시지에 나열할 실패 회차 최대 개수
const maxListedFailures = 20

// FormatSummaryMessage는 수집 결과를 텔레그램 메시지로 포맷합니다
func FormatSummaryMessage(summary Summary, records []lottery.DrawRecord) string {
	var b strings.Builder

	if summary.Interrupted {
		b.WriteString("⚠️ <b>로또 당첨 결과 수집 중단</b>\n\n")
	} else {
		b.WriteString("📊 <b>로또 당첨 결과 수집 완료</b>\n\n")
	}

	fmt.Fprintf(&b, "🔢 범위: %d회 ~ %d회\n", summary.Start, summary.End)
	fmt.Fprintf(&b, "✅ 수집: <b>%d건</b>\n", summary.Collected)
	if summary.FetchFailures > 0 || summary.ParseFailures > 0 {
		fmt.Fprintf(&b, "❌ 조회 실패: %d건, 파싱 실패: %d건\n", summary.FetchFailures, summary.ParseFailures)
		b.WriteString("   실패 회차: " + joinDraws(summary.FailedDraws) + "\n")
	}
	if summary.OutputPath != "" {
		fmt.Fprintf(&b, "💾 저장: %s\n", summary.OutputPath)
	}

	if len(records) == 0 {
		return b.String()
	}

	latest := records[len(records)-1]
	b.WriteString("\n━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Fprintf(&b, "🎱 <b>%d회</b> (%s)\n", latest.DrawNo, latest.DrawDate)
	b.WriteString("당첨번호: ")
	for i, num := range latest.WinningNumbers {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "<b>%02d</b>", num)
	}
	fmt.Fprintf(&b, "\n➕ 보너스: <b>%02d</b>\n", latest.BonusNumber)

	if first, ok := latest.PrizeTiers[1]; ok {
		if first.WinnersCount > 0 {
			fmt.Fprintf(&b, "💰 1등: %s원 × %d게임\n", lottery.FormatMoney(first.PerGamePrize), first.WinnersCount)
		} else {
			b.WriteString("💰 1등: 당첨자 없음\n")
		}
	}

	return b.String()
}

func joinDraws(draws []int) string {
	n := len(draws)
	if n > maxListedFailures {
		draws = draws[:maxListedFailures]
	}

	parts := make([]string, len(draws))
	for i, d := range draws {
		parts[i] = fmt.Sprintf("%d", d)
	}

	s := strings.Join(parts, ", ")
	if n > maxListedFailures {
		s += fmt.Sprintf(" 외 %d건", n-maxListedFailures)
	}
	return s
}
