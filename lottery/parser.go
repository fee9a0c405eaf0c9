package lottery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// 당첨 결과 페이지의 선택자
const (
	ballSelector      = ".ball_645"
	drawNoSelector    = ".win_result h4 strong"
	descSelector      = ".desc"
	prizeRowsSelector = ".tbl_data.tbl_data_col tbody tr"
)

// 예: "(2024년 02월 17일 추첨)"
var drawDatePattern = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)

// ParseResult는 파싱 결과입니다
type ParseResult struct {
	Record DrawRecord
	// SkippedRows는 형식이 맞지 않아 건너뛴 당첨금 표 행 수입니다
	SkippedRows int
}

// ParseDrawPage는 당첨 결과 HTML에서 DrawRecord를 추출합니다.
//
// 당첨 번호, 회차, 추첨일 중 하나라도 없으면 실패합니다.
// 당첨금 표의 잘못된 행은 건너뛰고 SkippedRows에 집계합니다.
func ParseDrawPage(html string) (*ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("HTML 파싱 실패: %w", err)
	}

	numbers, bonus, err := parseBalls(doc)
	if err != nil {
		return nil, err
	}

	drawNo, err := parseDrawNo(doc)
	if err != nil {
		return nil, err
	}

	drawDate, err := parseDrawDate(doc)
	if err != nil {
		return nil, err
	}

	tiers, skipped := parsePrizeTiers(doc)

	return &ParseResult{
		Record: DrawRecord{
			DrawNo:         drawNo,
			DrawDate:       drawDate,
			WinningNumbers: numbers,
			BonusNumber:    bonus,
			PrizeTiers:     tiers,
		},
		SkippedRows: skipped,
	}, nil
}

// parseBalls는 앞의 6개 공을 당첨 번호로, 7번째 공을 보너스 번호로 읽습니다
func parseBalls(doc *goquery.Document) ([]int, int, error) {
	balls := doc.Find(ballSelector)
	if balls.Length() < WinningNumberCount+1 {
		return nil, 0, fmt.Errorf("%w: 공 %d개", ErrMissingWinningNumbers, balls.Length())
	}

	values := make([]int, 0, WinningNumberCount+1)
	var parseErr error
	balls.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i > WinningNumberCount {
			return false
		}
		text := strings.TrimSpace(s.Text())
		n, err := strconv.Atoi(text)
		if err != nil || n < MinBall || n > MaxBall {
			parseErr = fmt.Errorf("%w: %d번째 공 %q", ErrMissingWinningNumbers, i+1, text)
			return false
		}
		values = append(values, n)
		return true
	})
	if parseErr != nil {
		return nil, 0, parseErr
	}

	return values[:WinningNumberCount], values[WinningNumberCount], nil
}

// parseDrawNo는 "1107회" 형태의 제목에서 회차를 읽습니다
func parseDrawNo(doc *goquery.Document) (int, error) {
	heading := doc.Find(drawNoSelector).First()
	if heading.Length() == 0 {
		return 0, ErrMissingDrawNo
	}

	fields := strings.Fields(heading.Text())
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: 빈 제목", ErrMissingDrawNo)
	}

	token := strings.TrimRightFunc(fields[0], func(r rune) bool { return !unicode.IsDigit(r) })
	drawNo, err := strconv.Atoi(token)
	if err != nil || drawNo < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMissingDrawNo, fields[0])
	}
	return drawNo, nil
}

// parseDrawDate는 "YYYY년 M월 D일"을 YYYY/MM/DD로 변환합니다
func parseDrawDate(doc *goquery.Document) (string, error) {
	desc := doc.Find(descSelector).First()
	if desc.Length() == 0 {
		return "", fmt.Errorf("%w: 추첨일 문구 없음", ErrMalformedDrawDate)
	}

	m := drawDatePattern.FindStringSubmatch(desc.Text())
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedDrawDate, strings.TrimSpace(desc.Text()))
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date는 2월 30일 같은 값을 다음 달로 넘기므로 다시 비교
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return "", fmt.Errorf("%w: 존재하지 않는 날짜 %s", ErrMalformedDrawDate, m[0])
	}

	return date.Format("2006/01/02"), nil
}

// parsePrizeTiers는 당첨금 표를 읽습니다. 잘못된 행은 건너뜁니다.
func parsePrizeTiers(doc *goquery.Document) (map[int]PrizeTier, int) {
	tiers := make(map[int]PrizeTier)
	skipped := 0

	doc.Find(prizeRowsSelector).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			// 머리글 등 셀이 없는 행
			return
		}

		rank, tier, ok := parsePrizeRow(cells)
		if !ok {
			skipped++
			return
		}
		if _, dup := tiers[rank]; dup {
			skipped++
			return
		}
		tiers[rank] = tier
	})

	return tiers, skipped
}

func parsePrizeRow(cells *goquery.Selection) (int, PrizeTier, bool) {
	if cells.Length() < 3 {
		return 0, PrizeTier{}, false
	}

	// 등수
	rank, err := parseUnitNumber(cells.Eq(0).Text(), "등")
	if err != nil || rank < 1 || rank > 5 {
		return 0, PrizeTier{}, false
	}

	// 등위별 총 당첨금액
	prizeAmount, err := parseUnitNumber(cells.Eq(1).Text(), "원")
	if err != nil {
		return 0, PrizeTier{}, false
	}

	// 당첨 게임 수
	winnersCount, err := parseUnitNumber(cells.Eq(2).Text(), "게임")
	if err != nil {
		return 0, PrizeTier{}, false
	}

	return int(rank), NewPrizeTier(prizeAmount, winnersCount), true
}

// parseUnitNumber는 단위, 천 단위 구분자, 공백을 제거한 뒤 정수로 변환합니다
func parseUnitNumber(text, unit string) (int64, error) {
	cleaned := strings.ReplaceAll(text, unit, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), "")

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("음수 값: %d", n)
	}
	return n, nil
}
