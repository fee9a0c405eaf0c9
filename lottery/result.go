package lottery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// latestResponse는 최근 당첨번호 API 응답입니다
type latestResponse struct {
	Data struct {
		List []struct {
			LtEpsd   int    `json:"ltEpsd"`   // 회차
			LtRflYmd string `json:"ltRflYmd"` // 추첨일 (YYYYMMDD)
		} `json:"list"`
	} `json:"data"`
}

// LatestDrawNo는 가장 최근 추첨 회차를 조회합니다
func (c *Client) LatestDrawNo(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.latestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("API 호출 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API 응답 오류: 상태 코드 %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	var apiResponse latestResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return 0, fmt.Errorf("JSON 파싱 실패: %w", err)
	}

	if len(apiResponse.Data.List) == 0 {
		return 0, errors.New("당첨 정보가 없습니다")
	}

	drawNo := apiResponse.Data.List[0].LtEpsd
	if drawNo < 1 {
		return 0, fmt.Errorf("%w: 최신 회차 %d", ErrInvalidDrawNo, drawNo)
	}
	return drawNo, nil
}
