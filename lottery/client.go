package lottery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	timeout   = 30 * time.Second
)

// Client는 동행복권 당첨 결과 조회 클라이언트입니다
type Client struct {
	httpClient *http.Client
	resultURL  string
	latestURL  string
}

// NewClient는 새로운 클라이언트를 생성합니다
func NewClient(resultURL, latestURL string) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("쿠키 저장소 생성 실패: %w", err)
	}

	return &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		resultURL: resultURL,
		latestURL: latestURL,
	}, nil
}

// FetchDrawPage는 회차 번호를 폼 파라미터로 보내 당첨 결과 HTML을 가져옵니다.
// 응답은 Content-Type의 문자셋(EUC-KR 등)을 UTF-8로 변환해 반환합니다.
func (c *Client) FetchDrawPage(ctx context.Context, drawNo int) (string, error) {
	if drawNo < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidDrawNo, drawNo)
	}

	form := url.Values{}
	form.Set("drwNo", strconv.Itoa(drawNo))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resultURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: 상태 코드 %d", ErrFetchFailure, resp.StatusCode)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: 문자셋 변환 실패: %w", ErrFetchFailure, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: 응답 읽기 실패: %w", ErrFetchFailure, err)
	}
	return string(body), nil
}
