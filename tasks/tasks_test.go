package tasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottohistory/archive"
	"lottohistory/config"
	"lottohistory/lottery"
)

// newResultServer는 drwNo에 따라 페이지를 돌려주는 테스트 서버를 만듭니다
func newResultServer(t *testing.T, latest int, failing map[int]int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/latest" {
			w.Write([]byte(`{"data":{"list":[{"ltEpsd":` + strconv.Itoa(latest) + `}]}}`))
			return
		}

		require.NoError(t, r.ParseForm())
		drawNo, err := strconv.Atoi(r.PostForm.Get("drwNo"))
		require.NoError(t, err)

		if status, ok := failing[drawNo]; ok {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.Write([]byte(drawPage(drawNo)))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(server *httptest.Server, dir string) config.Config {
	return config.Config{
		StartDrawNo: 1,
		EndDrawNo:   4,
		OutputPath:  filepath.Join(dir, "lotto_data.json"),
		ResultURL:   server.URL + "/gameResult.do?method=byWin",
		LatestURL:   server.URL + "/latest",
	}
}

func TestCollectHistory(t *testing.T) {
	server := newResultServer(t, 0, map[int]int{3: http.StatusServiceUnavailable})
	cfg := testConfig(server, t.TempDir())

	summary, err := CollectHistory(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Collected)
	assert.Equal(t, 1, summary.FetchFailures)
	assert.Equal(t, []int{3}, summary.FailedDraws)
	assert.Equal(t, cfg.OutputPath, summary.OutputPath)

	records, err := archive.Load(cfg.OutputPath)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, want := range []int{1, 2, 4} {
		assert.Equal(t, want, records[i].DrawNo)
	}
}

func TestCollectHistory_LatestDraw(t *testing.T) {
	server := newResultServer(t, 6, nil)
	cfg := testConfig(server, t.TempDir())
	cfg.StartDrawNo = 5
	cfg.EndDrawNo = 0

	summary, err := CollectHistory(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Start)
	assert.Equal(t, 6, summary.End)
	assert.Equal(t, 2, summary.Collected)
}

func TestCollectHistory_LatestBeforeStart(t *testing.T) {
	server := newResultServer(t, 3, nil)
	cfg := testConfig(server, t.TempDir())
	cfg.StartDrawNo = 10
	cfg.EndDrawNo = 0

	_, err := CollectHistory(context.Background(), cfg, nil)
	assert.Error(t, err)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "범위 오류면 파일을 만들지 않음")
}

func TestCollectHistory_ByteIdenticalRerun(t *testing.T) {
	server := newResultServer(t, 0, nil)
	dir := t.TempDir()
	cfg := testConfig(server, dir)

	_, err := CollectHistory(context.Background(), cfg, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	_, err = CollectHistory(context.Background(), cfg, nil)
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCollectHistory_UnwritableOutput(t *testing.T) {
	server := newResultServer(t, 0, nil)
	dir := t.TempDir()
	cfg := testConfig(server, dir)
	cfg.EndDrawNo = 1

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.OutputPath = filepath.Join(blocker, "out.json")

	summary, err := CollectHistory(context.Background(), cfg, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, summary.Collected)
}

func TestFormatSummaryMessage(t *testing.T) {
	records := []lottery.DrawRecord{{
		DrawNo:         1107,
		DrawDate:       "2024/02/17",
		WinningNumbers: []int{6, 14, 30, 31, 40, 41},
		BonusNumber:    29,
		PrizeTiers: map[int]lottery.PrizeTier{
			1: lottery.NewPrizeTier(27883325625, 13),
		},
	}}
	summary := Summary{Start: 1100, End: 1107, Collected: 1, ParseFailures: 2, FailedDraws: []int{1101, 1102}, OutputPath: "lotto_data.json"}

	msg := FormatSummaryMessage(summary, records)

	assert.Contains(t, msg, "수집 완료")
	assert.Contains(t, msg, "1100회 ~ 1107회")
	assert.Contains(t, msg, "1101, 1102")
	assert.Contains(t, msg, "<b>06</b>, <b>14</b>")
	assert.Contains(t, msg, "보너스: <b>29</b>")
	assert.Contains(t, msg, "2,144,871,201원 × 13게임")
	assert.Contains(t, msg, "lotto_data.json")
}

func TestFormatSummaryMessage_InterruptedAndEmpty(t *testing.T) {
	msg := FormatSummaryMessage(Summary{Start: 1, End: 2, Interrupted: true}, nil)

	assert.Contains(t, msg, "수집 중단")
	assert.NotContains(t, msg, "당첨번호")
	assert.NotContains(t, msg, "실패 회차")
}

func TestJoinDraws(t *testing.T) {
	var draws []int
	for i := 1; i <= 25; i++ {
		draws = append(draws, i)
	}

	s := joinDraws(draws)
	assert.True(t, strings.HasPrefix(s, "1, 2, 3"))
	assert.Contains(t, s, "20 외 5건")
	assert.NotContains(t, s, "21")
}
