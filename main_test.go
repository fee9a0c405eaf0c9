package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottohistory/config"
)

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--start", "100", "--end", "0", "--delay", "1s"}))

	cfg := config.Config{StartDrawNo: 1, EndDrawNo: 1107, OutputPath: "lotto_data.json", RequestDelay: 500 * time.Millisecond}
	applyFlags(cmd, &cfg)

	assert.Equal(t, 100, cfg.StartDrawNo)
	assert.Equal(t, 0, cfg.EndDrawNo, "명시한 0은 최신 회차")
	assert.Equal(t, time.Second, cfg.RequestDelay)
	assert.Equal(t, "lotto_data.json", cfg.OutputPath, "지정하지 않은 플래그는 설정 유지")
}

func TestApplyFlags_NoFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := config.Config{StartDrawNo: 5, EndDrawNo: 10, OutputPath: "a.json"}
	applyFlags(cmd, &cfg)

	assert.Equal(t, config.Config{StartDrawNo: 5, EndDrawNo: 10, OutputPath: "a.json"}, cfg)
}
