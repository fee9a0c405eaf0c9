package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultFile은 --config 플래그가 없을 때 찾아보는 설정 파일입니다
const DefaultFile = "config.json"

// Config는 전체 설정을 담는 구조체입니다
type Config struct {
	StartDrawNo  int           `env:"LOTTO_START_DRAW"    envDefault:"1"`
	EndDrawNo    int           `env:"LOTTO_END_DRAW"      envDefault:"1107"` // 0이면 최신 회차까지
	OutputPath   string        `env:"LOTTO_OUTPUT"        envDefault:"lotto_data.json"`
	RequestDelay time.Duration `env:"LOTTO_REQUEST_DELAY" envDefault:"500ms"`
	ResultURL    string        `env:"LOTTO_RESULT_URL"    envDefault:"https://dhlottery.co.kr/gameResult.do?method=byWin"`
	LatestURL    string        `env:"LOTTO_LATEST_URL"    envDefault:"https://www.dhlottery.co.kr/lt645/selectPstLt645Info.do"`
	Schedule     string        `env:"LOTTO_SCHEDULE"      envDefault:"0 22 * * 6"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDir   string `env:"LOG_DIR"   envDefault:"logs"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	S3Bucket string `env:"LOTTO_S3_BUCKET"`
	S3Key    string `env:"LOTTO_S3_KEY" envDefault:"lotto/lotto_data.json"`
}

// fileConfig는 config.json 형식입니다. 비어 있는 항목은 환경변수 값을 유지합니다
type fileConfig struct {
	StartDrawNo      *int   `json:"startDrawNo,omitempty"`
	EndDrawNo        *int   `json:"endDrawNo,omitempty"`
	OutputPath       string `json:"output,omitempty"`
	RequestDelay     string `json:"requestDelay,omitempty"`
	Schedule         string `json:"schedule,omitempty"`
	LogLevel         string `json:"logLevel,omitempty"`
	TelegramBotToken string `json:"telegramBotToken,omitempty"`
	TelegramChatID   string `json:"telegramChatId,omitempty"`
	S3Bucket         string `json:"s3Bucket,omitempty"`
	S3Key            string `json:"s3Key,omitempty"`
}

// Load는 설정을 로드합니다
//
// 우선순위: .env < 환경변수 < 설정 파일. 플래그는 호출한 쪽에서 덮어씁니다.
// path가 비어 있으면 DefaultFile이 있을 때만 읽습니다.
func Load(path string) (Config, error) {
	// .env 파일은 있을 때만 사용 (이미 설정된 환경변수는 덮어쓰지 않음)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf(".env 파일 로드 실패: %w", err)
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	if err := cfg.LoadFromFile(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv는 환경변수에서 설정을 로드합니다
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("환경변수 파싱 실패: %w", err)
	}
	return cfg, nil
}

// LoadFromFile은 파일의 값으로 설정을 덮어씁니다
func (c *Config) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	if fc.StartDrawNo != nil {
		c.StartDrawNo = *fc.StartDrawNo
	}
	if fc.EndDrawNo != nil {
		c.EndDrawNo = *fc.EndDrawNo
	}
	if fc.RequestDelay != "" {
		d, err := time.ParseDuration(fc.RequestDelay)
		if err != nil {
			return fmt.Errorf("설정 파일 requestDelay 형식 오류: %w", err)
		}
		c.RequestDelay = d
	}
	overrideString(&c.OutputPath, fc.OutputPath)
	overrideString(&c.Schedule, fc.Schedule)
	overrideString(&c.LogLevel, fc.LogLevel)
	overrideString(&c.TelegramBotToken, fc.TelegramBotToken)
	overrideString(&c.TelegramChatID, fc.TelegramChatID)
	overrideString(&c.S3Bucket, fc.S3Bucket)
	overrideString(&c.S3Key, fc.S3Key)

	return nil
}

func overrideString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Validate는 설정 값을 검증합니다
func (c *Config) Validate() error {
	if c.StartDrawNo < 1 {
		return fmt.Errorf("시작 회차는 1 이상이어야 합니다: %d", c.StartDrawNo)
	}
	if c.EndDrawNo < 0 {
		return fmt.Errorf("종료 회차는 0(최신) 또는 양수여야 합니다: %d", c.EndDrawNo)
	}
	if c.EndDrawNo != 0 && c.EndDrawNo < c.StartDrawNo {
		return fmt.Errorf("종료 회차(%d)가 시작 회차(%d)보다 작습니다", c.EndDrawNo, c.StartDrawNo)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("요청 간격은 음수일 수 없습니다: %s", c.RequestDelay)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New("출력 파일 경로가 비어 있습니다")
	}
	if strings.TrimSpace(c.ResultURL) == "" {
		return errors.New("당첨 결과 URL이 비어 있습니다")
	}
	if (c.TelegramBotToken == "") != (c.TelegramChatID == "") {
		return errors.New("텔레그램 설정은 TELEGRAM_BOT_TOKEN과 TELEGRAM_CHAT_ID를 함께 지정해야 합니다")
	}
	return nil
}

// TelegramEnabled는 텔레그램 알림 사용 여부를 반환합니다
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// S3Enabled는 S3 업로드 사용 여부를 반환합니다
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// Print는 설정 정보를 출력합니다 (보안상 토큰은 마스킹)
func (c *Config) Print() {
	log := zap.S()

	log.Info("=== 설정 정보 ===")
	if c.EndDrawNo == 0 {
		log.Infof("  수집 범위: %d회 ~ 최신 회차", c.StartDrawNo)
	} else {
		log.Infof("  수집 범위: %d회 ~ %d회", c.StartDrawNo, c.EndDrawNo)
	}
	log.Infof("  출력 파일: %s", c.OutputPath)
	log.Infof("  요청 간격: %s", c.RequestDelay)

	if c.TelegramEnabled() {
		log.Infof("  텔레그램 알림: 활성화 (토큰 %s)", mask(c.TelegramBotToken))
	} else {
		log.Info("  텔레그램 알림: 비활성화")
	}

	if c.S3Enabled() {
		log.Infof("  S3 업로드: s3://%s/%s", c.S3Bucket, c.S3Key)
	} else {
		log.Info("  S3 업로드: 비활성화")
	}
}

// mask는 앞 4자리만 남기고 가립니다
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
