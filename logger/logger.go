package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006/01/02 15:04:05"

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

var (
	logFile *os.File
)

// Init는 로거를 초기화하고 로그 파일을 생성합니다
func Init(logsDir, level string) error {
	lvl, ok := logLvlMap[level]
	if !ok {
		return fmt.Errorf("지원하지 않는 로그 레벨: %s", level)
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	// 로그 파일명: logs/lottohistory_2026-01-13.log
	logFileName := fmt.Sprintf("lottohistory_%s.log", time.Now().Format("2006-01-02"))
	logFilePath := filepath.Join(logsDir, logFileName)

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("로그 파일 생성 실패: %w", err)
	}
	Close()
	logFile = f

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
	})

	// 로그를 콘솔과 파일 둘 다에 출력
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl),
		zapcore.NewCore(encoder, zapcore.AddSync(logFile), lvl),
	)
	zap.ReplaceGlobals(zap.New(core))

	Info("✅ 로그 파일 초기화 완료: %s", logFilePath)

	return nil
}

// Close는 버퍼를 비우고 로그 파일을 닫습니다
func Close() {
	_ = zap.L().Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Info는 정보 로그를 출력합니다
func Info(format string, v ...interface{}) {
	zap.S().Infof(format, v...)
}

// Error는 에러 로그를 출력합니다
func Error(format string, v ...interface{}) {
	zap.S().Errorf(format, v...)
}

// Warning은 경고 로그를 출력합니다
func Warning(format string, v ...interface{}) {
	zap.S().Warnf(format, v...)
}

// Debug는 디버그 로그를 출력합니다
func Debug(format string, v ...interface{}) {
	zap.S().Debugf(format, v...)
}
