package logger

import (
	"os"
	"skillbloom_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 在 InitLogger 之前为空操作 logger，测试中可直接使用
var Log = zap.NewNop()

// resolveLevel 显式配置优先，其次 debug 模式输出调试日志
func resolveLevel(cfg *config.Config) zapcore.Level {
	if cfg.Log.Level != "" {
		if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			return lvl
		}
	}
	if cfg.Server.Mode == "debug" {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func InitLogger(cfg *config.Config) {
	Log = New(cfg, zapcore.AddSync(os.Stdout))
}

// New 构建 logger：控制台输出 + 可选的按大小滚动 JSON 文件
func New(cfg *config.Config, console zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.MillisDurationEncoder

	level := zap.NewAtomicLevelAt(resolveLevel(cfg))

	consoleEnc := encCfg
	consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Server.Mode == "release" {
		consoleEnc.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEnc), console, level),
	}

	if cfg.Log.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotating), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(zap.String("service", "skillbloom")),
	)
}
