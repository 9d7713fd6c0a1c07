package logger

import (
	"nhscribe-service/internal/app/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

func newRotatingFile(loggerConfig config.Logger, fileName string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    loggerConfig.MaxSizeInMegabyte,
		MaxBackups: loggerConfig.MaxBackups,
		MaxAge:     loggerConfig.MaxAgeInDays,
		Compress:   true,
	}
}
