package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldUserID is the structured log field key for the acting user.
	FieldUserID = "user_id"
	// FieldRoomID is the structured log field key for a room.
	FieldRoomID = "room_id"
	// FieldPair is the structured log field key for a match pair key.
	FieldPair = "pair"
)

func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// WithUser attaches the user id to logger. An empty id leaves it unchanged.
func WithUser(logger *zap.Logger, userID string) *zap.Logger {
	logger = OrNop(logger)
	if userID == "" {
		return logger
	}
	return logger.With(zap.String(FieldUserID, userID))
}
