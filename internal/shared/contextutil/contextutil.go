package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyUserID
	keyRole
	keyLogger
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRequestID, rid)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, keyRequestID)
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, keyUserID, uid)
}

func GetUserID(ctx context.Context) string {
	return stringValue(ctx, keyUserID)
}

// WithRole menyimpan role JWT (ADMIN / TEACHER) pelaku request.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, keyRole, role)
}

func GetRole(ctx context.Context) string {
	return stringValue(ctx, keyRole)
}

// LogFields mengembalikan field zap untuk identitas request yang tersedia di ctx.
// Nilai kosong dilewati.
func LogFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if rid := GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if uid := GetUserID(ctx); uid != "" {
		fields = append(fields, zap.String("user_id", uid))
	}
	if role := GetRole(ctx); role != "" {
		fields = append(fields, zap.String("role", role))
	}
	return fields
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger: logger request bila ada, lalu defaultLogger, terakhir zap.NewNop().
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(keyLogger).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
