package motivation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-absensi/internal/assistant"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	FallbackMessage = "Tetap semangat dalam mengajar, Anda adalah pahlawan tanpa tanda jasa."

	cacheKeyPrefix = "motivation:"
	cacheTTL       = 24 * time.Hour
	requestTimeout = 8 * time.Second
)

// CacheKey: satu kalimat per nama per hari.
func CacheKey(name string, day time.Time) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(name)) + ":" + day.Format("2006-01-02")
}

//go:generate mockgen -source=motivation.go -destination=mock/motivation_mock.go -package=mock
type Generator interface {
	GenerateMessage(ctx context.Context, name string) string
}

type generator struct {
	client assistant.Client
	rdb    *redis.Client
	loc    *time.Location
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewGenerator(client assistant.Client, rdb *redis.Client, loc *time.Location, logger ...*zap.Logger) Generator {
	l := zap.L().Named("motivation.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("motivation.generator")
	}
	if loc == nil {
		loc = time.Local
	}
	return &generator{
		client: client,
		rdb:    rdb,
		loc:    loc,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (g *generator) GenerateMessage(ctx context.Context, name string) string {
	key := CacheKey(name, time.Now().In(g.loc))

	// 1. Cek Redis
	if g.rdb != nil {
		if cached, err := g.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached
		}
	}

	// 2. Singleflight: dashboard yang dibuka berulang tidak memanggil Gemini berkali-kali
	v, _, _ := g.sf.Do(key, func() (interface{}, error) {
		msg, ok := g.generate(ctx, name)
		if !ok {
			return FallbackMessage, nil
		}
		if g.rdb != nil {
			if err := g.rdb.Set(ctx, key, msg, cacheTTL).Err(); err != nil {
				g.logger.Warn("cache motivation failed", zap.String("key", key), zap.Error(err))
			}
		}
		return msg, nil
	})

	return v.(string)
}

func (g *generator) generate(ctx context.Context, name string) (string, bool) {
	if g.client == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Berikan satu kutipan motivasi singkat (satu atau dua kalimat) untuk seorang guru bernama %s di Indonesia. "+
			"Buatlah kutipan yang membangkitkan semangat, relevan dengan profesi guru, dan inspiratif.",
		name,
	)
	msg, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		g.logger.Warn("generate motivation failed, using fallback", zap.String("name", name), zap.Error(err))
		return "", false
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", false
	}
	return msg, true
}
