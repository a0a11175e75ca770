package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-absensi/internal/assistant"
	"go-absensi/internal/geo"

	"go.uber.org/zap"
)

const addressField = "address"

//go:generate mockgen -source=geocode.go -destination=mock/geocode_mock.go -package=mock
type Resolver interface {
	// ResolveAddress mengembalikan alamat yang bisa dibaca manusia, atau nil
	// bila layanan gagal / melewati batas waktu. Tidak pernah mengembalikan error.
	ResolveAddress(ctx context.Context, c geo.Coordinates) *string
}

type resolver struct {
	client  assistant.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewResolver(client assistant.Client, timeout time.Duration, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("geocode.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geocode.resolver")
	}
	return &resolver{client: client, timeout: timeout, logger: l}
}

func (r *resolver) ResolveAddress(ctx context.Context, c geo.Coordinates) *string {
	if r.client == nil {
		return nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var out struct {
		Address string `json:"address"`
	}
	err := r.client.GenerateJSON(ctx, prompt(c), map[string]string{
		addressField: `The formatted address in "Desa, Kecamatan, Kabupaten, Provinsi" format.`,
	}, &out)
	if err != nil {
		r.logger.Warn("resolve address failed",
			zap.Float64("latitude", c.Latitude),
			zap.Float64("longitude", c.Longitude),
			zap.Error(err),
		)
		return nil
	}

	addr := strings.TrimSpace(out.Address)
	if addr == "" {
		r.logger.Warn("resolve address returned empty address",
			zap.Float64("latitude", c.Latitude),
			zap.Float64("longitude", c.Longitude),
		)
		return nil
	}
	return &addr
}

func prompt(c geo.Coordinates) string {
	return fmt.Sprintf(
		"Based on the following GPS coordinates, what is the address? Latitude: %v, Longitude: %v. "+
			`Provide the address in the format: "Desa/Kelurahan, Kecamatan, Kabupaten/Kota, Provinsi".`,
		c.Latitude, c.Longitude,
	)
}
