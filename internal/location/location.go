// Package location adalah kontrak Position Provider: pembacaan koordinat perangkat
// satu kali yang bisa gagal atau melewati batas waktu.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-absensi/internal/geo"
)

type ErrorKind string

const (
	KindPermissionDenied ErrorKind = "permission_denied"
	KindUnavailable      ErrorKind = "unavailable"
	KindTimeout          ErrorKind = "timeout"
)

// Error adalah LocationError: kemampuan posisi ditolak, tidak tersedia, atau timeout.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("location %s", e.Kind)
	}
	return fmt.Sprintf("location %s: %s", e.Kind, e.Reason)
}

// ParseKind menerima kode error dari klien; kode yang tidak dikenal dianggap unavailable.
func ParseKind(code string) ErrorKind {
	switch ErrorKind(strings.ToLower(strings.TrimSpace(code))) {
	case KindPermissionDenied:
		return KindPermissionDenied
	case KindTimeout:
		return KindTimeout
	default:
		return KindUnavailable
	}
}

//go:generate mockgen -source=location.go -destination=mock/location_mock.go -package=mock
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (geo.Coordinates, error)
}

// Acquire membaca posisi dengan batas waktu timeout. Error apa pun dari provider
// dinormalisasi menjadi *Error.
func Acquire(ctx context.Context, provider PositionProvider, timeout time.Duration) (geo.Coordinates, error) {
	if provider == nil {
		return geo.Coordinates{}, &Error{Kind: KindUnavailable, Reason: "no position provider"}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		coords geo.Coordinates
		err    error
	}
	done := make(chan result, 1)
	go func() {
		c, err := provider.CurrentPosition(ctx)
		done <- result{coords: c, err: err}
	}()

	select {
	case <-ctx.Done():
		return geo.Coordinates{}, &Error{Kind: KindTimeout, Reason: "GPS unavailable"}
	case r := <-done:
		if r.err != nil {
			return geo.Coordinates{}, normalize(r.err)
		}
		return r.coords, nil
	}
}

func normalize(err error) error {
	var locErr *Error
	if errors.As(err, &locErr) {
		return locErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Reason: "GPS unavailable"}
	}
	return &Error{Kind: KindUnavailable, Reason: err.Error()}
}

// Reported adalah provider untuk posisi yang sudah dibaca perangkat klien
// dan dikirim bersama request: berisi koordinat, atau error yang dilaporkan perangkat.
type Reported struct {
	Coords *geo.Coordinates
	Err    *Error
}

func (r Reported) CurrentPosition(ctx context.Context) (geo.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinates{}, err
	}
	if r.Err != nil {
		return geo.Coordinates{}, r.Err
	}
	if r.Coords == nil {
		return geo.Coordinates{}, &Error{Kind: KindUnavailable, Reason: "no coordinates reported"}
	}
	return *r.Coords, nil
}
