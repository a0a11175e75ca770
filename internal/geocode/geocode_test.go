package geocode_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	assistantMock "go-absensi/internal/assistant/mock"
	"go-absensi/internal/geo"
	"go-absensi/internal/geocode"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestResolver_ResolveAddress(t *testing.T) {
	ctx := context.Background()
	coords := geo.Coordinates{Latitude: 4.3315, Longitude: 97.4695}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := assistantMock.NewMockClient(ctrl)
		r := geocode.NewResolver(client, time.Second, zap.NewNop())

		client.EXPECT().
			GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, prompt string, fields map[string]string, out any) error {
				assert.Contains(t, prompt, "4.3315")
				assert.Contains(t, fields, "address")
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return json.Unmarshal([]byte(`{"address":" Indra Makmu, Aceh Timur, Aceh "}`), out)
			})

		addr := r.ResolveAddress(ctx, coords)

		if assert.NotNil(t, addr) {
			assert.Equal(t, "Indra Makmu, Aceh Timur, Aceh", *addr)
		}
	})

	t.Run("service failure falls back to nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := assistantMock.NewMockClient(ctrl)
		r := geocode.NewResolver(client, time.Second, zap.NewNop())

		client.EXPECT().
			GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("quota exceeded"))

		assert.Nil(t, r.ResolveAddress(ctx, coords))
	})

	t.Run("empty address falls back to nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := assistantMock.NewMockClient(ctrl)
		r := geocode.NewResolver(client, time.Second, zap.NewNop())

		client.EXPECT().
			GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		assert.Nil(t, r.ResolveAddress(ctx, coords))
	})

	t.Run("nil client", func(t *testing.T) {
		r := geocode.NewResolver(nil, time.Second, zap.NewNop())
		assert.Nil(t, r.ResolveAddress(ctx, coords))
	})
}
