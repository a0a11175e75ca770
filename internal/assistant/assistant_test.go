package assistant_test

import (
	"context"
	"errors"
	"testing"

	"go-absensi/internal/assistant"

	"github.com/stretchr/testify/assert"
)

func TestNew_WithoutAPIKeyIsDisabled(t *testing.T) {
	c, err := assistant.New(context.Background(), "  ", "gemini-2.5-flash")
	assert.NoError(t, err)

	_, err = c.GenerateText(context.Background(), "halo")
	assert.True(t, errors.Is(err, assistant.ErrDisabled))

	var out struct{ Address string }
	err = c.GenerateJSON(context.Background(), "alamat", map[string]string{"address": "alamat"}, &out)
	assert.True(t, errors.Is(err, assistant.ErrDisabled))
}
