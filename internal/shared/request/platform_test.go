package request_test

import (
	"testing"

	"go-absensi/internal/shared/request"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	tests := []struct {
		name   string
		header string
		ua     string
		want   string
	}{
		{"explicit web header", "web", "okhttp/4.9", request.ClientWeb},
		{"explicit mobile header", "Mobile", "Mozilla/5.0", request.ClientMobile},
		{"android alias", "android", "", request.ClientMobile},
		{"flutter user agent", "", "Dart/3.2 (dart:io)", request.ClientMobile},
		{"browser default", "", "Mozilla/5.0 (X11; Linux x86_64)", request.ClientWeb},
		{"empty defaults to web", "", "", request.ClientWeb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := request.ResolveClientType(tt.header, tt.ua)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == request.ClientWeb, request.IsWebClient(got))
		})
	}
}
