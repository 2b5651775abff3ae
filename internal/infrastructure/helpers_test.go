package infrastructure

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectImageType(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{"png", pngBuf.Bytes(), "image/png", nil},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F'}, "image/jpeg", nil},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp", nil},
		{"html", []byte("<html><body>not found</body></html>"), "text/html; charset=utf-8", e.ErrUnsupportedMediaType},
		{"gif", []byte("GIF89a......"), "image/gif", e.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectImageType(tt.data)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
