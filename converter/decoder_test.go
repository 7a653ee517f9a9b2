package converter

import (
	"errors"
	"testing"

	"img2pdf/contracts"
)

func TestDecodeProperties(t *testing.T) {
	tests := []struct {
		name   string
		src    contracts.SourceImage
		format string
		w, h   int
	}{
		{"png", pngImage(t, "a.png", 17, 9), "png", 17, 9},
		{"jpeg", jpegImage(t, "a.jpg", 9, 17), "jpeg", 9, 17},
		{"webp", webpImage(t, "a.webp"), "webp", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, err := DecodeProperties(tt.src.Content)
			if err != nil {
				t.Fatalf("DecodeProperties failed: %v", err)
			}
			if props.Format != tt.format || props.Width != tt.w || props.Height != tt.h {
				t.Errorf("got %+v", props)
			}
		})
	}

	t.Run("garbage", func(t *testing.T) {
		if _, err := DecodeProperties([]byte("GIF89a but not really")); !errors.Is(err, contracts.ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})
}
