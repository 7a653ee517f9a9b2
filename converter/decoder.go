package converter

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"img2pdf/contracts"
)

// DecodeProperties reads the pixel size of an encoded image without decoding
// the full raster.
func DecodeProperties(data []byte) (contracts.DecodedProperties, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return contracts.DecodedProperties{}, fmt.Errorf("%w: %v", contracts.ErrDecode, err)
	}
	return contracts.DecodedProperties{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}

func decodeConfig(data []byte) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", contracts.ErrDecode, err)
	}
	return cfg, nil
}
