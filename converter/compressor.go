package converter

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"img2pdf/contracts"
)

// jpegQuality maps a [0,1] quality to the encoder's 1..100 scale.
func jpegQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	return q
}

// Compress re-encodes img as a JPEG at its original pixel size.
func Compress(img contracts.SourceImage, quality float64) ([]byte, error) {
	decoded, err := imaging.Decode(bytes.NewReader(img.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contracts.ErrDecode, img.Name, err)
	}

	switch decoded.(type) {
	case *image.Gray16, *image.NRGBA64, *image.RGBA64:
		decoded = imaging.Clone(decoded)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, decoded, imaging.JPEG, imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return nil, fmt.Errorf("%w: encoding %s as jpeg: %v", contracts.ErrAssembly, img.Name, err)
	}
	return buf.Bytes(), nil
}
