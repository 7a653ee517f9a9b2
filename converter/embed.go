package converter

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"

	"img2pdf/contracts"
)

// formatFromMIME picks the embedding format for an uncompressed page.
func formatFromMIME(mimeType string) string {
	switch mimeType {
	case contracts.MIMEJPEG, contracts.MIMEJPG:
		return contracts.FormatJPEG
	case contracts.MIMEWEBP:
		return contracts.FormatWEBP
	}
	return contracts.FormatPNG
}

// prepareImage produces the bytes handed to the page writer: compressed when
// requested, otherwise the original content in a form PDF can embed.
func prepareImage(src contracts.SourceImage, compression contracts.CompressionSetting) (contracts.EmbeddedImage, error) {
	data := src.Content
	format := formatFromMIME(src.MIMEType)

	if compression.Enabled {
		compressed, err := Compress(src, compression.Quality)
		if err != nil {
			return contracts.EmbeddedImage{}, err
		}
		data = compressed
		format = contracts.FormatJPEG
	}

	props, err := DecodeProperties(data)
	if err != nil {
		return contracts.EmbeddedImage{}, err
	}

	if !compression.Enabled {
		data, format, err = normalizeForEmbedding(data, format)
		if err != nil {
			return contracts.EmbeddedImage{}, err
		}
	}

	return contracts.EmbeddedImage{
		Data:        data,
		Format:      format,
		PixelWidth:  props.Width,
		PixelHeight: props.Height,
	}, nil
}

// normalizeForEmbedding rewrites content PDF cannot carry directly: WEBP has no
// PDF filter, and 16-bit or interlaced PNGs are rejected by the writer.
func normalizeForEmbedding(data []byte, format string) ([]byte, string, error) {
	switch format {
	case contracts.FormatWEBP:
		out, err := reencodePNG(data)
		return out, contracts.FormatPNG, err
	case contracts.FormatPNG:
		cfg, err := decodeConfig(data)
		if err != nil {
			return nil, "", err
		}
		if is16Bit(cfg.ColorModel) || pngInterlaced(data) {
			out, err := reencodePNG(data)
			return out, contracts.FormatPNG, err
		}
	}
	return data, format, nil
}

func reencodePNG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrDecode, err)
	}
	// Clone yields 8-bit NRGBA
	img = imaging.Clone(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", contracts.ErrAssembly, err)
	}
	return buf.Bytes(), nil
}

func is16Bit(m color.Model) bool {
	return m == color.RGBA64Model || m == color.NRGBA64Model || m == color.Gray16Model
}

// pngInterlaced reads the interlace byte of the IHDR chunk.
func pngInterlaced(data []byte) bool {
	const ihdrInterlaceOffset = 8 + 8 + 12
	if len(data) <= ihdrInterlaceOffset || !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		return false
	}
	if string(data[12:16]) != "IHDR" || binary.BigEndian.Uint32(data[8:12]) != 13 {
		return false
	}
	return data[ihdrInterlaceOffset] == 1
}
