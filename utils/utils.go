package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"img2pdf/contracts"
)

// DefaultDPI is assumed when an image carries no resolution metadata.
const DefaultDPI = 96.0

// FormatFileSize renders a byte count with a 1024 base and at most two decimals.
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	const k = 1024.0
	v := float64(size)
	i := 0
	for v >= k && i < len(sizes)-1 {
		v /= k
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizes[i]
}

// GetImageDPI returns the horizontal resolution recorded in the image, or
// DefaultDPI with ok=false when none is present.
func GetImageDPI(data []byte, mimeType string) (float64, bool) {
	switch mimeType {
	case contracts.MIMEJPEG, contracts.MIMEJPG:
		if dpi, err := GetEXIFDPI(data); err == nil {
			return dpi, true
		}
	case contracts.MIMEPNG:
		if dpi, err := GetDPIfromPNG(data); err == nil {
			return dpi, true
		}
	}
	return DefaultDPI, false
}

func GetEXIFDPI(data []byte) (float64, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, fmt.Errorf("EXIF not found: %v", err)
	}

	im := exifcommon.NewIfdMapping()
	ti := exif.NewTagIndex()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return 0, err
	}

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return 0, err
	}

	tag, err := index.RootIfd.FindTagWithName("XResolution")
	if err != nil || len(tag) == 0 {
		return 0, fmt.Errorf("XResolution not set")
	}
	val, err := tag[0].Value()
	if err != nil {
		return 0, err
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, fmt.Errorf("XResolution has unexpected value %v", val)
	}
	dpi := float64(rats[0].Numerator) / float64(rats[0].Denominator)

	if tag, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil && len(tag) > 0 {
		if val, err := tag[0].Value(); err == nil {
			if u, ok := val.([]uint16); ok && len(u) > 0 && u[0] == 3 {
				dpi *= 2.54
			}
		}
	}
	return dpi, nil
}

// GetDPIfromPNG reads the pHYs chunk. Only metre-based units are converted.
func GetDPIfromPNG(data []byte) (float64, error) {
	const physChunk = "pHYs"
	if len(data) < 8 {
		return 0, fmt.Errorf("not a PNG")
	}
	buf := bytes.NewReader(data[8:])

	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			break
		}

		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			break
		}

		if string(chunkType) == physChunk {
			var pxPerUnitX, pxPerUnitY uint32
			var unit byte

			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitX); err != nil {
				return 0, err
			}
			if err := binary.Read(buf, binary.BigEndian, &pxPerUnitY); err != nil {
				return 0, err
			}
			if err := binary.Read(buf, binary.BigEndian, &unit); err != nil {
				return 0, err
			}

			if unit == 1 {
				return float64(pxPerUnitX) * 0.0254, nil
			}
			break
		}
		if string(chunkType) == "IDAT" {
			// pHYs must precede image data
			break
		}

		// skip chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			break
		}
	}

	return 0, fmt.Errorf("pHYs chunk not found")
}
