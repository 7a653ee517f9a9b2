package converter

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/ledongthuc/pdf"

	"img2pdf/contracts"
)

// 1x1 lossless WEBP.
const tinyWEBP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func encodeImage(t *testing.T, img image.Image, format imaging.Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func pngImage(t *testing.T, name string, w, h int) contracts.SourceImage {
	t.Helper()
	data := encodeImage(t, imaging.New(w, h, color.NRGBA{R: 200, G: 80, B: 40, A: 255}), imaging.PNG)
	return contracts.SourceImage{Name: name, MIMEType: contracts.MIMEPNG, Content: data, Size: int64(len(data))}
}

func jpegImage(t *testing.T, name string, w, h int) contracts.SourceImage {
	t.Helper()
	data := encodeImage(t, imaging.New(w, h, color.NRGBA{R: 20, G: 120, B: 220, A: 255}), imaging.JPEG)
	return contracts.SourceImage{Name: name, MIMEType: contracts.MIMEJPEG, Content: data, Size: int64(len(data))}
}

func webpImage(t *testing.T, name string) contracts.SourceImage {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(tinyWEBP)
	if err != nil {
		t.Fatal(err)
	}
	return contracts.SourceImage{Name: name, MIMEType: contracts.MIMEWEBP, Content: data, Size: int64(len(data))}
}

// pageSizes returns each page's MediaBox width and height in points.
func pageSizes(t *testing.T, data []byte) [][2]float64 {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading generated pdf: %v", err)
	}
	sizes := make([][2]float64, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		box := page.V.Key("MediaBox")
		if box.Kind() == pdf.Null {
			box = page.V.Key("Parent").Key("MediaBox")
		}
		if box.Len() != 4 {
			t.Fatalf("page %d has no MediaBox", i)
		}
		sizes = append(sizes, [2]float64{
			box.Index(2).Float64() - box.Index(0).Float64(),
			box.Index(3).Float64() - box.Index(1).Float64(),
		})
	}
	return sizes
}

func mmToPoints(mm float64) float64 { return mm * 72 / 25.4 }
