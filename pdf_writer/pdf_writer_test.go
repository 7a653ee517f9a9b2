package pdf_writer

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"img2pdf/contracts"
)

func testJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func rgbJPEG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return testJPEG(t, img)
}

var a4Placement = contracts.PlacementResult{
	PageWidthMm:  210,
	PageHeightMm: 297,
	DrawWidthMm:  190,
	DrawHeightMm: 142.5,
	OffsetXMm:    10,
	OffsetYMm:    77.25,
	Scale:        0.2375,
}

func TestAddPage(t *testing.T) {
	t.Run("RGB JPEG page", func(t *testing.T) {
		var buf bytes.Buffer
		pw, err := NewPDFWriter(&buf)
		if err != nil {
			t.Fatalf("Failed to create PDFWriter: %v", err)
		}

		data := rgbJPEG(t, 80, 60)
		if err := pw.AddPage(a4Placement, contracts.EmbeddedImage{Data: data, Format: contracts.FormatJPEG, PixelWidth: 80, PixelHeight: 60}); err != nil {
			t.Fatalf("AddPage failed: %v", err)
		}
		if pw.PageCount() != 1 {
			t.Fatalf("Expected 1 page, got %d", pw.PageCount())
		}
		if err := pw.Finish(); err != nil {
			t.Fatalf("Finish failed: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"%PDF-1.7",
			"/Type /XObject",
			"/Subtype /Image",
			"/Width 80\n/Height 60",
			"/ColorSpace /DeviceRGB",
			"/BitsPerComponent 8",
			"/Filter /DCTDecode",
			"/MediaBox [0 0 595.28 841.89]",
			"/Count 1",
			"/Type /Catalog",
			"%%EOF",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Missing %q in output", want)
			}
		}

		// image is drawn 10mm from the left and 77.25mm from the bottom
		if !strings.Contains(output, "538.5827 0 0 403.9370 28.3465 218.9764 cm") {
			t.Errorf("Unexpected placement matrix in output:\n%s", output)
		}

		// JPEG bytes are embedded untouched
		if !bytes.Contains(buf.Bytes(), data) {
			t.Error("JPEG data not embedded verbatim")
		}
	})

	t.Run("grayscale JPEG", func(t *testing.T) {
		var buf bytes.Buffer
		pw, _ := NewPDFWriter(&buf)
		gray := image.NewGray(image.Rect(0, 0, 16, 16))
		data := testJPEG(t, gray)
		if err := pw.AddPage(a4Placement, contracts.EmbeddedImage{Data: data, Format: contracts.FormatJPEG}); err != nil {
			t.Fatalf("AddPage failed: %v", err)
		}
		if err := pw.Finish(); err != nil {
			t.Fatalf("Finish failed: %v", err)
		}
		if !strings.Contains(buf.String(), "/ColorSpace /DeviceGray") {
			t.Error("Missing /ColorSpace /DeviceGray in output")
		}
	})

	t.Run("non-JPEG formats are rejected", func(t *testing.T) {
		var buf bytes.Buffer
		pw, _ := NewPDFWriter(&buf)
		err := pw.AddPage(a4Placement, contracts.EmbeddedImage{Data: []byte("\x89PNG"), Format: contracts.FormatPNG})
		if err == nil {
			t.Fatal("Expected error for PNG input")
		}
		if pw.PageCount() != 0 {
			t.Errorf("Rejected image must not add a page, got %d", pw.PageCount())
		}
	})

	t.Run("corrupt JPEG", func(t *testing.T) {
		var buf bytes.Buffer
		pw, _ := NewPDFWriter(&buf)
		if err := pw.AddPage(a4Placement, contracts.EmbeddedImage{Data: []byte{0xFF, 0xD8, 0x00}, Format: contracts.FormatJPEG}); err == nil {
			t.Fatal("Expected error for truncated JPEG")
		}
	})
}

func TestFinishProducesValidDocument(t *testing.T) {
	var buf bytes.Buffer
	pw, err := NewPDFWriter(&buf)
	if err != nil {
		t.Fatalf("Failed to create PDFWriter: %v", err)
	}

	fit := contracts.PlacementResult{PageWidthMm: 100, PageHeightMm: 50, DrawWidthMm: 100, DrawHeightMm: 50, Scale: 0.264583}
	placements := []contracts.PlacementResult{a4Placement, fit, a4Placement}
	for i, p := range placements {
		if err := pw.AddPage(p, contracts.EmbeddedImage{Data: rgbJPEG(t, 40+i, 30), Format: contracts.FormatJPEG}); err != nil {
			t.Fatalf("AddPage %d failed: %v", i, err)
		}
	}
	if err := pw.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "/Count 3") {
		t.Error("Missing /Count 3 in output")
	}
	if !strings.Contains(output, "/MediaBox [0 0 283.46 141.73]") {
		t.Error("Missing MediaBox for the fitted page")
	}
	if !strings.HasPrefix(output[strings.LastIndex(output, "startxref"):], "startxref\n") {
		t.Error("Malformed trailer")
	}

	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(bytes.NewReader(buf.Bytes()), conf); err != nil {
		t.Fatalf("pdfcpu validation failed: %v", err)
	}
	n, err := api.PageCount(bytes.NewReader(buf.Bytes()), conf)
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if n != 3 {
		t.Errorf("PageCount = %d, want 3", n)
	}
}
