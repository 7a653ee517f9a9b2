package converter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"img2pdf/contracts"
)

const creator = "img2pdf"

type gofpdfWriter struct {
	pdf   *gofpdf.Fpdf
	dst   io.Writer
	pages int
}

func newGofpdfWriter(dst io.Writer) *gofpdfWriter {
	// No page is added here; each page is created at its computed size.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: contracts.A4.WidthMm, Ht: contracts.A4.HeightMm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(creator, false)
	return &gofpdfWriter{pdf: pdf, dst: dst}
}

func (w *gofpdfWriter) AddPage(placement contracts.PlacementResult, image contracts.EmbeddedImage) error {
	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: placement.PageWidthMm, Ht: placement.PageHeightMm})

	imageID := fmt.Sprintf("img_%d", w.pages)
	options := gofpdf.ImageOptions{
		ImageType: image.Format,
		ReadDpi:   false,
	}
	w.pdf.RegisterImageOptionsReader(imageID, options, bytes.NewReader(image.Data))
	w.pdf.ImageOptions(
		imageID,
		placement.OffsetXMm,
		placement.OffsetYMm,
		placement.DrawWidthMm,
		placement.DrawHeightMm,
		false,
		options,
		0,
		"",
	)
	if w.pdf.Err() {
		return fmt.Errorf("page %d: %w", w.pages, w.pdf.Error())
	}
	w.pages++
	return nil
}

func (w *gofpdfWriter) Finish() error {
	if err := w.pdf.Output(w.dst); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
