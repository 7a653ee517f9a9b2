package pdf_writer

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"io"

	"img2pdf/contracts"
)

const mmToPt = 72.0 / 25.4

// PDFWriter streams JPEG pages to dst. Image objects are written as pages are
// added; page, content and catalog objects are written by Finish.
type PDFWriter struct {
	objects   []int64
	pageInfos []pageInfo
	bw        *bufio.Writer
	cw        *countingWriter
	objNum    int

	pagesObjID   int64
	pageIDs      []int64
	catalogObjID int64
}

type pageInfo struct {
	imageID   int64
	placement contracts.PlacementResult
}

type countingWriter struct {
	w      io.Writer
	offset int64
}

func NewPDFWriter(dst io.Writer) (*PDFWriter, error) {
	cw := &countingWriter{
		w: dst,
	}
	pw := &PDFWriter{
		cw: cw,
		bw: bufio.NewWriterSize(cw, 1024*1024),
	}

	if _, err := pw.bw.WriteString("%PDF-1.7\n%\xFF\xFF\xFF\xFF\n"); err != nil {
		return nil, fmt.Errorf("error writing PDF header: %v", err)
	}
	return pw, nil
}

func (cw *countingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	if err == nil {
		cw.offset += int64(n)
	}
	return n, err
}

func (pw *PDFWriter) getOffset() int64 {
	return pw.cw.offset + int64(pw.bw.Buffered())
}

func (pw *PDFWriter) newObject() int64 {
	pw.objNum++
	pw.objects = append(pw.objects, pw.getOffset())
	pw.bw.WriteString(fmt.Sprintf("%d 0 obj\n", pw.objNum))
	return int64(pw.objNum)
}

// reserveObject allocates an object number whose body is written later with beginObject.
func (pw *PDFWriter) reserveObject() int64 {
	pw.objNum++
	pw.objects = append(pw.objects, 0)
	return int64(pw.objNum)
}

func (pw *PDFWriter) beginObject(id int64) {
	pw.objects[id-1] = pw.getOffset()
	pw.bw.WriteString(fmt.Sprintf("%d 0 obj\n", id))
}

// AddPage embeds a JPEG image and records the page it is drawn on.
func (pw *PDFWriter) AddPage(placement contracts.PlacementResult, image contracts.EmbeddedImage) error {
	if image.Format != contracts.FormatJPEG {
		return fmt.Errorf("stream writer embeds JPEG only, got %s", image.Format)
	}
	imgID, err := pw.writeJPEGImage(image.Data)
	if err != nil {
		return fmt.Errorf("error writing JPEG image: %v", err)
	}
	pw.pageInfos = append(pw.pageInfos, pageInfo{
		imageID:   imgID,
		placement: placement,
	})
	return nil
}

func jpegColorSpace(data []byte) (int, int, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", err
	}
	if format != "jpeg" {
		return 0, 0, "", fmt.Errorf("content is %s, not jpeg", format)
	}
	switch cfg.ColorModel {
	case color.GrayModel:
		return cfg.Width, cfg.Height, "DeviceGray", nil
	case color.CMYKModel:
		return cfg.Width, cfg.Height, "DeviceCMYK", nil
	}
	return cfg.Width, cfg.Height, "DeviceRGB", nil
}

func (pw *PDFWriter) writeJPEGImage(data []byte) (int64, error) {
	width, height, colorSpace, err := jpegColorSpace(data)
	if err != nil {
		return 0, err
	}

	imgID := pw.newObject()
	pw.bw.WriteString("<<\n/Type /XObject\n/Subtype /Image\n")
	pw.bw.WriteString(fmt.Sprintf("/Width %d\n/Height %d\n", width, height))
	pw.bw.WriteString(fmt.Sprintf("/ColorSpace /%s\n/BitsPerComponent 8\n", colorSpace))
	if colorSpace == "DeviceCMYK" {
		// Adobe CMYK JPEGs are stored inverted
		pw.bw.WriteString("/Decode [1 0 1 0 1 0 1 0]\n")
	}
	pw.bw.WriteString("/Filter /DCTDecode\n")

	pw.bw.WriteString(fmt.Sprintf("/Length %d\n", len(data)))
	pw.bw.WriteString(">>\nstream\n")
	pw.bw.Write(data)
	pw.bw.WriteString("\nendstream\nendobj\n")
	return imgID, nil
}

// writeContent draws the image; PDF space has its origin at the bottom-left.
func (pw *PDFWriter) writeContent(imgName string, p contracts.PlacementResult) int64 {
	x := p.OffsetXMm * mmToPt
	y := (p.PageHeightMm - p.OffsetYMm - p.DrawHeightMm) * mmToPt
	content := fmt.Sprintf(
		"q\n%.4f 0 0 %.4f %.4f %.4f cm\n/%s Do\nQ\n",
		p.DrawWidthMm*mmToPt, p.DrawHeightMm*mmToPt, x, y, imgName,
	)
	objID := pw.newObject()
	pw.bw.WriteString("<<\n")
	pw.bw.WriteString(fmt.Sprintf("/Length %d\n", len(content)))
	pw.bw.WriteString(">>\n")
	pw.bw.WriteString("stream\n")
	pw.bw.WriteString(content)
	pw.bw.WriteString("\nendstream\nendobj\n")
	return objID
}

func (pw *PDFWriter) writePage(imgName string, imgObjID int64, contentID int64, p contracts.PlacementResult) int64 {
	objID := pw.newObject()
	pw.bw.WriteString("<<\n")
	pw.bw.WriteString("/Type /Page\n")
	pw.bw.WriteString(fmt.Sprintf("/Parent %d 0 R\n", pw.pagesObjID))
	pw.bw.WriteString(fmt.Sprintf("/MediaBox [0 0 %.2f %.2f]\n", p.PageWidthMm*mmToPt, p.PageHeightMm*mmToPt))
	pw.bw.WriteString(fmt.Sprintf("/Resources << /XObject << /%s %d 0 R >> >>\n", imgName, imgObjID))
	pw.bw.WriteString(fmt.Sprintf("/Contents %d 0 R\n", contentID))
	pw.bw.WriteString(">>\nendobj\n")
	return objID
}

func (pw *PDFWriter) createDocumentStructure() error {
	pw.pagesObjID = pw.reserveObject()

	for i, info := range pw.pageInfos {
		imgName := fmt.Sprintf("Im%d", i)
		contentID := pw.writeContent(imgName, info.placement)
		pageID := pw.writePage(imgName, info.imageID, contentID, info.placement)
		pw.pageIDs = append(pw.pageIDs, pageID)
	}

	pw.beginObject(pw.pagesObjID)
	pw.bw.WriteString("<<\n")
	pw.bw.WriteString("/Type /Pages\n")
	pw.bw.WriteString(fmt.Sprintf("/Count %d\n", len(pw.pageIDs)))
	pw.bw.WriteString("/Kids [")
	for _, id := range pw.pageIDs {
		pw.bw.WriteString(fmt.Sprintf(" %d 0 R", id))
	}
	pw.bw.WriteString(" ]\n>>\nendobj\n")

	pw.catalogObjID = pw.newObject()
	pw.bw.WriteString("<<\n")
	pw.bw.WriteString(fmt.Sprintf("/Type /Catalog\n/Pages %d 0 R\n", pw.pagesObjID))
	pw.bw.WriteString(">>\nendobj\n")

	if err := pw.bw.Flush(); err != nil {
		return fmt.Errorf("error flushing buffer after creating structure: %v", err)
	}
	return nil
}

// PageCount reports how many pages have been added so far.
func (pw *PDFWriter) PageCount() int {
	return len(pw.pageInfos)
}

func (pw *PDFWriter) Finish() error {
	if err := pw.createDocumentStructure(); err != nil {
		return fmt.Errorf("failed to create document structure before finishing: %v", err)
	}

	startXref := pw.cw.offset
	total := len(pw.objects) + 1

	if _, err := fmt.Fprintf(pw.cw.w, "xref\n0 %d\n", total); err != nil {
		return fmt.Errorf("error writing xref header: %v", err)
	}
	if _, err := fmt.Fprintf(pw.cw.w, "%010d %05d f \n", 0, 65535); err != nil {
		return fmt.Errorf("error writing free object xref entry: %v", err)
	}
	for _, off := range pw.objects {
		if _, err := fmt.Fprintf(pw.cw.w, "%010d %05d n \n", off, 0); err != nil {
			return fmt.Errorf("error writing object xref entry: %v", err)
		}
	}

	if _, err := fmt.Fprintf(pw.cw.w,
		"trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		total, pw.catalogObjID, startXref,
	); err != nil {
		return fmt.Errorf("error writing trailer and startxref: %v", err)
	}

	return nil
}
