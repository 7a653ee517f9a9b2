package converter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"img2pdf/contracts"
	"img2pdf/pdf_writer"
)

const (
	WriterGofpdf = "gofpdf"
	WriterStream = "stream"
)

// Converter assembles image lists into PDF documents, one run at a time.
type Converter struct {
	running atomic.Bool
}

func New() *Converter {
	return &Converter{}
}

func newPageWriter(name string, dst io.Writer) (contracts.PageWriter, error) {
	switch name {
	case "", WriterGofpdf:
		return newGofpdfWriter(dst), nil
	case WriterStream:
		pw, err := pdf_writer.NewPDFWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contracts.ErrAssembly, err)
		}
		return pw, nil
	}
	return nil, fmt.Errorf("%w: unknown writer %q", contracts.ErrInvalidSettings, name)
}

// Convert builds one page per image, in order. Any failure discards the
// pages built so far and no document is returned.
func (c *Converter) Convert(images []contracts.SourceImage, settings contracts.ConversionSettings) (*contracts.Document, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, contracts.ErrRunInProgress
	}
	defer c.running.Store(false)

	if len(images) == 0 {
		return nil, contracts.ErrNoImages
	}

	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	startTime := time.Now()

	var buf bytes.Buffer
	writer, err := newPageWriter(settings.Writer, &buf)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("images", len(images)).
		Str("page_size", settings.Policy.String()).
		Bool("compress", settings.Compression.Enabled).
		Float64("quality", settings.Compression.Quality).
		Str("writer", settings.Writer).
		Msg("conversion started")

	pages := make([]contracts.PageReport, 0, len(images))
	for i, src := range images {
		report, err := c.addImage(writer, i, src, settings)
		if err != nil {
			logger.Error().Err(err).Int("page", i).Str("name", src.Name).Msg("conversion aborted")
			return nil, err
		}
		logger.Debug().
			Int("page", i).
			Str("name", src.Name).
			Str("format", report.EmbeddedFormat).
			Int("width_px", report.PixelWidth).
			Int("height_px", report.PixelHeight).
			Float64("scale", report.Placement.Scale).
			Msg("page added")
		pages = append(pages, report)
	}

	if err := writer.Finish(); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrAssembly, err)
	}

	data := buf.Bytes()
	if settings.Verify {
		if err := verifyDocument(data, len(pages)); err != nil {
			logger.Error().Err(err).Msg("verification failed")
			return nil, err
		}
	}

	logger.Info().
		Int("pages", len(pages)).
		Int("bytes", len(data)).
		Dur("took", time.Since(startTime)).
		Msg("conversion finished")

	return &contracts.Document{
		RunID: runID,
		Data:  data,
		Pages: pages,
	}, nil
}

func (c *Converter) addImage(writer contracts.PageWriter, index int, src contracts.SourceImage, settings contracts.ConversionSettings) (contracts.PageReport, error) {
	embedded, err := prepareImage(src, settings.Compression)
	if err != nil {
		return contracts.PageReport{}, imageError(index, src.Name, err)
	}

	placement, err := ComputePlacement(embedded.PixelWidth, embedded.PixelHeight, settings.Policy)
	if err != nil {
		return contracts.PageReport{}, imageError(index, src.Name, err)
	}

	if err := writer.AddPage(placement, embedded); err != nil {
		return contracts.PageReport{}, imageError(index, src.Name, fmt.Errorf("%w: %v", contracts.ErrAssembly, err))
	}

	return contracts.PageReport{
		Index:          index,
		Name:           src.Name,
		SourceMIME:     src.MIMEType,
		EmbeddedFormat: embedded.Format,
		PixelWidth:     embedded.PixelWidth,
		PixelHeight:    embedded.PixelHeight,
		Placement:      placement,
	}, nil
}

func imageError(index int, name string, err error) error {
	kind := contracts.ErrAssembly
	for _, k := range []error{contracts.ErrDecode, contracts.ErrInvalidImageDimensions, contracts.ErrInvalidSettings} {
		if errors.Is(err, k) {
			kind = k
			break
		}
	}
	return &contracts.ImageError{Index: index, Name: name, Kind: kind, Err: err}
}
