package contracts

// Embedding formats understood by the page writers.
const (
	FormatJPEG = "JPG"
	FormatPNG  = "PNG"
	FormatWEBP = "WEBP"
)

type Converter interface {
	Convert(images []SourceImage, settings ConversionSettings) (*Document, error)
}

// PageWriter receives pages in document order. Finish writes the trailer and
// must be called exactly once.
type PageWriter interface {
	AddPage(placement PlacementResult, image EmbeddedImage) error
	Finish() error
}

type EmbeddedImage struct {
	Data        []byte
	Format      string
	PixelWidth  int
	PixelHeight int
}

type PageReport struct {
	Index          int
	Name           string
	SourceMIME     string
	EmbeddedFormat string
	PixelWidth     int
	PixelHeight    int
	Placement      PlacementResult
}

type Document struct {
	RunID string
	Data  []byte
	Pages []PageReport
}
