package contracts

const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEJPG  = "image/jpg"
	MIMEWEBP = "image/webp"
)

// SupportedMIMETypes lists the content types accepted into the image list.
var SupportedMIMETypes = []string{MIMEPNG, MIMEJPEG, MIMEJPG, MIMEWEBP}

func IsSupportedMIME(mimeType string) bool {
	for _, t := range SupportedMIMETypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// SourceImage is treated as immutable once it has been appended to a list.
type SourceImage struct {
	Content  []byte
	MIMEType string
	Size     int64
	Name     string
}

type DecodedProperties struct {
	Width  int
	Height int
	Format string
}
