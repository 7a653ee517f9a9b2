package contracts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFileType marks files whose content type is not an accepted raster format.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrDecode is returned when image content cannot be decoded.
	ErrDecode = errors.New("decode error")

	// ErrInvalidImageDimensions is returned for zero or negative pixel sizes.
	ErrInvalidImageDimensions = errors.New("invalid image dimensions")

	// ErrAssembly covers failures while building or serializing the document.
	ErrAssembly = errors.New("assembly error")

	ErrRunInProgress   = errors.New("conversion already in progress")
	ErrNoImages        = errors.New("no images to convert")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidSettings = errors.New("invalid settings")
)

// ImageError ties a run failure to the image that caused it.
type ImageError struct {
	Index int
	Name  string
	Kind  error
	Err   error
}

func (e *ImageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("image %d (%s): %v", e.Index, e.Name, e.Kind)
	}
	return fmt.Sprintf("image %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *ImageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UnsupportedFilesError is the aggregate notice for a rejected batch.
type UnsupportedFilesError struct {
	Names []string
}

func (e *UnsupportedFilesError) Error() string {
	return fmt.Sprintf("please select supported image files (PNG, JPG, WEBP); rejected: %s",
		strings.Join(e.Names, ", "))
}

func (e *UnsupportedFilesError) Unwrap() error { return ErrUnsupportedFileType }
