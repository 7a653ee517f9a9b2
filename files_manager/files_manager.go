package files_manager

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"img2pdf/contracts"
)

type SourceImage = contracts.SourceImage

// DetectMIME sniffs the content type from magic bytes.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// ReadSourceImage loads a file into a SourceImage. The MIME type is detected
// from content, not from the file name.
func ReadSourceImage(path string) (SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SourceImage{}, fmt.Errorf("reading %s: %w", path, err)
	}
	mimeType := DetectMIME(data)
	log.Debug().Str("file", path).Str("mime", mimeType).Int("bytes", len(data)).Msg("read input file")
	return SourceImage{
		Content:  data,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Name:     filepath.Base(path),
	}, nil
}

// GetFilePaths lists the regular files of dir sorted by name, skipping hidden
// and AppleDouble ("._") entries.
func GetFilePaths(dir string) ([]string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}
	files := make([]string, 0, len(entries))
	var size int64 = 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
		if info, err := entry.Info(); err == nil {
			size += info.Size()
		}
	}
	sort.Strings(files)
	return files, size, nil
}

// CollectImages expands directories and reads every file in argument order.
// Unsupported files are still returned; filtering belongs to the image list.
func CollectImages(paths []string) ([]SourceImage, error) {
	var images []SourceImage
	for _, p := range paths {
		stat, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", p, err)
		}

		filePaths := []string{p}
		if stat.IsDir() {
			var size int64
			filePaths, size, err = GetFilePaths(p)
			if err != nil {
				return nil, fmt.Errorf("listing %s: %w", p, err)
			}
			log.Debug().Str("dir", p).Int("files", len(filePaths)).Int64("bytes", size).Msg("scanned input directory")
		}

		for _, fp := range filePaths {
			img, err := ReadSourceImage(fp)
			if err != nil {
				return nil, err
			}
			images = append(images, img)
		}
	}
	return images, nil
}
