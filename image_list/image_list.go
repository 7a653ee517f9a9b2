package image_list

import (
	"fmt"
	"sync"

	"img2pdf/contracts"
)

type SourceImage = contracts.SourceImage

// List is the user-curated page order. Positions are always 0..Len()-1.
type List struct {
	mu     sync.RWMutex
	images []SourceImage
}

func New() *List {
	return &List{}
}

// AppendImages adds the supported files in order and returns the rejected ones.
// A non-empty batch with nothing supported leaves the list untouched and
// returns an *contracts.UnsupportedFilesError.
func (l *List) AppendImages(files []SourceImage) ([]SourceImage, error) {
	accepted := make([]SourceImage, 0, len(files))
	var rejected []SourceImage
	for _, f := range files {
		if contracts.IsSupportedMIME(f.MIMEType) {
			accepted = append(accepted, f)
		} else {
			rejected = append(rejected, f)
		}
	}

	if len(accepted) == 0 && len(files) > 0 {
		names := make([]string, 0, len(rejected))
		for _, f := range rejected {
			names = append(names, f.Name)
		}
		return rejected, &contracts.UnsupportedFilesError{Names: names}
	}

	l.mu.Lock()
	l.images = append(l.images, accepted...)
	l.mu.Unlock()
	return rejected, nil
}

func (l *List) RemoveImage(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.images) {
		return fmt.Errorf("%w: remove %d from list of %d", contracts.ErrIndexOutOfRange, index, len(l.images))
	}
	l.images = append(l.images[:index], l.images[index+1:]...)
	return nil
}

// MoveImage takes the image at from out of the list and reinserts it at to,
// shifting the images in between.
func (l *List) MoveImage(from, to int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.images)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d in list of %d", contracts.ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	moved := l.images[from]
	if from < to {
		copy(l.images[from:to], l.images[from+1:to+1])
	} else {
		copy(l.images[to+1:from+1], l.images[to:from])
	}
	l.images[to] = moved
	return nil
}

func (l *List) Clear() {
	l.mu.Lock()
	l.images = nil
	l.mu.Unlock()
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}

// Items returns a snapshot in page order.
func (l *List) Items() []SourceImage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]SourceImage, len(l.images))
	copy(out, l.images)
	return out
}
