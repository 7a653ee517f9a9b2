package contracts

import (
	"fmt"
	"strings"
)

type PolicyKind int

const (
	PolicyFixed PolicyKind = iota
	PolicyFitToImage
)

const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeFit    = "fit"
)

type PageSizePolicy struct {
	Kind     PolicyKind
	WidthMm  float64
	HeightMm float64
}

var (
	A4     = PageSizePolicy{Kind: PolicyFixed, WidthMm: 210, HeightMm: 297}
	Letter = PageSizePolicy{Kind: PolicyFixed, WidthMm: 215.9, HeightMm: 279.4}
	Fit    = PageSizePolicy{Kind: PolicyFitToImage}
)

func PolicyForName(name string) (PageSizePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PageSizeA4:
		return A4, nil
	case PageSizeLetter:
		return Letter, nil
	case PageSizeFit:
		return Fit, nil
	}
	return PageSizePolicy{}, fmt.Errorf("%w: unknown page size %q", ErrInvalidSettings, name)
}

func (p PageSizePolicy) String() string {
	if p.Kind == PolicyFitToImage {
		return PageSizeFit
	}
	return fmt.Sprintf("%gx%gmm", p.WidthMm, p.HeightMm)
}

// PlacementResult is expressed in millimetres, offsets measured from the top-left corner.
type PlacementResult struct {
	PageWidthMm  float64
	PageHeightMm float64
	DrawWidthMm  float64
	DrawHeightMm float64
	OffsetXMm    float64
	OffsetYMm    float64
	Scale        float64
}

func (p PlacementResult) Orientation() string {
	if p.PageWidthMm > p.PageHeightMm {
		return "L"
	}
	return "P"
}
