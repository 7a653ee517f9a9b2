package converter

import (
	"fmt"
	"math"

	"img2pdf/contracts"
)

const (
	// PageMarginMm is reserved on every side of a fixed-size page.
	PageMarginMm = 10.0

	// PxToMm converts pixels to millimetres at 96 DPI.
	PxToMm = 0.264583
)

// ComputePlacement sizes the page for an image and positions the image on it.
//
// Fixed policies scale the image uniformly into the area inside the margins and
// center it on the full page. The scale is not clamped, so images smaller than
// that area are enlarged to fill it. FitToImage sizes the page to the image.
func ComputePlacement(widthPx, heightPx int, policy contracts.PageSizePolicy) (contracts.PlacementResult, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return contracts.PlacementResult{}, fmt.Errorf("%w: %dx%d", contracts.ErrInvalidImageDimensions, widthPx, heightPx)
	}
	w := float64(widthPx)
	h := float64(heightPx)

	switch policy.Kind {
	case contracts.PolicyFitToImage:
		pageW := w * PxToMm
		pageH := h * PxToMm
		return contracts.PlacementResult{
			PageWidthMm:  pageW,
			PageHeightMm: pageH,
			DrawWidthMm:  pageW,
			DrawHeightMm: pageH,
			Scale:        PxToMm,
		}, nil

	case contracts.PolicyFixed:
		if policy.WidthMm <= 2*PageMarginMm || policy.HeightMm <= 2*PageMarginMm {
			return contracts.PlacementResult{}, fmt.Errorf("%w: page %s leaves no room inside margins",
				contracts.ErrInvalidSettings, policy)
		}
		availableW := policy.WidthMm - 2*PageMarginMm
		availableH := policy.HeightMm - 2*PageMarginMm
		scale := math.Min(availableW/w, availableH/h)

		drawW := w * scale
		drawH := h * scale
		return contracts.PlacementResult{
			PageWidthMm:  policy.WidthMm,
			PageHeightMm: policy.HeightMm,
			DrawWidthMm:  drawW,
			DrawHeightMm: drawH,
			OffsetXMm:    (policy.WidthMm - drawW) / 2,
			OffsetYMm:    (policy.HeightMm - drawH) / 2,
			Scale:        scale,
		}, nil
	}
	return contracts.PlacementResult{}, fmt.Errorf("%w: unknown page size policy %d", contracts.ErrInvalidSettings, policy.Kind)
}
