package converter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"img2pdf/contracts"
)

var disableConfigDir sync.Once

func verifyConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// verifyDocument checks that data parses as a valid PDF with wantPages pages.
func verifyDocument(data []byte, wantPages int) error {
	conf := verifyConfig()
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("%w: validation failed: %v", contracts.ErrAssembly, err)
	}
	n, err := api.PageCount(bytes.NewReader(data), verifyConfig())
	if err != nil {
		return fmt.Errorf("%w: page count failed: %v", contracts.ErrAssembly, err)
	}
	if n != wantPages {
		return fmt.Errorf("%w: document has %d pages, want %d", contracts.ErrAssembly, n, wantPages)
	}
	return nil
}
