package contracts

const DefaultOutputName = "converted-images.pdf"

// InputFlags is what the CLI collects before any validation.
type InputFlags struct {
	Inputs   []string
	Output   string
	PageSize string
	Writer   string
	Quality  float64
	Compress bool
	Verify   bool
	Remove   []int
	Moves    [][2]int
}

type ConversionSettings struct {
	Policy      PageSizePolicy
	Compression CompressionSetting
	Writer      string
	Verify      bool
}

type CompressionSetting struct {
	Enabled bool
	Quality float64
}
