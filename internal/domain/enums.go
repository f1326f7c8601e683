package domain

// FileType represents the image file types accepted from the drop directory.
type FileType string

const (
	FileTypePSD  FileType = "psd"
	FileTypePNG  FileType = "png"
	FileTypeJPEG FileType = "jpeg"
	FileTypeTIFF FileType = "tiff"
	FileTypeBMP  FileType = "bmp"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"psd":  FileTypePSD,
	"png":  FileTypePNG,
	"jpg":  FileTypeJPEG,
	"jpeg": FileTypeJPEG,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
	"bmp":  FileTypeBMP,
}

// FileStatus represents the lifecycle of a tracked image file.
type FileStatus string

const (
	FileStatusDiscovered     FileStatus = "discovered"
	FileStatusQueued         FileStatus = "queued"
	FileStatusProcessing     FileStatus = "processing"
	FileStatusAwaitingReview FileStatus = "awaiting_review"
	FileStatusApproved       FileStatus = "approved"
	FileStatusRejected       FileStatus = "rejected"
	FileStatusProcessed      FileStatus = "processed"
	FileStatusFailed         FileStatus = "failed"
)

// MappingMethod identifies which resolution strategy produced a part mapping.
type MappingMethod string

const (
	MappingDirectMatch  MappingMethod = "direct_match"
	MappingInterchange  MappingMethod = "interchange_mapping"
	MappingFuzzyMatch   MappingMethod = "fuzzy_match"
	MappingBestGuess    MappingMethod = "best_guess"
	MappingNoExtraction MappingMethod = "no_extraction"
	MappingError        MappingMethod = "error"
)

// Confidence tiers per mapping method. ReviewThreshold is the gate below
// which a mapping always requires a human decision.
const (
	ConfidenceDirectMatch = 0.95
	ConfidenceInterchange = 0.85
	ConfidenceFuzzyMatch  = 0.6
	ConfidenceBestGuess   = 0.3
	ConfidenceNone        = 0.0
	ReviewThreshold       = 0.8
)

// OverrideTypePartNumber is the override_type recorded when a reviewer
// corrects a resolver decision.
const OverrideTypePartNumber = "part_number"
