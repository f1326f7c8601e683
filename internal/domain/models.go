package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InterchangeMapping records that an old/superseded part number is now
// represented by a different current part number. Numbers are stored
// upper-cased and trimmed; the cache keys on OldPartNumber.
type InterchangeMapping struct {
	OldPartNumber   string `db:"old_part_number" json:"old_part_number"`
	NewPartNumber   string `db:"new_part_number" json:"new_part_number"`
	InterchangeCode string `db:"interchange_code" json:"interchange_code"`
}

// PartMappingResult is the outcome of resolving a filename to a part number.
// It is created fresh per resolution call and never mutated afterwards; all
// failure modes are encoded in its fields rather than raised.
type PartMappingResult struct {
	OriginalFilename     string              `json:"original_filename"`
	ExtractedNumbers     []string            `json:"extracted_numbers"`
	MappedPartNumber     string              `json:"mapped_part_number,omitempty"`
	ConfidenceScore      float64             `json:"confidence_score"`
	MappingMethod        MappingMethod       `json:"mapping_method"`
	InterchangeMapping   *InterchangeMapping `json:"interchange_mapping,omitempty"`
	RequiresManualReview bool                `json:"requires_manual_review"`
	ErrorMessage         string              `json:"error_message,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
}

// ManualOverride records a human correction of a resolver decision. Rows are
// append-only; they form the audit trail for the owning file.
type ManualOverride struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FileID       uuid.UUID `db:"file_id" json:"file_id"`
	OverrideType string    `db:"override_type" json:"override_type"`
	SystemValue  string    `db:"system_value" json:"system_value,omitempty"`
	UserValue    string    `db:"user_value" json:"user_value"`
	Reason       string    `db:"reason" json:"reason,omitempty"`
	OverriddenBy string    `db:"overridden_by" json:"overridden_by"`
	OverriddenAt time.Time `db:"overridden_at" json:"overridden_at"`
}

// PartNumberSuggestion is an ephemeral autocomplete candidate for the manual
// override UI. Not persisted.
type PartNumberSuggestion struct {
	PartNumber  string  `db:"part_number" json:"part_number"`
	Description string  `db:"description" json:"description,omitempty"`
	Brand       string  `db:"brand" json:"brand,omitempty"`
	MatchScore  float64 `json:"match_score"`
	MatchReason string  `json:"match_reason"`
}

// PartMetadata holds the descriptive fields embedded into output renditions.
type PartMetadata struct {
	PartNumber  string `db:"part_number" json:"part_number"`
	Brand       string `db:"brand" json:"brand"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Keywords    string `db:"keywords" json:"keywords"`
}

// ImageFile is a tracked image file moving through the production pipeline.
type ImageFile struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	Filename          string        `db:"filename" json:"filename"`
	OriginalPath      string        `db:"original_path" json:"original_path"`
	FileType          FileType      `db:"file_type" json:"file_type"`
	SizeBytes         int64         `db:"size_bytes" json:"size_bytes"`
	ChecksumMD5       string        `db:"checksum_md5" json:"checksum_md5"`
	ChecksumSHA256    string        `db:"checksum_sha256" json:"checksum_sha256"`
	Status            FileStatus    `db:"status" json:"status"`
	PartNumber        string        `db:"part_number" json:"part_number,omitempty"`
	MappingMethod     MappingMethod `db:"mapping_method" json:"mapping_method,omitempty"`
	MappingConfidence float64       `db:"mapping_confidence" json:"mapping_confidence"`
	RequiresReview    bool          `db:"requires_review" json:"requires_review"`
	PreviewPath       string        `db:"preview_path" json:"preview_path,omitempty"`
	ArchiveLocation   string        `db:"archive_location" json:"archive_location,omitempty"`
	DiscoveredAt      time.Time     `db:"discovered_at" json:"discovered_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// ProcessingStep is one append-only entry in a file's processing history.
type ProcessingStep struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	FileID    uuid.UUID       `db:"file_id" json:"file_id"`
	Step      string          `db:"step" json:"step"`
	Details   json.RawMessage `db:"details" json:"details,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Rendition describes one generated output file for a processed image.
type Rendition struct {
	FormatName string `json:"format_name"`
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SizeBytes  int64  `json:"size_bytes"`
}
