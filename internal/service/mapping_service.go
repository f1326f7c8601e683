package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"partflow/internal/domain"
	"partflow/internal/partnum"
	"partflow/internal/port"
)

const (
	suggestionMinInput = 2
	suggestionLimit    = 10
)

// PartMappingService resolves arbitrary image filenames to canonical,
// currently-active part numbers. Resolve never returns an error: every
// failure mode is encoded in the returned result so that a database hiccup
// can never abort a batch of files.
type PartMappingService interface {
	Resolve(ctx context.Context, filename string) domain.PartMappingResult
	Suggest(ctx context.Context, filename, partial string) []domain.PartNumberSuggestion
	Validate(ctx context.Context, partNumber string) bool
	GetMetadata(ctx context.Context, partNumber string) (*domain.PartMetadata, error)
	RefreshCache(ctx context.Context) error
	CacheSize() int
}

type mappingService struct {
	parts port.PartsRepository
	cache *InterchangeCache
}

// NewPartMappingService creates a new PartMappingService implementation.
func NewPartMappingService(parts port.PartsRepository, cache *InterchangeCache) PartMappingService {
	return &mappingService{parts: parts, cache: cache}
}

// Resolve tries resolution strategies in strict priority order: direct match
// against active parts, interchange mapping, fuzzy variants, best guess.
// A direct or interchange hit short-circuits the candidate loop; a fuzzy hit
// is recorded but weaker candidates are still scanned for a stronger match.
func (s *mappingService) Resolve(ctx context.Context, filename string) (result domain.PartMappingResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("mappingService.Resolve: panic resolving %q: %v", filename, rec)
			result = newResult(filename, nil, domain.MappingError, "", domain.ConfidenceNone)
			result.ErrorMessage = fmt.Sprintf("%v", rec)
		}
	}()

	candidates := partnum.Extract(filename)
	if len(candidates) == 0 {
		return newResult(filename, nil, domain.MappingNoExtraction, "", domain.ConfidenceNone)
	}

	var fuzzyHit string
	for _, candidate := range candidates {
		if s.exists(ctx, candidate) {
			return newResult(filename, candidates, domain.MappingDirectMatch, candidate, domain.ConfidenceDirectMatch)
		}

		if mapping := s.cache.Lookup(candidate); mapping != nil {
			r := newResult(filename, candidates, domain.MappingInterchange, mapping.NewPartNumber, domain.ConfidenceInterchange)
			r.InterchangeMapping = mapping
			return r
		}

		if fuzzyHit == "" {
			for _, variant := range partnum.Variants(candidate) {
				if s.exists(ctx, variant) {
					fuzzyHit = variant
					break
				}
			}
		}
	}

	if fuzzyHit != "" {
		return newResult(filename, candidates, domain.MappingFuzzyMatch, fuzzyHit, domain.ConfidenceFuzzyMatch)
	}

	return newResult(filename, candidates, domain.MappingBestGuess, candidates[0], domain.ConfidenceBestGuess)
}

// Suggest builds part-number candidates for the manual-override autocomplete.
// A typed partial is preferred; only with no partial at all do the filename's
// extracted candidates seed the search instead. A partial shorter than
// suggestionMinInput and database failures both yield an empty result, never
// an error.
func (s *mappingService) Suggest(ctx context.Context, filename, partial string) []domain.PartNumberSuggestion {
	partial = strings.ToUpper(strings.TrimSpace(partial))
	if len(partial) >= suggestionMinInput {
		return s.searchPrefix(ctx, partial, "database_search")
	}
	if partial != "" {
		return nil
	}

	var out []domain.PartNumberSuggestion
	seen := make(map[string]bool)
	for _, candidate := range partnum.Extract(filename) {
		for _, sug := range s.searchPrefix(ctx, candidate, "extracted_from_filename") {
			if seen[sug.PartNumber] {
				continue
			}
			seen[sug.PartNumber] = true
			out = append(out, sug)
			if len(out) >= suggestionLimit {
				return out
			}
		}
	}
	return out
}

func (s *mappingService) searchPrefix(ctx context.Context, prefix, reason string) []domain.PartNumberSuggestion {
	suggestions, err := s.parts.SearchByPrefix(ctx, prefix, suggestionLimit)
	if err != nil {
		log.Printf("mappingService.Suggest: prefix search failed for %q: %v", prefix, err)
		return nil
	}

	for i := range suggestions {
		if suggestions[i].PartNumber == prefix {
			suggestions[i].MatchScore = 1.0
		} else {
			suggestions[i].MatchScore = 0.8
		}
		suggestions[i].MatchReason = reason
	}
	return suggestions
}

// Validate reports whether the given number is a currently active part.
func (s *mappingService) Validate(ctx context.Context, partNumber string) bool {
	return s.exists(ctx, strings.ToUpper(strings.TrimSpace(partNumber)))
}

// GetMetadata returns descriptive metadata for an active part.
func (s *mappingService) GetMetadata(ctx context.Context, partNumber string) (*domain.PartMetadata, error) {
	return s.parts.GetPartMetadata(ctx, strings.ToUpper(strings.TrimSpace(partNumber)))
}

// RefreshCache clears and reloads the interchange cache. Safe to call while
// resolutions are in flight.
func (s *mappingService) RefreshCache(ctx context.Context) error {
	return s.cache.Load(ctx)
}

// CacheSize returns the number of loaded interchange mappings.
func (s *mappingService) CacheSize() int {
	return s.cache.Size()
}

// exists treats an oracle I/O failure as "not found" for this call, logged at
// warning level: resolution falls through to weaker strategies instead of
// failing, and the error result is reserved for recovered panics.
func (s *mappingService) exists(ctx context.Context, partNumber string) bool {
	ok, err := s.parts.PartExists(ctx, partNumber)
	if err != nil {
		log.Printf("mappingService: existence check failed for %q: %v", partNumber, err)
		return false
	}
	return ok
}

func newResult(filename string, candidates []string, method domain.MappingMethod, mapped string, confidence float64) domain.PartMappingResult {
	return domain.PartMappingResult{
		OriginalFilename:     filename,
		ExtractedNumbers:     candidates,
		MappedPartNumber:     mapped,
		ConfidenceScore:      confidence,
		MappingMethod:        method,
		RequiresManualReview: confidence < domain.ReviewThreshold,
		CreatedAt:            time.Now().UTC(),
	}
}
