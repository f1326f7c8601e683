// Package partnum extracts candidate part numbers from designer-supplied
// image filenames. Canonical part numbers are 4-8 digits optionally prefixed
// by 1-2 letters (e.g. "J1234567", "A5551", "12345").
package partnum

import (
	"path/filepath"
	"regexp"
	"strings"
)

// MaxCandidates bounds how many extraction candidates are returned.
const MaxCandidates = 3

// minCandidateLen discards fragments too short to be a part number.
const minCandidateLen = 4

var (
	rePrefix      = regexp.MustCompile(`^[A-Z]{0,2}[0-9]{4,8}`)
	reTrailingNum = regexp.MustCompile(`^(.+?)_[0-9]+$`)
	reParenNum    = regexp.MustCompile(`^(.+?)\s*\([0-9]+\)$`)
	reDescSuffix  = regexp.MustCompile(`^(.+?)(?:_DETAIL|_MAIN|_FRONT|_BACK|_TOP|_BOTTOM)$`)
	reEmbedded    = regexp.MustCompile(`[A-Z]{0,2}[0-9]{4,8}`)
	reNonAlnum    = regexp.MustCompile(`[^A-Z0-9]`)
)

// Extract returns up to MaxCandidates plausible part-number substrings from a
// raw filename, highest-confidence pattern first. It is a pure function:
// repeated calls with the same input return identical output, and it never
// fails; a filename with no qualifying substring yields an empty slice.
func Extract(filename string) []string {
	stem := strings.ToUpper(strings.TrimSpace(stripExt(filename)))
	if stem == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		c = strings.TrimSpace(c)
		if len(c) >= minCandidateLen && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	// Rule a: leading 0-2 letters + 4-8 digits.
	if m := rePrefix.FindString(stem); m != "" {
		add(m)
	}

	// Rules b-d: strip a recognized suffix, retry the prefix pattern on the
	// remainder, then keep the remainder itself as a candidate.
	for _, re := range []*regexp.Regexp{reTrailingNum, reParenNum, reDescSuffix} {
		if m := re.FindStringSubmatch(stem); m != nil {
			rest := strings.TrimSpace(m[1])
			if p := rePrefix.FindString(rest); p != "" {
				add(p)
			}
			add(rest)
		}
	}

	// Rule e: part-like sequences anywhere in the stem.
	for _, m := range reEmbedded.FindAllString(stem, -1) {
		add(m)
	}

	// Rule f: whole-string fallback, only when no rule produced a candidate.
	if len(out) == 0 {
		add(reNonAlnum.ReplaceAllString(stem, ""))
	}

	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}

// Variants returns the fuzzy-match variants to try for a candidate, in
// priority order: leading zeros stripped, left-padded with zeros to 8
// characters, and with a "J" or "A" letter prefix. The candidate itself is
// excluded since the caller has already checked it.
func Variants(candidate string) []string {
	raw := []string{
		strings.TrimLeft(candidate, "0"),
		zeroPad(candidate, 8),
		"J" + candidate,
		"A" + candidate,
	}
	var out []string
	for _, v := range raw {
		if v != "" && v != candidate {
			out = append(out, v)
		}
	}
	return out
}

func stripExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
