package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTitleRunes caps a sanitized title, counted in code points.
const MaxTitleRunes = 100

// DefaultExtension is used by CreateSafeFilename when no extension is given.
const DefaultExtension = ".md"

const untitled = "untitled"

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// pictographs covers emoticons, symbols & pictographs, transport & map,
// regional indicators, miscellaneous symbols and the general punctuation block.
var pictographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2000, Hi: 0x206F, Stride: 1},
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// isIllegalFilenameRune matches < > : " / \ | ? * and the C0/C1 control ranges.
func isIllegalFilenameRune(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

func dropRunes(s string, drop func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, s)
}

func isPictograph(r rune) bool { return unicode.Is(pictographs, r) }

// SanitizeTitle turns an arbitrary video title into a filesystem-safe,
// display-friendly string. The step order is part of the output contract:
// filenames produced earlier from the same titles must not change.
func SanitizeTitle(raw string) string {
	s := norm.NFC.String(raw)
	s = bracketStripper.Replace(s)
	s = strings.ReplaceAll(s, ":", "-")
	s = dropRunes(s, isIllegalFilenameRune)
	s = dropRunes(s, isPictograph)
	// Fields+Join collapses whitespace runs and trims both ends.
	s = strings.Join(strings.Fields(s), " ")
	return TruncateRunes(s, MaxTitleRunes, "")
}

// IsSafeFilename reports whether name is usable as-is on common platforms.
func IsSafeFilename(name string) bool {
	if strings.IndexFunc(name, isIllegalFilenameRune) >= 0 {
		return false
	}
	return !reservedNames[strings.ToUpper(name)]
}

// CreateSafeFilename builds "<sanitized title><ext>". An empty ext means
// DefaultExtension; a missing leading dot is added.
func CreateSafeFilename(title, ext string) string {
	name := SanitizeTitle(title)
	if strings.Trim(name, "-_ ") == "" {
		name = untitled
	}
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + ext
}

// SanitizeReport is the human-facing summary printed by the sanitize command
// and returned by the sanitize_title tool.
type SanitizeReport struct {
	Original  string `json:"original" yaml:"original"`
	Sanitized string `json:"sanitized" yaml:"sanitized"`
	Filename  string `json:"filename" yaml:"filename"`
	Safe      bool   `json:"safe" yaml:"safe"`
}

// BuildSanitizeReport runs the sanitizer and filename builder on raw.
func BuildSanitizeReport(raw, ext string) SanitizeReport {
	sanitized := SanitizeTitle(raw)
	return SanitizeReport{
		Original:  raw,
		Sanitized: sanitized,
		Filename:  CreateSafeFilename(raw, ext),
		Safe:      IsSafeFilename(sanitized),
	}
}
