// internal/pricing/quality.go
package pricing

import "strings"

const oversizeFileBytes = 50 * 1024 * 1024

// qualityRule is one entry of the adjustment pipeline. priceFactor scales
// the base/color/layer components, setupFactor scales the one-time setup
// fee. Factors of 1.0 leave that dimension untouched.
type qualityRule struct {
	code        string
	reason      string
	priceFactor float64
	setupFactor float64
	applies     func(m *FileMetadata) bool
}

// qualityRules is evaluated in order; every matching rule compounds by
// straight multiplication with no clamping, so a low-DPI web-only asset
// legitimately stacks both surcharges. The first matching rule supplies the
// human-readable reason even when several rules fired.
var qualityRules = []qualityRule{
	{
		code:        "low_dpi",
		reason:      "Low resolution artwork (below 150 DPI) requires reprocessing",
		priceFactor: 1.2,
		setupFactor: 1.3,
		applies: func(m *FileMetadata) bool {
			return m.DPI != nil && *m.DPI < 150
		},
	},
	{
		code:        "oversize_file",
		reason:      "File larger than 50 MB needs extra handling",
		priceFactor: 1.1,
		setupFactor: 1.2,
		applies: func(m *FileMetadata) bool {
			return m.FileSize != nil && *m.FileSize > oversizeFileBytes
		},
	},
	{
		code:        "vector_artwork",
		reason:      "Vector artwork prints without rasterization risk",
		priceFactor: 0.9,
		setupFactor: 1.0,
		applies: func(m *FileMetadata) bool {
			return normalizeToken(m.Format) == "svg"
		},
	},
	{
		code:        "pdf_artwork",
		reason:      "PDF artwork carries a small conversion discount",
		priceFactor: 0.95,
		setupFactor: 1.0,
		applies: func(m *FileMetadata) bool {
			return normalizeToken(m.Format) == "pdf"
		},
	},
	{
		code:        "risky_format",
		reason:      "WEBP/GIF artwork needs conversion to a print-safe format",
		priceFactor: 1.15,
		setupFactor: 1.3,
		applies: func(m *FileMetadata) bool {
			f := normalizeToken(m.Format)
			return f == "webp" || f == "gif"
		},
	},
	{
		code:        "low_quality",
		reason:      "Poor quality artwork needs manual cleanup",
		priceFactor: 1.25,
		setupFactor: 1.4,
		applies: func(m *FileMetadata) bool {
			return m.QualityScore != nil && *m.QualityScore < 40
		},
	},
	{
		code:        "print_ready",
		reason:      "Verified print-ready artwork",
		priceFactor: 0.95,
		setupFactor: 1.0,
		applies: func(m *FileMetadata) bool {
			return m.QualityScore != nil && *m.QualityScore >= 80 &&
				m.PrintReady != nil && *m.PrintReady
		},
	},
	{
		code:        "commercial_grade",
		reason:      "Commercial print grade asset",
		priceFactor: 0.9,
		setupFactor: 1.0,
		applies: func(m *FileMetadata) bool {
			return normalizeToken(m.SuggestedUse) == "commercial_print"
		},
	},
	{
		code:        "web_only_asset",
		reason:      "Web-only asset is unsuitable for print and needs rework",
		priceFactor: 1.3,
		setupFactor: 1.5,
		applies: func(m *FileMetadata) bool {
			return normalizeToken(m.SuggestedUse) == "web_only"
		},
	},
	{
		code:        "small_print_asset",
		reason:      "Asset only suitable for small print sizes",
		priceFactor: 1.1,
		setupFactor: 1.0,
		applies: func(m *FileMetadata) bool {
			return normalizeToken(m.SuggestedUse) == "small_print"
		},
	},
}

// qualityAdjustment runs the pipeline over the file metadata and returns the
// compounded price multiplier, the compounded setup fee multiplier, and the
// first matching rule (nil when nothing applied). A nil metadata or a file
// at 300+ DPI with nothing else notable yields exactly 1.0/1.0.
func qualityAdjustment(meta *FileMetadata) (float64, float64, *qualityRule) {
	price := 1.0
	setup := 1.0
	if meta == nil {
		return price, setup, nil
	}

	var first *qualityRule
	for i := range qualityRules {
		rule := &qualityRules[i]
		if !rule.applies(meta) {
			continue
		}
		price *= rule.priceFactor
		setup *= rule.setupFactor
		if first == nil {
			first = rule
		}
	}

	return price, setup, first
}

// normalizeToken lowercases and snake_cases an enum-ish wire value so that
// "commercial-print", "Commercial_Print" and "commercial_print" all match.
func normalizeToken(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.TrimPrefix(s, ".")
}
