// internal/artwork/analyzer.go
// Package artwork inspects uploaded design files and derives the print
// readiness signals consumed by design pricing.
package artwork

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Registers WEBP decoding with image.Decode.
	_ "golang.org/x/image/webp"
)

// Target is the physical print size of the area the artwork is meant
// for, in inches. Effective DPI is derived from it.
type Target struct {
	WidthIn  float64
	HeightIn float64
}

// Analysis is the derived metadata for an uploaded file. Pointer
// fields stay nil when the signal cannot be derived, which pricing
// treats as "unknown" rather than zero.
type Analysis struct {
	Format       string   `json:"format"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	DPI          *float64 `json:"dpi,omitempty"`
	QualityScore *float64 `json:"quality_score,omitempty"`
	ColorCount   *int     `json:"color_count,omitempty"`
	PrintReady   bool     `json:"print_ready"`
	SuggestedUse string   `json:"suggested_use"`
}

const (
	vectorQualityScore = 90.0
	baseQualityScore   = 50.0
)

// Analyze derives format, dimensions, effective DPI, a quality score,
// a color estimate and a suggested use for the uploaded bytes. target
// may be nil when the caller has no area to measure against.
func Analyze(data []byte, filename string, target *Target) (*Analysis, error) {
	format := normalizeFormat(filename)

	// Vector formats are resolution independent and print clean at any
	// size, so they skip the raster heuristics entirely.
	if format == "svg" || format == "pdf" || format == "eps" || format == "ai" {
		score := vectorQualityScore
		return &Analysis{
			Format:       format,
			QualityScore: &score,
			PrintReady:   true,
			SuggestedUse: "commercial_print",
		}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s artwork: %w", format, err)
	}

	bounds := img.Bounds()
	analysis := &Analysis{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	if target != nil && target.WidthIn > 0 && target.HeightIn > 0 {
		// The binding dimension decides the effective resolution.
		dpi := math.Min(float64(analysis.Width)/target.WidthIn, float64(analysis.Height)/target.HeightIn)
		dpi = math.Round(dpi*10) / 10
		analysis.DPI = &dpi
	}

	colors := countColors(img)
	analysis.ColorCount = &colors

	score := scoreRaster(format, analysis.Width, analysis.Height, analysis.DPI, colors)
	analysis.QualityScore = &score
	analysis.PrintReady = isPrintReady(score, analysis.DPI)
	analysis.SuggestedUse = suggestedUse(analysis.DPI, analysis.Width)

	return analysis, nil
}

// EstimateColors decodes the file and counts its distinct colors after
// quantization. Used when a design submission does not declare a color
// count of its own.
func EstimateColors(data []byte) (int, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode artwork for color estimate: %w", err)
	}
	return countColors(img), nil
}

// countColors downsamples to bound the work, then counts colors at 4
// bits per channel so anti-aliasing noise collapses into its
// neighbors. Fully transparent pixels do not count.
func countColors(img image.Image) int {
	small := imaging.Fit(img, 64, 64, imaging.NearestNeighbor)

	seen := make(map[uint32]struct{})
	bounds := small.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := small.At(x, y).RGBA()
			if a < 0x2000 {
				continue
			}
			key := (r>>12)<<8 | (g>>12)<<4 | (b >> 12)
			seen[key] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

func scoreRaster(format string, width, height int, dpi *float64, colors int) float64 {
	score := baseQualityScore

	if dpi != nil {
		switch {
		case *dpi >= 300:
			score += 25
		case *dpi >= 150:
			score += 10
		default:
			score -= 20
		}
	}

	longEdge := width
	if height > longEdge {
		longEdge = height
	}
	switch {
	case longEdge >= 2400:
		score += 10
	case longEdge < 600:
		score -= 10
	}

	switch format {
	case "png":
		score += 10
	case "jpg", "jpeg":
		score += 5
	case "webp", "gif":
		score -= 15
	}

	// Few distinct colors means clean separations on press.
	if colors > 0 && colors <= 12 {
		score += 5
	}

	return math.Max(0, math.Min(100, score))
}

func isPrintReady(score float64, dpi *float64) bool {
	if score < 80 {
		return false
	}
	return dpi == nil || *dpi >= 300
}

func suggestedUse(dpi *float64, width int) string {
	if dpi != nil {
		switch {
		case *dpi >= 300:
			return "commercial_print"
		case *dpi >= 150:
			return "small_print"
		default:
			return "web_only"
		}
	}
	switch {
	case width >= 3000:
		return "commercial_print"
	case width >= 1000:
		return "small_print"
	default:
		return "web_only"
	}
}

func normalizeFormat(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
