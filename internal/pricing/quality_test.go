// internal/pricing/quality_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestQualityAdjustmentNoMetadata(t *testing.T) {
	price, setup, rule := qualityAdjustment(nil)

	assert.Equal(t, 1.0, price)
	assert.Equal(t, 1.0, setup)
	assert.Nil(t, rule)
}

func TestQualityAdjustmentHighDPIUnchanged(t *testing.T) {
	price, setup, rule := qualityAdjustment(&FileMetadata{DPI: floatPtr(300)})

	assert.Equal(t, 1.0, price)
	assert.Equal(t, 1.0, setup)
	assert.Nil(t, rule)
}

func TestQualityAdjustmentSingleRules(t *testing.T) {
	tests := []struct {
		name      string
		meta      *FileMetadata
		price     float64
		setup     float64
		code      string
	}{
		{"low dpi", &FileMetadata{DPI: floatPtr(100)}, 1.2, 1.3, "low_dpi"},
		{"dpi between thresholds", &FileMetadata{DPI: floatPtr(200)}, 1.0, 1.0, ""},
		{"oversize file", &FileMetadata{FileSize: intPtr(51 * 1024 * 1024)}, 1.1, 1.2, "oversize_file"},
		{"file at limit", &FileMetadata{FileSize: intPtr(50 * 1024 * 1024)}, 1.0, 1.0, ""},
		{"svg discount", &FileMetadata{Format: "svg"}, 0.9, 1.0, "vector_artwork"},
		{"pdf discount", &FileMetadata{Format: "pdf"}, 0.95, 1.0, "pdf_artwork"},
		{"webp surcharge", &FileMetadata{Format: "webp"}, 1.15, 1.3, "risky_format"},
		{"gif surcharge", &FileMetadata{Format: "gif"}, 1.15, 1.3, "risky_format"},
		{"low quality", &FileMetadata{QualityScore: floatPtr(39)}, 1.25, 1.4, "low_quality"},
		{"high quality not print ready", &FileMetadata{QualityScore: floatPtr(85)}, 1.0, 1.0, ""},
		{"print ready reward", &FileMetadata{QualityScore: floatPtr(85), PrintReady: boolPtr(true)}, 0.95, 1.0, "print_ready"},
		{"commercial print", &FileMetadata{SuggestedUse: "commercial_print"}, 0.9, 1.0, "commercial_grade"},
		{"web only", &FileMetadata{SuggestedUse: "web_only"}, 1.3, 1.5, "web_only_asset"},
		{"small print", &FileMetadata{SuggestedUse: "small_print"}, 1.1, 1.0, "small_print_asset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, setup, rule := qualityAdjustment(tt.meta)

			assert.InDelta(t, tt.price, price, 1e-9)
			assert.InDelta(t, tt.setup, setup, 1e-9)
			if tt.code == "" {
				assert.Nil(t, rule)
			} else {
				assert.NotNil(t, rule)
				assert.Equal(t, tt.code, rule.code)
			}
		})
	}
}

func TestQualityAdjustmentCompoundsWithoutClamping(t *testing.T) {
	meta := &FileMetadata{
		DPI:          floatPtr(72),
		SuggestedUse: "web_only",
	}

	price, setup, rule := qualityAdjustment(meta)

	assert.InDelta(t, 1.2*1.3, price, 1e-9)
	assert.InDelta(t, 1.3*1.5, setup, 1e-9)
	// Reason reports the first matching rule even when several fired.
	assert.Equal(t, "low_dpi", rule.code)
}

func TestQualityAdjustmentPathologicalStack(t *testing.T) {
	meta := &FileMetadata{
		DPI:          floatPtr(72),
		QualityScore: floatPtr(20),
		SuggestedUse: "web_only",
		Format:       "gif",
		FileSize:     intPtr(60 * 1024 * 1024),
	}

	price, setup, _ := qualityAdjustment(meta)

	assert.InDelta(t, 1.2*1.1*1.15*1.25*1.3, price, 1e-9)
	assert.InDelta(t, 1.3*1.2*1.3*1.4*1.5, setup, 1e-9)
}

func TestQualityAdjustmentNormalizesWireTokens(t *testing.T) {
	price, _, rule := qualityAdjustment(&FileMetadata{SuggestedUse: "commercial-print"})
	assert.InDelta(t, 0.9, price, 1e-9)
	assert.Equal(t, "commercial_grade", rule.code)

	price, _, rule = qualityAdjustment(&FileMetadata{Format: ".SVG"})
	assert.InDelta(t, 0.9, price, 1e-9)
	assert.Equal(t, "vector_artwork", rule.code)
}
