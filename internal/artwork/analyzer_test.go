// internal/artwork/analyzer_test.go
package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAnalyzeVectorFormats(t *testing.T) {
	for _, name := range []string{"logo.svg", "flyer.PDF"} {
		analysis, err := Analyze([]byte("not inspected"), name, nil)
		require.NoError(t, err)

		require.NotNil(t, analysis.QualityScore)
		assert.Equal(t, 90.0, *analysis.QualityScore)
		assert.True(t, analysis.PrintReady)
		assert.Equal(t, "commercial_print", analysis.SuggestedUse)
		assert.Nil(t, analysis.DPI)
	}
}

func TestAnalyzeHighResolutionPNG(t *testing.T) {
	data := encodePNG(t, solidImage(600, 600, color.RGBA{R: 200, A: 255}))

	analysis, err := Analyze(data, "design.png", &Target{WidthIn: 2, HeightIn: 2})
	require.NoError(t, err)

	assert.Equal(t, "png", analysis.Format)
	assert.Equal(t, 600, analysis.Width)
	assert.Equal(t, 600, analysis.Height)
	require.NotNil(t, analysis.DPI)
	assert.Equal(t, 300.0, *analysis.DPI)
	require.NotNil(t, analysis.QualityScore)
	assert.Equal(t, 90.0, *analysis.QualityScore)
	assert.True(t, analysis.PrintReady)
	assert.Equal(t, "commercial_print", analysis.SuggestedUse)
}

func TestAnalyzeLowResolutionPNG(t *testing.T) {
	data := encodePNG(t, solidImage(100, 100, color.RGBA{G: 150, A: 255}))

	analysis, err := Analyze(data, "design.png", &Target{WidthIn: 4, HeightIn: 4})
	require.NoError(t, err)

	require.NotNil(t, analysis.DPI)
	assert.Equal(t, 25.0, *analysis.DPI)
	require.NotNil(t, analysis.QualityScore)
	assert.Equal(t, 35.0, *analysis.QualityScore)
	assert.False(t, analysis.PrintReady)
	assert.Equal(t, "web_only", analysis.SuggestedUse)
}

func TestAnalyzeWithoutTarget(t *testing.T) {
	data := encodePNG(t, solidImage(1200, 800, color.RGBA{B: 90, A: 255}))

	analysis, err := Analyze(data, "design.png", nil)
	require.NoError(t, err)

	assert.Nil(t, analysis.DPI)
	require.NotNil(t, analysis.QualityScore)
	assert.Equal(t, 65.0, *analysis.QualityScore)
	assert.False(t, analysis.PrintReady)
	assert.Equal(t, "small_print", analysis.SuggestedUse)
}

func TestAnalyzeRejectsUndecodableRaster(t *testing.T) {
	_, err := Analyze([]byte("definitely not an image"), "design.png", nil)
	assert.Error(t, err)
}

func TestAnalyzeUsesBindingDimensionForDPI(t *testing.T) {
	data := encodePNG(t, solidImage(900, 300, color.RGBA{R: 10, G: 10, B: 10, A: 255}))

	analysis, err := Analyze(data, "wide.png", &Target{WidthIn: 3, HeightIn: 3})
	require.NoError(t, err)

	// 900/3 = 300 horizontally but only 300/3 = 100 vertically.
	require.NotNil(t, analysis.DPI)
	assert.Equal(t, 100.0, *analysis.DPI)
}

func TestEstimateColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if x < 32 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}

	count, err := EstimateColors(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEstimateColorsUndecodable(t *testing.T) {
	_, err := EstimateColors([]byte{0x00, 0x01})
	assert.Error(t, err)
}

func TestCountColorsIgnoresTransparentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x == 0 && y == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
			}
			// Everything else stays fully transparent.
		}
	}

	assert.Equal(t, 1, countColors(img))
}
