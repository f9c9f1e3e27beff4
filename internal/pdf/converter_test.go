package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.True(t, IsPDF([]byte("\n %PDF-1.4")))
	assert.False(t, IsPDF([]byte("PK\x03\x04")))
	assert.False(t, IsPDF(nil))
}

func TestExtractText_Garbage(t *testing.T) {
	_, err := ExtractText([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestConvertImageToJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	format, err := DetectImageFormat(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	out, err := ConvertImageToJPEG(buf.Bytes())
	require.NoError(t, err)
	format, err = DetectImageFormat(out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}
