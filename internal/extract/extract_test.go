package extract

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/domain"
)

func TestExtractTextUTF8(t *testing.T) {
	e := New(10, nil)

	sub := &domain.Submission{
		Format:  domain.FormatTXT,
		Content: []byte("Solve x^2 - 9 = 0\n"),
	}
	text, err := e.Extract(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "Solve x^2 - 9 = 0", text)
}

func TestExtractTextLatin1Fallback(t *testing.T) {
	e := New(10, nil)

	// "perché" in Latin-1: 0xE9 is not valid UTF-8.
	sub := &domain.Submission{
		Format:  domain.FormatMD,
		Content: []byte{'p', 'e', 'r', 'c', 'h', 0xE9},
	}
	text, err := e.Extract(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "perché", text)
}

func TestExtractInvalidPDF(t *testing.T) {
	e := New(10, nil)

	sub := &domain.Submission{
		Format:  domain.FormatPDF,
		Content: []byte("not a pdf at all"),
	}
	_, err := e.Extract(context.Background(), sub)
	assert.Error(t, err)
}

func TestExtractCancelledContext(t *testing.T) {
	e := New(10, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sub := &domain.Submission{Format: domain.FormatTXT, Content: []byte("2 + 2")}
	_, err := e.Extract(ctx, sub)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToGrayscalePNG(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, png.Encode(&buf, src))

	out, err := toGrayscalePNG(buf.Bytes())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, ok := img.(*image.Gray)
	assert.True(t, ok)
}
