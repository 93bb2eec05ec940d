package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	_ "image/jpeg"

	"github.com/otiai10/gosseract/v2"
)

// fromImage runs Tesseract OCR on the image, converting to grayscale first
// since it measurably improves recognition on photographed worksheets.
func (e *Extractor) fromImage(data []byte) (string, error) {
	gray, err := toGrayscalePNG(data)
	if err != nil {
		return "", fmt.Errorf("prepare image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.ocrLanguages...); err != nil {
		return "", fmt.Errorf("set ocr languages: %w", err)
	}
	client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	if err := client.SetImageFromBytes(gray); err != nil {
		return "", fmt.Errorf("load image for ocr: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func toGrayscalePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
