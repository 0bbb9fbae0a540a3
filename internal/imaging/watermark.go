package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	_ "image/gif"
	_ "golang.org/x/image/webp"
)

const (
	tileAngleDeg    = -45
	tileOpacity     = 0.55
	centerOpacity   = 0.70
	shadowOpacity   = 0.85
	shadowOffsetPx  = 2.0
	minBaseFontSize = 18.0
)

// Watermark composites the studio mark over the image: a diagonal tiled
// repetition of text, a large center band, and a bottom-right corner mark.
// The output keeps the source format where Go can encode it (jpeg, png);
// webp and gif sources are re-encoded as jpeg. Returns the encoded bytes and
// their content type.
func Watermark(src []byte, text string) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	dc := gg.NewContextForImage(img)
	w := float64(dc.Width())
	h := float64(dc.Height())

	baseSize := (w + h) / 2 / 20
	if baseSize < minBaseFontSize {
		baseSize = minBaseFontSize
	}

	tileFace, err := newFace(baseSize)
	if err != nil {
		return nil, "", err
	}
	centerFace, err := newFace(baseSize * 2.5)
	if err != nil {
		return nil, "", err
	}

	// Diagonal grid covering the whole frame, including the corners the
	// rotation would otherwise leave bare.
	dc.SetFontFace(tileFace)
	spacing := baseSize * 8
	for y := -h; y < h*2; y += spacing {
		for x := -w; x < w*2; x += spacing {
			drawMark(dc, text, x, y, tileAngleDeg, tileOpacity)
		}
	}

	dc.SetFontFace(centerFace)
	drawMark(dc, text, w/2, h/2, tileAngleDeg, centerOpacity)

	dc.SetFontFace(tileFace)
	drawMark(dc, text, w-baseSize*3, h-baseSize, 0, centerOpacity)

	return encode(dc.Image(), format)
}

// ContentType maps a decoded format name to its MIME type.
func ContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// SniffFormat reports the decoded format name of the image bytes, or an error
// when they are not a supported image.
func SniffFormat(src []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return format, nil
}

func drawMark(dc *gg.Context, text string, x, y, angleDeg, opacity float64) {
	dc.Push()
	if angleDeg != 0 {
		dc.RotateAbout(gg.Radians(angleDeg), x, y)
	}
	// dark offset behind the light text keeps the mark readable on any photo
	dc.SetRGBA(0, 0, 0, opacity*shadowOpacity)
	dc.DrawStringAnchored(text, x+shadowOffsetPx, y+shadowOffsetPx, 0.5, 0.5)
	dc.SetRGBA(1, 1, 1, opacity)
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
	dc.Pop()
}

func encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		// jpeg, plus webp/gif sources Go cannot encode back
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

func newFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse watermark font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("build watermark face: %w", err)
	}
	return face, nil
}
