package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	MIMETypeGIF  = "image/gif"
	MIMETypeWebP = "image/webp"
)

var ErrUnsupportedType = errors.New("unsupported image type")

//nolint:gochecknoglobals
var (
	typeExt = map[string]string{
		MIMETypeJPEG: ".jpg",
		MIMETypePNG:  ".png",
		MIMETypeGIF:  ".gif",
		MIMETypeWebP: ".webp",
	}

	// Re-encoders used after a resize. GIF output is limited to a single frame.
	encoders = map[string]func(io.Writer, image.Image) error{
		MIMETypeJPEG: func(w io.Writer, i image.Image) error { return jpeg.Encode(w, i, &jpeg.Options{Quality: 90}) },
		MIMETypePNG:  png.Encode,
		MIMETypeGIF:  func(w io.Writer, i image.Image) error { return gif.Encode(w, i, nil) },
		MIMETypeWebP: func(w io.Writer, i image.Image) error { return webp.Encode(w, i, &webp.Options{Quality: 85}) },
	}
)

type Options struct {
	// MaxWidth downsizes wider images, keeping the aspect ratio. Zero disables it.
	MaxWidth int
	// WebP re-encodes every upload as WebP.
	WebP bool
}

// Result is a processed upload ready for storage.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
}

// Process validates that data is a supported image and applies opts. When no
// transformation is needed the original bytes are kept, with the original file
// extension if it is one the detected type accepts.
func Process(data []byte, filename string, opts Options) (*Result, error) {
	ctype := http.DetectContentType(data)
	if _, ok := typeExt[ctype]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ctype)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	resize := opts.MaxWidth > 0 && cfg.Width > opts.MaxWidth
	targetType := ctype
	if opts.WebP {
		targetType = MIMETypeWebP
	}

	if !resize && targetType == ctype {
		return &Result{Data: data, ContentType: ctype, Ext: extFor(ctype, filename)}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if resize {
		img = scaleToWidth(img, opts.MaxWidth)
	}

	var buf bytes.Buffer
	if err := encoders[targetType](&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return &Result{Data: buf.Bytes(), ContentType: targetType, Ext: typeExt[targetType]}, nil
}

func scaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func extFor(ctype, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".jpeg" && ctype == MIMETypeJPEG:
		return ext
	case ext == typeExt[ctype]:
		return ext
	}
	return typeExt[ctype]
}
