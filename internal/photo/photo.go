// Package photo turns uploaded image files into session photos with a
// locally-resolvable preview reference.
package photo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"pixibai/internal/domain"
)

const (
	previewMaxDim  = 300
	previewQuality = 60
)

// FromUpload builds a Photo from raw upload bytes. The preview is a JPEG
// thumbnail embedded as a data URL so clients can render it without a file
// store. Returns domain.ErrUnsupportedImage when the bytes do not decode.
func FromUpload(filename string, data []byte) (domain.Photo, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Photo{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}

	preview, err := previewDataURL(img)
	if err != nil {
		return domain.Photo{}, err
	}

	return domain.Photo{
		ID:         uuid.NewString(),
		PreviewURL: preview,
		Filename:   filename,
		MIMEType:   "image/" + format,
		Data:       data,
		Caption:    "",
		Date:       time.Now().Format("02/01/2006"),
	}, nil
}

// WithImage returns a copy of p carrying new image data, preserving identity,
// caption and date. Used after an AI-assisted edit replaces the picture.
func WithImage(p domain.Photo, data []byte, mimeType string) (domain.Photo, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Photo{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}
	preview, err := previewDataURL(img)
	if err != nil {
		return domain.Photo{}, err
	}
	p.Data = data
	p.MIMEType = mimeType
	p.PreviewURL = preview
	return p, nil
}

func previewDataURL(img image.Image) (string, error) {
	thumb := imaging.Fit(img, previewMaxDim, previewMaxDim, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(previewQuality)); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
