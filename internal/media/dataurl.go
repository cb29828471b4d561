// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media converts uploaded covers and gallery files into data: URLs
// so they travel inside the project record instead of a separate file
// store.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

const (
	// maxImageEdge is the longest edge kept after downscaling. Anything
	// larger bloats the stored project record.
	maxImageEdge = 1920

	jpegQuality = 85
)

// Converter turns uploaded files into data: URLs.
type Converter struct {
	maxBytes int64
}

// NewConverter creates a converter that rejects inputs larger than
// maxBytes.
func NewConverter(maxBytes int64) *Converter {
	return &Converter{maxBytes: maxBytes}
}

// ImageToDataURL reads an uploaded image, applies its EXIF orientation,
// downscales it to fit maxImageEdge and returns it as a data: URL.
func (c *Converter) ImageToDataURL(r io.Reader) (string, error) {
	data, err := c.readCapped(r)
	if err != nil {
		return "", err
	}

	format := detectFormat(data)
	if format == "" {
		return "", fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	encoded, mime, err := encodeImage(img, format)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return toDataURL(mime, encoded), nil
}

// VideoToDataURL embeds an uploaded video verbatim. Videos are not
// transcoded; only the size cap applies.
func (c *Converter) VideoToDataURL(r io.Reader, contentType string) (string, error) {
	data, err := c.readCapped(r)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "video/") {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "video/") {
		return "", fmt.Errorf("not a video upload")
	}
	return toDataURL(contentType, data), nil
}

func (c *Converter) readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("upload exceeds %d byte limit", c.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	return data, nil
}

func toDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// readExifOrientation reads the EXIF orientation tag.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation applies an EXIF orientation transform.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image and returns the bytes plus MIME type.
// WebP input is re-encoded as JPEG; there is no pure Go WebP encoder.
func encodeImage(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/gif", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}
