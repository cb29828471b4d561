// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, dataURL, wantMime string) []byte {
	t.Helper()
	prefix := "data:" + wantMime + ";base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("data URL prefix = %q; want %q", dataURL[:min(len(dataURL), 40)], prefix)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	return raw
}

func TestImageToDataURL(t *testing.T) {
	c := NewConverter(10 << 20)

	dataURL, err := c.ImageToDataURL(bytes.NewReader(pngBytes(t, 20, 10)))
	if err != nil {
		t.Fatalf("ImageToDataURL() error = %v", err)
	}

	raw := decodeDataURL(t, dataURL, "image/png")
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload does not decode as an image: %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 10 {
		t.Errorf("decoded size = %dx%d; want 20x10", cfg.Width, cfg.Height)
	}
}

func TestImageToDataURLDownscales(t *testing.T) {
	c := NewConverter(64 << 20)

	img := image.NewRGBA(image.Rect(0, 0, 2400, 1200))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	dataURL, err := c.ImageToDataURL(&buf)
	if err != nil {
		t.Fatalf("ImageToDataURL() error = %v", err)
	}

	raw := decodeDataURL(t, dataURL, "image/jpeg")
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if cfg.Width > maxImageEdge || cfg.Height > maxImageEdge {
		t.Errorf("decoded size = %dx%d; want both edges <= %d", cfg.Width, cfg.Height, maxImageEdge)
	}
}

func TestImageToDataURLRejectsGarbage(t *testing.T) {
	c := NewConverter(1 << 20)

	if _, err := c.ImageToDataURL(strings.NewReader("definitely not an image")); err == nil {
		t.Error("ImageToDataURL(garbage) error = nil")
	}
	if _, err := c.ImageToDataURL(strings.NewReader("")); err == nil {
		t.Error("ImageToDataURL(empty) error = nil")
	}
}

func TestImageToDataURLSizeCap(t *testing.T) {
	c := NewConverter(16)

	if _, err := c.ImageToDataURL(bytes.NewReader(pngBytes(t, 50, 50))); err == nil {
		t.Error("ImageToDataURL(oversized) error = nil")
	}
}

func TestVideoToDataURL(t *testing.T) {
	c := NewConverter(1 << 20)
	payload := []byte("fake video bytes")

	dataURL, err := c.VideoToDataURL(bytes.NewReader(payload), "video/mp4")
	if err != nil {
		t.Fatalf("VideoToDataURL() error = %v", err)
	}

	raw := decodeDataURL(t, dataURL, "video/mp4")
	if !bytes.Equal(raw, payload) {
		t.Error("video payload was altered")
	}
}

func TestVideoToDataURLRejectsNonVideo(t *testing.T) {
	c := NewConverter(1 << 20)

	if _, err := c.VideoToDataURL(bytes.NewReader(pngBytes(t, 4, 4)), "image/png"); err == nil {
		t.Error("VideoToDataURL(image) error = nil")
	}
}
