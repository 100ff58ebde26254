package common

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestImportedTextureDecode(t *testing.T) {
	tex := &ImportedTexture{Name: "test", Data: encodePNG(t, 4, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})}

	pix, w, h, err := tex.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w != 4 || h != 2 {
		t.Fatalf("size = %dx%d, want 4x2", w, h)
	}
	if len(pix) != 4*2*4 {
		t.Fatalf("len(pix) = %d, want %d", len(pix), 4*2*4)
	}
	if pix[0] != 10 || pix[1] != 20 || pix[2] != 30 || pix[3] != 255 {
		t.Fatalf("first pixel = %v, want [10 20 30 255]", pix[0:4])
	}
	if tex.Width != 4 || tex.Height != 2 {
		t.Fatalf("recorded size = %dx%d, want 4x2", tex.Width, tex.Height)
	}
}

func TestImportedTextureDecodeDownscale(t *testing.T) {
	tex := &ImportedTexture{Name: "big", Data: encodePNG(t, 64, 32, color.White), MaxSize: 16}

	pix, w, h, err := tex.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w != 16 || h != 8 {
		t.Fatalf("size = %dx%d, want 16x8", w, h)
	}
	if len(pix) != int(w*h*4) {
		t.Fatalf("len(pix) = %d, want %d", len(pix), w*h*4)
	}
}

func TestImportedTextureDecodeErrors(t *testing.T) {
	if _, _, _, err := (&ImportedTexture{Name: "empty"}).Decode(); !errors.Is(err, ErrEmptyTexture) {
		t.Errorf("empty texture error = %v, want ErrEmptyTexture", err)
	}
	if _, _, _, err := (&ImportedTexture{Name: "junk", Data: []byte("not an image")}).Decode(); err == nil {
		t.Error("junk data decoded without error")
	}
	var nilTex *ImportedTexture
	if _, _, _, err := nilTex.Decode(); err == nil {
		t.Error("nil texture decoded without error")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{10, 10, 0, 10, 10},
		{10, 10, 20, 10, 10},
		{40, 20, 10, 10, 5},
		{20, 40, 10, 5, 10},
		{1000, 1, 10, 10, 1},
	}
	for _, tc := range tests {
		w, h := fitWithin(tc.w, tc.h, tc.max)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("fitWithin(%d, %d, %d) = %d, %d, want %d, %d", tc.w, tc.h, tc.max, w, h, tc.wantW, tc.wantH)
		}
	}
}
