// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrEmptyTexture is returned when an ImportedTexture carries no image bytes.
var ErrEmptyTexture = errors.New("texture has no data")

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is primarily used in the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the GPU texture format. Zero selects RGBA8UnormSrgb.
	// Color data belongs in an sRGB format, data textures such as normal maps in a linear one.
	Format wgpu.TextureFormat
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Modes and filters are passed through as is; zero LodMaxClamp and MaxAnisotropy fall back to 32 and 1.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// ImportedTexture represents encoded image bytes (PNG, JPEG, BMP or WebP) awaiting decode.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "diffuse", "normal").
	Name string

	// Data contains the raw encoded image bytes.
	Data []byte

	// MaxSize caps the larger dimension of the decoded image. Images above it are
	// downscaled preserving aspect ratio. Zero disables the cap.
	MaxSize int

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Decode decodes the texture to raw RGBA pixel data.
// Any registered image format is accepted; the result is always tightly packed RGBA8.
// Reference: https://pkg.go.dev/golang.org/x/image/draw
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: texture width in pixels
//   - uint32: texture height in pixels
//   - error: error if decoding fails
func (t *ImportedTexture) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("texture is nil")
	}
	if len(t.Data) == 0 {
		return nil, 0, 0, fmt.Errorf("texture %q: %w", t.Name, ErrEmptyTexture)
	}

	img, _, err := image.Decode(bytes.NewReader(t.Data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode texture %q: %w", t.Name, err)
	}

	src := img.Bounds()
	width, height := fitWithin(src.Dx(), src.Dy(), t.MaxSize)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	if width == src.Dx() && height == src.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, src.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	}

	t.Width = width
	t.Height = height

	return dst.Pix, uint32(width), uint32(height), nil
}

// fitWithin scales (w, h) down so the larger side is at most maxSize, keeping aspect ratio.
// Each side stays at least 1 pixel.
func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}
