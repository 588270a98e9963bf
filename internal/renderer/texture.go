package renderer

import (
	"fmt"
	"image"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeTexture decodes a texture pack image into an image.Image ready
// for AddTexture. Registering golang.org/x/image's bmp and tiff decoders
// alongside the standard library's png one follows the teacher's and
// BarretoDiego's texture managers, which both lean on image.Decode's
// format-sniffing registry rather than hard-coding a single codec, so a
// texture pack isn't limited to whatever ships with image/png.
func DecodeTexture(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return img, nil
}
