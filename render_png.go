/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcode

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// ToImage rasterizes the symbol to a 1bpp-equivalent image.Paletted, one
// pixel per module scaled by ModulePixelSize, bordered by QuietZone
// quiet-zone modules on every side (spec §4.8's renderer contract). This is
// the only place the core touches image/png, per spec §1's "PNG I/O" being
// an out-of-scope external collaborator behind a narrow interface.
func (s *Symbol) ToImage() *image.Paletted {
	scale := s.ModulePixelSize
	if scale < 1 {
		scale = 1
	}
	border := s.QuietZone * scale
	side := s.Size*scale + 2*border

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)
	for i := range img.Pix {
		img.Pix[i] = 0
	}

	for row := 0; row < s.Size; row++ {
		for col := 0; col < s.Size; col++ {
			if !s.matrix.isDark(row, col) {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				y := border + row*scale + dy
				for dx := 0; dx < scale; dx++ {
					x := border + col*scale + dx
					img.SetColorIndex(x, y, 1)
				}
			}
		}
	}
	return img
}

// WritePNG encodes the symbol's rasterized image as a PNG to w.
func (s *Symbol) WritePNG(w io.Writer) error {
	return png.Encode(w, s.ToImage())
}

// SaveQRCodeToPngFile writes the symbol's rasterized image as a PNG file
// at path (spec §6).
func (s *Symbol) SaveQRCodeToPngFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapError(KindInvalidInputFormat, err, "create %s", path)
	}
	defer f.Close()
	return s.WritePNG(f)
}
