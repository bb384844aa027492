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

import "image"

// PixelSource exposes a 24bpp BGR bitmap without tying the decoder to an OS
// bitmap handle or a particular image library, per spec §9's design note
// replacing a "bitmap lock + raw pointer copy" pattern.
type PixelSource interface {
	Width() int
	Height() int
	Stride() int
	Bytes() []byte // row-major, 3 bytes/pixel, B,G,R order, length >= Stride()*Height()
}

// bgrPixelSource is the default PixelSource backed by a plain byte buffer.
type bgrPixelSource struct {
	width, height, stride int
	bytes                 []byte
}

// NewPixelSource wraps raw 24bpp BGR bytes as a PixelSource.
func NewPixelSource(width, height, stride int, bytes []byte) PixelSource {
	return &bgrPixelSource{width: width, height: height, stride: stride, bytes: bytes}
}

func (p *bgrPixelSource) Width() int     { return p.width }
func (p *bgrPixelSource) Height() int    { return p.height }
func (p *bgrPixelSource) Stride() int    { return p.stride }
func (p *bgrPixelSource) Bytes() []byte  { return p.bytes }

// PixelSourceFromImage adapts a standard library image.Image (as produced
// by image/png, image/jpeg, etc.) into a PixelSource, converting to 24bpp
// BGR. This is the decoder's only use of the image package (the PNG
// renderer in render_png.go is the other user), per spec §1's "PNG I/O...
// bitmap allocation" being an external collaborator.
func PixelSourceFromImage(img image.Image) PixelSource {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	stride := width * 3
	buf := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := y*stride + x*3
			buf[i] = byte(b >> 8)
			buf[i+1] = byte(g >> 8)
			buf[i+2] = byte(r >> 8)
		}
	}
	return &bgrPixelSource{width: width, height: height, stride: stride, bytes: buf}
}
