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

// binaryImage is a boolean black/white grid produced by the Binarizer
// (spec §4.4): true means black.
type binaryImage struct {
	width, height int
	bits          []bool
}

func (b *binaryImage) at(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.bits[y*b.width+x]
}

// binarize converts a 24bpp BGR PixelSource into a binaryImage by
// thresholding at the midpoint of the populated luminance histogram range
// (spec §4.4). Grounded on the pack's threshold-on-computed-intensity shape
// (e.g. other_examples' webp/uncompng decoders); the Y formula and
// gMin/gMax bounds are this spec's own.
func binarize(src PixelSource) (*binaryImage, error) {
	stride := src.Stride()
	width, height := src.Width(), src.Height()
	if stride < 0 {
		return nil, newError(KindInvalidInputFormat, "negative stride %d", stride)
	}
	bytes := src.Bytes()

	var histogram [256]int
	luminance := make([]byte, width*height)
	for y := 0; y < height; y++ {
		row := y * stride
		for x := 0; x < width; x++ {
			i := row + x*3
			if i+2 >= len(bytes) {
				return nil, newError(KindInvalidInputFormat, "pixel buffer too short")
			}
			b, g, r := int(bytes[i]), int(bytes[i+1]), int(bytes[i+2])
			y8 := byte((30*b + 59*g + 11*r) / 100)
			luminance[y*width+x] = y8
			histogram[y8]++
		}
	}

	gMin, gMax := -1, -1
	for v := 0; v < 256; v++ {
		if histogram[v] > 0 {
			if gMin == -1 {
				gMin = v
			}
			gMax = v + 1
		}
	}
	if gMin == -1 || gMax-gMin < 2 {
		return nil, newError(KindUniformImage, "luminance range [%d,%d]", gMin, gMax)
	}

	threshold := byte((gMin + gMax) / 2)
	bits := make([]bool, width*height)
	for i, y8 := range luminance {
		bits[i] = y8 < threshold
	}

	return &binaryImage{width: width, height: height, bits: bits}, nil
}
