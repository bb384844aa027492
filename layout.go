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

// buildBaseMatrix stamps every function pattern for version v: three finder
// patterns with separators, timing patterns, alignment patterns, and the
// format/version-info reserve, with Fixed cells preset to the colors the
// standard requires so the decoder can validate sampled modules against
// them. Grounded on the teacher's drawFunctionPatterns/drawFinderPattern/
// drawAlignmentPattern (qrcode.go), generalized onto moduleMatrix.
func buildBaseMatrix(version int) *moduleMatrix {
	size := version*4 + 17
	m := newModuleMatrix(size)

	for i := 0; i < size; i++ {
		m.setFunction(6, i, i%2 == 0)
		m.setFunction(i, 6, i%2 == 0)
	}

	drawFinderPattern(m, 3, 3)
	drawFinderPattern(m, size-4, 3)
	drawFinderPattern(m, 3, size-4)

	positions := alignmentPatternPositions[version]
	n := len(positions)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == 0 && j == 0 || i == 0 && j == n-1 || i == n-1 && j == 0 {
				continue
			}
			drawAlignmentPattern(m, positions[j], positions[i])
		}
	}

	reserveFormatInfo(m, size)
	if version >= 7 {
		reserveVersionInfo(m, size)
	}

	return m
}

func drawFinderPattern(m *moduleMatrix, col, row int) {
	for dr := -4; dr <= 4; dr++ {
		for dc := -4; dc <= 4; dc++ {
			dist := absInt(dr)
			if absInt(dc) > dist {
				dist = absInt(dc)
			}
			rr, cc := row+dr, col+dc
			if rr < 0 || rr >= m.size || cc < 0 || cc >= m.size {
				continue
			}
			m.setFunction(rr, cc, dist != 2 && dist != 4)
		}
	}
}

func drawAlignmentPattern(m *moduleMatrix, col, row int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			dist := absInt(dr)
			if absInt(dc) > dist {
				dist = absInt(dc)
			}
			m.setFunction(row+dr, col+dc, dist != 1)
		}
	}
}

// reserveFormatInfo marks the 31 cells (two 15-cell replicas plus the
// always-black module) that carry the 15-bit format-info codeword.
func reserveFormatInfo(m *moduleMatrix, size int) {
	for i := 0; i <= 5; i++ {
		m.setFormatInfo(i, 8, false)
	}
	m.setFormatInfo(7, 8, false)
	m.setFormatInfo(8, 8, false)
	m.setFormatInfo(8, 7, false)
	for i := 9; i < 15; i++ {
		m.setFormatInfo(8, 14-i, false)
	}
	for i := 0; i < 8; i++ {
		m.setFormatInfo(8, size-1-i, false)
	}
	for i := 8; i < 15; i++ {
		m.setFormatInfo(size-15+i, 8, false)
	}
	m.setFormatInfo(size-8, 8, true) // Always black, per spec §4.2.
}

// reserveVersionInfo marks the two 6×3/3×6 blocks carrying the 18-bit
// version-info codeword (v ≥ 7 only).
func reserveVersionInfo(m *moduleMatrix, size int) {
	for i := 0; i < 18; i++ {
		a := size - 11 + i%3
		b := i / 3
		m.setFormatInfo(b, a, false)
		m.setFormatInfo(a, b, false)
	}
}

// stampFormatBits writes the 15-bit BCH-encoded format codeword (already
// mask-XORed per formatBCHTable) into its two reserved replicas.
func stampFormatBits(m *moduleMatrix, size int, bits int) {
	for i := 0; i <= 5; i++ {
		m.setFormatInfo(i, 8, bitSet(bits, i))
	}
	m.setFormatInfo(7, 8, bitSet(bits, 6))
	m.setFormatInfo(8, 8, bitSet(bits, 7))
	m.setFormatInfo(8, 7, bitSet(bits, 8))
	for i := 9; i < 15; i++ {
		m.setFormatInfo(8, 14-i, bitSet(bits, i))
	}
	for i := 0; i < 8; i++ {
		m.setFormatInfo(8, size-1-i, bitSet(bits, i))
	}
	for i := 8; i < 15; i++ {
		m.setFormatInfo(size-15+i, 8, bitSet(bits, i))
	}
	m.setFormatInfo(size-8, 8, true)
}

// stampVersionBits writes the 18-bit BCH-encoded version codeword into its
// two reserved 6×3/3×6 blocks (v ≥ 7 only).
func stampVersionBits(m *moduleMatrix, size int, bits int) {
	for i := 0; i < 18; i++ {
		bit := bitSet(bits, i)
		a := size - 11 + i%3
		b := i / 3
		m.setFormatInfo(b, a, bit)
		m.setFormatInfo(a, b, bit)
	}
}

func bitSet(x, i int) bool { return x>>uint(i)&1 == 1 }

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// dataPathWalk visits every (row,col) of a size×size matrix in the
// standard zig-zag codeword-placement order (spec §4.2): starting at
// (size-1,size-1), moving in 2-column-wide vertical strips with direction
// alternating at the top/bottom of each strip, decrementing past column 6
// (vertical timing). visit returning false stops the walk early.
func dataPathWalk(size int, visit func(row, col int) bool) {
	for right := size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < size; vert++ {
			for j := 0; j < 2; j++ {
				col := right - j
				upward := (right+1)&2 == 0
				var row int
				if upward {
					row = size - 1 - vert
				} else {
					row = vert
				}
				if !visit(row, col) {
					return
				}
			}
		}
	}
}
