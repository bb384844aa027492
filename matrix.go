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

// cellFlags packs a module's data bit alongside the meta flags the layout
// engine and mask application need, generalizing the teacher's separate
// Modules/IsFunction grids (qrcode.go) into the single flagged grid spec §3
// describes.
type cellFlags byte

const (
	cellDark cellFlags = 1 << iota
	cellFixed
	cellNonData
	cellFormatInfo
)

// matrixGuard is the guard-border width added on every side so that
// alignment-pattern stamping near the matrix edge (writes
// [pos-2..pos+2, pos-2..pos+2] per spec §9) never needs bounds checks.
const matrixGuard = 2

// moduleMatrix is the D×D (plus guard border) module grid shared by the
// encoder's stamping path and the decoder's MatrixExtractor validation
// path (spec §3's ModuleMatrix).
type moduleMatrix struct {
	size  int // D, the symbol dimension, guard border excluded
	cells []cellFlags
}

func newModuleMatrix(size int) *moduleMatrix {
	stride := size + 2*matrixGuard
	return &moduleMatrix{size: size, cells: make([]cellFlags, stride*stride)}
}

func (m *moduleMatrix) stride() int { return m.size + 2*matrixGuard }

func (m *moduleMatrix) index(row, col int) int {
	return (row+matrixGuard)*m.stride() + (col + matrixGuard)
}

func (m *moduleMatrix) inBounds(row, col int) bool {
	return -matrixGuard <= row && row < m.size+matrixGuard && -matrixGuard <= col && col < m.size+matrixGuard
}

func (m *moduleMatrix) isDark(row, col int) bool {
	return m.cells[m.index(row, col)]&cellDark != 0
}

func (m *moduleMatrix) isFixed(row, col int) bool {
	return m.cells[m.index(row, col)]&cellFixed != 0
}

func (m *moduleMatrix) isNonData(row, col int) bool {
	return m.cells[m.index(row, col)]&cellNonData != 0
}

// setFunction stamps a Fixed+NonData module with the given color, as the
// teacher's setFunctionModule does for its separate Modules/IsFunction grids.
func (m *moduleMatrix) setFunction(row, col int, dark bool) {
	if !m.inBounds(row, col) {
		return
	}
	i := m.index(row, col)
	m.cells[i] = (m.cells[i] &^ cellDark) | cellFixed | cellNonData
	if dark {
		m.cells[i] |= cellDark
	}
}

// setFormatInfo stamps a reserved format/version-info cell: Fixed+NonData,
// tagged FormatInfo so MatrixExtractor can read it back without reference
// to its particular (row,col).
func (m *moduleMatrix) setFormatInfo(row, col int, dark bool) {
	if !m.inBounds(row, col) {
		return
	}
	m.setFunction(row, col, dark)
	m.cells[m.index(row, col)] |= cellFormatInfo
}

// setData writes a data-path module's color without touching its flags.
func (m *moduleMatrix) setData(row, col int, dark bool) {
	i := m.index(row, col)
	m.cells[i] &^= cellDark
	if dark {
		m.cells[i] |= cellDark
	}
}

// toggleDark flips a module's color, used by mask application (XOR is its
// own inverse, so applying the same mask twice is an involution).
func (m *moduleMatrix) toggleDark(row, col int) {
	m.cells[m.index(row, col)] ^= cellDark
}
