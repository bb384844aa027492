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

import "math"

// Tolerances for corner detection (spec §4.6), named after the spec's own
// constants.
const (
	cornerSideLengthDev = 0.8            // shorter/longer leg ratio must be >= this
	cornerRightAngleDev = 0.0697564737   // approximately sin(4 degrees)
)

// corner is the spec §3 Corner: an oriented triple of finders with the
// pixel lengths of the two legs meeting at the right angle.
type corner struct {
	topLeft, topRight, bottomLeft finder
	topLineLen, leftLineLen       float64
}

func dist(a, b finder) float64 {
	dr := a.row - b.row
	dc := a.col - b.col
	return math.Sqrt(dr*dr + dc*dc)
}

// createCorner tests whether three finders form an approximately
// right-isoceles L (spec §4.6): the two legs at the right-angle vertex
// must agree in length to within cornerSideLengthDev, and the angle
// between them within cornerRightAngleDev of 90 degrees. Returns ok=false
// otherwise.
func createCorner(f1, f2, f3 finder) (corner, bool) {
	d12, d13, d23 := dist(f1, f2), dist(f1, f3), dist(f2, f3)

	// The right-angle vertex is the one NOT on the longest side (the
	// hypotenuse); its two edges are the legs.
	var apex, legA, legB finder
	var hyp float64
	switch {
	case d23 >= d12 && d23 >= d13:
		apex, legA, legB, hyp = f1, f2, f3, d23
	case d13 >= d12 && d13 >= d23:
		apex, legA, legB, hyp = f2, f1, f3, d13
	default:
		apex, legA, legB, hyp = f3, f1, f2, d12
	}

	leg1 := dist(apex, legA)
	leg2 := dist(apex, legB)
	if leg1 == 0 || leg2 == 0 || hyp == 0 {
		return corner{}, false
	}

	shorter, longer := leg1, leg2
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if shorter/longer < cornerSideLengthDev {
		return corner{}, false
	}

	// cos(theta) via the law of cosines; theta should be near 90 degrees,
	// i.e. cos(theta) near 0.
	cosTheta := (leg1*leg1 + leg2*leg2 - hyp*hyp) / (2 * leg1 * leg2)
	if math.Abs(cosTheta) > cornerRightAngleDev {
		return corner{}, false
	}

	// Orient legA/legB into TopRight/BottomLeft by the sign of the cross
	// product of (legA-apex) and (legB-apex) in (col,row) space.
	ax, ay := legA.col-apex.col, legA.row-apex.row
	bx, by := legB.col-apex.col, legB.row-apex.row
	cross := ax*by - ay*bx

	topRight, bottomLeft := legA, legB
	if cross < 0 {
		topRight, bottomLeft = legB, legA
	}

	return corner{
		topLeft:     apex,
		topRight:    topRight,
		bottomLeft:  bottomLeft,
		topLineLen:  dist(apex, topRight),
		leftLineLen: dist(apex, bottomLeft),
	}, true
}

// estimateVersion computes the initial version guess from the corner's two
// leg lengths and finder module sizes (spec §4.6), clamped to [1,40].
func estimateVersion(c corner) int {
	mTop := (c.topLeft.moduleSize + c.topRight.moduleSize) / 2
	mLeft := (c.topLeft.moduleSize + c.bottomLeft.moduleSize) / 2
	if mTop == 0 || mLeft == 0 {
		return 1
	}
	v := int(math.Round(((c.topLineLen/mTop+c.leftLineLen/mLeft)/2 - 10) / 4))
	if v < 1 {
		v = 1
	}
	if v > 40 {
		v = 40
	}
	return v
}

// transform maps module (col,row) to pixel (x,y): affine when projective
// is false (px = a*col+c*row+e), full 8-parameter projective otherwise
// (px = (a*col+c*row+e)/(g*col+h*row+1)).
type transform struct {
	a, b, c, d, e, f, g, h float64
	projective             bool
}

func (t *transform) project(col, row float64) (x, y float64) {
	if !t.projective {
		return t.a*col + t.c*row + t.e, t.b*col + t.d*row + t.f
	}
	w := t.g*col + t.h*row + 1
	return (t.a*col + t.c*row + t.e) / w, (t.b*col + t.d*row + t.f) / w
}

// solveAffine fits the 3-point affine transform of spec §4.6 from the
// corner's three finder centers at their known module coordinates for
// version v (finder centers sit at (3,3), (size-4,3), (3,size-4)).
func solveAffine(c corner, version int) (*transform, error) {
	size := version*4 + 17
	cols := [3]float64{3, float64(size - 4), 3}
	rows := [3]float64{3, 3, float64(size - 4)}
	px := [3]float64{c.topLeft.col, c.topRight.col, c.bottomLeft.col}
	py := [3]float64{c.topLeft.row, c.topRight.row, c.bottomLeft.row}

	coeffX, err := gaussianEliminate(buildAugmented3(cols, rows, px))
	if err != nil {
		return nil, err
	}
	coeffY, err := gaussianEliminate(buildAugmented3(cols, rows, py))
	if err != nil {
		return nil, err
	}
	return &transform{
		a: coeffX[0], c: coeffX[1], e: coeffX[2],
		b: coeffY[0], d: coeffY[1], f: coeffY[2],
	}, nil
}

func buildAugmented3(cols, rows, rhs [3]float64) [][]float64 {
	aug := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		aug[i] = []float64{cols[i], rows[i], 1, rhs[i]}
	}
	return aug
}

// solveProjective fits the 8-parameter projective transform of spec §4.6
// from four module/pixel correspondences (the three finders plus the
// located alignment pattern).
func solveProjective(modCols, modRows, pxs, pys [4]float64) (*transform, error) {
	// Each correspondence (u,v)->(x,y) contributes two rows:
	//   a*u + c*v + e - g*u*x - h*v*x = x
	//   b*u + d*v + f - g*u*y - h*v*y = y
	// unknowns order: a,b,c,d,e,f,g,h
	aug := make([][]float64, 8)
	row := 0
	for i := 0; i < 4; i++ {
		u, v, x, y := modCols[i], modRows[i], pxs[i], pys[i]
		aug[row] = []float64{u, 0, v, 0, 1, 0, -u * x, -v * x, x}
		row++
		aug[row] = []float64{0, u, 0, v, 0, 1, -u * y, -v * y, y}
		row++
	}
	sol, err := gaussianEliminate(aug)
	if err != nil {
		return nil, err
	}
	return &transform{
		a: sol[0], b: sol[1], c: sol[2], d: sol[3],
		e: sol[4], f: sol[5], g: sol[6], h: sol[7],
		projective: true,
	}, nil
}

// gaussianEliminate solves the augmented n x (n+1) linear system aug for
// its n unknowns by Gauss-Jordan elimination without row exchanges: a zero
// pivot is repaired by adding the first later row that is nonzero in that
// column (spec §4.6); returns LinearSolveFailure if no such row exists.
func gaussianEliminate(aug [][]float64) ([]float64, error) {
	n := len(aug)
	for col := 0; col < n; col++ {
		if aug[col][col] == 0 {
			swapped := false
			for r := col + 1; r < n; r++ {
				if aug[r][col] != 0 {
					for k := 0; k <= n; k++ {
						aug[col][k] += aug[r][k]
					}
					swapped = true
					break
				}
			}
			if !swapped {
				return nil, newError(KindLinearSolveFailure, "no pivot at column %d", col)
			}
		}
		pivot := aug[col][col]
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col] / pivot
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				aug[r][k] -= factor * aug[col][k]
			}
		}
	}

	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = aug[i][n] / aug[i][i]
	}
	return result, nil
}

// sampleModule reads the binary image's color at module (row,col) under
// transform t, rounding the projected pixel coordinates (spec §4.6's
// GetModule).
func sampleModule(img *binaryImage, t *transform, row, col float64) bool {
	x, y := t.project(col, row)
	return img.at(int(math.Round(x)), int(math.Round(y)))
}

// bitCountDifference returns the Hamming distance between a and b.
func bitCountDifference(a, b int) int {
	x := a ^ b
	n := 0
	for x != 0 {
		n += x & 1
		x >>= 1
	}
	return n
}

// recoverFormatBits reads the two format-info replicas through t and
// matches them against the 32 standard codewords (already BCH-encoded and
// 0x5412-masked by formatBCHTable's init, matching what stampFormatBits
// wrote), accepting an exact match or the nearest within Hamming distance 3
// (spec §4.6). Returns the raw 5-bit data (ecLevel bits <<3 | mask), which
// is exactly matchBCH's table index since formatBCHTable[data] holds data's
// codeword.
func recoverFormatBits(img *binaryImage, t *transform, size int) (int, error) {
	readBit := func(row, col int) int {
		if sampleModule(img, t, float64(row), float64(col)) {
			return 1
		}
		return 0
	}

	// Primary replica: around the top-left finder.
	bits := 0
	for i := 0; i <= 5; i++ {
		bits |= readBit(i, 8) << uint(i)
	}
	bits |= readBit(7, 8) << 6
	bits |= readBit(8, 8) << 7
	bits |= readBit(8, 7) << 8
	for i := 9; i < 15; i++ {
		bits |= readBit(8, 14-i) << uint(i)
	}

	if data, ok := matchBCH(formatBCHTable[:], bits, 3); ok {
		return data, nil
	}

	// Secondary replica: split top-right / bottom-left.
	bits = 0
	for i := 0; i < 8; i++ {
		bits |= readBit(8, size-1-i) << uint(i)
	}
	for i := 8; i < 15; i++ {
		bits |= readBit(size-15+i, 8) << uint(i)
	}

	if data, ok := matchBCH(formatBCHTable[:], bits, 3); ok {
		return data, nil
	}
	return 0, newError(KindFixedModuleMismatch, "format info unrecoverable")
}

// recoverVersionBits reads the two version-info blocks (v >= 7) and
// matches against the 34 standard codewords, accepting an exact match or
// nearest within Hamming distance 3.
func recoverVersionBits(img *binaryImage, t *transform, size int) (int, error) {
	readBlock := func(topRight bool) int {
		bits := 0
		for i := 0; i < 18; i++ {
			a := size - 11 + i%3
			b := i / 3
			var row, col int
			if topRight {
				row, col = b, a
			} else {
				row, col = a, b
			}
			if sampleModule(img, t, float64(row), float64(col)) {
				bits |= 1 << uint(i)
			}
		}
		return bits
	}

	// versionBCHTable[i] encodes version i+7, so matchBCH's index needs the
	// same +7 shift back to a version number.
	if i, ok := matchBCH(versionBCHTable[:], readBlock(true), 3); ok {
		return i + 7, nil
	}
	if i, ok := matchBCH(versionBCHTable[:], readBlock(false), 3); ok {
		return i + 7, nil
	}
	return 0, newError(KindFixedModuleMismatch, "version info unrecoverable")
}

// matchBCH finds the table entry within maxDist Hamming distance of bits,
// preferring an exact match, and returns its index into table (not the
// table value itself).
func matchBCH(table []int, bits int, maxDist int) (int, bool) {
	for i, v := range table {
		if v == bits {
			return i, true
		}
	}
	best := -1
	bestDist := maxDist + 1
	for i, v := range table {
		d := bitCountDifference(v, bits)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
