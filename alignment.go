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

// alignmentSearchModules is half the side length, in modules, of the window
// searched around the affine-projected expected alignment center (spec
// §4.6's alignment refinement step).
const alignmentSearchModules = 3

// locateAlignment refines the affine estimate of the bottom-right alignment
// pattern center by scanning a bounded pixel window for the n:1:1:1:n
// signature (an alignment pattern is a single dark module inside a white
// 3x3 ring inside a dark 5x5 ring, giving equal-length dark/white/dark/white/dark
// runs through its center), reusing finder.go's run-ratio-test shape
// specialized to alignment's signature instead of 1:1:3:1:1.
func locateAlignment(img *binaryImage, t *transform, version int) (row, col float64, ok bool) {
	size := version*4 + 17
	positions := computeAlignmentPositions(version)
	if len(positions) == 0 {
		return 0, 0, false
	}
	// The bottom-right alignment pattern (spec §4.3) sits at the last
	// entry in both dimensions, skipping the corners shared with finders.
	last := positions[len(positions)-1]
	modRow, modCol := float64(last), float64(last)
	if modRow >= float64(size) {
		return 0, 0, false
	}

	px, py := t.project(modCol, modRow)
	window := alignmentSearchModules * moduleSizeEstimate(t)
	minX, maxX := int(px-window), int(px+window)
	minY, maxY := int(py-window), int(py+window)

	var bestRow, bestCol, bestM float64
	found := false
	for y := minY; y <= maxY; y++ {
		rowAt := func(i int) bool { return img.at(i, y) }
		runs := scanRuns(rowAt, img.width)
		for i := 0; i+5 <= len(runs); i++ {
			wndw := runs[i : i+5]
			m, ok := matchesAlignmentSignature(wndw)
			if !ok {
				continue
			}
			center := float64(wndw[2].start+wndw[2].end) / 2
			if center < float64(minX) || center > float64(maxX) {
				continue
			}
			if !found || math.Abs(center-px)+math.Abs(float64(y)-py) < math.Abs(bestCol-px)+math.Abs(bestRow-py) {
				bestRow, bestCol, bestM = float64(y), center, m
				found = true
			}
		}
	}
	if !found {
		return 0, 0, false
	}
	_ = bestM
	return bestRow, bestCol, true
}

// matchesAlignmentSignature tests whether five consecutive runs form the
// n:1:1:1:n dark:white:dark:white:dark pattern of an alignment square's
// center scanline, where the center three runs each span one module and
// the outer two are allowed to be wider (they absorb neighboring data
// modules of unknown color).
func matchesAlignmentSignature(rs []run) (moduleSize float64, ok bool) {
	if len(rs) != 5 {
		return 0, false
	}
	if !rs[0].color || rs[1].color || !rs[2].color || rs[3].color || !rs[4].color {
		return 0, false
	}
	l1 := float64(rs[1].end - rs[1].start)
	l2 := float64(rs[2].end - rs[2].start)
	l3 := float64(rs[3].end - rs[3].start)
	m := (l1 + l2 + l3) / 3
	if m <= 0 {
		return 0, false
	}
	if math.Abs(l1-m) > finderTolerance*m ||
		math.Abs(l2-m) > finderTolerance*m ||
		math.Abs(l3-m) > finderTolerance*m {
		return 0, false
	}
	outer0 := float64(rs[0].end - rs[0].start)
	outer4 := float64(rs[4].end - rs[4].start)
	if outer0 < m || outer4 < m {
		return 0, false
	}
	return m, true
}

// moduleSizeEstimate derives an approximate pixel module size from the
// transform's linear scale, used to size the alignment search window.
func moduleSizeEstimate(t *transform) float64 {
	return math.Hypot(t.a, t.b)
}
