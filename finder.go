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

// finderTolerance is the fractional deviation a run length may have from
// its expected multiple of the module size and still pass the 1:1:3:1:1
// signature test (spec §4.5).
const finderTolerance = 0.25

// finder is the spec §3 Finder: a candidate finder pattern center with its
// estimated module size and a pairing cost from the orthogonal scan pass.
// unmatched candidates carry distance = +Inf.
type finder struct {
	row, col   float64
	moduleSize float64
	distance   float64
}

type run struct {
	start, end int
	color      bool
}

func scanRuns(at func(i int) bool, length int) []run {
	var runs []run
	if length == 0 {
		return runs
	}
	start := 0
	color := at(0)
	for i := 1; i < length; i++ {
		if at(i) != color {
			runs = append(runs, run{start: start, end: i, color: color})
			start = i
			color = at(i)
		}
	}
	runs = append(runs, run{start: start, end: length, color: color})
	return runs
}

// matchesFinderSignature tests whether five consecutive runs form the
// 1:1:3:1:1 finder signature (the center run must be black, ratio 3; its
// neighbors ratio 1), returning the module size on success.
func matchesFinderSignature(rs []run) (moduleSize float64, ok bool) {
	if len(rs) != 5 {
		return 0, false
	}
	if !rs[0].color || rs[1].color || !rs[2].color || rs[3].color || !rs[4].color {
		return 0, false
	}
	lengths := [5]float64{
		float64(rs[0].end - rs[0].start),
		float64(rs[1].end - rs[1].start),
		float64(rs[2].end - rs[2].start),
		float64(rs[3].end - rs[3].start),
		float64(rs[4].end - rs[4].start),
	}
	total := lengths[0] + lengths[1] + lengths[2] + lengths[3] + lengths[4]
	m := total / 7
	if m <= 0 {
		return 0, false
	}
	expected := [5]float64{m, m, 3 * m, m, m}
	for i, l := range lengths {
		if math.Abs(l-expected[i]) > finderTolerance*m {
			return 0, false
		}
	}
	return m, true
}

// locateFinders runs the horizontal then vertical 1:1:3:1:1 scans of
// spec §4.5 and returns surviving candidates (distance < +Inf), requiring
// at least three. Grounded on the pack's scan-runs/test-ratio/score shape
// (pdf417 and aztec detector fragments in other_examples), specialized to
// QR's own 1:1:3:1:1 signature.
func locateFinders(img *binaryImage) ([]finder, error) {
	type horizCandidate struct {
		row        int
		colCenter  float64
		moduleSize float64
	}
	var horiz []horizCandidate

	for y := 0; y < img.height; y++ {
		rowAt := func(i int) bool { return img.at(i, y) }
		runs := scanRuns(rowAt, img.width)
		for i := 0; i+5 <= len(runs); i++ {
			window := runs[i : i+5]
			m, ok := matchesFinderSignature(window)
			if !ok {
				continue
			}
			center := float64(window[2].start+window[2].end) / 2
			horiz = append(horiz, horizCandidate{row: y, colCenter: center, moduleSize: m})
		}
	}

	candidates := make([]finder, len(horiz))
	for i, h := range horiz {
		candidates[i] = finder{row: float64(h.row), col: h.colCenter, moduleSize: h.moduleSize, distance: math.Inf(1)}
	}

	for x := 0; x < img.width; x++ {
		colAt := func(i int) bool { return img.at(x, i) }
		runs := scanRuns(colAt, img.height)
		for i := 0; i+5 <= len(runs); i++ {
			window := runs[i : i+5]
			m, ok := matchesFinderSignature(window)
			if !ok {
				continue
			}
			center := float64(window[2].start+window[2].end) / 2

			for ci := range candidates {
				d := matchDistance(candidates[ci], float64(x), center, m)
				if d < candidates[ci].distance {
					candidates[ci].distance = d
					candidates[ci].row = center
					candidates[ci].col = (candidates[ci].col + float64(x)) / 2
					candidates[ci].moduleSize = (candidates[ci].moduleSize + m) / 2
				}
			}
		}
	}

	var surviving []finder
	for _, c := range candidates {
		if !math.IsInf(c.distance, 1) {
			surviving = append(surviving, c)
		}
	}
	surviving = mergeOverlapping(surviving)

	if len(surviving) < 3 {
		return nil, newError(KindNoFinders, "found %d candidates", len(surviving))
	}
	return surviving, nil
}

// matchDistance scores pairing a horizontal candidate with a vertical
// candidate at pixel (vx, vy) and module size vm: squared deviation of
// module pitch and center offset, per spec §4.5's Match operation.
func matchDistance(h finder, vx, vy, vm float64) float64 {
	dSize := h.moduleSize - vm
	dCenter := h.col - vx
	dRow := h.row - vy
	return dSize*dSize + dCenter*dCenter + dRow*dRow
}

// mergeOverlapping collapses candidates whose centers are within one
// module size of each other, keeping the lowest-distance survivor.
func mergeOverlapping(cands []finder) []finder {
	var result []finder
	used := make([]bool, len(cands))
	for i := range cands {
		if used[i] {
			continue
		}
		best := cands[i]
		used[i] = true
		for j := i + 1; j < len(cands); j++ {
			if used[j] {
				continue
			}
			dr := best.row - cands[j].row
			dc := best.col - cands[j].col
			if dr*dr+dc*dc < best.moduleSize*best.moduleSize {
				used[j] = true
				if cands[j].distance < best.distance {
					best = cands[j]
				}
			}
		}
		result = append(result, best)
	}
	return result
}
