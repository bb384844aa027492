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

// DecodedSymbol is the read-only result of one successful candidate decode
// (spec §6's post-decode properties): the recovered bytes plus the symbol
// metadata that produced them.
type DecodedSymbol struct {
	Data              []byte
	QRCodeVersion     int
	QRCodeDimension   int
	ErrorCorrection   ECLevel
	MaskCode          int
	ECIAssignValue    int
	HasECIAssignValue bool
}

// isSkippable reports whether err reflects a bad candidate (wrong corner,
// wrong version guess, uncorrectable data) that the search should move
// past, as opposed to a fatal condition (bad input, no finders at all)
// that should abort the whole decode (spec §9's Skip/Fatal/Ok design note).
func isSkippable(err error) bool {
	switch {
	case isKind(err, KindNoCorner),
		isKind(err, KindLinearSolveFailure),
		isKind(err, KindFixedModuleMismatch),
		isKind(err, KindUncorrectableBlock),
		isKind(err, KindUnsupportedMode),
		isKind(err, KindPrematureEndOfData):
		return true
	default:
		return false
	}
}

// Decoder locates, geometrically rectifies, and decodes QR symbols from a
// bitmap (spec §5). It carries no mutable state across calls; every Decode
// call runs its own finder/corner/alignment search from scratch, per spec
// §9's design note against decoder-object state shared across images.
type Decoder struct {
	diagnostics Diagnostics
	charset     Charset
}

// NewDecoder creates a Decoder. diag may be nil, in which case diagnostics
// are discarded.
func NewDecoder(diag Diagnostics, charset Charset) *Decoder {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Decoder{diagnostics: diag, charset: charset}
}

// Decode runs the full pipeline: Binarizer, FinderLocator, then for every
// lexicographic finder triple that forms a valid corner and every plausible
// version near its estimate, affine-then-projective geometry and
// MatrixExtractor. Every candidate that decodes successfully is returned;
// per spec §9's Open Question decision, duplicate decodes of the same
// symbol found via different finder triples are not collapsed here (see
// Dedupe).
func (d *Decoder) Decode(src PixelSource) ([]*DecodedSymbol, error) {
	img, err := binarize(src)
	if err != nil {
		return nil, emitErr(d.diagnostics, LevelWarn, kindOf(err), err.Error())
	}

	finders, err := locateFinders(img)
	if err != nil {
		return nil, emitErr(d.diagnostics, LevelWarn, kindOf(err), err.Error())
	}

	var results []*DecodedSymbol
	n := len(finders)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				c, ok := createCorner(finders[i], finders[j], finders[k])
				if !ok {
					continue
				}
				result, err := d.tryCorner(img, c)
				if err == nil {
					results = append(results, result)
					continue
				}
				if !isSkippable(err) {
					return nil, emitErr(d.diagnostics, LevelWarn, kindOf(err), err.Error())
				}
				emitErr(d.diagnostics, LevelDebug, kindOf(err), err.Error())
			}
		}
	}

	if len(results) == 0 {
		return nil, emitErr(d.diagnostics, LevelWarn, KindNoCorner, "no finder triple decoded")
	}
	return results, nil
}

// tryCorner attempts extraction at the corner's estimated version and its
// two neighbors (the estimate can be off by one module-count rounding
// step), refining the affine transform to projective via the located
// alignment pattern whenever one exists for that version.
func (d *Decoder) tryCorner(img *binaryImage, c corner) (*DecodedSymbol, error) {
	estimate := estimateVersion(c)
	var lastErr error = newError(KindNoCorner, "no version candidate near %d succeeded", estimate)

	for _, version := range candidateVersions(estimate) {
		t, err := solveAffine(c, version)
		if err != nil {
			lastErr = err
			continue
		}

		if version >= 2 {
			if t2, ok := d.refineToProjective(img, t, c, version); ok {
				t = t2
			}
		}

		sym, err := extractSymbol(img, t, version, d.charset)
		if err != nil {
			lastErr = err
			continue
		}

		size := version*4 + 17
		return &DecodedSymbol{
			Data:              sym.data,
			QRCodeVersion:     sym.version,
			QRCodeDimension:   size,
			ErrorCorrection:   sym.ecLevel,
			MaskCode:          sym.mask,
			ECIAssignValue:    sym.eciValue,
			HasECIAssignValue: sym.hasECI,
		}, nil
	}
	return nil, lastErr
}

// refineToProjective locates the bottom-right alignment pattern under the
// affine estimate and, if found, fits an 8-parameter projective transform
// through the three finder centers plus the alignment center.
func (d *Decoder) refineToProjective(img *binaryImage, affine *transform, c corner, version int) (*transform, bool) {
	row, col, ok := locateAlignment(img, affine, version)
	if !ok {
		return nil, false
	}
	positions := computeAlignmentPositions(version)
	last := float64(positions[len(positions)-1])

	modCols := [4]float64{3, float64(version*4 + 17 - 4), 3, last}
	modRows := [4]float64{3, 3, float64(version*4 + 17 - 4), last}
	pxs := [4]float64{c.topLeft.col, c.topRight.col, c.bottomLeft.col, col}
	pys := [4]float64{c.topLeft.row, c.topRight.row, c.bottomLeft.row, row}

	t, err := solveProjective(modCols, modRows, pxs, pys)
	if err != nil {
		return nil, false
	}
	return t, true
}

// candidateVersions returns the estimate and its immediate neighbors,
// clamped to [1,40] and deduplicated, in estimate-first order.
func candidateVersions(estimate int) []int {
	var out []int
	seen := make(map[int]bool)
	for _, v := range []int{estimate, estimate - 1, estimate + 1} {
		if v < 1 || v > 40 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Dedupe collapses byte-identical DecodedSymbol entries, keeping the first
// occurrence of each distinct payload. Not applied automatically by
// ImageDecoder (spec §9's Open Question decision: downstream consumers
// should dedupe when they care to).
func Dedupe(results []*DecodedSymbol) []*DecodedSymbol {
	var out []*DecodedSymbol
	for _, r := range results {
		dup := false
		for _, kept := range out {
			if string(kept.Data) == string(r.Data) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}

// ImageDecoder is the spec §6 convenience entry point: decode a bitmap into
// every successfully-read candidate symbol, transcoding Byte-mode payloads
// per charset.
func ImageDecoder(src PixelSource, charset Charset) ([]*DecodedSymbol, error) {
	dec := NewDecoder(NopDiagnostics{}, charset)
	return dec.Decode(src)
}
