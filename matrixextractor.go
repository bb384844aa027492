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

// extractedSymbol is the decoder-side counterpart of Symbol: everything
// MatrixExtractor recovers from a sampled module grid before segment
// decoding (spec §4.6/§4.7).
type extractedSymbol struct {
	version   int
	ecLevel   ECLevel
	mask      int
	data      []byte
	eciValue  int
	hasECI    bool
}

// sampleMatrix rebuilds the base function-pattern matrix for version and
// samples every module through t, overwriting each cell's color with setData
// while keeping the Fixed/NonData/FormatInfo flags buildBaseMatrix stamped,
// so function cells carry their sampled colors for fixed-module validation
// (spec §4.6's Sample operation).
func sampleMatrix(img *binaryImage, t *transform, version int) *moduleMatrix {
	m := buildBaseMatrix(version)
	size := m.size
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			m.setData(row, col, sampleModule(img, t, float64(row), float64(col)))
		}
	}
	return m
}

// validateFixedModules compares every Fixed, non-FormatInfo cell (finder,
// separator, timing, alignment patterns) against its expected standard
// color, and fails with KindFixedModuleMismatch if the mismatch fraction
// exceeds the EC level's nominal recovery percentage (spec §4.6's
// tolerance, resolving the §9 Open Question in favor of reusing
// errCorrPercent rather than inventing a separate constant).
func validateFixedModules(sampled, reference *moduleMatrix, ecLevel ECLevel) error {
	size := sampled.size
	mismatches, total := 0, 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !reference.isFixed(row, col) || reference.cells[reference.index(row, col)]&cellFormatInfo != 0 {
				continue
			}
			total++
			if sampled.isDark(row, col) != reference.isDark(row, col) {
				mismatches++
			}
		}
	}
	if total == 0 {
		return nil
	}
	if mismatches*100 > total*errCorrPercent[ecLevel] {
		return newError(KindFixedModuleMismatch, "%d/%d fixed modules mismatched", mismatches, total)
	}
	return nil
}

// unloadCodewords walks sampled's data path in the same zig-zag order
// drawCodewords used to write it, packing the recovered bits MSB-first
// into on-wire codeword bytes.
func unloadCodewords(sampled *moduleMatrix, version int) []byte {
	size := sampled.size
	total := numRawDataModules[version] / 8
	out := make([]byte, total)
	i := 0
	dataPathWalk(size, func(row, col int) bool {
		if !sampled.isNonData(row, col) && i < total*8 {
			if sampled.isDark(row, col) {
				out[i>>3] |= 1 << uint(7-i&7)
			}
			i++
		}
		return true
	})
	return out
}

// restoreBlocks reverses addECCAndInterleave's column-wise interleave,
// returning each block's data+EC bytes in original block order.
func restoreBlocks(interleaved []byte, version int, ecLevel ECLevel) [][]byte {
	blocks1, dataCw1, blocks2, dataCw2, ecCw := blockPlan(version, ecLevel)
	totalBlocks := blocks1 + blocks2
	lens := make([]int, totalBlocks)
	for i := 0; i < totalBlocks; i++ {
		if i < blocks1 {
			lens[i] = dataCw1 + ecCw
		} else {
			lens[i] = dataCw2 + ecCw
		}
	}

	blocks := make([][]byte, totalBlocks)
	for i := range blocks {
		blocks[i] = make([]byte, lens[i])
	}

	maxDataLen := dataCw2
	if maxDataLen < dataCw1 {
		maxDataLen = dataCw1
	}

	pos := 0
	for i := 0; i < maxDataLen; i++ {
		for b := 0; b < totalBlocks; b++ {
			dataLen := lens[b] - ecCw
			if i < dataLen {
				blocks[b][i] = interleaved[pos]
				pos++
			}
		}
	}
	for i := 0; i < ecCw; i++ {
		for b := 0; b < totalBlocks; b++ {
			dataLen := lens[b] - ecCw
			blocks[b][dataLen+i] = interleaved[pos]
			pos++
		}
	}
	return blocks
}

// correctBlocks runs Reed-Solomon correction over each restored block and
// concatenates their data portions back into a single codeword stream,
// failing with KindUncorrectableBlock if any block exceeds its correction
// capacity.
func correctBlocks(blocks [][]byte, ecCw int) ([]byte, error) {
	var data []byte
	for i, block := range blocks {
		dataLen := len(block) - ecCw
		if correctData(block, dataLen, ecCw) < 0 {
			return nil, newError(KindUncorrectableBlock, "block %d uncorrectable", i)
		}
		data = append(data, block[:dataLen]...)
	}
	return data, nil
}

// decodeSegments reads mode/charcount/payload segments from data per spec
// §4.7, stopping at the Terminator mode or end of data, and concatenates
// Byte/Numeric/Alphanumeric payloads into a single transcoded byte slice.
// ECI segments update eciValue but do not themselves produce output bytes.
func decodeSegments(data []byte, version int, charset Charset) (payload []byte, eciValue int, hasECI bool, err error) {
	r := newBitReader(data)
	eciValue = 0

	for r.bitsRemaining() >= 4 {
		indicator, rerr := r.readBits(4)
		if rerr != nil {
			return nil, eciValue, hasECI, rerr
		}
		mode, merr := modeFromIndicator(indicator)
		if merr != nil {
			return nil, eciValue, hasECI, merr
		}
		if mode.indicator == modeTerminator.indicator {
			break
		}

		if mode.indicator == modeECI.indicator {
			v, rerr := readECIDesignator(r)
			if rerr != nil {
				return nil, eciValue, hasECI, rerr
			}
			eciValue = v
			hasECI = true
			continue
		}

		count, rerr := r.readBits(mode.numCharCountBits(version))
		if rerr != nil {
			return nil, eciValue, hasECI, rerr
		}

		switch mode.indicator {
		case modeByte.indicator:
			for i := 0; i < count; i++ {
				b, berr := r.readBits(8)
				if berr != nil {
					return nil, eciValue, hasECI, berr
				}
				payload = append(payload, byte(b))
			}
		case modeNumeric.indicator:
			remaining := count
			for remaining >= 3 {
				v, nerr := r.readBits(10)
				if nerr != nil {
					return nil, eciValue, hasECI, nerr
				}
				payload = append(payload, []byte(itoa3(v))...)
				remaining -= 3
			}
			if remaining == 2 {
				v, nerr := r.readBits(7)
				if nerr != nil {
					return nil, eciValue, hasECI, nerr
				}
				payload = append(payload, []byte(itoaN(v, 2))...)
			} else if remaining == 1 {
				v, nerr := r.readBits(4)
				if nerr != nil {
					return nil, eciValue, hasECI, nerr
				}
				payload = append(payload, []byte(itoaN(v, 1))...)
			}
		case modeAlphanumeric.indicator:
			remaining := count
			for remaining >= 2 {
				v, aerr := r.readBits(11)
				if aerr != nil {
					return nil, eciValue, hasECI, aerr
				}
				payload = append(payload, alphanumericCharset[v/45], alphanumericCharset[v%45])
				remaining -= 2
			}
			if remaining == 1 {
				v, aerr := r.readBits(6)
				if aerr != nil {
					return nil, eciValue, hasECI, aerr
				}
				payload = append(payload, alphanumericCharset[v])
			}
		default:
			return nil, eciValue, hasECI, newError(KindUnsupportedMode, "mode indicator 0x%x unsupported in decode", mode.indicator)
		}
	}
	return detranscode(payload, charset), eciValue, hasECI, nil
}

// detranscode reverses transcode: ISO-8859-1 bytes are widened one rune at
// a time to their UTF-8 encoding (the inverse of transcode's Latin-1 fold);
// UTF-8 bytes pass through unchanged since Byte-mode already stored valid
// UTF-8 in that case. Numeric/Alphanumeric payload bytes are ASCII and are
// unaffected either way.
func detranscode(data []byte, cs Charset) []byte {
	if cs == CharsetUTF8 {
		return data
	}
	out := make([]byte, 0, len(data))
	for _, b := range data {
		out = append(out, []byte(string(rune(b)))...)
	}
	return out
}

// readECIDesignator reads an ECI assignment value encoded by MakeECI's
// variable-width scheme: a leading 0 bit means a bare 7-bit value, "10"
// means a 14-bit value, and "110" means a 21-bit value.
func readECIDesignator(r *bitReader) (int, error) {
	bit1, err := r.readBits(1)
	if err != nil {
		return 0, err
	}
	if bit1 == 0 {
		return r.readBits(7)
	}
	bit2, err := r.readBits(1)
	if err != nil {
		return 0, err
	}
	if bit2 == 0 {
		return r.readBits(14)
	}
	if _, err := r.readBits(1); err != nil {
		return 0, err
	}
	return r.readBits(21)
}

func itoa3(v int) string { return itoaN(v, 3) }

// itoaN formats v as a zero-padded decimal string of exactly n digits, the
// inverse of the numeric-mode triple/double/single packing MakeNumeric uses.
func itoaN(v, n int) string {
	digits := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits)
}

// extractSymbol runs the full MatrixExtractor pipeline (spec §4.6/§4.7)
// from a sampled+validated base matrix through to decoded payload bytes.
func extractSymbol(img *binaryImage, t *transform, version int, charset Charset) (*extractedSymbol, error) {
	reference := buildBaseMatrix(version)
	sampled := sampleMatrix(img, t, version)

	formatData, err := recoverFormatBits(img, t, sampled.size)
	if err != nil {
		return nil, err
	}
	ecLevel := eclFromFormatBits(formatData >> 3)
	mask := formatData & 7

	if err := validateFixedModules(sampled, reference, ecLevel); err != nil {
		return nil, err
	}

	applyMask(sampled, mask)

	interleaved := unloadCodewords(sampled, version)
	_, _, _, _, ecCw := blockPlan(version, ecLevel)
	blocks := restoreBlocks(interleaved, version, ecLevel)
	data, err := correctBlocks(blocks, ecCw)
	if err != nil {
		return nil, err
	}

	payload, eciValue, hasECI, err := decodeSegments(data, version, charset)
	if err != nil {
		return nil, err
	}

	return &extractedSymbol{
		version:  version,
		ecLevel:  ecLevel,
		mask:     mask,
		data:     payload,
		eciValue: eciValue,
		hasECI:   hasECI,
	}, nil
}
