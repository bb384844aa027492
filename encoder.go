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

import "fmt"

// Penalty weights for automatic mask selection, ISO/IEC 18004 Annex, kept
// from the teacher's qrcode.go.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// Symbol is a constructed QR code ready to render: the data model described
// by spec §3, produced by Encoder and consumed by the Renderer.
type Symbol struct {
	Version              int
	Size                 int
	ErrorCorrectionLevel ECLevel
	Mask                 int
	QuietZone            int
	ModulePixelSize      int
	matrix               *moduleMatrix
}

// Encoder builds Symbols from segmented payloads (spec §4.3). Mirrors the
// teacher's EncodeSegments/segmentEncoder (qrcode.go, segmentencoder.go),
// extended with charset transcoding and explicit render defaults.
type Encoder struct {
	ecLevel         ECLevel
	diagnostics     Diagnostics
	boostECL        bool
	mask            int
	minVersion      int
	maxVersion      int
	charset         Charset
	quietZone       int
	modulePixelSize int
}

// NewEncoder creates an Encoder at the given error correction level with
// the teacher's defaults (auto mask, ECL boosting on, full version range)
// overridden by opts.
func NewEncoder(ecLevel ECLevel, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		ecLevel:         ecLevel,
		diagnostics:     NopDiagnostics{},
		boostECL:        true,
		mask:            -1,
		minVersion:      1,
		maxVersion:      40,
		charset:         CharsetISO8859_1,
		quietZone:       4,
		modulePixelSize: 8,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// EncodeText segments and encodes text using the mode-selection rule of
// spec §4.3 (numeric, then alphanumeric, then byte via the encoder's
// configured charset).
func (e *Encoder) EncodeText(text string) (*Symbol, error) {
	segs, err := MakeSegments(text, e.charset)
	if err != nil {
		return nil, emitErr(e.diagnostics, LevelWarn, KindInvalidCharForMode, err.Error())
	}
	return e.EncodeSegments(segs)
}

// EncodeBinary encodes data as a single Byte-mode segment.
func (e *Encoder) EncodeBinary(data []byte) (*Symbol, error) {
	return e.EncodeSegments([]*QRSegment{MakeBytes(data)})
}

// EncodeSegments builds a Symbol from one or more already-encoded segments.
func (e *Encoder) EncodeSegments(segs []*QRSegment) (*Symbol, error) {
	if e.minVersion < 1 || e.maxVersion > 40 || e.maxVersion < e.minVersion {
		return nil, emitErr(e.diagnostics, LevelWarn, KindInvalidVersion, fmt.Sprintf("version range [%d,%d] invalid", e.minVersion, e.maxVersion))
	}
	if e.mask < -1 || e.mask > 7 {
		return nil, emitErr(e.diagnostics, LevelWarn, KindInvalidVersion, fmt.Sprintf("mask %d out of range", e.mask))
	}

	ecLevel := e.ecLevel
	version := e.minVersion
	var dataUsedBits int
	for {
		dataCapacityBits := numDataCodewords[ecLevel][version] * 8
		dataUsedBits = getTotalBits(segs, version)
		if dataUsedBits != -1 && dataUsedBits <= dataCapacityBits {
			break
		}
		if version >= e.maxVersion {
			return nil, emitErr(e.diagnostics, LevelWarn, KindCapacityExceeded, "payload does not fit version range")
		}
		version++
	}

	for newEcl := Medium; newEcl <= High; newEcl++ {
		if e.boostECL && dataUsedBits <= numDataCodewords[newEcl][version]*8 {
			ecLevel = newEcl
		}
	}

	bb := make(bitWriter, 0, dataUsedBits)
	for _, seg := range segs {
		bb.appendBits(int(seg.EncodingMode.indicator), 4)
		bb.appendBits(seg.NumChars, seg.EncodingMode.numCharCountBits(version))
		bb = append(bb, seg.Data...)
	}

	dataCapacityBits := numDataCodewords[ecLevel][version] * 8
	terminatorLen := int8(4)
	if dataCapacityBits-bb.len() < 4 {
		terminatorLen = int8(dataCapacityBits - bb.len())
	}
	bb.appendBits(0, terminatorLen)
	bb.appendBits(0, int8((8-bb.len()%8)%8))

	for padByte := 0xec; bb.len() < dataCapacityBits; padByte ^= 0xec ^ 0x11 {
		bb.appendBits(padByte, 8)
	}

	dataCodewords := bb.packBytes()

	size := version*4 + 17
	matrix := buildBaseMatrix(version)
	allCodewords := addECCAndInterleave(dataCodewords, version, ecLevel)
	drawCodewords(matrix, size, allCodewords)

	mask := e.handleConstructorMasking(matrix, size, ecLevel)
	if version >= 7 {
		stampVersionBits(matrix, size, versionBCHTable[version-7])
	}

	return &Symbol{
		Version:              version,
		Size:                 size,
		ErrorCorrectionLevel: ecLevel,
		Mask:                 mask,
		QuietZone:            e.quietZone,
		ModulePixelSize:      e.modulePixelSize,
		matrix:               matrix,
	}, nil
}

// drawCodewords stamps the wire codeword array into the matrix's data path,
// MSB-first, skipping NonData (function) cells. Ported from the teacher's
// drawCodewords (qrcode.go).
func drawCodewords(m *moduleMatrix, size int, data []byte) {
	i := 0
	dataPathWalk(size, func(row, col int) bool {
		if !m.isNonData(row, col) && i < len(data)*8 {
			bit := data[i>>3]>>uint(7-i&7)&1 == 1
			m.setData(row, col, bit)
			i++
		}
		return true
	})
}

// addECCAndInterleave splits dataCodewords into the EC block plan for
// (version, ecLevel), appends Reed-Solomon codewords to each block, and
// interleaves the blocks column-wise into the on-wire order. Ported from
// the teacher's addECCAndInterleave (qrcode.go), rebuilt on tables.blockPlan
// and gf256's reedSolomonComputeRemainder.
func addECCAndInterleave(data []byte, version int, ecLevel ECLevel) []byte {
	blocks1, dataCw1, blocks2, dataCw2, ecCw := blockPlan(version, ecLevel)
	totalBlocks := blocks1 + blocks2
	gen := reedSolomonComputeDivisor(ecCw)

	blocks := make([][]byte, totalBlocks)
	offset := 0
	for i := 0; i < totalBlocks; i++ {
		dataLen := dataCw1
		if i >= blocks1 {
			dataLen = dataCw2
		}
		chunk := data[offset : offset+dataLen]
		offset += dataLen

		block := make([]byte, dataLen+ecCw)
		copy(block, chunk)
		ecc := reedSolomonComputeRemainder(chunk, gen)
		copy(block[dataLen:], ecc)
		blocks[i] = block
	}

	maxDataLen := dataCw2
	if maxDataLen < dataCw1 {
		maxDataLen = dataCw1
	}
	result := make([]byte, 0, maxDataLen*totalBlocks+ecCw*totalBlocks)
	for i := 0; i < maxDataLen; i++ {
		for _, block := range blocks {
			dataLen := len(block) - ecCw
			if i < dataLen {
				result = append(result, block[i])
			}
		}
	}
	for i := 0; i < ecCw; i++ {
		for _, block := range blocks {
			result = append(result, block[len(block)-ecCw+i])
		}
	}
	return result
}

// handleConstructorMasking applies the requested mask (or, for auto,
// whichever of the eight yields the lowest penalty score) and stamps the
// format-info codeword. Ported from the teacher's handleConstructorMasking/
// drawFormatBits (qrcode.go).
func (e *Encoder) handleConstructorMasking(m *moduleMatrix, size int, ecLevel ECLevel) int {
	mask := e.mask
	if mask == -1 {
		minPenalty := -1
		for i := 0; i < 8; i++ {
			applyMask(m, i)
			stampFormatBits(m, size, formatBCHTable[ecLevel.formatBits()<<3|i])
			penalty := getPenaltyScore(m, size)
			applyMask(m, i)
			if minPenalty == -1 || penalty < minPenalty {
				mask = i
				minPenalty = penalty
			}
		}
	}

	applyMask(m, mask)
	stampFormatBits(m, size, formatBCHTable[ecLevel.formatBits()<<3|mask])
	return mask
}

// getPenaltyScore scores the current matrix per ISO/IEC 18004's four
// penalty rules. Ported from the teacher's getPenaltyScore/finderPenalty*
// helpers (qrcode.go).
func getPenaltyScore(m *moduleMatrix, size int) int {
	result := 0

	for row := 0; row < size; row++ {
		runColor := false
		runLen := 0
		var history [7]int
		for col := 0; col < size; col++ {
			if m.isDark(row, col) == runColor {
				runLen++
				if runLen == 5 {
					result += penaltyN1
				} else if runLen > 5 {
					result++
				}
			} else {
				finderPenaltyAddHistory(runLen, &history, size)
				if !runColor {
					result += finderPenaltyCountPatterns(&history, size) * penaltyN3
				}
				runColor = m.isDark(row, col)
				runLen = 1
			}
		}
		result += finderPenaltyTerminateAndCount(runColor, runLen, &history, size) * penaltyN3
	}

	for col := 0; col < size; col++ {
		runColor := false
		runLen := 0
		var history [7]int
		for row := 0; row < size; row++ {
			if m.isDark(row, col) == runColor {
				runLen++
				if runLen == 5 {
					result += penaltyN1
				} else if runLen > 5 {
					result++
				}
			} else {
				finderPenaltyAddHistory(runLen, &history, size)
				if !runColor {
					result += finderPenaltyCountPatterns(&history, size) * penaltyN3
				}
				runColor = m.isDark(row, col)
				runLen = 1
			}
		}
		result += finderPenaltyTerminateAndCount(runColor, runLen, &history, size) * penaltyN3
	}

	for row := 0; row < size-1; row++ {
		for col := 0; col < size-1; col++ {
			color := m.isDark(row, col)
			if color == m.isDark(row, col+1) && color == m.isDark(row+1, col) && color == m.isDark(row+1, col+1) {
				result += penaltyN2
			}
		}
	}

	dark := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if m.isDark(row, col) {
				dark++
			}
		}
	}
	total := size * size
	k := (absInt(dark*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}

func finderPenaltyAddHistory(currentRunLength int, history *[7]int, size int) {
	if history[0] == 0 {
		currentRunLength += size
	}
	copy(history[1:], history[0:])
	history[0] = currentRunLength
}

func finderPenaltyCountPatterns(history *[7]int, size int) int {
	n := history[1]
	core := n > 0 && history[2] == n && history[3] == n*3 && history[4] == n && history[5] == n
	count := 0
	if core && history[0] >= n*4 && history[6] >= n {
		count++
	}
	if core && history[6] >= n*4 && history[0] >= n {
		count++
	}
	return count
}

func finderPenaltyTerminateAndCount(runColor bool, runLength int, history *[7]int, size int) int {
	if runColor {
		finderPenaltyAddHistory(runLength, history, size)
		runLength = 0
	}
	runLength += size
	finderPenaltyAddHistory(runLength, history, size)
	return finderPenaltyCountPatterns(history, size)
}
