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

// Standards-verbatim constant tables, grounded on the teacher's package.go
// (eccCodeWordsPerBlock, numErrorCorrectionBlocks, numRawDataModules,
// alignmentPatternPositions) plus the 34-entry version-BCH table from
// other_examples' zxinggo qrcode/decoder/version.go fragment and the
// 0x5412-masked format-BCH table used by both the teacher's drawFormatBits
// and that same fragment's ReadFormatInformation read sites.

// eccCodewordsPerBlock[ec][v] is the number of EC codewords in each block
// of version v at error correction level ec (0=L,1=M,2=Q,3=H). Index 0 is
// unused padding.
var eccCodewordsPerBlock = [4][41]int{
	{-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	{-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numErrorCorrectionBlocks[ec][v] is the number of EC blocks in group 1
// plus group 2 for version v at level ec.
var numErrorCorrectionBlocks = [4][41]int{
	{-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	{-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	{-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	{-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// numDataCodewords[ec][v] is computed in init from numRawDataModules and
// the two tables above.
var numDataCodewords [4][41]int

// numRawDataModules[v] is the number of data bits available for version v
// after all function modules are excluded, including remainder bits.
var numRawDataModules [41]int

// alignmentPatternPositions[v] lists the ascending alignment-pattern
// center coordinates for version v (empty for v=1).
var alignmentPatternPositions [41][]int

func init() {
	for v := 1; v <= 40; v++ {
		result := (16*v+128)*v + 64
		if v >= 2 {
			numAlign := v/7 + 2
			result -= (25*numAlign-10)*numAlign - 55
			if v >= 7 {
				result -= 36
			}
		}
		numRawDataModules[v] = result
	}

	for ec := 0; ec < 4; ec++ {
		for v := 1; v <= 40; v++ {
			numDataCodewords[ec][v] = numRawDataModules[v]/8 - eccCodewordsPerBlock[ec][v]*numErrorCorrectionBlocks[ec][v]
		}
	}

	for v := 1; v <= 40; v++ {
		alignmentPatternPositions[v] = computeAlignmentPositions(v)
	}
}

func computeAlignmentPositions(version int) []int {
	if version == 1 {
		return nil
	}
	numAlign := version/7 + 2
	var step int
	if version == 32 {
		step = 26
	} else {
		step = (version*4+numAlign*2+1) / (numAlign*2-2) * 2
	}
	result := make([]int, numAlign)
	result[0] = 6
	for i, pos := len(result)-1, version*4+17-7; i >= 1; i-- {
		result[i] = pos
		pos -= step
	}
	return result
}

// blockPlan returns (blocksGroup1, dataCwGroup1, blocksGroup2, dataCwGroup2,
// ecCwPerBlock) for (version, ec) per spec §3's EC Block Plan.
func blockPlan(version int, ec ECLevel) (blocks1, dataCw1, blocks2, dataCw2, ecCw int) {
	totalBlocks := numErrorCorrectionBlocks[ec][version]
	ecCw = eccCodewordsPerBlock[ec][version]
	rawCodewords := numRawDataModules[version] / 8
	shortBlockDataLen := rawCodewords/totalBlocks - ecCw
	numShortBlocks := totalBlocks - rawCodewords%totalBlocks

	blocks1 = numShortBlocks
	dataCw1 = shortBlockDataLen
	blocks2 = totalBlocks - numShortBlocks
	if blocks2 > 0 {
		dataCw2 = shortBlockDataLen + 1
	}
	return
}

// formatBCHTable maps the 32 (ecLevel-bits<<3 | mask) values to their
// BCH(15,5)-encoded, 0x5412-masked 15-bit codewords.
var formatBCHTable [32]int

func init() {
	for data := 0; data < 32; data++ {
		rem := data
		for i := 0; i < 10; i++ {
			rem = rem<<1 ^ (rem>>9)*0x537
		}
		formatBCHTable[data] = (data<<10 | rem) ^ 0x5412
	}
}

// versionBCHTable holds the 34 BCH(18,6)-encoded version codewords for
// versions 7..40 (index 0 => version 7).
var versionBCHTable [34]int

func init() {
	for i := range versionBCHTable {
		version := i + 7
		rem := version
		for b := 0; b < 12; b++ {
			rem = rem<<1 ^ (rem>>11)*0x1F25
		}
		versionBCHTable[i] = version<<12 | rem
	}
}

// alphanumericCharset is the 45-symbol alphanumeric-mode alphabet in
// standard order, index = symbol value.
const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// errCorrPercent[ec] is the nominal recovery percentage of error
// correction level ec (index 0=L,1=M,2=Q,3=H), used (per spec §4.7 / §9
// Open Question) as the fixed-module mismatch tolerance. Reed-Solomon
// correction does not read it; its limit is ecLen/2 per block.
var errCorrPercent = [4]int{7, 15, 25, 30}
