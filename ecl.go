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

// ECLevel is the error correction level of a QR code symbol (spec §3).
// Kept from the teacher's ecl.go (there named ECL), renamed to avoid
// colliding with this package's *Error type's Kind naming.
type ECLevel int8

// ECLevel values, ordered so ECLevel can index directly into the
// eccCodewordsPerBlock/numErrorCorrectionBlocks/numDataCodewords tables.
const (
	Low      ECLevel = iota // Recovers ~7% of data.
	Medium                  // Recovers ~15% of data.
	Quartile                // Recovers ~25% of data.
	High                    // Recovers ~30% of data.
)

func (e ECLevel) String() string {
	switch e {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return "?"
	}
}

// formatBits returns the 2-bit value stamped into the 15-bit format info,
// per spec §9's FormatInfoToErrCode convention (info = code XOR 1): this
// swaps L and M in the external numbering (L=1, M=0, Q=3, H=2).
func (e ECLevel) formatBits() int {
	switch e {
	case Low:
		return 1
	case Medium:
		return 0
	case Quartile:
		return 3
	case High:
		return 2
	default:
		panic("qrcode: unknown error correction level")
	}
}

// eclFromFormatBits reverses formatBits, used when recovering the EC level
// from a decoded format-info codeword.
func eclFromFormatBits(bits int) ECLevel {
	switch bits {
	case 1:
		return Low
	case 0:
		return Medium
	case 3:
		return Quartile
	case 2:
		return High
	default:
		panic("qrcode: format bits out of range")
	}
}
