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

// EncodingMode is the mode (numeric, alphanumeric, byte, kanji, or ECI) of a
// segment, kept from the teacher's Mode with the addition of the
// terminator sentinel the decoder needs.
type EncodingMode struct {
	indicator int8
	numBits   [3]int8
}

// EncodingMode values, indexed by the 4-bit mode indicator from spec §4.3's
// Mode Indicator table.
var (
	modeTerminator   = EncodingMode{0x0, [3]int8{0, 0, 0}}
	modeNumeric      = EncodingMode{0x1, [3]int8{10, 12, 14}}
	modeAlphanumeric = EncodingMode{0x2, [3]int8{9, 11, 13}}
	modeByte         = EncodingMode{0x4, [3]int8{8, 16, 16}}
	modeKanji        = EncodingMode{0x8, [3]int8{8, 10, 12}}
	modeECI          = EncodingMode{0x7, [3]int8{0, 0, 0}}
)

// numCharCountBits returns the width of the character-count field that
// follows this mode's indicator for the given version.
func (m EncodingMode) numCharCountBits(version int) int8 {
	switch {
	case version < 10:
		return m.numBits[0]
	case version < 27:
		return m.numBits[1]
	default:
		return m.numBits[2]
	}
}

// modeFromIndicator maps a decoded 4-bit indicator back to its
// EncodingMode, per spec §4.7's segment-header decode loop.
func modeFromIndicator(indicator int) (EncodingMode, error) {
	switch indicator {
	case 0x0:
		return modeTerminator, nil
	case 0x1:
		return modeNumeric, nil
	case 0x2:
		return modeAlphanumeric, nil
	case 0x4:
		return modeByte, nil
	case 0x8:
		return modeKanji, nil
	case 0x7:
		return modeECI, nil
	default:
		return EncodingMode{}, newError(KindUnsupportedMode, "mode indicator 0x%x", indicator)
	}
}
