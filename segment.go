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

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// QRSegment is a single segment of a symbol's data stream (numeric,
// alphanumeric, byte, or ECI). Kept from the teacher's QRSegment
// (qrsegment.go), renamed field Mode -> EncodingMode.
type QRSegment struct {
	EncodingMode
	NumChars int
	Data     []byte // one bit per byte, MSB-first payload (not yet packed)
}

var (
	alphanumericRegexp = regexp.MustCompile(`^[A-Z0-9 $%*+./:-]*$`)
	numericRegexp       = regexp.MustCompile(`^[0-9]*$`)
)

// Charset selects the transcoding applied to text payloads before byte-mode
// segmentation (spec §4.3: "transcoded through charset, default ISO-8859-1
// ... but caller-specified").
type Charset int8

const (
	CharsetISO8859_1 Charset = iota
	CharsetUTF8
)

// transcode converts s to bytes under the given charset. ISO-8859-1 maps
// each Unicode code point directly to its single-byte Latin-1 value and
// fails outside [0,255]; UTF-8 is the identity transform on Go strings.
func transcode(s string, cs Charset) ([]byte, error) {
	if cs == CharsetUTF8 {
		return []byte(s), nil
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, newError(KindInvalidCharForMode, "rune %q outside ISO-8859-1", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func getTotalBits(segs []*QRSegment, version int) int {
	result := int64(0)
	for _, seg := range segs {
		ccBits := seg.EncodingMode.numCharCountBits(version)
		if seg.NumChars >= 1<<uint(ccBits) {
			return -1
		}
		result += int64(4 + int(ccBits) + len(seg.Data))
		if result > math.MaxInt32 {
			return -1
		}
	}
	return int(result)
}

// MakeAlphanumeric creates an alphanumeric segment from text restricted to
// the 45-symbol alphanumeric charset.
func MakeAlphanumeric(text string) *QRSegment {
	if !alphanumericRegexp.MatchString(text) {
		panic("qrcode: string contains non-alphanumeric characters")
	}

	bb := make(bitWriter, 0, len(text)*5+(len(text)+1)/2)
	var i int
	for i = 0; i <= len(text)-2; i += 2 {
		temp := strings.Index(alphanumericCharset, text[i:i+1]) * 45
		temp += strings.Index(alphanumericCharset, text[i+1:i+2])
		bb.appendBits(temp, 11)
	}
	if i < len(text) {
		bb.appendBits(strings.Index(alphanumericCharset, text[i:i+1]), 6)
	}

	return &QRSegment{EncodingMode: modeAlphanumeric, NumChars: len(text), Data: bb}
}

// MakeBytes encodes a byte slice as a Byte-mode segment.
func MakeBytes(data []byte) *QRSegment {
	bb := make(bitWriter, 0, len(data)*8)
	for _, b := range data {
		bb.appendBits(int(b), 8)
	}
	return &QRSegment{EncodingMode: modeByte, NumChars: len(data), Data: bb}
}

// MakeECI creates a segment representing an Extended Channel
// Interpretation designator.
func MakeECI(assignValue int) (*QRSegment, error) {
	bb := make(bitWriter, 0, 24)
	switch {
	case assignValue < 1<<7:
		bb.appendBits(assignValue, 8)
	case assignValue < 1<<14:
		bb.appendBits(2, 2)
		bb.appendBits(assignValue, 14)
	case assignValue < 1_000_000:
		bb.appendBits(6, 3)
		bb.appendBits(assignValue, 21)
	default:
		return nil, newError(KindCapacityExceeded, "ECI assignment %d out of range", assignValue)
	}
	return &QRSegment{EncodingMode: modeECI, NumChars: 0, Data: bb}, nil
}

// MakeNumeric creates a numeric segment from a digit string.
func MakeNumeric(digits string) *QRSegment {
	if !numericRegexp.MatchString(digits) {
		panic("qrcode: string contains non-numeric characters")
	}

	bb := make(bitWriter, 0, len(digits)*3+(len(digits)+2)/3)
	for i := 0; i < len(digits); {
		n := 3
		if len(digits)-i < n {
			n = len(digits) - i
		}
		d, _ := strconv.Atoi(digits[i : i+n])
		bb.appendBits(d, int8(n*3+1))
		i += n
	}

	return &QRSegment{EncodingMode: modeNumeric, NumChars: len(digits), Data: bb}
}

// MakeSegments chooses the most efficient mode for text (numeric >
// alphanumeric > byte) per spec §4.3's mode-selection rule, transcoding
// through cs before falling back to byte mode.
func MakeSegments(text string, cs Charset) ([]*QRSegment, error) {
	if len(text) == 0 {
		return []*QRSegment{}, nil
	}
	if numericRegexp.MatchString(text) {
		return []*QRSegment{MakeNumeric(text)}, nil
	}
	if alphanumericRegexp.MatchString(text) {
		return []*QRSegment{MakeAlphanumeric(text)}, nil
	}
	data, err := transcode(text, cs)
	if err != nil {
		return nil, err
	}
	return []*QRSegment{MakeBytes(data)}, nil
}
