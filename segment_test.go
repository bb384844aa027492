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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAlphanumeric(t *testing.T) {
	cases := []struct {
		answer bool
		text   string
	}{
		{true, ""},
		{true, "0"},
		{true, "A"},
		{false, "a"},
		{true, "XYZ"},
		{false, "XYZ!"},
		{true, "79068"},
		{true, "+123 ABC$"},
		{false, "\x01"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.text), func(t *testing.T) {
			assert.Equal(t, tc.answer, alphanumericRegexp.MatchString(tc.text))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		answer bool
		text   string
	}{
		{true, ""},
		{true, "0"},
		{false, "A"},
		{true, "79068"},
		{false, "+123 ABC$"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.text), func(t *testing.T) {
			assert.Equal(t, tc.answer, numericRegexp.MatchString(tc.text))
		})
	}
}

func TestMakeBytes(t *testing.T) {
	seg := MakeBytes([]byte{0xEF, 0xBB, 0xBF})
	assert.Equal(t, modeByte, seg.EncodingMode)
	assert.Equal(t, 3, seg.NumChars)
	assert.Equal(t, 24, len(seg.Data))
}

func TestMakeNumeric(t *testing.T) {
	cases := []struct {
		text      string
		length    int
		bitLength int
	}{
		{"", 0, 0},
		{"9", 1, 4},
		{"81", 2, 7},
		{"673", 3, 10},
		{"3141592653", 10, 34},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			seg := MakeNumeric(tc.text)
			assert.Equal(t, modeNumeric, seg.EncodingMode)
			assert.Equal(t, tc.length, seg.NumChars)
			assert.Equal(t, tc.bitLength, len(seg.Data))
		})
	}
}

func TestMakeAlphanumeric(t *testing.T) {
	seg := MakeAlphanumeric("Q R")
	assert.Equal(t, modeAlphanumeric, seg.EncodingMode)
	assert.Equal(t, 3, seg.NumChars)
	assert.Equal(t, 17, len(seg.Data))
}

func TestMakeECI(t *testing.T) {
	cases := []struct {
		input     int
		bitLength int
	}{
		{127, 8},
		{10345, 16},
		{999999, 24},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d", tc.input), func(t *testing.T) {
			seg, err := MakeECI(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, modeECI, seg.EncodingMode)
			assert.Equal(t, tc.bitLength, len(seg.Data))
		})
	}
}

func TestGetTotalBits(t *testing.T) {
	assert.Equal(t, 0, getTotalBits([]*QRSegment{}, 1))

	segs := []*QRSegment{{EncodingMode: modeByte, NumChars: 3, Data: make([]byte, 24)}}
	assert.Equal(t, 36, getTotalBits(segs, 2))
	assert.Equal(t, 44, getTotalBits(segs, 10))
}

func TestTranscodeISO8859_1(t *testing.T) {
	out, err := transcode("café", CharsetISO8859_1)
	assert.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, out)

	_, err = transcode("€", CharsetISO8859_1)
	assert.Error(t, err)
}

func TestMakeSegmentsModeSelection(t *testing.T) {
	segs, err := MakeSegments("0123456789", CharsetISO8859_1)
	assert.NoError(t, err)
	assert.Equal(t, modeNumeric, segs[0].EncodingMode)

	segs, err = MakeSegments("HELLO WORLD", CharsetISO8859_1)
	assert.NoError(t, err)
	assert.Equal(t, modeAlphanumeric, segs[0].EncodingMode)

	segs, err = MakeSegments("hello!", CharsetISO8859_1)
	assert.NoError(t, err)
	assert.Equal(t, modeByte, segs[0].EncodingMode)
}
