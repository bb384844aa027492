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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnloadCodewordsInvertsDrawCodewords(t *testing.T) {
	version := 3
	ecLevel := Medium
	dataCw := numDataCodewords[ecLevel][version]
	data := make([]byte, dataCw)
	for i := range data {
		data[i] = byte(i*37 + 11)
	}

	allCodewords := addECCAndInterleave(data, version, ecLevel)

	size := version*4 + 17
	m := buildBaseMatrix(version)
	drawCodewords(m, size, allCodewords)

	recovered := unloadCodewords(m, version)
	assert.Equal(t, allCodewords, recovered)
}

func TestRestoreBlocksInvertsInterleave(t *testing.T) {
	version := 5
	ecLevel := Quartile
	dataCw := numDataCodewords[ecLevel][version]
	data := make([]byte, dataCw)
	for i := range data {
		data[i] = byte(i * 13)
	}

	interleaved := addECCAndInterleave(data, version, ecLevel)
	_, _, _, _, ecCw := blockPlan(version, ecLevel)

	blocks := restoreBlocks(interleaved, version, ecLevel)

	var reconstructed []byte
	for _, b := range blocks {
		reconstructed = append(reconstructed, b[:len(b)-ecCw]...)
	}
	assert.Equal(t, data, reconstructed)
}

func TestCorrectBlocksFixesInjectedErrors(t *testing.T) {
	version := 2
	ecLevel := High
	dataCw := numDataCodewords[ecLevel][version]
	data := make([]byte, dataCw)
	for i := range data {
		data[i] = byte(i + 1)
	}

	interleaved := addECCAndInterleave(data, version, ecLevel)
	blocks := restoreBlocks(interleaved, version, ecLevel)

	blocks[0][0] ^= 0xFF

	_, _, _, _, ecCw := blockPlan(version, ecLevel)
	corrected, err := correctBlocks(blocks, ecCw)
	require.NoError(t, err)
	assert.Equal(t, data, corrected)
}

func TestDecodeSegmentsNumeric(t *testing.T) {
	seg := MakeNumeric("0123456789")
	bb := make(bitWriter, 0)
	bb.appendBits(int(seg.EncodingMode.indicator), 4)
	bb.appendBits(seg.NumChars, seg.EncodingMode.numCharCountBits(1))
	bb = append(bb, seg.Data...)
	bb.appendBits(0, 4)
	bb.appendBits(0, int8((8-bb.len()%8)%8))

	payload, _, hasECI, err := decodeSegments(bb.packBytes(), 1, CharsetISO8859_1)
	require.NoError(t, err)
	assert.False(t, hasECI)
	assert.Equal(t, "0123456789", string(payload))
}

func TestDecodeSegmentsAlphanumeric(t *testing.T) {
	seg := MakeAlphanumeric("HELLO WORLD")
	bb := make(bitWriter, 0)
	bb.appendBits(int(seg.EncodingMode.indicator), 4)
	bb.appendBits(seg.NumChars, seg.EncodingMode.numCharCountBits(1))
	bb = append(bb, seg.Data...)
	bb.appendBits(0, 4)
	bb.appendBits(0, int8((8-bb.len()%8)%8))

	payload, _, _, err := decodeSegments(bb.packBytes(), 1, CharsetISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", string(payload))
}

func TestDecodeSegmentsByteWithECI(t *testing.T) {
	eci, err := MakeECI(26)
	require.NoError(t, err)
	seg := MakeBytes([]byte("abc"))

	bb := make(bitWriter, 0)
	bb.appendBits(int(eci.EncodingMode.indicator), 4)
	bb = append(bb, eci.Data...)
	bb.appendBits(int(seg.EncodingMode.indicator), 4)
	bb.appendBits(seg.NumChars, seg.EncodingMode.numCharCountBits(1))
	bb = append(bb, seg.Data...)
	bb.appendBits(0, 4)
	bb.appendBits(0, int8((8-bb.len()%8)%8))

	payload, eciValue, hasECI, err := decodeSegments(bb.packBytes(), 1, CharsetUTF8)
	require.NoError(t, err)
	assert.True(t, hasECI)
	assert.Equal(t, 26, eciValue)
	assert.Equal(t, "abc", string(payload))
}

func TestItoaN(t *testing.T) {
	assert.Equal(t, "007", itoaN(7, 3))
	assert.Equal(t, "42", itoaN(42, 2))
	assert.Equal(t, "9", itoaN(9, 1))
}
