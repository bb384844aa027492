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

// renderToPixelSource is the shared round-trip helper: render a Symbol to
// its rasterized image and adapt that image back into a PixelSource, the
// same path a caller reading a saved PNG back off disk would take.
func renderToPixelSource(sym *Symbol) PixelSource {
	return PixelSourceFromImage(sym.ToImage())
}

func TestDecodeRoundTripAlphanumeric(t *testing.T) {
	e := NewEncoder(Medium, WithMask(2), WithBoostECL(false))
	sym, err := e.EncodeText("HELLO WORLD")
	require.NoError(t, err)

	results, err := ImageDecoder(renderToPixelSource(sym), CharsetISO8859_1)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	found := false
	for _, r := range Dedupe(results) {
		if string(r.Data) == "HELLO WORLD" {
			found = true
			assert.Equal(t, sym.Version, r.QRCodeVersion)
			assert.Equal(t, Medium, r.ErrorCorrection)
			assert.Equal(t, sym.Mask, r.MaskCode)
		}
	}
	assert.True(t, found, "expected HELLO WORLD among decoded candidates")
}

func TestDecodeRoundTripNumeric(t *testing.T) {
	e := NewEncoder(High, WithMask(0), WithBoostECL(false))
	sym, err := e.EncodeText("0123456789")
	require.NoError(t, err)

	results, err := ImageDecoder(renderToPixelSource(sym), CharsetISO8859_1)
	require.NoError(t, err)

	found := false
	for _, r := range Dedupe(results) {
		if string(r.Data) == "0123456789" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDecodeRoundTripByteMode(t *testing.T) {
	e := NewEncoder(Quartile, WithMask(4))
	payload := []byte("mixed-Case, with punctuation!")
	sym, err := e.EncodeBinary(payload)
	require.NoError(t, err)

	results, err := ImageDecoder(renderToPixelSource(sym), CharsetISO8859_1)
	require.NoError(t, err)

	found := false
	for _, r := range Dedupe(results) {
		if string(r.Data) == string(payload) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDecodeUniformImageFails(t *testing.T) {
	blank := NewPixelSource(32, 32, 96, make([]byte, 32*96))
	for i := range blank.Bytes() {
		blank.Bytes()[i] = 255
	}
	_, err := ImageDecoder(blank, CharsetISO8859_1)
	assert.Error(t, err)
	assert.True(t, isKind(err, KindUniformImage))
}

func TestFixRoundTrip(t *testing.T) {
	e := NewEncoder(Medium, WithMask(1))
	sym, err := e.EncodeBinary([]byte("fix me"))
	require.NoError(t, err)

	data, fixed, err := Fix(renderToPixelSource(sym), CharsetISO8859_1, High)
	require.NoError(t, err)
	assert.Equal(t, "fix me", string(data))
	assert.Equal(t, High, fixed.ErrorCorrectionLevel)
}
