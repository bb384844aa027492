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

// bitReader is the decode-side counterpart of bitWriter: an MSB-first
// reader over packed data bytes, backed by a 32-bit window refilled 8 bits
// at a time so reads of up to 24 bits never need to straddle more than one
// refill (spec §4.7).
type bitReader struct {
	data      []byte
	bytePos   int
	window    uint32
	available int8 // number of valid bits currently held in window, MSB-aligned
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (r *bitReader) bitsRemaining() int {
	return int(r.available) + 8*(len(r.data)-r.bytePos)
}

func (r *bitReader) fill() {
	for r.available <= 24 && r.bytePos < len(r.data) {
		r.window |= uint32(r.data[r.bytePos]) << uint(24-r.available)
		r.bytePos++
		r.available += 8
	}
}

// readBits reads the next n (0..24) bits MSB first, returning
// KindPrematureEndOfData if fewer than n bits remain.
func (r *bitReader) readBits(n int8) (int, error) {
	if n == 0 {
		return 0, nil
	}
	r.fill()
	if int(n) > int(r.available) {
		return 0, newError(KindPrematureEndOfData, "need %d bits, have %d", n, r.available)
	}
	value := int(r.window >> uint(32-n))
	r.window <<= uint(n)
	r.available -= n
	return value, nil
}
