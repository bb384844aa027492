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

// Fix decodes the best candidate symbol found in src and re-encodes its
// payload at the requested error correction level, producing a fresh,
// undamaged Symbol from a possibly damaged or low-quality source image
// (spec §1's "trivial pipe of decoder -> encoder", kept as its own
// operation since it is a shipped entry point, not a new algorithm). It
// returns the decoded bytes alongside the re-encoded Symbol so callers can
// inspect either.
func Fix(src PixelSource, charset Charset, level ECLevel) ([]byte, *Symbol, error) {
	results, err := ImageDecoder(src, charset)
	if err != nil {
		return nil, nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if len(r.Data) > len(best.Data) {
			best = r
		}
	}

	sym, err := NewEncoder(level, WithCharset(charset)).EncodeBinary(best.Data)
	if err != nil {
		return nil, nil, err
	}
	return best.Data, sym, nil
}
