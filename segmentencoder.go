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

// EncoderOption configures an Encoder at construction, following the
// teacher's segmentEncoder functional-options pattern (segmentencoder.go),
// extended per spec §6/§9 with charset, diagnostics, and render defaults.
type EncoderOption func(*Encoder)

// WithAutoMask selects mask automatically by penalty score (the default).
func WithAutoMask() EncoderOption {
	return func(e *Encoder) { e.mask = -1 }
}

// WithMask forces a specific mask in [0,7].
func WithMask(mask int) EncoderOption {
	return func(e *Encoder) { e.mask = mask }
}

// WithBoostECL enables or disables automatic error-correction-level
// boosting when the chosen version has spare capacity.
func WithBoostECL(boost bool) EncoderOption {
	return func(e *Encoder) { e.boostECL = boost }
}

// WithMinVersion sets the smallest version the encoder may choose.
func WithMinVersion(version int) EncoderOption {
	return func(e *Encoder) { e.minVersion = version }
}

// WithMaxVersion sets the largest version the encoder may choose.
func WithMaxVersion(version int) EncoderOption {
	return func(e *Encoder) { e.maxVersion = version }
}

// WithCharset sets the charset text payloads are transcoded through before
// mode selection (spec §4.3).
func WithCharset(cs Charset) EncoderOption {
	return func(e *Encoder) { e.charset = cs }
}

// WithDiagnostics attaches a Diagnostics sink for fatal-error logging.
func WithDiagnostics(d Diagnostics) EncoderOption {
	return func(e *Encoder) { e.diagnostics = d }
}

// WithQuietZone sets the border width, in modules, added around the
// rendered symbol (spec §4.8's default of 4).
func WithQuietZone(modules int) EncoderOption {
	return func(e *Encoder) { e.quietZone = modules }
}

// WithModulePixelSize sets the pixel size of one module in rendered output.
func WithModulePixelSize(pixels int) EncoderOption {
	return func(e *Encoder) { e.modulePixelSize = pixels }
}
