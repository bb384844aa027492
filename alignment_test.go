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

func TestMatchesAlignmentSignature(t *testing.T) {
	rs := []run{{0, 5, true}, {5, 8, false}, {8, 11, true}, {11, 14, false}, {14, 19, true}}
	m, ok := matchesAlignmentSignature(rs)
	assert.True(t, ok)
	assert.InDelta(t, 3, m, 0.01)
}

func TestMatchesAlignmentSignatureRejectsNarrowOuterRuns(t *testing.T) {
	rs := []run{{0, 1, true}, {1, 4, false}, {4, 7, true}, {7, 10, false}, {10, 11, true}}
	_, ok := matchesAlignmentSignature(rs)
	assert.False(t, ok)
}

func TestLocateAlignmentOnRenderedSymbol(t *testing.T) {
	// Version 7 is the smallest version with both an alignment pattern
	// and version-info blocks.
	sym, err := NewEncoder(Medium, WithMinVersion(7), WithMaxVersion(7), WithBoostECL(false)).EncodeText("ALIGNMENT PATTERN LOCATOR TEST 1234567890")
	require.NoError(t, err)
	require.Equal(t, 7, sym.Version)

	img, err := binarize(renderToPixelSource(sym))
	require.NoError(t, err)

	finders, err := locateFinders(img)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(finders), 3)

	var c corner
	found := false
	for i := 0; i < len(finders) && !found; i++ {
		for j := 0; j < len(finders) && !found; j++ {
			if j == i {
				continue
			}
			for k := 0; k < len(finders) && !found; k++ {
				if k == i || k == j {
					continue
				}
				if cand, ok := createCorner(finders[i], finders[j], finders[k]); ok {
					c, found = cand, true
				}
			}
		}
	}
	require.True(t, found)

	affine, err := solveAffine(c, 7)
	require.NoError(t, err)

	_, _, ok := locateAlignment(img, affine, 7)
	assert.True(t, ok)
}
