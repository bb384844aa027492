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

func TestScanRunsBasic(t *testing.T) {
	bits := []bool{true, true, false, false, false, true}
	runs := scanRuns(func(i int) bool { return bits[i] }, len(bits))
	require.Len(t, runs, 3)
	assert.Equal(t, run{0, 2, true}, runs[0])
	assert.Equal(t, run{2, 5, false}, runs[1])
	assert.Equal(t, run{5, 6, true}, runs[2])
}

func TestMatchesFinderSignature(t *testing.T) {
	rs := []run{{0, 3, true}, {3, 6, false}, {6, 15, true}, {15, 18, false}, {18, 21, true}}
	m, ok := matchesFinderSignature(rs)
	assert.True(t, ok)
	assert.InDelta(t, 3, m, 0.01)
}

func TestMatchesFinderSignatureRejectsWrongRatio(t *testing.T) {
	rs := []run{{0, 3, true}, {3, 6, false}, {6, 9, true}, {9, 12, false}, {12, 15, true}}
	_, ok := matchesFinderSignature(rs)
	assert.False(t, ok)
}

func TestLocateFindersOnRenderedSymbol(t *testing.T) {
	sym, err := NewEncoder(Medium, WithMask(3)).EncodeText("FINDER TEST 123")
	require.NoError(t, err)

	img, err := binarize(renderToPixelSource(sym))
	require.NoError(t, err)

	finders, err := locateFinders(img)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(finders), 3)
}

func TestLocateFindersFailsWithoutEnoughCandidates(t *testing.T) {
	src := NewPixelSource(4, 4, 12, checkerboardBytes(4, 4))
	img, err := binarize(src)
	require.NoError(t, err)
	_, err = locateFinders(img)
	assert.Error(t, err)
	assert.True(t, isKind(err, KindNoFinders))
}
