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

func TestGaussianEliminateSolvesSimpleSystem(t *testing.T) {
	// x + y = 3; x - y = 1  =>  x=2, y=1
	aug := [][]float64{
		{1, 1, 3},
		{1, -1, 1},
	}
	sol, err := gaussianEliminate(aug)
	require.NoError(t, err)
	assert.InDelta(t, 2, sol[0], 1e-9)
	assert.InDelta(t, 1, sol[1], 1e-9)
}

func TestGaussianEliminateSingularFails(t *testing.T) {
	aug := [][]float64{
		{1, 1, 2},
		{2, 2, 4},
	}
	_, err := gaussianEliminate(aug)
	assert.Error(t, err)
	assert.True(t, isKind(err, KindLinearSolveFailure))
}

func TestCreateCornerRightIsoceles(t *testing.T) {
	topLeft := finder{row: 10, col: 10, moduleSize: 1}
	topRight := finder{row: 10, col: 50, moduleSize: 1}
	bottomLeft := finder{row: 50, col: 10, moduleSize: 1}

	c, ok := createCorner(topLeft, topRight, bottomLeft)
	require.True(t, ok)
	assert.Equal(t, topLeft, c.topLeft)
	assert.Equal(t, topRight, c.topRight)
	assert.Equal(t, bottomLeft, c.bottomLeft)
	assert.InDelta(t, 40, c.topLineLen, 1e-9)
	assert.InDelta(t, 40, c.leftLineLen, 1e-9)
}

func TestCreateCornerOrientationIndependentOfInputOrder(t *testing.T) {
	topLeft := finder{row: 10, col: 10, moduleSize: 1}
	topRight := finder{row: 10, col: 50, moduleSize: 1}
	bottomLeft := finder{row: 50, col: 10, moduleSize: 1}

	c, ok := createCorner(bottomLeft, topLeft, topRight)
	require.True(t, ok)
	assert.Equal(t, topLeft, c.topLeft)
	assert.Equal(t, topRight, c.topRight)
	assert.Equal(t, bottomLeft, c.bottomLeft)
}

func TestCreateCornerRejectsNonRightAngle(t *testing.T) {
	a := finder{row: 0, col: 0, moduleSize: 1}
	b := finder{row: 0, col: 10, moduleSize: 1}
	c := finder{row: 5, col: 20, moduleSize: 1}
	_, ok := createCorner(a, b, c)
	assert.False(t, ok)
}

func TestEstimateVersionMatchesKnownSize(t *testing.T) {
	// Version 5: size = 4*5+17 = 37, legs span 37-7=30 modules at module size 1.
	c := corner{
		topLeft:     finder{moduleSize: 1},
		topRight:    finder{moduleSize: 1},
		bottomLeft:  finder{moduleSize: 1},
		topLineLen:  30,
		leftLineLen: 30,
	}
	assert.Equal(t, 5, estimateVersion(c))
}

func TestSolveAffineRecoversKnownLinearMapping(t *testing.T) {
	// Version 1 (size 21): finder centers sit at module (col,row)
	// (3,3), (17,3), (3,17). Construct a corner whose pixel centers come
	// from the known mapping px=10*col+70, py=10*row+70, and confirm
	// solveAffine recovers it.
	c := corner{
		topLeft:    finder{row: 100, col: 100},
		topRight:   finder{row: 100, col: 240},
		bottomLeft: finder{row: 240, col: 100},
	}
	c.topLineLen = dist(c.topLeft, c.topRight)
	c.leftLineLen = dist(c.topLeft, c.bottomLeft)

	tr, err := solveAffine(c, 1)
	require.NoError(t, err)

	x, y := tr.project(3, 3)
	assert.InDelta(t, 100, x, 1e-6)
	assert.InDelta(t, 100, y, 1e-6)

	x, y = tr.project(17, 3)
	assert.InDelta(t, 240, x, 1e-6)
	assert.InDelta(t, 100, y, 1e-6)

	x, y = tr.project(3, 17)
	assert.InDelta(t, 100, x, 1e-6)
	assert.InDelta(t, 240, y, 1e-6)
}
