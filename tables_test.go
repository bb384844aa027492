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

func TestNumDataCodewords(t *testing.T) {
	cases := [][3]int{
		{3, 1, 44},
		{3, 2, 34},
		{3, 3, 26},
		{6, 0, 136},
		{7, 0, 156},
		{9, 0, 232},
		{22, 3, 442},
		{40, 1, 2334},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("v=%d ec=%d", tc[0], tc[1]), func(t *testing.T) {
			assert.Equal(t, tc[2], numDataCodewords[tc[1]][tc[0]])
		})
	}
}

func TestNumRawDataModules(t *testing.T) {
	cases := [][2]int{
		{1, 208},
		{2, 359},
		{7, 1568},
		{32, 19723},
		{40, 29648},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("v=%d", tc[0]), func(t *testing.T) {
			assert.Equal(t, tc[1], numRawDataModules[tc[0]])
		})
	}
}

func TestComputeAlignmentPositions(t *testing.T) {
	cases := []struct {
		version int
		want    []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{7, []int{6, 22, 38}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("v=%d", tc.version), func(t *testing.T) {
			assert.Equal(t, tc.want, alignmentPatternPositions[tc.version])
		})
	}
}

func TestBlockPlan(t *testing.T) {
	blocks1, dataCw1, blocks2, dataCw2, ecCw := blockPlan(7, Medium)
	assert.Equal(t, 4, blocks1)
	assert.Equal(t, 31, dataCw1)
	assert.Equal(t, 0, blocks2)
	assert.Equal(t, 0, dataCw2)
	assert.Equal(t, 18, ecCw)
	assert.Equal(t, numDataCodewords[Medium][7], blocks1*dataCw1+blocks2*dataCw2)
}

func TestFormatBCHTableCodewordsFit15Bits(t *testing.T) {
	for ec := 0; ec < 4; ec++ {
		for mask := 0; mask < 8; mask++ {
			data := ec<<3 | mask
			bits := formatBCHTable[data]
			assert.True(t, bits>>15 == 0)
		}
	}
}

func TestVersionBCHTable(t *testing.T) {
	assert.Equal(t, 7<<12|versionBCHTable[0]&0xFFF, versionBCHTable[0])
	assert.Equal(t, 40, versionBCHTable[33]>>12)
}
