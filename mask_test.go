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

func TestMaskIsInvolution(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		t.Run(fmt.Sprintf("mask=%d", mask), func(t *testing.T) {
			m := buildBaseMatrix(3)
			before := append([]cellFlags{}, m.cells...)
			applyMask(m, mask)
			applyMask(m, mask)
			assert.Equal(t, before, m.cells)
		})
	}
}

func TestDataPathWalkVisitsEveryDataCell(t *testing.T) {
	for _, version := range []int{1, 2, 7} {
		t.Run(fmt.Sprintf("v=%d", version), func(t *testing.T) {
			m := buildBaseMatrix(version)
			size := version*4 + 17
			count := 0
			dataPathWalk(size, func(row, col int) bool {
				if !m.isNonData(row, col) {
					count++
				}
				return true
			})
			assert.Equal(t, numRawDataModules[version], count)
		})
	}
}

func TestDataPathWalkNeverEntersColumn6(t *testing.T) {
	size := 21
	dataPathWalk(size, func(row, col int) bool {
		assert.NotEqual(t, 6, col)
		return true
	})
}
