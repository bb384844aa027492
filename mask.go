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

// The eight mask predicates of spec §4.2. Kept as separate functions per
// the spec's own design note: predicates 5, 6, and 7 look similar but
// differ subtly and each is part of the standard, so they are not unified
// into one parameterized expression.

func maskPredicate0(row, col int) bool { return (row+col)%2 == 0 }

func maskPredicate1(row, col int) bool { return row%2 == 0 }

func maskPredicate2(row, col int) bool { return col%3 == 0 }

func maskPredicate3(row, col int) bool { return (row+col)%3 == 0 }

func maskPredicate4(row, col int) bool { return (row/2+col/3)%2 == 0 }

func maskPredicate5(row, col int) bool { return row*col%2+row*col%3 == 0 }

func maskPredicate6(row, col int) bool { return (row*col%2+row*col%3)%2 == 0 }

func maskPredicate7(row, col int) bool { return ((row+col)%2+row*col%3)%2 == 0 }

var maskPredicates = [8]func(row, col int) bool{
	maskPredicate0, maskPredicate1, maskPredicate2, maskPredicate3,
	maskPredicate4, maskPredicate5, maskPredicate6, maskPredicate7,
}

// applyMask XORs bit0 of every non-NonData cell where predicate m holds.
// Applying the same mask twice is a no-op (XOR is an involution).
func applyMask(m *moduleMatrix, mask int) {
	predicate := maskPredicates[mask]
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if !m.isNonData(row, col) && predicate(row, col) {
				m.toggleDark(row, col)
			}
		}
	}
}
