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
	"strings"
)

// ToSVGString renders the symbol as a self-contained SVG document, one
// path per dark module plus a white background rect, bordered by
// QuietZone modules. Kept from the teacher's ToSVGString, adapted onto
// Symbol/moduleMatrix.
func (s *Symbol) ToSVGString() string {
	border := s.QuietZone
	dim := s.Size + border*2

	var path strings.Builder
	for row := 0; row < s.Size; row++ {
		for col := 0; col < s.Size; col++ {
			if !s.matrix.isDark(row, col) {
				continue
			}
			if path.Len() > 0 {
				path.WriteByte(' ')
			}
			fmt.Fprintf(&path, "M%d,%dh1v1h-1z", col+border, row+border)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" stroke="none">`+"\n", dim, dim)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#FFFFFF"/>`+"\n")
	fmt.Fprintf(&b, `<path d="%s" fill="#000000"/>`+"\n", path.String())
	b.WriteString("</svg>\n")
	return b.String()
}
