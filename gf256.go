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

// GF(2^8) arithmetic with the ISO/IEC 18004 primitive polynomial 0x11D and
// Reed-Solomon polynomial division / correction built on it. Grounded on
// the teacher's reedSolomonMultiply/reedSolomonComputeDivisor/
// reedSolomonComputeRemainder (package.go, qrcode.go) for the encode-side
// primitives, extended here with a decode-side syndrome/Euclidean-
// algorithm/Chien-search/Forney correction path in the shape described by
// other_examples' jalphad-abstract_algebra qrcode correction fragments
// (syndromes -> locator/evaluator -> roots -> magnitudes -> apply).
const gfPrimitivePoly = 0x11D

var gfExpTable [512]byte
var gfLogTable [256]int

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = byte(x)
		gfLogTable[x] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= gfPrimitivePoly
		}
	}
	for i := 255; i < 512; i++ {
		gfExpTable[i] = gfExpTable[i-255]
	}
}

// gfMul returns a*b in GF(256).
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[gfLogTable[a]+gfLogTable[b]]
}

// gfDiv returns a/b in GF(256). Panics on division by zero.
func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("qrcode: gf256 division by zero")
	}
	if a == 0 {
		return 0
	}
	return gfExpTable[(gfLogTable[a]-gfLogTable[b]+255)%255]
}

// gfInverse returns the multiplicative inverse of a in GF(256).
func gfInverse(a byte) byte {
	return gfExpTable[255-gfLogTable[a]]
}

// gfExp returns alpha^power (power may be negative).
func gfExp(power int) byte {
	power %= 255
	if power < 0 {
		power += 255
	}
	return gfExpTable[power]
}

// reedSolomonComputeDivisor builds the degree-th generator polynomial
// (product of (x - alpha^i) for i in [0,degree)), stored highest-to-lowest
// power with the implicit leading 1 coefficient dropped, exactly as the
// teacher's package.go precomputes reedSolomonDivisors.
func reedSolomonComputeDivisor(degree int) []byte {
	result := make([]byte, degree)
	result[degree-1] = 1
	root := byte(1)
	for i := 0; i < degree; i++ {
		for j := 0; j < len(result); j++ {
			result[j] = gfMul(result[j], root)
			if j+1 < len(result) {
				result[j] ^= result[j+1]
			}
		}
		root = gfMul(root, 0x02)
	}
	return result
}

// polyDivide performs the systematic Reed-Solomon encode described in spec
// §4.1: buf has length dataLen+ecLen with the EC region zeroed; on return
// buf[dataLen:] holds the remainder (the EC codewords). gen is the
// divisor's degree-ecLen coefficients as returned by
// reedSolomonComputeDivisor (leading 1 implicit, NOT present in gen).
func polyDivide(buf []byte, dataLen, ecLen int, gen []byte) {
	for i := 0; i < dataLen; i++ {
		factor := buf[i] ^ buf[dataLen]
		copy(buf[dataLen:], buf[dataLen+1:dataLen+ecLen])
		buf[dataLen+ecLen-1] = 0
		if factor == 0 {
			continue
		}
		for j := 0; j < ecLen; j++ {
			buf[dataLen+j] ^= gfMul(gen[j], factor)
		}
	}
}

// reedSolomonComputeRemainder is the teacher-facing name kept for the
// encoder: compute the ecLen-byte remainder of data divided by divisor.
func reedSolomonComputeRemainder(data, divisor []byte) []byte {
	ecLen := len(divisor)
	buf := make([]byte, len(data)+ecLen)
	copy(buf, data)
	polyDivide(buf, len(data), ecLen, divisor)
	return buf[len(data):]
}

// gfPoly is a polynomial over GF(256), coefficients ordered highest-degree
// first (gfPoly[0] is the coefficient of the highest power present).
type gfPoly []byte

func (p gfPoly) degree() int { return len(p) - 1 }

func (p gfPoly) isZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// evaluateAt evaluates the polynomial at x using Horner's method.
func (p gfPoly) evaluateAt(x byte) byte {
	if x == 0 {
		return p[len(p)-1]
	}
	result := p[0]
	for i := 1; i < len(p); i++ {
		result = gfMul(result, x) ^ p[i]
	}
	return result
}

func gfPolyMul(a, b gfPoly) gfPoly {
	result := make(gfPoly, len(a)+len(b)-1)
	for i, ac := range a {
		if ac == 0 {
			continue
		}
		for j, bc := range b {
			result[i+j] ^= gfMul(ac, bc)
		}
	}
	return result
}

func gfPolyScale(a gfPoly, scalar byte) gfPoly {
	if scalar == 0 {
		return gfPoly{0}
	}
	result := make(gfPoly, len(a))
	for i, c := range a {
		result[i] = gfMul(c, scalar)
	}
	return result
}

func gfPolyAdd(a, b gfPoly) gfPoly {
	if len(a) < len(b) {
		a, b = b, a
	}
	result := make(gfPoly, len(a))
	copy(result, a)
	offset := len(a) - len(b)
	for i, c := range b {
		result[offset+i] ^= c
	}
	return normalizePoly(result)
}

func normalizePoly(p gfPoly) gfPoly {
	i := 0
	for i < len(p)-1 && p[i] == 0 {
		i++
	}
	return p[i:]
}

// computeSyndromes evaluates the received codeword polynomial at
// alpha^0..alpha^(ecLen-1), matching the generator's roots from
// reedSolomonComputeDivisor. All-zero syndromes mean no errors. Leading
// zero coefficients are stripped so degree() is the true degree.
func computeSyndromes(received []byte, ecLen int) gfPoly {
	poly := gfPoly(received)
	syndromes := make(gfPoly, ecLen)
	for i := 0; i < ecLen; i++ {
		syndromes[ecLen-1-i] = poly.evaluateAt(gfExp(i))
	}
	return normalizePoly(syndromes)
}

// euclideanAlgorithm runs the extended Euclidean algorithm to split the
// syndrome polynomial into an error locator (sigma) and error evaluator
// (omega), the Euclid-style alternative spec §4.1 permits in place of
// explicit Berlekamp-Massey.
func euclideanAlgorithm(a, b gfPoly, rDegreeLimit int) (sigma, omega gfPoly, ok bool) {
	if a.degree() < b.degree() {
		a, b = b, a
	}
	rLast, r := a, b
	tLast, t := gfPoly{0}, gfPoly{1}

	for r.degree() >= rDegreeLimit {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t
		if rLast.isZero() {
			return nil, nil, false
		}
		r = rLastLast
		q := gfPoly{0}
		dltInverse := gfInverse(rLast[0])
		for r.degree() >= rLast.degree() && !r.isZero() {
			degreeDiff := r.degree() - rLast.degree()
			scale := gfMul(r[0], dltInverse)
			term := make(gfPoly, degreeDiff+1)
			term[0] = scale
			q = gfPolyAdd(q, term)
			r = gfPolyAdd(r, gfPolyMul(term, rLast))
		}
		t = gfPolyAdd(gfPolyMul(q, tLast), tLastLast)
	}

	sigmaTildeAtZero := t[len(t)-1]
	if sigmaTildeAtZero == 0 {
		return nil, nil, false
	}
	inverse := gfInverse(sigmaTildeAtZero)
	return gfPolyScale(t, inverse), gfPolyScale(r, inverse), true
}

// chienSearch finds the roots of the error locator polynomial sigma by
// brute-force evaluation of sigma at the inverse of every codeword
// position's field element, returning the corresponding error byte
// positions (index 0 = most-significant/first codeword byte).
func chienSearch(sigma gfPoly, codewordLen int) []int {
	var positions []int
	for i := 0; i < codewordLen; i++ {
		invX := gfDiv(1, gfExp(codewordLen-1-i))
		if sigma.evaluateAt(invX) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// forneyMagnitudes computes the error magnitude at each root of sigma using
// the Forney algorithm. QR's Reed-Solomon generator has roots starting at
// alpha^0 (generator base 0), so no extra scaling term is needed beyond
// omega(X_i^-1) divided by the product of (1 - X_j/X_i) over the other
// roots.
func forneyMagnitudes(omega gfPoly, errorPositions []int, codewordLen int) []byte {
	s := len(errorPositions)
	errorLocations := make([]byte, s)
	for i, pos := range errorPositions {
		errorLocations[i] = gfExp(codewordLen - 1 - pos)
	}

	magnitudes := make([]byte, s)
	for i := 0; i < s; i++ {
		xiInverse := gfInverse(errorLocations[i])
		denominator := byte(1)
		for j := 0; j < s; j++ {
			if i == j {
				continue
			}
			term := gfMul(errorLocations[j], xiInverse)
			denominator = gfMul(denominator, term^1)
		}
		magnitudes[i] = gfDiv(omega.evaluateAt(xiInverse), denominator)
	}
	return magnitudes
}

// applyCorrections XORs each error magnitude into the codeword at its
// position (subtraction equals addition in characteristic 2).
func applyCorrections(codeword []byte, positions []int, magnitudes []byte) {
	for i, pos := range positions {
		codeword[pos] ^= magnitudes[i]
	}
}

// correctData corrects up to ecLen/2 byte errors in codeword (length
// dataLen+ecLen) in place. Returns the number of corrected bytes, or -1 if
// the block is uncorrectable (spec §4.1's CorrectData contract).
func correctData(codeword []byte, dataLen, ecLen int) int {
	syndromes := computeSyndromes(codeword, ecLen)
	if syndromes.isZero() {
		return 0
	}

	monomial := make(gfPoly, ecLen+1)
	monomial[0] = 1

	sigma, omega, ok := euclideanAlgorithm(monomial, syndromes, ecLen/2)
	if !ok {
		return -1
	}

	numErrors := sigma.degree()
	if numErrors == 0 {
		return -1
	}

	positions := chienSearch(sigma, len(codeword))
	if len(positions) != numErrors {
		return -1
	}

	magnitudes := forneyMagnitudes(omega, positions, len(codeword))
	applyCorrections(codeword, positions, magnitudes)

	if !computeSyndromes(codeword, ecLen).isZero() {
		return -1
	}
	return len(positions)
}
