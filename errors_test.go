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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinelByKind(t *testing.T) {
	err := newError(KindInvalidVersion, "version %d out of range", 99)
	assert.True(t, errors.Is(err, ErrInvalidVersion))
	assert.False(t, errors.Is(err, ErrCapacityExceeded))

	var qe *Error
	assert.True(t, errors.As(err, &qe))
	assert.Equal(t, KindInvalidVersion, qe.Kind)
}

func TestWrapErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := wrapError(KindInvalidInputFormat, cause, "create %s", "out.png")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrInvalidInputFormat))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsKindFollowsErrorChain(t *testing.T) {
	cause := wrapError(KindUncorrectableBlock, errors.New("rs failure"), "block 0")
	assert.True(t, isKind(cause, KindUncorrectableBlock))
	assert.Equal(t, KindUncorrectableBlock, kindOf(cause))
	assert.Equal(t, KindInvalidInputFormat, kindOf(errors.New("not a qrcode error")))
}
