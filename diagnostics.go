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
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level is the severity of a diagnostic emission.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

// Field is a single structured key/value attached to a diagnostic emission.
type Field struct {
	Key   string
	Value any
}

// Diagnostics is the logging collaborator passed explicitly to encoder and
// decoder constructors (spec §9: "pass an explicit Diagnostics sink... no
// process-wide container"). Internal failures emit through this interface;
// no error codes otherwise leak through object state.
type Diagnostics interface {
	Emit(level Level, msg string, fields ...Field)
}

// NopDiagnostics discards every emission. It is the zero value used when a
// constructor is not given a Diagnostics sink.
type NopDiagnostics struct{}

// Emit implements Diagnostics.
func (NopDiagnostics) Emit(Level, string, ...Field) {}

// ZerologDiagnostics adapts Diagnostics onto a github.com/rs/zerolog logger.
type ZerologDiagnostics struct {
	logger zerolog.Logger
}

// NewZerologDiagnostics wraps w (os.Stderr if nil) in a zerolog logger and
// returns a Diagnostics sink backed by it.
func NewZerologDiagnostics(w io.Writer) *ZerologDiagnostics {
	if w == nil {
		w = os.Stderr
	}
	return &ZerologDiagnostics{logger: zerolog.New(w).With().Timestamp().Str("component", "qrcode").Logger()}
}

// Emit implements Diagnostics.
func (z *ZerologDiagnostics) Emit(level Level, msg string, fields ...Field) {
	var event *zerolog.Event
	switch level {
	case LevelWarn:
		event = z.logger.Warn()
	case LevelInfo:
		event = z.logger.Info()
	default:
		event = z.logger.Debug()
	}
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}

func emitErr(d Diagnostics, level Level, kind ErrorKind, msg string, fields ...Field) *Error {
	if d == nil {
		d = NopDiagnostics{}
	}
	d.Emit(level, msg, append(fields, Field{Key: "kind", Value: kind.String()})...)
	return newError(kind, "%s", msg)
}
