// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/sortdir/pkg/organize"
)

// 🎨 Display configuration
const (
	fileIndent   = 2  // spaces to indent file entries
	summaryWidth = 50 // width of the summary rule
)

// 🎯 Logger handles structured logging with console output.
// It implements organize.Reporter.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

var _ organize.Reporter = (*Logger)(nil)

// 🏭 New creates a new logger writing user-facing lines to console and
// mirroring them to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRecord formats a moved or failed record for display
func formatRecord(rec organize.MoveRecord) string {
	indent := fmt.Sprintf("%*s", fileIndent, "")
	switch rec.Outcome {
	case organize.OutcomeMoved:
		return fmt.Sprintf("%s%s %s → %s",
			indent,
			color.New(color.FgGreen).Sprint("✓"),
			rec.Source,
			color.New(color.FgCyan).Sprint(rec.Category+"/"+rec.Destination))
	case organize.OutcomeFailed:
		return fmt.Sprintf("%s%s Error moving %s: %s",
			indent,
			color.New(color.FgRed).Sprint("✗"),
			rec.Source,
			color.New(color.FgRed).Sprint(rec.Err))
	default:
		return ""
	}
}

// 📝 Report logs one processed entry. Skips only reach the debug log.
func (l *Logger) Report(ctx context.Context, rec organize.MoveRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch rec.Outcome {
	case organize.OutcomeSkipped:
		l.zlog.Debug().
			Str("file", rec.Source).
			Str("reason", rec.Reason).
			Msg("file skipped")
		return
	case organize.OutcomeMoved:
		fmt.Fprintln(l.console, formatRecord(rec))
		l.zlog.Info().
			Str("file", rec.Source).
			Str("category", rec.Category).
			Str("destination", rec.Destination).
			Int64("size", rec.Size).
			Msg("file moved")
	case organize.OutcomeFailed:
		fmt.Fprintln(l.console, formatRecord(rec))
		l.zlog.Error().
			Str("file", rec.Source).
			Str("category", rec.Category).
			Str("step", rec.Reason).
			Err(rec.Err).
			Msg("file move failed")
	}
}

// 📊 Summary prints the end-of-run report
func (l *Logger) Summary(ctx context.Context, sum *organize.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rule := strings.Repeat("=", summaryWidth)
	fmt.Fprintf(l.console, "\n%s\n%s\n%s\n", rule, color.New(color.Bold).Sprint("SUMMARY"), rule)

	if sum.Empty() {
		fmt.Fprintln(l.console, "No files were moved. Directory is already organized or empty.")
	} else {
		for _, name := range sum.Categories() {
			fmt.Fprintf(l.console, "%s: %s\n", color.New(color.FgCyan).Sprint(name), plural(sum.Tally[name], "file"))
		}
		fmt.Fprintf(l.console, "\nTotal files organized: %d (%s)\n", sum.Total(), humanBytes(sum.Bytes))
	}

	if sum.Failed > 0 {
		fmt.Fprintf(l.console, "%s\n", color.New(color.FgRed).Sprintf("Failed: %s", plural(sum.Failed, "file")))
	}

	l.zlog.Info().
		Int("moved", sum.Total()).
		Int("failed", sum.Failed).
		Int("skipped", sum.Skipped).
		Str("bytes", humanBytes(sum.Bytes)).
		Msg("summary")
}

// humanBytes formats a byte total. Totals are sums of listed file sizes and
// never negative; a negative value is shown as zero.
func humanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("sortdir")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
