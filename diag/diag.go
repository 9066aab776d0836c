// Package diag implements centralized diagnostic collection and
// rendering for CynicScript: lexical, syntax, semantic, type-narrowing,
// and runtime diagnostics all funnel through here so every stage can
// report a source-underlined message the same way (spec.md §7).
//
// This generalizes the teacher's ad hoc error handling — a parser
// `errors []string` slice (kristofer/smog/pkg/parser/parser.go) and a
// VM `RuntimeError` with a hand-built stack trace
// (kristofer/smog/pkg/vm/errors.go) — into one structured Diagnostic type
// and one Bag that every stage appends to.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/kristofer/cynicscript/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Stage names the pipeline stage a Diagnostic originated from.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StagePass    Stage = "pass"
	StageCompile Stage = "compile"
	StageRun     Stage = "run"
)

// Diagnostic is one reported condition, tied back to the token that
// produced it so it can be rendered with a caret under the offending
// source column.
type Diagnostic struct {
	Severity Severity
	Stage    Stage
	Token    token.Token
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s at %s: %s", d.Stage, d.Severity, d.Token.Pos, d.Message)
}

// Bag accumulates diagnostics across an entire compile-and-run pipeline,
// mirroring the parser's "don't stop at first error" policy (spec.md
// §4.2) generalized to every stage.
type Bag struct {
	items []Diagnostic
}

// Add appends a Diagnostic to the bag.
func (b *Bag) Add(sev Severity, stage Stage, tok token.Token, format string, args ...any) {
	b.items = append(b.items, Diagnostic{
		Severity: sev,
		Stage:    stage,
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errorf is shorthand for Add(Error, ...).
func (b *Bag) Errorf(stage Stage, tok token.Token, format string, args ...any) {
	b.Add(Error, stage, tok, format, args...)
}

// Warnf is shorthand for Add(Warn, ...).
func (b *Bag) Warnf(stage Stage, tok token.Token, format string, args ...any) {
	b.Add(Warn, stage, tok, format, args...)
}

// Infof is shorthand for Add(Info, ...).
func (b *Bag) Infof(stage Stage, tok token.Token, format string, args ...any) {
	b.Add(Info, stage, tok, format, args...)
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Items returns the accumulated diagnostics in report order.
func (b *Bag) Items() []Diagnostic { return b.items }

// Render formats all diagnostics in the bag against the original source
// buffer, producing the "file path, line, column, caret-pointed source
// excerpt" presentation required by spec.md §7. Severity tags are
// colorized with fatih/color; color.NoColor (set by that package based on
// terminal detection) silently disables ANSI codes on non-tty output.
func Render(src, filename string, b *Bag) string {
	var sb strings.Builder
	for _, d := range b.items {
		renderOne(&sb, src, filename, d)
	}
	return sb.String()
}

func renderOne(sb *strings.Builder, src, filename string, d Diagnostic) {
	tag := severityTag(d.Severity)
	fmt.Fprintf(sb, "%s: %s:%d:%d: %s\n", tag, filename, d.Token.Pos.Line, d.Token.Pos.Column, d.Message)

	line := sourceLine(src, d.Token.Pos.Offset)
	if line == "" {
		return
	}
	fmt.Fprintf(sb, "  %s\n", line)
	col := d.Token.Pos.Column
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(sb, "  %s^\n", strings.Repeat(" ", col-1))
}

func severityTag(s Severity) string {
	switch s {
	case Error:
		return color.New(color.FgRed, color.Bold).Sprint("error")
	case Warn:
		return color.New(color.FgYellow, color.Bold).Sprint("warning")
	default:
		return color.New(color.FgCyan, color.Bold).Sprint("info")
	}
}

// sourceLine returns the full line of src containing byte offset off.
func sourceLine(src string, off int) string {
	if off < 0 || off > len(src) {
		return ""
	}
	start := strings.LastIndexByte(src[:off], '\n') + 1
	end := strings.IndexByte(src[off:], '\n')
	if end == -1 {
		return src[start:]
	}
	return src[start : off+end]
}
