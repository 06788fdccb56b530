// Package codegen lowers a checked Fern AST to textual QBE IR, replacing
// the teacher's internal/ir + internal/backend pair (which transformed an
// AST into Go source) with a single pipeline stage that emits QBE
// directly, per spec.md §4.4: "typed AST -> textual QBE IR" has no
// separate untyped-IR stage in Fern. qbe.go is the text-assembly half,
// grounded on the teacher's backend.Generator emit(format, ...)/indent
// idiom, adapted to QBE's flat instruction syntax.
package codegen

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// builder accumulates one output section (data or function bodies) as
// plain text, the same strings.Builder-plus-emit idiom the teacher's
// backend.Generator uses for Go source.
type builder struct {
	sb strings.Builder
}

func (b *builder) emit(format string, args ...any) {
	b.sb.WriteString(fmt.Sprintf(format, args...))
	b.sb.WriteByte('\n')
}

func (b *builder) raw(s string) { b.sb.WriteString(s) }

// Emitter walks a checked Program and assembles QBE IR text into two
// sections, data definitions and function bodies (each function is
// accumulated on its own, then appended), which Output concatenates data
// section first, then functions, per spec.md §6's layout.
type Emitter struct {
	data  builder
	funcs builder

	strSyms   map[string]string // literal text -> $str.N
	strCount  int
	tempCount int
	labelCnt  int
	localCnt  int

	scopes []map[string]string // source name -> qbe local name
}

// New returns an Emitter ready to lower a Program checked by sema.Checker.
func New() *Emitter {
	return &Emitter{strSyms: map[string]string{}}
}

func (e *Emitter) newTemp() string {
	name := fmt.Sprintf("%%t%d", e.tempCount)
	e.tempCount++
	return name
}

func (e *Emitter) newLabel() string {
	name := fmt.Sprintf("@L%d", e.labelCnt)
	e.labelCnt++
	return name
}

// pushScope/popScope/bind/lookupLocal implement the `%x.<scope-id>`
// collision-avoidance scheme spec.md §4.4 "Symbols" mandates: every
// binding occurrence gets a fresh suffix, so shadowing across nested
// blocks never aliases two different locals to the same QBE temporary.
func (e *Emitter) pushScope() { e.scopes = append(e.scopes, map[string]string{}) }
func (e *Emitter) popScope()  { e.scopes = e.scopes[:len(e.scopes)-1] }

func (e *Emitter) bind(name string) string {
	qbeName := fmt.Sprintf("%%%s.%d", name, e.localCnt)
	e.localCnt++
	e.scopes[len(e.scopes)-1][name] = qbeName
	return qbeName
}

func (e *Emitter) lookupLocal(name string) (string, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return "", false
}

// internString returns the data-section symbol for s, interning it (with
// its trailing NUL terminator, per spec.md §3's "C-compatible terminator")
// on first use so repeated identical literals share one $str.N global.
func (e *Emitter) internString(s string) string {
	if sym, ok := e.strSyms[s]; ok {
		return sym
	}
	sym := fmt.Sprintf("$str.%d", e.strCount)
	e.strCount++
	e.strSyms[s] = sym
	e.data.emit("data %s = { b %s, b 0 }", sym, qbeStringLit(s))
	return sym
}

// qbeStringLit renders s as a QBE `b "..."` byte-string literal, escaping
// characters QBE's own assembler would otherwise choke on.
func qbeStringLit(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// floatLit renders a Fern float literal as a QBE `d_...` immediate with
// enough precision to round-trip, per spec.md §4.4's literal-emission
// contract.
func floatLit(v float64) string {
	return "d_" + strconv.FormatFloat(v, 'g', -1, 64)
}

// Output returns the full assembled IR: the data section, then the
// function section, per spec.md §6's IR file layout ("data section
// first, then functions", "MUST NOT emit forward references outside a
// function body").
func (e *Emitter) Output() string {
	var out strings.Builder
	if e.data.sb.Len() > 0 {
		out.WriteString(e.data.sb.String())
		out.WriteByte('\n')
	}
	out.WriteString(e.funcs.sb.String())
	return out.String()
}

// Write writes the assembled IR to path, spec.md §6's `codegen_write`.
func (e *Emitter) Write(path string) error {
	return os.WriteFile(path, []byte(e.Output()), 0o644)
}

// Emit writes the assembled IR to w, spec.md §6's `codegen_emit`.
func (e *Emitter) Emit(w io.Writer) error {
	_, err := io.WriteString(w, e.Output())
	return err
}
