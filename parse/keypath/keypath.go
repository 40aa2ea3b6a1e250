// Package keypath implements the key path language used to address a value
// inside a TOML document, e.g. `.table.array[0].name`.
//
// A path is parsed once into a Pattern and then evaluated against a document
// tree with Find. Both operations are pure: patterns are immutable and the
// tree is only read, so a Pattern may be used from several goroutines.
package keypath

import (
	"strconv"
	"strings"

	"github.com/dzjyyds666/tq/parse/toml"
)

type StepKind uint8

const (
	KindTableKey StepKind = iota
	KindArrayIndex
)

func (k StepKind) String() string {
	switch k {
	case KindTableKey:
		return "key"
	case KindArrayIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Step is one traversal step: a table key or an array index.
type Step struct {
	Kind  StepKind
	Key   string
	Index int
}

// Key returns a step descending into a table member.
func Key(name string) Step { return Step{Kind: KindTableKey, Key: name} }

// Index returns a step descending into an array element.
func Index(i int) Step { return Step{Kind: KindArrayIndex, Index: i} }

// String returns the step's identity: the key name or the decimal index.
func (s Step) String() string {
	if s.Kind == KindArrayIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Pattern is a parsed key path. The zero-step pattern selects the whole
// document.
type Pattern struct {
	steps []Step
}

// Len returns the number of steps.
func (p *Pattern) Len() int { return len(p.steps) }

// Steps returns a copy of the pattern's steps in traversal order.
func (p *Pattern) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// LastKey returns the name of the last table key in the pattern, or "" when
// the pattern has none.
func (p *Pattern) LastKey() string {
	for i := len(p.steps) - 1; i >= 0; i-- {
		if p.steps[i].Kind == KindTableKey {
			return p.steps[i].Key
		}
	}
	return ""
}

// String renders the pattern in canonical form; Parse(p.String()) yields an
// equal pattern.
func (p *Pattern) String() string {
	return formatSteps(p.steps)
}

func formatSteps(steps []Step) string {
	if len(steps) == 0 {
		return "."
	}
	var b strings.Builder
	for _, s := range steps {
		switch s.Kind {
		case KindTableKey:
			b.WriteByte('.')
			b.WriteString(s.Key)
		case KindArrayIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Lookup parses path and evaluates it against root.
func Lookup(path string, root toml.Node) (toml.Node, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Find(root)
}
