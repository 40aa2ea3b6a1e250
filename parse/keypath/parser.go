package keypath

import (
	"strconv"
	"strings"
)

type parseState uint8

const (
	stateStart        parseState = iota
	stateEmptyKey                // after '.', waiting for a key
	statePartialKey              // inside a key
	stateEmptyIndex              // after '[', waiting for digits
	statePartialIndex            // inside an index
	stateAfterIndex              // after ']'
)

type parser struct {
	source   string
	state    parseState
	buf      strings.Builder
	bufStart int
	steps    []Step
}

// Parse converts a key path into a Pattern. The single character "." is the
// identity path. Otherwise a path is a sequence of `.key` and `[index]`
// segments; a leading key may omit its dot.
func Parse(source string) (*Pattern, error) {
	if source == "." {
		return &Pattern{}, nil
	}
	p := &parser{source: source}
	for i, c := range source {
		if err := p.next(i, c); err != nil {
			return nil, err
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return &Pattern{steps: p.steps}, nil
}

func (p *parser) next(i int, c rune) error {
	switch p.state {
	case stateStart, stateEmptyKey, stateAfterIndex:
		switch c {
		case '.':
			if p.state == stateEmptyKey {
				return p.errf(i, ErrConsecutiveDots)
			}
			p.state = stateEmptyKey
		case '[':
			p.openIndex(i)
		case ']':
			return p.errf(i, ErrStrayBracket)
		default:
			p.bufStart = i
			p.buf.WriteRune(c)
			p.state = statePartialKey
		}
	case statePartialKey:
		switch c {
		case '.':
			p.flushKey()
			p.state = stateEmptyKey
		case '[':
			p.flushKey()
			p.openIndex(i)
		case ']':
			return p.errf(i, ErrStrayBracket)
		default:
			p.buf.WriteRune(c)
		}
	case stateEmptyIndex, statePartialIndex:
		switch c {
		case '.':
			return p.errf(i, ErrDotInBrackets)
		case '[':
			return p.errf(i, ErrNestedBrackets)
		case ']':
			if p.state == stateEmptyIndex {
				return p.errf(i, ErrEmptyBrackets)
			}
			if err := p.flushIndex(); err != nil {
				return err
			}
			p.state = stateAfterIndex
		default:
			p.buf.WriteRune(c)
			p.state = statePartialIndex
		}
	}
	return nil
}

func (p *parser) finish() error {
	end := len(p.source)
	switch p.state {
	case stateStart:
		return p.errf(end, ErrBlankPath)
	case stateEmptyKey:
		return p.errf(end, ErrTrailingDot)
	case statePartialKey:
		p.flushKey()
	case stateAfterIndex:
		// index already flushed
	case stateEmptyIndex, statePartialIndex:
		return p.errf(end, ErrUnterminatedBracket)
	}
	return nil
}

func (p *parser) openIndex(i int) {
	p.bufStart = i + 1
	p.state = stateEmptyIndex
}

func (p *parser) flushKey() {
	p.steps = append(p.steps, Key(p.buf.String()))
	p.buf.Reset()
}

func (p *parser) flushIndex() error {
	s := p.buf.String()
	p.buf.Reset()
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return &ParseError{Path: p.source, Offset: p.bufStart, Detail: s, Kind: ErrInvalidIndex}
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// all digits, so the only failure left is overflow
		return &ParseError{Path: p.source, Offset: p.bufStart, Detail: s, Kind: ErrInvalidIndex}
	}
	p.steps = append(p.steps, Index(n))
	return nil
}

func (p *parser) errf(offset int, kind error) error {
	return &ParseError{Path: p.source, Offset: offset, Kind: kind}
}
