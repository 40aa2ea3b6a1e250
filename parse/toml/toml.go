package toml

// toml 包把 TOML 文档解码成显式的 AST（表 / 数组 / 值），供路径查询使用。
//
// 解码本身交给 github.com/BurntSushi/toml，这里只负责：
// - 把解码结果转换成 Table / Array / Value 节点
// - 区分 TOML 的四种日期时间类型
// - 提供只读的访问辅助函数
//
// 节点树在构建完成后只会被读取，可以在多个 goroutine 之间共享。

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	btoml "github.com/BurntSushi/toml"
)

// =========================
// AST Definitions
// =========================

type ValueKind string

var tomlValueKinds = struct {
	ValueString        ValueKind
	ValueInt           ValueKind
	ValueFloat         ValueKind
	ValueBool          ValueKind
	ValueDatetime      ValueKind
	ValueLocalDate     ValueKind
	ValueLocalTime     ValueKind
	ValueLocalDatetime ValueKind
	ValueTable         ValueKind
	ValueArray         ValueKind
}{
	ValueString:        "string",
	ValueInt:           "int",
	ValueFloat:         "float",
	ValueBool:          "bool",
	ValueDatetime:      "datetime",
	ValueLocalDate:     "local_date",
	ValueLocalTime:     "local_time",
	ValueLocalDatetime: "local_datetime",
	ValueTable:         "table",
	ValueArray:         "array",
}

// IsDatetime reports whether k is one of the four TOML date/time kinds.
func (k ValueKind) IsDatetime() bool {
	switch k {
	case tomlValueKinds.ValueDatetime, tomlValueKinds.ValueLocalDatetime,
		tomlValueKinds.ValueLocalDate, tomlValueKinds.ValueLocalTime:
		return true
	}
	return false
}

type Node interface {
	Kind() ValueKind
	Value() any
}

// -------- Table --------

type Table struct {
	Items map[string]Node
}

func NewTable() *Table {
	return &Table{Items: make(map[string]Node)}
}

func (*Table) Kind() ValueKind { return tomlValueKinds.ValueTable }

func (*Table) Value() any { return nil }

// Keys returns the table's keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.Items))
	for k := range t.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// -------- Array --------

type Array struct {
	Elems []Node
}

func (v *Array) Kind() ValueKind { return tomlValueKinds.ValueArray }

func (v *Array) Value() any { return v.Elems }

// -------- Value --------

type Value struct {
	Type ValueKind
	V    any
}

func (v *Value) Kind() ValueKind { return v.Type }

func (v *Value) Value() any { return v.V }

// String returns the value in its TOML textual form, except that strings are
// returned as-is, without quotes or escaping.
func (v *Value) String() string {
	switch x := v.V.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return formatTime(v.Type, x)
	default:
		return fmt.Sprint(x)
	}
}

// =========================
// Public API
// =========================

// Parse decodes TOML input from r and returns the root Table.
func Parse(r io.Reader) (*Table, error) {
	var doc map[string]any
	if _, err := btoml.NewDecoder(r).Decode(&doc); err != nil {
		var perr btoml.ParseError
		if errors.As(err, &perr) {
			return nil, &SyntaxError{Line: perr.Position.Line, Msg: perr.Message, Err: err}
		}
		return nil, err
	}
	return tableFromMap(doc), nil
}

// SyntaxError is a decoding failure with the line it occurred on. It wraps
// the decoder's error.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("toml:%d: %s", e.Line, e.Msg) }

func (e *SyntaxError) Unwrap() error { return e.Err }

// =========================
// Conversion
// =========================

func tableFromMap(m map[string]any) *Table {
	t := &Table{Items: make(map[string]Node, len(m))}
	for k, v := range m {
		t.Items[k] = FromUntyped(v)
	}
	return t
}

// FromUntyped builds a Node from the generic values produced by the TOML
// decoder: maps, slices, strings, int64, float64, bool and time.Time.
func FromUntyped(v any) Node {
	switch x := v.(type) {
	case map[string]any:
		return tableFromMap(x)
	case []map[string]any:
		arr := &Array{Elems: make([]Node, len(x))}
		for i := range x {
			arr.Elems[i] = tableFromMap(x[i])
		}
		return arr
	case []any:
		arr := &Array{Elems: make([]Node, len(x))}
		for i := range x {
			arr.Elems[i] = FromUntyped(x[i])
		}
		return arr
	case string:
		return &Value{Type: tomlValueKinds.ValueString, V: x}
	case int64:
		return &Value{Type: tomlValueKinds.ValueInt, V: x}
	case int:
		return &Value{Type: tomlValueKinds.ValueInt, V: int64(x)}
	case float64:
		return &Value{Type: tomlValueKinds.ValueFloat, V: x}
	case bool:
		return &Value{Type: tomlValueKinds.ValueBool, V: x}
	case time.Time:
		return &Value{Type: datetimeKind(x), V: x}
	default:
		return &Value{Type: tomlValueKinds.ValueString, V: fmt.Sprint(x)}
	}
}

// datetimeKind tells the TOML date/time kinds apart. The decoder marks local
// values with fixed zones from its internal package, which are not exported,
// so they are matched by zone name.
func datetimeKind(t time.Time) ValueKind {
	switch t.Location().String() {
	case "datetime-local":
		return tomlValueKinds.ValueLocalDatetime
	case "date-local":
		return tomlValueKinds.ValueLocalDate
	case "time-local":
		return tomlValueKinds.ValueLocalTime
	default:
		return tomlValueKinds.ValueDatetime
	}
}

func formatTime(kind ValueKind, t time.Time) string {
	switch kind {
	case tomlValueKinds.ValueLocalDatetime:
		return t.Format("2006-01-02T15:04:05.999999999")
	case tomlValueKinds.ValueLocalDate:
		return t.Format("2006-01-02")
	case tomlValueKinds.ValueLocalTime:
		return t.Format("15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// =========================
// Read Helpers
// =========================

// ToUntyped converts n back into maps, slices and scalars. Date/time values
// keep their time.Time representation, so the result can be handed back to a
// TOML encoder without losing the local date/time kinds.
func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Value:
		return v.V
	case *Array:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Table:
		m := make(map[string]any, len(v.Items))
		for k, child := range v.Items {
			m[k] = ToUntyped(child)
		}
		return m
	default:
		return nil
	}
}

// KindOf returns the kind name of n, or "nothing" for a nil node.
func KindOf(n Node) ValueKind {
	if n == nil {
		return "nothing"
	}
	return n.Kind()
}
