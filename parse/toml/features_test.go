package toml

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	btoml "github.com/BurntSushi/toml"
	"github.com/smartystreets/goconvey/convey"
)

func TestArrayOfTables(t *testing.T) {
	convey.Convey("array of tables", t, func() {
		src := `
[[products]]
name = "Hammer"
sku = 738594937

[[products]]
name = "Nails"
sku = 284758393
count = 100
`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		n, ok := get(root, "products")
		convey.So(ok, convey.ShouldBeTrue)
		arr := n.(*Array)
		convey.So(len(arr.Elems), convey.ShouldEqual, 2)
		first := arr.Elems[0].(*Table)
		convey.So(mustString(first.Items["name"]), convey.ShouldEqual, "Hammer")
		second := arr.Elems[1].(*Table)
		convey.So(mustInt(second.Items["count"]), convey.ShouldEqual, 100)
	})
}

func TestInlineTable(t *testing.T) {
	convey.Convey("inline table", t, func() {
		src := `owner = { name = "Tom", dob = 1979-05-27T07:32:00Z }`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		n, ok := get(root, "owner")
		convey.So(ok, convey.ShouldBeTrue)
		tbl := n.(*Table)
		convey.So(mustString(tbl.Items["name"]), convey.ShouldEqual, "Tom")
		convey.So(tbl.Items["dob"].Kind(), convey.ShouldEqual, tomlValueKinds.ValueDatetime)
		convey.So(tbl.Keys(), convey.ShouldResemble, []string{"dob", "name"})
	})
}

func TestMultilineBasicString(t *testing.T) {
	convey.Convey("multiline basic string", t, func() {
		src := `desc = """first
second
third"""`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		n, ok := get(root, "desc")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(mustString(n), convey.ShouldEqual, "first\nsecond\nthird")
	})
}

func TestQuotedKeys(t *testing.T) {
	convey.Convey("quoted keys", t, func() {
		src := `"a.b" = 1
a.c = 2`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		n, ok := get(root, "a.b")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(mustInt(n), convey.ShouldEqual, 1)
		n2, ok2 := get(root, "a", "c")
		convey.So(ok2, convey.ShouldBeTrue)
		convey.So(mustInt(n2), convey.ShouldEqual, 2)
	})
}

func TestSpecialFloatsAndInts(t *testing.T) {
	convey.Convey("floats and ints with underscores and bases", t, func() {
		src := `
f1 = +inf
f2 = -inf
f3 = nan
i1 = 1_000
hex = 0xDEADBEEF
oct = 0o755
bin = 0b1010
`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		f1, _ := get(root, "f1")
		convey.So(f1.(*Value).V.(float64), convey.ShouldEqual, math.Inf(+1))
		convey.So(f1.(*Value).String(), convey.ShouldEqual, "inf")
		f2, _ := get(root, "f2")
		convey.So(f2.(*Value).V.(float64), convey.ShouldEqual, math.Inf(-1))
		f3, _ := get(root, "f3")
		convey.So(f3.(*Value).String(), convey.ShouldEqual, "nan")
		i1, _ := get(root, "i1")
		convey.So(mustInt(i1), convey.ShouldEqual, 1000)
		hex, _ := get(root, "hex")
		convey.So(mustInt(hex), convey.ShouldEqual, 0xDEADBEEF)
		oct, _ := get(root, "oct")
		convey.So(mustInt(oct), convey.ShouldEqual, 0755)
		bin, _ := get(root, "bin")
		convey.So(mustInt(bin), convey.ShouldEqual, 10)
	})
}

func TestMultilineArrayAndTrailingComma(t *testing.T) {
	convey.Convey("multiline array with trailing comma", t, func() {
		src := `
ports = [
  8001,
  8002,
]
`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		n, ok := get(root, "ports")
		convey.So(ok, convey.ShouldBeTrue)
		arr := ToUntyped(n).([]any)
		convey.So(len(arr), convey.ShouldEqual, 2)
		convey.So(arr[0], convey.ShouldEqual, int64(8001))
		convey.So(arr[1], convey.ShouldEqual, int64(8002))
	})
}

func TestDatetimeKinds(t *testing.T) {
	convey.Convey("date and time kinds", t, func() {
		src := `
odt = 1979-05-27T07:32:00Z
ldt = 1979-05-27T07:32:00
ld = 2021-06-15
lt = 07:32:00
`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)

		cases := []struct {
			key  string
			kind ValueKind
			text string
		}{
			{"odt", tomlValueKinds.ValueDatetime, "1979-05-27T07:32:00Z"},
			{"ldt", tomlValueKinds.ValueLocalDatetime, "1979-05-27T07:32:00"},
			{"ld", tomlValueKinds.ValueLocalDate, "2021-06-15"},
			{"lt", tomlValueKinds.ValueLocalTime, "07:32:00"},
		}
		for _, c := range cases {
			n, ok := get(root, c.key)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(n.Kind(), convey.ShouldEqual, c.kind)
			convey.So(n.Kind().IsDatetime(), convey.ShouldBeTrue)
			convey.So(n.(*Value).String(), convey.ShouldEqual, c.text)
		}
	})
}

func TestDatetimeKindByZone(t *testing.T) {
	convey.Convey("local kinds are recognised by the decoder's zone names", t, func() {
		base := time.Date(2021, 6, 15, 7, 32, 0, 0, time.UTC)
		convey.So(datetimeKind(base.In(time.FixedZone("datetime-local", 0))), convey.ShouldEqual, tomlValueKinds.ValueLocalDatetime)
		convey.So(datetimeKind(base.In(time.FixedZone("date-local", 0))), convey.ShouldEqual, tomlValueKinds.ValueLocalDate)
		convey.So(datetimeKind(base.In(time.FixedZone("time-local", 0))), convey.ShouldEqual, tomlValueKinds.ValueLocalTime)
		convey.So(datetimeKind(base), convey.ShouldEqual, tomlValueKinds.ValueDatetime)
		convey.So(datetimeKind(base.In(time.FixedZone("", 3600))), convey.ShouldEqual, tomlValueKinds.ValueDatetime)
	})
}

func TestScalarText(t *testing.T) {
	convey.Convey("scalars render in their natural form", t, func() {
		src := `
s = "testing"
f = 5.8
whole = 3.0
b = true
i = -42
`
		root, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldBeNil)
		want := map[string]string{
			"s":     "testing",
			"f":     "5.8",
			"whole": "3.0",
			"b":     "true",
			"i":     "-42",
		}
		for key, text := range want {
			n, _ := get(root, key)
			convey.So(n.(*Value).String(), convey.ShouldEqual, text)
		}
	})
}

func TestParseError(t *testing.T) {
	convey.Convey("syntax errors carry the line number", t, func() {
		src := "a = 1\nb = = 2\n"
		_, err := Parse(strings.NewReader(src))
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldStartWith, "toml:2:")

		var serr *SyntaxError
		convey.So(errors.As(err, &serr), convey.ShouldBeTrue)
		convey.So(serr.Line, convey.ShouldEqual, 2)
		var perr btoml.ParseError
		convey.So(errors.As(err, &perr), convey.ShouldBeTrue)
	})

	convey.Convey("duplicate keys are rejected", t, func() {
		_, err := Parse(strings.NewReader("a = 1\na = 2\n"))
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("empty input is an empty table", t, func() {
		root, err := Parse(strings.NewReader(""))
		convey.So(err, convey.ShouldBeNil)
		convey.So(root.Items, convey.ShouldBeEmpty)
	})
}

func TestToUntypedRoundTrip(t *testing.T) {
	convey.Convey("FromUntyped and ToUntyped agree", t, func() {
		in := map[string]any{
			"a": []any{int64(1), "two", 3.5},
			"t": map[string]any{"ok": true},
		}
		n := FromUntyped(in)
		convey.So(n.Kind(), convey.ShouldEqual, tomlValueKinds.ValueTable)
		convey.So(ToUntyped(n), convey.ShouldResemble, in)
		convey.So(KindOf(nil), convey.ShouldEqual, ValueKind("nothing"))
	})
}
