package values

import (
	"testing"

	"github.com/gql-run/gitql/types"
)

func TestIntervalStringElidesZeroFields(t *testing.T) {
	iv := Interval{Days: 2, Hours: 1, Minutes: 30}
	got := iv.String()
	want := "2 days 1:30"
	if got != want {
		t.Errorf("Interval.String() = %q, want %q", got, want)
	}
}

func TestIntervalStringAllZero(t *testing.T) {
	if got := (Interval{}).String(); got != "0 seconds" {
		t.Errorf("zero interval String() = %q, want %q", got, "0 seconds")
	}
}

func TestIntervalAddDoesNotNormalize(t *testing.T) {
	a := Interval{Minutes: 90}
	b := Interval{Minutes: 30}
	got := a.Add(b)
	if got.Minutes != 120 || got.Hours != 0 {
		t.Errorf("Add() = %+v, want Minutes=120 Hours=0 (no normalization)", got)
	}
}

func TestParseDateTimeRoundTrip(t *testing.T) {
	ts, ok := ParseDateTime("2024-01-02 03:04:05")
	if !ok {
		t.Fatal("expected successful parse")
	}
	if got := TimestampToDateTime(ts); got != "2024-01-02 03:04:05" {
		t.Errorf("round trip = %q", got)
	}
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	if _, ok := ParseDateTime("not a date"); ok {
		t.Error("expected ok=false for malformed input")
	}
}

func TestArithAddIntAndFloatPromotesToFloat(t *testing.T) {
	v, err := Arith(types.OpAdd, IntValue(1), FloatValue(2.5))
	if err != nil {
		t.Fatal(err)
	}
	if f, ok := v.(FloatValue); !ok || f != 3.5 {
		t.Errorf("got %#v, want FloatValue(3.5)", v)
	}
}

func TestArithAddIntsStaysInt(t *testing.T) {
	v, err := Arith(types.OpAdd, IntValue(1), IntValue(2))
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := v.(IntValue); !ok || i != 3 {
		t.Errorf("got %#v, want IntValue(3)", v)
	}
}

func TestArithTextConcat(t *testing.T) {
	v, err := Arith(types.OpAdd, TextValue("foo"), TextValue("bar"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Literal() != "foobar" {
		t.Errorf("got %q, want %q", v.Literal(), "foobar")
	}
}

func TestArithDivisionByZero(t *testing.T) {
	if _, err := Arith(types.OpDiv, IntValue(1), IntValue(0)); err == nil {
		t.Error("expected division-by-zero error")
	}
}

func TestArithIntervalAddition(t *testing.T) {
	a := IntervalValue{Interval{Hours: 1}}
	b := IntervalValue{Interval{Hours: 2}}
	v, err := Arith(types.OpAdd, a, b)
	if err != nil {
		t.Fatal(err)
	}
	iv := v.(IntervalValue)
	if iv.Hours != 3 {
		t.Errorf("got Hours=%d, want 3", iv.Hours)
	}
}

func TestCompareOrdering(t *testing.T) {
	v, err := Compare(types.OpLt, IntValue(1), IntValue(2))
	if err != nil {
		t.Fatal(err)
	}
	if v != BoolValue(true) {
		t.Errorf("1 < 2 should be true, got %v", v)
	}
}

func TestCompareIncomparableTypes(t *testing.T) {
	if _, err := Compare(types.OpLt, IntValue(1), TextValue("a")); err == nil {
		t.Error("expected incomparable-types error for int < text")
	}
}

func TestNullSafeEqual(t *testing.T) {
	if NullSafeEqual(NullValue{}, NullValue{}) != BoolValue(true) {
		t.Error("NULL <=> NULL should be true")
	}
	if NullSafeEqual(NullValue{}, IntValue(1)) != BoolValue(false) {
		t.Error("NULL <=> 1 should be false")
	}
	if NullSafeEqual(IntValue(1), IntValue(1)) != BoolValue(true) {
		t.Error("1 <=> 1 should be true")
	}
}

func TestGroupCompareAnyAll(t *testing.T) {
	arr := ArrayValue{Of: types.IntType, Values: []Value{IntValue(1), IntValue(2), IntValue(3)}}
	any, err := GroupCompare(types.OpGroupEq, IntValue(2), arr, false)
	if err != nil {
		t.Fatal(err)
	}
	if any != BoolValue(true) {
		t.Error("2 = ANY([1,2,3]) should be true")
	}
	all, err := GroupCompare(types.OpGroupEq, IntValue(2), arr, true)
	if err != nil {
		t.Fatal(err)
	}
	if all != BoolValue(false) {
		t.Error("2 = ALL([1,2,3]) should be false")
	}
}

func TestLikeWildcards(t *testing.T) {
	if !Like("hello", "h%") {
		t.Error(`"hello" should match "h%"`)
	}
	if !Like("hello", "h_llo") {
		t.Error(`"hello" should match "h_llo"`)
	}
	if Like("hello", "world") {
		t.Error(`"hello" should not match "world"`)
	}
}

func TestGlobWildcards(t *testing.T) {
	if !Glob("report.go", "*.go") {
		t.Error(`"report.go" should match "*.go"`)
	}
	if Glob("report.go", "?.go") {
		t.Error(`"report.go" should not match "?.go"`)
	}
}

func TestRegexpMatch(t *testing.T) {
	ok, err := Regexp("v1.2.3", `^v\d+\.\d+\.\d+$`)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected match")
	}
}

func TestRegexpInvalidPattern(t *testing.T) {
	if _, err := Regexp("x", "("); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestIndexArrayOutOfRange(t *testing.T) {
	arr := ArrayValue{Of: types.IntType, Values: []Value{IntValue(1)}}
	if _, err := Index(arr, 5); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestSliceArray(t *testing.T) {
	arr := ArrayValue{Of: types.IntType, Values: []Value{IntValue(1), IntValue(2), IntValue(3)}}
	v, err := Slice(arr, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	got := v.(ArrayValue)
	if len(got.Values) != 2 || got.Values[0] != IntValue(2) {
		t.Errorf("got %v", got)
	}
}

func TestCastTextToIntRoundTrip(t *testing.T) {
	v, err := Cast(TextValue("42"), types.IntType)
	if err != nil {
		t.Fatal(err)
	}
	if v != IntValue(42) {
		t.Errorf("got %v, want IntValue(42)", v)
	}
}

func TestCastInvalidTextToInt(t *testing.T) {
	if _, err := Cast(TextValue("abc"), types.IntType); err == nil {
		t.Error("expected cast error")
	}
}

func TestCastBoolFromTextLiteral(t *testing.T) {
	v, err := Cast(TextValue("yes"), types.BoolType)
	if err != nil {
		t.Fatal(err)
	}
	if v != BoolValue(true) {
		t.Errorf("got %v, want true", v)
	}
}
