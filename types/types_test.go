package types

import "testing"

func TestEqualityCollapsesAnyVariantOptional(t *testing.T) {
	if !Equal(AnyType, IntType) {
		t.Error("Any should equal any concrete type")
	}
	if !Equal(IntType, AnyType) {
		t.Error("equality should be symmetric for Any")
	}
	variant := NewVariant(IntType, TextType)
	if !Equal(variant, IntType) {
		t.Error("Variant should equal one of its alternatives")
	}
	opt := NewOptional(IntType)
	if !Equal(opt, IntType) {
		t.Error("Optional(T) should equal T")
	}
	if !Equal(opt, NullType) {
		t.Error("Optional(T) should equal Null")
	}
}

func TestEqualityReflexive(t *testing.T) {
	arr := NewArray(IntType)
	if !Equal(arr, arr) {
		t.Error("equality must be reflexive")
	}
	if Equal(arr, NewArray(TextType)) {
		t.Error("Array(Int) should not equal Array(Text)")
	}
}

func TestBoolOperatorCapability(t *testing.T) {
	cap := Ops(BoolType, OpAnd)
	if !cap.Accepts(BoolType) {
		t.Error("Bool AND Bool should be accepted")
	}
	if cap.Accepts(IntType) {
		t.Error("Bool AND Int should not be accepted")
	}
}

func TestGroupComparisonAcceptsArray(t *testing.T) {
	cap := Ops(IntType, OpGroupEq)
	if !cap.Accepts(NewArray(IntType)) {
		t.Error("Int = ANY(Array(Int)) should be accepted")
	}
	if cap.Accepts(NewArray(TextType)) {
		t.Error("Int = ANY(Array(Text)) should not be accepted")
	}
}

func TestUnaryCapability(t *testing.T) {
	if _, ok := CanPerformUnary(BoolType, OpBang); !ok {
		t.Error("! Bool should be accepted")
	}
	if _, ok := CanPerformUnary(TextType, OpNeg); ok {
		t.Error("-Text should not be accepted")
	}
}

type fakeStringLiteral string

func (f fakeStringLiteral) StringLiteralValue() (string, bool) { return string(f), true }

func TestImplicitCastBoolFromStringLiteral(t *testing.T) {
	if !HasImplicitCastFrom(BoolType, fakeStringLiteral("yes")) {
		t.Error("Bool should implicitly cast from 'yes'")
	}
	if HasImplicitCastFrom(BoolType, fakeStringLiteral("maybe")) {
		t.Error("Bool should not implicitly cast from 'maybe'")
	}
}

func TestExplicitCastBoolToInt(t *testing.T) {
	if !CanPerformExplicitCastTo(IntType, BoolType) {
		t.Error("CAST(bool AS INT) should be allowed")
	}
	if CanPerformExplicitCastTo(DateType, IntType) {
		t.Error("CAST(int AS DATE) should have no direct path")
	}
}
