package object

import (
	"testing"

	"github.com/gql-run/gitql/values"
)

func TestVisibleValuesStripsHidden(t *testing.T) {
	obj := &GitQLObject{Titles: []string{"author"}, HiddenCount: 1}
	row := Row{Values: []values.Value{values.IntValue(1), values.TextValue("alice")}}
	got := obj.VisibleValues(row)
	if len(got) != 1 || got[0] != values.TextValue("alice") {
		t.Errorf("got %v", got)
	}
}

func TestFlattenMergesGroupsInOrder(t *testing.T) {
	obj := &GitQLObject{
		Titles: []string{"n"},
		Groups: []Group{
			{Rows: []Row{{Values: []values.Value{values.IntValue(1)}}}},
			{Rows: []Row{{Values: []values.Value{values.IntValue(2)}}}},
		},
	}
	obj.Flatten()
	if len(obj.Groups) != 1 || len(obj.Groups[0].Rows) != 2 {
		t.Fatalf("got %+v", obj.Groups)
	}
	if obj.Groups[0].Rows[0].Values[0] != values.IntValue(1) || obj.Groups[0].Rows[1].Values[0] != values.IntValue(2) {
		t.Error("flatten did not preserve group/row order")
	}
}

func TestIsSingleGroup(t *testing.T) {
	obj := &GitQLObject{Groups: []Group{{}}}
	if !obj.IsSingleGroup() {
		t.Error("one group should count as single")
	}
	obj.Groups = append(obj.Groups, Group{})
	if obj.IsSingleGroup() {
		t.Error("two groups should not count as single")
	}
}
