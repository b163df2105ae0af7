package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListForms(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"json array", `["Drama","Romance"]`, []string{"Drama", "Romance"}},
		{"array literal in string", `"[\"Drama\", \"Romance\"]"`, []string{"Drama", "Romance"}},
		{"comma separated", `"Drama, Romance"`, []string{"Drama", "Romance"}},
		{"single value", `"Drama"`, []string{"Drama"}},
		{"single quoted pseudo array", `"['teacher', 'novelist']"`, []string{"teacher", "novelist"}},
		{"malformed json falls back to comma split", `"[Drama, Romance"`, []string{"[Drama", "Romance"}},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
	}
	for _, c := range cases {
		var l StringList
		if err := json.Unmarshal([]byte(c.raw), &l); err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if !reflect.DeepEqual([]string(l), c.expected) {
			t.Errorf("%s: got %v, expected %v", c.name, l, c.expected)
		}
	}
}

func TestFlexBool(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`"true"`:  true,
		`"1"`:     true,
		`false`:   false,
		`"false"`: false,
		`"0"`:     false,
		`""`:      false,
		`null`:    false,
	}
	for raw, expected := range cases {
		var b FlexBool
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if b.Bool() != expected {
			t.Errorf("%s: got %v, expected %v", raw, b, expected)
		}
	}
}

func TestFlexInt(t *testing.T) {
	cases := map[string]int{
		`7`:       7,
		`"7"`:     7,
		`7.0`:     7,
		`null`:    0,
		`""`:      0,
		`"seven"`: 0,
	}
	for raw, expected := range cases {
		var i FlexInt
		if err := json.Unmarshal([]byte(raw), &i); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if i.Int() != expected {
			t.Errorf("%s: got %d, expected %d", raw, i, expected)
		}
	}
}

func TestSplitPipe(t *testing.T) {
	got := SplitPipe("Frances Marion | Mary Pickford|  ")
	expected := []string{"Frances Marion", "Mary Pickford"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}
	if SplitPipe("") != nil {
		t.Errorf("empty input should yield nil")
	}
}
