package api

import (
	"encoding/json"
	"testing"
)

func TestFlexInt_Forms(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`15`, 15},
		{`"15"`, 15},
		{`15.0`, 15},
		{`"  7 "`, 7},
		{`null`, 0},
		{`""`, 0},
	}
	for _, c := range cases {
		var v FlexInt
		if err := json.Unmarshal([]byte(c.in), &v); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", c.in, err)
			continue
		}
		if v.Int() != c.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", c.in, v.Int(), c.want)
		}
	}

	bad := []string{`"many"`, `15.7`, `"15.7"`}
	for _, in := range bad {
		var v FlexInt
		if err := json.Unmarshal([]byte(in), &v); err == nil {
			t.Errorf("Unmarshal(%s): expected error, got %d", in, v.Int())
		}
	}
}

func TestFlexBool_Forms(t *testing.T) {
	truthy := []string{`true`, `"true"`, `"TRUE"`, `1`, `"yes"`}
	for _, in := range truthy {
		var v FlexBool
		if err := json.Unmarshal([]byte(in), &v); err != nil || !v.Bool() {
			t.Errorf("Unmarshal(%s): want true, got %v err=%v", in, v, err)
		}
	}

	falsy := []string{`false`, `"false"`, `0`, `"no"`, `null`}
	for _, in := range falsy {
		var v FlexBool
		if err := json.Unmarshal([]byte(in), &v); err != nil || v.Bool() {
			t.Errorf("Unmarshal(%s): want false, got %v err=%v", in, v, err)
		}
	}

	var v FlexBool
	if err := json.Unmarshal([]byte(`"maybe"`), &v); err == nil {
		t.Error("Expected error for unrecognized value")
	}
}
