package effect

import "testing"

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want Attr
	}{
		{CannotFail, CannotFail, CannotFail},
		{CannotFail, MayFail, MayFail},
		{MayFail, CannotFail, MayFail},
		{MayFail, MayFail, MayFail},
	}
	for _, tt := range tests {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPropagate(t *testing.T) {
	if got := Propagate(); got != CannotFail {
		t.Errorf("empty primitive set must propagate CannotFail, got %v", got)
	}
	if got := Propagate(CannotFail, CannotFail, CannotFail); got != CannotFail {
		t.Errorf("all-CannotFail set must propagate CannotFail, got %v", got)
	}
	if got := Propagate(CannotFail, MayFail, CannotFail); got != MayFail {
		t.Errorf("one MayFail primitive must poison the result, got %v", got)
	}
}

func TestParse(t *testing.T) {
	if attr, ok := Parse("cannot_fail"); !ok || attr != CannotFail {
		t.Errorf("Parse(cannot_fail) = (%v, %v)", attr, ok)
	}
	if attr, ok := Parse("may_fail"); !ok || attr != MayFail {
		t.Errorf("Parse(may_fail) = (%v, %v)", attr, ok)
	}
	if _, ok := Parse("noexcept"); ok {
		t.Errorf("Parse must reject unknown spellings")
	}
}
