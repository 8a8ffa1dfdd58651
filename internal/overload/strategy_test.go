package overload

import (
	"testing"

	"opforge/internal/family"
	"opforge/internal/operand"
)

func TestSelect(t *testing.T) {
	const (
		p = operand.Persistent
		d = operand.Disposable
	)
	tests := []struct {
		reuseRight bool
		l, r       operand.AccessMode
		want       Strategy
	}{
		{false, d, p, ReuseLeft},
		{false, d, d, ReuseLeft},
		{false, p, d, CopyLeft}, // order-sensitive: the right disposable is not sound to reuse
		{false, p, p, CopyLeft},
		{true, d, p, ReuseLeft},
		{true, d, d, ReuseLeft}, // of two candidates, mutating left is the cheaper
		{true, p, d, ReuseRight},
		{true, p, p, CopyLeft},
	}
	for _, tt := range tests {
		got := Select(tt.reuseRight, tt.l, tt.r)
		if got != tt.want {
			t.Errorf("Select(%v, %v, %v) = %v, want %v", tt.reuseRight, tt.l, tt.r, got, tt.want)
		}
	}
}

func TestSelectMirrored(t *testing.T) {
	const (
		p = operand.Persistent
		d = operand.Disposable
	)
	if got := SelectMirrored(d, p); got != CopyRight {
		t.Errorf("disposable foreign left cannot carry a host result, got %v", got)
	}
	if got := SelectMirrored(p, d); got != ReuseRight {
		t.Errorf("disposable host right must be reused, got %v", got)
	}
	if got := SelectMirrored(p, p); got != CopyRight {
		t.Errorf("two persistent operands must copy, got %v", got)
	}
}

func TestStrategyAllocates(t *testing.T) {
	for _, s := range []Strategy{ReuseLeft, ReuseRight, MutateInPlace} {
		if s.Allocates() {
			t.Errorf("%v must not allocate", s)
		}
	}
	for _, s := range []Strategy{CopyLeft, CopyRight, ConvertLeft, SnapshotThenMutate} {
		if !s.Allocates() {
			t.Errorf("%v must allocate", s)
		}
	}
}

func TestExpandValue(t *testing.T) {
	spec, err := family.Instantiate("commutative_addable", "T", "")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	variants := Expand(spec.Provides()[0])
	if len(variants) != 4 {
		t.Fatalf("got %d variants, want 4", len(variants))
	}
	wantPairs := operand.AllModePairs()
	wantStrategies := []Strategy{CopyLeft, ReuseRight, ReuseLeft, ReuseLeft}
	for i, v := range variants {
		if v.Modes != wantPairs[i] {
			t.Errorf("variant %d modes %v, want %v", i, v.Modes, wantPairs[i])
		}
		if v.Strategy != wantStrategies[i] {
			t.Errorf("variant %d strategy %v, want %v", i, v.Strategy, wantStrategies[i])
		}
	}
}

func TestExpandBridge(t *testing.T) {
	spec, err := family.Instantiate("subtractable_left", "T", "U")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	for _, v := range Expand(spec.Provides()[0]) {
		if v.Strategy != ConvertLeft {
			t.Errorf("bridge variant %v selected %v, want %v", v.Modes, v.Strategy, ConvertLeft)
		}
		if v.Result() != FreshValue {
			t.Errorf("bridge results must be fresh, got %v", v.Result())
		}
	}
}

func TestExpandPredicateAndStep(t *testing.T) {
	eq, err := family.Instantiate("equality_comparable", "T", "")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if got := Expand(eq.Provides()[0]); len(got) != 0 {
		t.Fatalf("predicates carry no variants, got %d", len(got))
	}

	inc, err := family.Instantiate("incrementable", "T", "")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	variants := Expand(inc.Provides()[0])
	if len(variants) != 1 {
		t.Fatalf("step families carry one variant, got %d", len(variants))
	}
	v := variants[0]
	if v.Strategy != SnapshotThenMutate || v.Result() != FreshValue {
		t.Fatalf("post-form must snapshot and return fresh, got %v -> %v", v.Strategy, v.Result())
	}
}
