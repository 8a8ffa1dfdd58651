package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"opforge/internal/diag"
)

const goodManifest = `
[[type]]
name = "Meters"
attach = ["commutative_ring", "totally_ordered"]

  [[type.primitive]]
  op = "+="
  effect = "cannot_fail"

  [[type.primitive]]
  op = "-="
  effect = "cannot_fail"

  [[type.primitive]]
  op = "*="
  effect = "cannot_fail"

  [[type.primitive]]
  op = "=="
  effect = "cannot_fail"

  [[type.primitive]]
  op = "<"
  effect = "cannot_fail"

[[type]]
name = "Counter"
attach = ["unit_steppable"]

  [[type.primitive]]
  op = "++"
  effect = "cannot_fail"

  [[type.primitive]]
  op = "--"
  effect = "cannot_fail"
`

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opforge.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	out, err := Run(context.Background(), writeManifest(t, goodManifest), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.Merged(0).Items())
	}
	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	// Results keep manifest order regardless of worker scheduling.
	if out.Results[0].Type != "Meters" || out.Results[1].Type != "Counter" {
		t.Errorf("result order = [%s, %s]", out.Results[0].Type, out.Results[1].Type)
	}
	if got := len(out.Results[0].Catalog.Ops); got != 7 {
		t.Errorf("Meters derived %d operators, want 7", got)
	}
	if got := len(out.Results[1].Catalog.Ops); got != 2 {
		t.Errorf("Counter derived %d operators, want 2", got)
	}
}

func TestRunSerialMatchesParallel(t *testing.T) {
	path := writeManifest(t, goodManifest)
	serial, err := Run(context.Background(), path, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Run(serial): %v", err)
	}
	parallel, err := Run(context.Background(), path, Options{Jobs: 8})
	if err != nil {
		t.Fatalf("Run(parallel): %v", err)
	}
	for i := range serial.Results {
		s, p := serial.Results[i], parallel.Results[i]
		if s.Type != p.Type {
			t.Fatalf("result %d: %s vs %s", i, s.Type, p.Type)
		}
		ss, ps := s.Catalog.Signatures(), p.Catalog.Signatures()
		if len(ss) != len(ps) {
			t.Fatalf("%s: %d vs %d operators", s.Type, len(ss), len(ps))
		}
		for j := range ss {
			if ss[j] != ps[j] {
				t.Errorf("%s operator %d: %s vs %s", s.Type, j, ss[j], ps[j])
			}
		}
	}
}

func TestRunLoadFailure(t *testing.T) {
	out, err := Run(context.Background(), filepath.Join(t.TempDir(), "absent.toml"), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.HasErrors() {
		t.Fatal("missing manifest must report errors")
	}
	if out.Manifest != nil || out.Results != nil {
		t.Error("load failure must not produce results")
	}
	if got := out.LoadBag.Items()[0].Code; got != diag.ManUnreadable {
		t.Errorf("code = %v, want ManUnreadable", got)
	}
}

func TestRunDerivationFailureIsPerType(t *testing.T) {
	// The broken type must not poison its neighbor.
	body := goodManifest + `
[[type]]
name = "Broken"
attach = ["totally_ordered"]
`
	out, err := Run(context.Background(), writeManifest(t, body), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.HasErrors() {
		t.Fatal("expected errors for the broken type")
	}
	if len(out.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(out.Results))
	}
	if out.Results[0].Catalog == nil || out.Results[1].Catalog == nil {
		t.Error("healthy types must still derive")
	}
	broken := out.Results[2]
	if broken.Catalog != nil {
		t.Error("broken type must not derive")
	}
	if !broken.Bag.HasErrors() {
		t.Error("broken type must carry its own diagnostics")
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, writeManifest(t, goodManifest), Options{Jobs: 1}); err == nil {
		t.Fatal("canceled context must surface an error")
	}
}

func TestMergedRespectsLimit(t *testing.T) {
	body := `
[[type]]
name = "A"
attach = ["nope1", "nope2", "nope3"]
`
	out, err := Run(context.Background(), writeManifest(t, body), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	merged := out.Merged(2)
	if merged.Len() != 2 {
		t.Errorf("merged %d diagnostics, want 2", merged.Len())
	}
}
