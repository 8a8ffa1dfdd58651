package catalog

import (
	"testing"

	"opforge/internal/diag"
	"opforge/internal/effect"
	"opforge/internal/family"
	"opforge/internal/synth"
)

func metersCatalog(t *testing.T) *synth.Catalog {
	t.Helper()
	d := synth.NewDecl("Meters").
		Compound(family.OpAdd, effect.CannotFail).
		Equality(effect.CannotFail)
	c, ok := synth.Attach(diag.NopReporter{}, d,
		synth.Request{Name: "commutative_addable"},
		synth.Request{Name: "equality_comparable"},
	)
	if !ok {
		t.Fatal("Attach failed")
	}
	return c
}

func TestBuild(t *testing.T) {
	digest := DigestBytes([]byte("manifest body"))
	p, err := Build("opforge.toml", digest, []*synth.Catalog{metersCatalog(t), nil})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Schema != diskSchemaVersion {
		t.Errorf("schema = %d", p.Schema)
	}
	if p.Manifest != "opforge.toml" || p.Digest != digest {
		t.Errorf("identity = (%s, %x)", p.Manifest, p.Digest)
	}
	if len(p.Types) != 1 {
		t.Fatalf("flattened %d types, want 1 (nil catalogs skipped)", len(p.Types))
	}
	tr := p.Types[0]
	if tr.Name != "Meters" || len(tr.Ops) != 2 {
		t.Fatalf("type record = %s with %d ops", tr.Name, len(tr.Ops))
	}
	if p.OpCount != 2 {
		t.Errorf("OpCount = %d, want 2", p.OpCount)
	}

	var add, ne *OpRecord
	for i := range tr.Ops {
		switch tr.Ops[i].Signature {
		case "Meters + Meters":
			add = &tr.Ops[i]
		case "Meters != Meters":
			ne = &tr.Ops[i]
		}
	}
	if add == nil || ne == nil {
		t.Fatalf("op records = %v", tr.Ops)
	}
	if add.Family != "commutative_addable" || add.Effect != "cannot_fail" {
		t.Errorf("add record = %+v", *add)
	}
	if len(add.Variants) != 4 {
		t.Errorf("add has %d variants, want 4", len(add.Variants))
	}
	if len(ne.Variants) != 0 {
		t.Errorf("predicate has %d variants, want 0", len(ne.Variants))
	}
}

func TestDiskCacheRoundtrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	digest := DigestBytes([]byte("manifest body"))
	p, err := Build("opforge.toml", digest, []*synth.Catalog{metersCatalog(t)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := cache.Put(digest, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got Payload
	hit, err := cache.Get(digest, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Manifest != p.Manifest || got.OpCount != p.OpCount || len(got.Types) != len(p.Types) {
		t.Errorf("roundtrip payload = %+v", got)
	}

	other := DigestBytes([]byte("different body"))
	if hit, err := cache.Get(other, &got); err != nil || hit {
		t.Errorf("Get(miss) = (%v, %v)", hit, err)
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	digest := DigestBytes([]byte("manifest body"))
	stale := &Payload{Schema: diskSchemaVersion + 1, Manifest: "opforge.toml", Digest: digest}
	if err := cache.Put(digest, stale); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got Payload
	if hit, err := cache.Get(digest, &got); err != nil || hit {
		t.Errorf("stale schema must miss, got (%v, %v)", hit, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	digest := DigestBytes([]byte("manifest body"))
	p, err := Build("opforge.toml", digest, []*synth.Catalog{metersCatalog(t)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := cache.Put(digest, p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var got Payload
	if hit, _ := cache.Get(digest, &got); hit {
		t.Error("dropped cache must miss")
	}
}

func TestNilCache(t *testing.T) {
	var cache *DiskCache
	digest := DigestBytes(nil)
	if err := cache.Put(digest, &Payload{}); err != nil {
		t.Errorf("nil cache Put: %v", err)
	}
	var got Payload
	if hit, err := cache.Get(digest, &got); err != nil || hit {
		t.Errorf("nil cache Get = (%v, %v)", hit, err)
	}
}
