// Package catalog serializes derived-operator catalogs: a flat record
// form for machine output and a msgpack disk cache keyed by manifest
// digest, so repeated runs over an unchanged manifest skip derivation.
package catalog

import (
	"crypto/sha256"
	"fmt"

	"fortio.org/safecast"

	"opforge/internal/synth"
)

// Digest identifies manifest content.
type Digest [sha256.Size]byte

// DigestBytes hashes raw manifest content.
func DigestBytes(content []byte) Digest {
	return sha256.Sum256(content)
}

// VariantRecord is the flat form of one overload variant.
type VariantRecord struct {
	Left     string
	Right    string
	Strategy string
	Result   string
}

// OpRecord is the flat form of one derived operator.
type OpRecord struct {
	Signature string
	Family    string
	Effect    string
	Variants  []VariantRecord
}

// TypeRecord is the flat form of one type's catalog.
type TypeRecord struct {
	Name string
	Ops  []OpRecord
}

// Payload is the cached artifact for one manifest run.
type Payload struct {
	// Schema is bumped whenever the record format changes.
	Schema uint16

	Manifest string
	Digest   Digest

	Types   []TypeRecord
	OpCount uint32
}

// Build flattens derived catalogs into a payload.
func Build(manifestPath string, digest Digest, catalogs []*synth.Catalog) (*Payload, error) {
	p := &Payload{
		Schema:   diskSchemaVersion,
		Manifest: manifestPath,
		Digest:   digest,
	}
	total := 0
	for _, c := range catalogs {
		if c == nil {
			continue
		}
		tr := TypeRecord{Name: c.Type, Ops: make([]OpRecord, 0, len(c.Ops))}
		for _, op := range c.Ops {
			rec := OpRecord{
				Signature: op.Sig.String(),
				Family:    op.Family,
				Effect:    op.Effect.String(),
			}
			for _, v := range op.Variants {
				rec.Variants = append(rec.Variants, VariantRecord{
					Left:     v.Modes.Left.String(),
					Right:    v.Modes.Right.String(),
					Strategy: v.Strategy.String(),
					Result:   v.Result().String(),
				})
			}
			tr.Ops = append(tr.Ops, rec)
		}
		total += len(tr.Ops)
		p.Types = append(p.Types, tr)
	}
	count, err := safecast.Conv[uint32](total)
	if err != nil {
		return nil, fmt.Errorf("operator count overflow: %w", err)
	}
	p.OpCount = count
	return p, nil
}
