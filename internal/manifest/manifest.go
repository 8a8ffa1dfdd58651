// Package manifest loads opforge.toml declarations: the types taking
// part in operator synthesis, the primitive operations each declares
// (with failure attributes), its converting constructors, and the
// families or groups attached to it.
//
// Layout:
//
//	[[type]]
//	name = "Meters"
//	copy = "cannot_fail"                       # optional, default cannot_fail
//	attach = ["commutative_ring", "totally_ordered"]
//
//	  [[type.primitive]]
//	  op = "+="                                # compound, comparison or step
//	  effect = "cannot_fail"                   # optional, default may_fail
//	  # other = "int"                          # foreign operand type
//
//	  [[type.convert]]
//	  from = "int"
//	  effect = "cannot_fail"
//
// Attach entries instantiate against a foreign type with the
// name<Other> syntax: attach = ["addable<int>", "subtractable_left<int>"].
package manifest

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"opforge/internal/diag"
	"opforge/internal/effect"
	"opforge/internal/family"
	"opforge/internal/synth"
)

// Entry pairs one declared type with its attach requests.
type Entry struct {
	Decl     *synth.Decl
	Requests []synth.Request
}

// Manifest is one loaded opforge.toml.
type Manifest struct {
	Path  string
	Types []Entry
}

type fileManifest struct {
	Types []typeSection `toml:"type"`
}

type typeSection struct {
	Name       string        `toml:"name"`
	Copy       string        `toml:"copy"`
	Attach     []string      `toml:"attach"`
	Primitives []primSection `toml:"primitive"`
	Converts   []convSection `toml:"convert"`
}

type primSection struct {
	Op     string `toml:"op"`
	Other  string `toml:"other"`
	Effect string `toml:"effect"`
}

type convSection struct {
	From   string `toml:"from"`
	Effect string `toml:"effect"`
}

// Load reads and checks a manifest. Problems are reported through rep;
// ok is false when any of them was an error.
func Load(path string, rep diag.Reporter) (*Manifest, bool) {
	site := diag.Site{Manifest: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		diag.Error(rep, diag.ManUnreadable, site, "cannot read manifest: %v", err).Emit()
		return nil, false
	}
	var file fileManifest
	if err := toml.Unmarshal(raw, &file); err != nil {
		diag.Error(rep, diag.ManBadSyntax, site, "cannot parse manifest: %v", err).Emit()
		return nil, false
	}

	m := &Manifest{Path: path}
	ok := true
	seenTypes := make(map[string]bool)

	for _, section := range file.Types {
		if section.Name == "" {
			diag.Error(rep, diag.ManMissingName, site, "[[type]] entry without a name").Emit()
			ok = false
			continue
		}
		tsite := diag.Site{Manifest: path, Type: section.Name}
		if seenTypes[section.Name] {
			diag.Error(rep, diag.ManDuplicateType, tsite, "type %s declared twice", section.Name).Emit()
			ok = false
			continue
		}
		seenTypes[section.Name] = true

		entry, entryOK := loadType(section, tsite, rep)
		ok = ok && entryOK
		if entry != nil {
			m.Types = append(m.Types, *entry)
		}
	}
	if !ok {
		return nil, false
	}
	return m, true
}

func loadType(section typeSection, tsite diag.Site, rep diag.Reporter) (*Entry, bool) {
	ok := true
	decl := synth.NewDecl(section.Name)

	if section.Copy != "" {
		attr, known := effect.Parse(section.Copy)
		if !known {
			diag.Error(rep, diag.ManUnknownEffect, tsite.In("copy"),
				"unknown effect %q (want may_fail or cannot_fail)", section.Copy).Emit()
			ok = false
		} else {
			decl.Copy(attr)
		}
	}

	seenPrims := make(map[string]bool)
	for _, prim := range section.Primitives {
		psite := tsite.In("primitive " + prim.Op)
		op, known := family.ParseOp(prim.Op)
		if !known {
			diag.Error(rep, diag.ManUnknownOp, psite, "unknown operator %q", prim.Op).Emit()
			ok = false
			continue
		}
		attr, attrOK := parseEffect(prim.Effect, psite, rep)
		if !attrOK {
			ok = false
			continue
		}
		key := prim.Op + "|" + prim.Other
		if seenPrims[key] {
			diag.Error(rep, diag.ManDuplicatePrim, psite, "primitive %q declared twice", prim.Op).Emit()
			ok = false
			continue
		}
		seenPrims[key] = true

		switch {
		case op.Combinable():
			if prim.Other == "" || prim.Other == section.Name {
				decl.Compound(op, attr)
			} else {
				decl.CompoundWith(op, prim.Other, attr)
			}
		case op.IsStep():
			if prim.Other != "" {
				diag.Error(rep, diag.ManBadPrimitive, psite,
					"step primitive %q takes no foreign operand type", prim.Op).Emit()
				ok = false
				continue
			}
			decl.Step(op, attr)
		case op == family.OpEq:
			decl.Equality(attr)
		case op == family.OpLt:
			decl.Ordering(attr)
		default:
			// Non-primitive comparison symbols (!=, >, <=, >=) are
			// derived, never declared.
			diag.Error(rep, diag.ManBadPrimitive, psite,
				"%q is a derived operator, not a declarable primitive", prim.Op).Emit()
			ok = false
		}
	}

	for _, conv := range section.Converts {
		csite := tsite.In("convert " + conv.From)
		if conv.From == "" {
			diag.Error(rep, diag.ManMissingFrom, csite, "[[type.convert]] entry without a from type").Emit()
			ok = false
			continue
		}
		attr, attrOK := parseEffect(conv.Effect, csite, rep)
		if !attrOK {
			ok = false
			continue
		}
		decl.Convert(conv.From, attr)
	}

	entry := &Entry{Decl: decl}
	for _, attach := range section.Attach {
		asite := tsite.In("attach " + attach)
		name, other, parsed := ParseAttach(attach)
		if !parsed {
			diag.Error(rep, diag.ManBadAttach, asite,
				"malformed attach entry %q (want name or name<Other>)", attach).Emit()
			ok = false
			continue
		}
		entry.Requests = append(entry.Requests, synth.Request{
			Name:  name,
			Other: other,
			Site:  asite,
		})
	}
	return entry, ok
}

func parseEffect(raw string, site diag.Site, rep diag.Reporter) (effect.Attr, bool) {
	if raw == "" {
		return effect.MayFail, true
	}
	attr, known := effect.Parse(raw)
	if !known {
		diag.Error(rep, diag.ManUnknownEffect, site,
			"unknown effect %q (want may_fail or cannot_fail)", raw).Emit()
		return effect.MayFail, false
	}
	return attr, true
}

// ParseAttach splits an attach entry into family/group name and
// optional foreign operand type.
func ParseAttach(s string) (name, other string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}
	open := strings.IndexByte(s, '<')
	if open < 0 {
		if strings.ContainsAny(s, ">, ") {
			return "", "", false
		}
		return s, "", true
	}
	if !strings.HasSuffix(s, ">") || open == 0 {
		return "", "", false
	}
	name = s[:open]
	other = strings.TrimSpace(s[open+1 : len(s)-1])
	if other == "" || strings.ContainsAny(other, "<>,") {
		return "", "", false
	}
	return name, other, true
}
