package synth

import (
	"errors"

	"opforge/internal/diag"
	"opforge/internal/effect"
	"opforge/internal/family"
	"opforge/internal/group"
	"opforge/internal/overload"
)

// Request names one family or group to attach, optionally instantiated
// against a foreign operand type ("addable<int>").
type Request struct {
	Name  string
	Other string
	Site  diag.Site
}

func (r Request) String() string {
	if r.Other == "" {
		return r.Name
	}
	return r.Name + "<" + r.Other + ">"
}

// Attach matches the requested families and groups against the
// declaration and derives the operator catalog. Definition-time
// problems are reported through rep; any error prevents generation
// entirely (ok is false and the catalog nil — there is no partial
// generation).
func Attach(rep diag.Reporter, d *Decl, reqs ...Request) (*Catalog, bool) {
	type resolved struct {
		spec family.Spec
		site diag.Site
	}
	var specs []resolved
	failed := false

	for _, req := range reqs {
		site := req.Site
		if site.IsZero() {
			site = diag.Site{Type: d.name, Detail: req.String()}
		}
		switch {
		case group.Known(req.Name):
			members, err := group.Resolve(req.Name, d.name, req.Other)
			if err != nil {
				failed = true
				reportGroupError(rep, site, err)
				continue
			}
			for _, spec := range members {
				specs = append(specs, resolved{spec: spec, site: site})
			}
		case family.Known(req.Name):
			spec, err := family.Instantiate(req.Name, d.name, req.Other)
			if err != nil {
				failed = true
				diag.Error(rep, diag.DefBadInstantiation, site, "%v", err).Emit()
				continue
			}
			specs = append(specs, resolved{spec: spec, site: site})
		default:
			failed = true
			diag.Error(rep, diag.DefUnknownFamily, site,
				"%q is neither a capability family nor a composite group", req.Name).Emit()
		}
	}

	type provider struct {
		fam  string
		site diag.Site
	}
	seen := make(map[family.Signature]provider)
	catalog := &Catalog{Type: d.name}

	for _, rs := range specs {
		spec := rs.spec
		attrs := make([]effect.Attr, 0, 3)
		missing := false
		for _, prim := range spec.Requires() {
			attr, ok := d.Lookup(prim)
			if !ok {
				failed = true
				missing = true
				diag.Error(rep, diag.DefMissingPrimitive, rs.site,
					"type %s lacks primitive %s", d.name, prim.Key()).
					WithNote(diag.NoSite, "required by family %s", spec.Name).
					Emit()
				continue
			}
			attrs = append(attrs, attr)
		}
		if missing {
			continue
		}
		eff := effect.Propagate(attrs...)
		for _, prov := range spec.Provides() {
			if prev, dup := seen[prov.Sig]; dup {
				failed = true
				diag.Error(rep, diag.DefDuplicateSignature, rs.site,
					"duplicate derived operator %s (family %s)", prov.Sig, spec.Name).
					WithNote(prev.site, "already provided by family %s", prev.fam).
					Emit()
				continue
			}
			seen[prov.Sig] = provider{fam: spec.Name, site: rs.site}
			catalog.Ops = append(catalog.Ops, DerivedOp{
				Sig:      prov.Sig,
				Family:   spec.Name,
				Effect:   eff,
				Kind:     prov.Kind,
				Variants: overload.Expand(prov),
			})
		}
	}

	if failed {
		return nil, false
	}
	catalog.sortOps()
	return catalog, true
}

func reportGroupError(rep diag.Reporter, site diag.Site, err error) {
	var collision *group.CollisionError
	switch {
	case errors.As(err, &collision):
		diag.Error(rep, diag.DefGroupCollision, site,
			"group %s: members %s and %s collide on %s",
			collision.Group, collision.First, collision.Second, collision.Sig).Emit()
	case errors.Is(err, group.ErrCycle):
		diag.Error(rep, diag.DefGroupCycle, site, "%v", err).Emit()
	case errors.Is(err, group.ErrUnknownGroup):
		diag.Error(rep, diag.DefUnknownGroup, site, "%v", err).Emit()
	default:
		diag.Error(rep, diag.DefBadInstantiation, site, "%v", err).Emit()
	}
}
