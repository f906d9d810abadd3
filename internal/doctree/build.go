package doctree

import (
	"encoding/json"

	"github.com/spf13/cast"

	"github.com/agentflare-ai/go-jsdocmd/internal/jsdoc"
)

// Build grafts records onto a fresh root. rootLongname is the memberof value
// of top-level records, normally "". Records flagged ignore, records with an
// unknown kind and records whose memberof matches no grafted node are left
// out. Within each parent, children keep the order they have in records.
func Build(records []jsdoc.Record, rootLongname string) *Node {
	b := &builder{
		children: make(map[string][]*jsdoc.Record),
		placed:   make(map[*jsdoc.Record]bool),
	}
	for i := range records {
		rec := &records[i]
		if rec.Ignore {
			continue
		}
		b.children[rec.MemberOf] = append(b.children[rec.MemberOf], rec)
	}
	root := &Node{Kind: KindRoot, Longname: rootLongname}
	b.graft(root, rootLongname)
	return root
}

type builder struct {
	children map[string][]*jsdoc.Record
	// placed guards against memberof cycles so every record lands at most once.
	// Records sharing a longname are each placed.
	placed map[*jsdoc.Record]bool
}

func (b *builder) graft(parent *Node, parentLongname string) {
	for _, rec := range b.children[parentLongname] {
		if b.placed[rec] {
			continue
		}
		switch Kind(rec.Kind) {
		case KindNamespace:
			b.placed[rec] = true
			n := baseNode(rec)
			parent.Namespaces = append(parent.Namespaces, n)
			b.graft(n, rec.Longname)
		case KindMixin:
			b.placed[rec] = true
			n := baseNode(rec)
			parent.Mixins = append(parent.Mixins, n)
			b.graft(n, rec.Longname)
		case KindFunction:
			b.placed[rec] = true
			parent.Functions = append(parent.Functions, callableNode(rec))
		case KindEvent:
			b.placed[rec] = true
			parent.Events = append(parent.Events, callableNode(rec))
		case KindMember:
			b.placed[rec] = true
			n := baseNode(rec)
			n.Scope = rec.Scope
			n.Type = typeExpr(rec.Type)
			n.Examples = copyStrings(rec.Examples)
			n.See = copyStrings(rec.See)
			parent.Properties = append(parent.Properties, n)
		case KindModule:
			b.placed[rec] = true
			n := baseNode(rec)
			n.Examples = copyStrings(rec.Examples)
			n.See = copyStrings(rec.See)
			parent.Modules = append(parent.Modules, n)
			b.graft(n, rec.Longname)
		case KindClass:
			b.placed[rec] = true
			n := classNode(rec)
			parent.Classes = append(parent.Classes, n)
			b.graft(n, rec.Longname)
		}
	}
}

func baseNode(rec *jsdoc.Record) *Node {
	return &Node{
		Kind:        Kind(rec.Kind),
		Name:        rec.Name,
		Longname:    rec.Longname,
		Description: rec.Description,
		Access:      rec.Access,
		Virtual:     rec.Virtual,
	}
}

func callableNode(rec *jsdoc.Record) *Node {
	n := baseNode(rec)
	n.Scope = rec.Scope
	n.Parameters = params(rec.Params)
	n.Returns = firstReturn(rec.Returns)
	n.Examples = copyStrings(rec.Examples)
	n.See = copyStrings(rec.See)
	return n
}

func classNode(rec *jsdoc.Record) *Node {
	n := baseNode(rec)
	n.Description = rec.ClassDesc
	n.Scope = rec.Scope
	n.Extends = copyStrings(rec.Augments)
	n.Fires = copyStrings(rec.Fires)
	n.Constructor = &Node{
		Kind:        KindConstructor,
		Name:        rec.Name,
		Longname:    rec.Longname,
		Description: rec.Description,
		Parameters:  params(rec.Params),
		Examples:    copyStrings(rec.Examples),
		See:         copyStrings(rec.See),
	}
	return n
}

func typeExpr(t *jsdoc.Type) TypeExpr {
	if t == nil || len(t.Names) == 0 {
		return nil
	}
	return TypeExpr(copyStrings(t.Names))
}

func firstReturn(returns jsdoc.Returns) *Returns {
	if len(returns) == 0 {
		return nil
	}
	r := returns[0]
	return &Returns{Type: typeExpr(r.Type), Description: r.Description}
}

func params(in []jsdoc.Param) []Param {
	if len(in) == 0 {
		return nil
	}
	out := make([]Param, 0, len(in))
	for _, p := range in {
		param := Param{
			Name:        p.Name,
			Kind:        "param",
			Type:        typeExpr(p.Type),
			Description: p.Description,
			Optional:    tristate(p.Optional),
			Nullable:    tristate(p.Nullable),
		}
		if p.HasDefault() {
			param.HasDefault = true
			param.Default = defaultString(p)
		}
		out = append(out, param)
	}
	return out
}

func defaultString(p jsdoc.Param) string {
	s, err := cast.ToStringE(p.Default())
	if err != nil {
		return string(p.DefaultValue)
	}
	return s
}

// tristate only honors JSON booleans; strings, numbers and null stay Unset.
func tristate(raw json.RawMessage) Tristate {
	if len(raw) == 0 {
		return Unset
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Unset
	}
	b, ok := v.(bool)
	switch {
	case !ok:
		return Unset
	case b:
		return True
	default:
		return False
	}
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
