package keypath

import "github.com/dzjyyds666/tq/parse/toml"

// Find walks root along the pattern and returns the addressed node. The
// returned node is part of root, not a copy. Traversal stops at the first
// step that cannot be followed and reports it as a *LookupError.
func (p *Pattern) Find(root toml.Node) (toml.Node, error) {
	cur := root
	for i, step := range p.steps {
		switch step.Kind {
		case KindTableKey:
			tbl, ok := cur.(*toml.Table)
			if !ok || tbl == nil {
				return nil, p.lookupErr(i, cur, ErrTypeMismatch)
			}
			next, ok := tbl.Items[step.Key]
			if !ok {
				return nil, p.lookupErr(i, cur, ErrNotFound)
			}
			cur = next
		case KindArrayIndex:
			arr, ok := cur.(*toml.Array)
			if !ok || arr == nil {
				return nil, p.lookupErr(i, cur, ErrTypeMismatch)
			}
			if step.Index >= len(arr.Elems) {
				return nil, p.lookupErr(i, cur, ErrNotFound)
			}
			cur = arr.Elems[step.Index]
		}
	}
	return cur, nil
}

func (p *Pattern) lookupErr(i int, cur toml.Node, kind error) error {
	e := &LookupError{
		Step:     p.steps[i],
		Position: i,
		At:       formatSteps(p.steps[:i]),
		Found:    toml.KindOf(cur),
		Kind:     kind,
	}
	if arr, ok := cur.(*toml.Array); ok && arr != nil {
		e.Len = len(arr.Elems)
	}
	return e
}
