package toml

func get(root *Table, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		t, ok := cur.(*Table)
		if !ok {
			return nil, false
		}
		cur, ok = t.Items[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func mustString(n Node) string {
	return n.(*Value).V.(string)
}

func mustInt(n Node) int64 {
	return n.(*Value).V.(int64)
}
