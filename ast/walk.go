package ast

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case Body:
		for _, c := range n {
			out = append(out, c)
		}
	case TypeCompound:
		for _, c := range n {
			out = append(out, c)
		}
	case TypeList:
		for _, c := range n {
			out = append(out, c)
		}
	case ArgCompound:
		for _, c := range n {
			out = append(out, c)
		}
	case ArgList:
		for _, c := range n {
			out = append(out, c)
		}
	case TypeFn:
		out = append(out, n.Inputs, n.Output)
	case Def:
		out = append(out, n.Name, n.Signature, n.Args, n.Body)
	}
	return out
}

// Walk visits n and its descendants depth-first. If fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
