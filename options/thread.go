package options

import "strings"

// PrivatePrefix marks keys used for bookkeeping; threading never descends into them.
const PrivatePrefix = "_"

// IsPrivate reports whether key is a bookkeeping key.
func IsPrivate(key string) bool {
	return strings.HasPrefix(key, PrivatePrefix)
}

// Thread makes child fall back on parent and repeats the link for every
// nested node child defines whose counterpart resolves to a node on parent.
// It is a no-op for nil nodes, identical nodes, frozen children, and links
// that would create a cycle, so applying it twice adds nothing.
func Thread(child, parent *Node) {
	if child == nil || parent == nil || child == parent || child.frozen {
		return
	}
	if err := child.SetParent(parent); err != nil {
		return
	}
	for _, key := range child.Keys() {
		if IsPrivate(key) {
			continue
		}
		if v, _ := child.Own(key); !isNode(v) {
			continue
		}
		var pn *Node
		if !parent.frozen {
			pn = parent.ownChild(key)
		}
		if pn == nil {
			pn = parent.Child(key)
		}
		if pn == nil {
			continue
		}
		Thread(child.ownChild(key), pn)
	}
}

// ThreadChildren gives target its own nested node for every nested key found
// along its ancestors, chained through the matching nested nodes of each
// ancestor in order. Missing containers are synthesized empty, so a scale
// without a "ticks" entry still resolves ticks.color from its defaults.
func ThreadChildren(target *Node) {
	if target == nil || target.frozen {
		return
	}
	chains, order := nestedChains(target)
	for _, key := range order {
		if v, ok := target.own[key]; ok && !isNode(v) {
			// a scalar override hides every inherited nested default
			continue
		}
		child := target.ownChild(key)
		if child == nil {
			child = New()
			target.Set(key, child)
		}
		for _, p := range chains[key] {
			if child.frozen {
				break
			}
			if child != p {
				_ = child.SetParent(p)
			}
			child = p
		}
		ThreadChildren(target.ownChild(key))
	}
}

func nestedChains(target *Node) (map[string][]*Node, []string) {
	chains := map[string][]*Node{}
	var order []string
	for n := target.parent; n != nil; n = n.parent {
		for _, key := range n.Keys() {
			if IsPrivate(key) {
				continue
			}
			v, _ := n.Own(key)
			if !isNode(v) {
				continue
			}
			child := v.(*Node)
			if !n.frozen {
				child = n.ownChild(key)
			}
			if _, ok := chains[key]; !ok {
				order = append(order, key)
			}
			chains[key] = append(chains[key], child)
		}
	}
	return chains, order
}

func isNode(v any) bool {
	_, ok := v.(*Node)
	return ok
}
