// Package options implements option nodes: key/value mappings with a single
// fallback parent, used to layer chart defaults without copying them.
package options

import (
	"errors"
	"sort"
)

var (
	// ErrCycle is returned by SetParent when the link would make a node its own ancestor.
	ErrCycle = errors.New("options: fallback cycle")
	// ErrFrozen is returned by SetParent on a frozen node.
	ErrFrozen = errors.New("options: node is frozen")
)

// Node is a mutable option mapping. Lookups check the node's own entries,
// then the entries of its base (a shared layer it views without copying),
// then walk the parent chain.
type Node struct {
	own    map[string]any
	keys   []string
	base   *Node
	parent *Node
	frozen bool
}

// New returns an empty node without parent.
func New() *Node {
	return &Node{own: map[string]any{}}
}

// FromMap converts a plain mapping into a node. Nested mappings become nodes
// too, so every nesting level falls back independently. Keys are inserted in
// sorted order to keep iteration deterministic.
func FromMap(m map[string]any) *Node {
	n := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Set(k, m[k])
	}
	return n
}

// Overlay returns a view over shared: the view exposes shared's own entries
// as if they were its own but never writes to shared. The view starts with
// shared's parent and can be re-parented freely.
func Overlay(shared *Node) *Node {
	if shared == nil {
		return New()
	}
	return &Node{own: map[string]any{}, base: shared, parent: shared.parent}
}

func convert(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromMap(t)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			if s, ok := k.(string); ok {
				m[s] = val
			}
		}
		return FromMap(m)
	default:
		return v
	}
}

// Set stores v under key on this node only. Plain mappings are converted to
// nodes. Writing to a frozen node panics.
func (n *Node) Set(key string, v any) {
	if n.frozen {
		panic("options: Set on frozen node " + key)
	}
	if _, ok := n.own[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.own[key] = convert(v)
}

// Delete removes key from this node's own entries. Inherited values stay visible.
func (n *Node) Delete(key string) {
	if n.frozen {
		panic("options: Delete on frozen node " + key)
	}
	if _, ok := n.own[key]; !ok {
		return
	}
	delete(n.own, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Own returns the value this node defines itself (directly or through its base).
func (n *Node) Own(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	if v, ok := n.own[key]; ok {
		return v, true
	}
	if n.base != nil {
		return n.base.Own(key)
	}
	return nil, false
}

// Get looks key up on the node and then along the fallback chain.
func (n *Node) Get(key string) (any, bool) {
	for cur := n; cur != nil; cur = cur.parent {
		if v, ok := cur.Own(key); ok {
			return v, true
		}
	}
	return nil, false
}

// Value is Get without the presence flag.
func (n *Node) Value(key string) any {
	v, _ := n.Get(key)
	return v
}

// Has reports whether key resolves anywhere in the chain.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns the node's own keys in insertion order, followed by keys
// visible through its base.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := append([]string(nil), n.keys...)
	if n.base == nil {
		return out
	}
	for _, k := range n.base.Keys() {
		if _, ok := n.own[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// AllKeys returns every key resolvable from this node, nearest layer first.
func (n *Node) AllKeys() []string {
	seen := map[string]bool{}
	var out []string
	for cur := n; cur != nil; cur = cur.parent {
		for _, k := range cur.Keys() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// Parent returns the fallback parent, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Base returns the shared node this view exposes, or nil.
func (n *Node) Base() *Node { return n.base }

// Frozen reports whether the node refuses writes and re-parenting.
func (n *Node) Frozen() bool { return n.frozen }

// SetParent links n to fall back on parent. A nil parent detaches the node.
func (n *Node) SetParent(parent *Node) error {
	if n.frozen {
		return ErrFrozen
	}
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return ErrCycle
		}
	}
	n.parent = parent
	return nil
}

// Freeze marks n and every nested node it owns as read-only.
func (n *Node) Freeze() {
	if n == nil || n.frozen {
		return
	}
	n.frozen = true
	for _, v := range n.own {
		if child, ok := v.(*Node); ok {
			child.Freeze()
		}
	}
}

// Child returns the nested node stored under key, following the chain.
func (n *Node) Child(key string) *Node {
	child, _ := n.Value(key).(*Node)
	return child
}

// ownChild returns a nested node owned by n that may be re-parented. Nested
// nodes reached through the base are wrapped in a view on first access so
// the shared node stays untouched.
func (n *Node) ownChild(key string) *Node {
	if v, ok := n.own[key]; ok {
		child, _ := v.(*Node)
		return child
	}
	if n.base == nil {
		return nil
	}
	shared, ok := n.base.Own(key)
	if !ok {
		return nil
	}
	sharedNode, ok := shared.(*Node)
	if !ok {
		return nil
	}
	view := Overlay(sharedNode)
	n.keys = append(n.keys, key)
	n.own[key] = view
	return view
}

// Map materializes the effective tree, nested nodes included.
func (n *Node) Map() map[string]any {
	out := map[string]any{}
	if n == nil {
		return out
	}
	for _, k := range n.AllKeys() {
		v, _ := n.Get(k)
		if child, ok := v.(*Node); ok {
			out[k] = child.Map()
			continue
		}
		out[k] = v
	}
	return out
}
