// Package threadview maintains the reader's view of a blog's comment thread:
// which comments and reply pages are loaded, and the order and nesting depth
// they render in. It replaces the flattened-array-with-splices approach with
// an explicit tree; the flat list the UI needs is produced by Flatten.
package threadview

import "errors"

var (
	// ErrUnknownNode is returned when an operation references a comment id
	// that has not been loaded into the view.
	ErrUnknownNode = errors.New("threadview: unknown node")
	// ErrDuplicateNode is returned when a comment id is loaded twice.
	ErrDuplicateNode = errors.New("threadview: duplicate node")
)

// Entry is one rendered row: a comment id and its nesting depth (the
// childrenLevel of the flattened list).
type Entry struct {
	ID    string
	Depth int
}

type node struct {
	parent   string // empty for top-level comments
	children []string
	depth    int
}

// Thread is the loaded portion of one blog's comment tree.
type Thread struct {
	roots []string
	nodes map[string]*node
}

// New creates an empty thread view.
func New() *Thread {
	return &Thread{nodes: make(map[string]*node)}
}

// AddRoots appends a loaded page of top-level comments, in the order the
// server returned them.
func (t *Thread) AddRoots(ids ...string) error {
	for _, id := range ids {
		if _, ok := t.nodes[id]; ok {
			return ErrDuplicateNode
		}
		t.nodes[id] = &node{depth: 0}
		t.roots = append(t.roots, id)
	}
	return nil
}

// AddReplies appends a loaded page of replies under parent. Successive pages
// for the same parent append after the replies already loaded.
func (t *Thread) AddReplies(parent string, ids ...string) error {
	p, ok := t.nodes[parent]
	if !ok {
		return ErrUnknownNode
	}
	for _, id := range ids {
		if _, ok := t.nodes[id]; ok {
			return ErrDuplicateNode
		}
		t.nodes[id] = &node{parent: parent, depth: p.depth + 1}
		p.children = append(p.children, id)
	}
	return nil
}

// Collapse unloads every descendant of id, keeping the node itself. The next
// AddReplies for id starts a fresh reply run.
func (t *Thread) Collapse(id string) error {
	n, ok := t.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	for _, child := range n.children {
		t.unload(child)
	}
	n.children = nil
	return nil
}

// Remove deletes id and every loaded descendant, detaching it from its parent
// (or from the top-level list).
func (t *Thread) Remove(id string) error {
	n, ok := t.nodes[id]
	if !ok {
		return ErrUnknownNode
	}

	if n.parent == "" {
		for i, rootID := range t.roots {
			if rootID == id {
				t.roots = append(t.roots[:i], t.roots[i+1:]...)
				break
			}
		}
	} else if p, ok := t.nodes[n.parent]; ok {
		for i, childID := range p.children {
			if childID == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}

	t.unload(id)
	return nil
}

func (t *Thread) unload(id string) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, child := range n.children {
		t.unload(child)
	}
	delete(t.nodes, id)
}

// Flatten returns the pre-order rendering of the loaded tree. A node's reply
// run sits directly below it, each entry one level deeper.
func (t *Thread) Flatten() []Entry {
	entries := make([]Entry, 0, len(t.nodes))
	for _, id := range t.roots {
		entries = t.flatten(id, entries)
	}
	return entries
}

func (t *Thread) flatten(id string, entries []Entry) []Entry {
	n := t.nodes[id]
	entries = append(entries, Entry{ID: id, Depth: n.depth})
	for _, child := range n.children {
		entries = t.flatten(child, entries)
	}
	return entries
}

// Depth returns the nesting depth of a loaded comment.
func (t *Thread) Depth(id string) (int, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return 0, false
	}
	return n.depth, true
}

// Children returns the loaded reply ids of a comment, in display order.
func (t *Thread) Children(id string) ([]string, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return append([]string(nil), n.children...), true
}

// Len returns the number of loaded comments.
func (t *Thread) Len() int {
	return len(t.nodes)
}

// RootCount returns the number of loaded top-level comments, the figure the
// UI compares against total_parent_comments to decide on a load-more button.
func (t *Thread) RootCount() int {
	return len(t.roots)
}
