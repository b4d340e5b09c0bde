package kb

import (
	"strings"
	"sync"

	"github.com/percapital/faqbot-backend/internal/utils"
)

// PathSep separates category levels in a qualified path ("APP::REGISTRO").
const PathSep = "::"

// QA is a single question/answer pair inside a leaf category.
type QA struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Node is one category level: either a branch with ordered children or a
// leaf with ordered question/answer pairs. Order is declaration order and
// is what numeric menu selection resolves against.
type Node struct {
	Name      string  `json:"name"`
	Children  []*Node `json:"children,omitempty"`
	Questions []QA    `json:"questions,omitempty"`
}

// IsLeaf reports whether the node holds questions directly.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Child returns the direct child whose name matches the candidate after
// normalization, or nil.
func (n *Node) Child(candidate string) *Node {
	key := nameKey(candidate)
	for _, c := range n.Children {
		if nameKey(c.Name) == key {
			return c
		}
	}
	return nil
}

// KB is the knowledge base tree. The tree itself is read-only; the pointer
// swaps atomically under the mutex when a KB file reload replaces it.
type KB struct {
	mu      sync.RWMutex
	roots   []*Node
	version uint64
}

// New creates a knowledge base from top-level category nodes.
func New(roots []*Node) *KB {
	return &KB{roots: roots}
}

// Roots returns the current top-level categories.
func (k *KB) Roots() []*Node {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.roots
}

// Replace swaps in a new tree (used by the KB file watcher) and bumps the
// version so derived caches know to drop entries minted against the old tree.
func (k *KB) Replace(roots []*Node) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.roots = roots
	k.version++
}

// Version identifies the current tree; it changes on every Replace.
func (k *KB) Version() uint64 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.version
}

// Find resolves a qualified path like "APP::REGISTRO". Each segment is
// matched by normalized name, so slugged segments ("FONDO_MUTUAL_ABIERTO")
// resolve too. Returns nil when any segment is unknown.
func (k *KB) Find(path string) *Node {
	_, n := k.Canonical(path)
	return n
}

// Canonical resolves a qualified path and returns it rebuilt from the
// declared category names, so "app::registro" canonicalizes to
// "APP::REGISTRO". Returns ("", nil) when any segment is unknown.
func (k *KB) Canonical(path string) (string, *Node) {
	if path == "" {
		return "", nil
	}
	segments := strings.Split(path, PathSep)

	var node *Node
	for _, root := range k.Roots() {
		if nameKey(root.Name) == nameKey(segments[0]) {
			node = root
			break
		}
	}
	if node == nil {
		return "", nil
	}

	canonical := node.Name
	for _, seg := range segments[1:] {
		node = node.Child(seg)
		if node == nil {
			return "", nil
		}
		canonical += PathSep + node.Name
	}
	return canonical, node
}

// FindByName looks for a category anywhere in the tree whose normalized name
// equals the candidate. Depth-first in declaration order, so earlier
// categories win on ambiguity. Returns the qualified path and node.
func (k *KB) FindByName(candidate string) (string, *Node) {
	key := nameKey(candidate)
	if key == "" {
		return "", nil
	}

	var path string
	var found *Node
	k.Walk(func(p string, n *Node) bool {
		if nameKey(n.Name) == key {
			path, found = p, n
			return false
		}
		return true
	})
	return path, found
}

// FindFuzzy matches a category by normalized substring containment in either
// direction. First match in declaration order wins.
func (k *KB) FindFuzzy(candidate string) (string, *Node) {
	key := nameKey(candidate)
	if key == "" {
		return "", nil
	}

	var path string
	var found *Node
	k.Walk(func(p string, n *Node) bool {
		nk := nameKey(n.Name)
		if strings.Contains(nk, key) || strings.Contains(key, nk) {
			path, found = p, n
			return false
		}
		return true
	})
	return path, found
}

// Walk visits every node depth-first in declaration order with its qualified
// path. The callback returns false to stop early.
func (k *KB) Walk(fn func(path string, n *Node) bool) {
	var walk func(prefix string, nodes []*Node) bool
	walk = func(prefix string, nodes []*Node) bool {
		for _, n := range nodes {
			p := n.Name
			if prefix != "" {
				p = prefix + PathSep + n.Name
			}
			if !fn(p, n) {
				return false
			}
			if !walk(p, n.Children) {
				return false
			}
		}
		return true
	}
	walk("", k.Roots())
}

// CategoryCount returns the number of leaf categories.
func (k *KB) CategoryCount() int {
	count := 0
	k.Walk(func(_ string, n *Node) bool {
		if n.IsLeaf() {
			count++
		}
		return true
	})
	return count
}

// QuestionCount returns the total number of questions in the tree.
func (k *KB) QuestionCount() int {
	count := 0
	k.Walk(func(_ string, n *Node) bool {
		count += len(n.Questions)
		return true
	})
	return count
}

// PathSlug turns a qualified path into the slug used inside synthetic
// question ids: each segment slugged, joined with underscores.
// "APP::SUSCRIPCIÓN" becomes "APP_SUSCRIPCION".
func PathSlug(path string) string {
	segments := strings.Split(path, PathSep)
	for i, seg := range segments {
		segments[i] = utils.Slugify(seg)
	}
	return strings.Join(segments, "_")
}

// nameKey is the comparison key for category names. Underscores count as
// spaces so slugged ids compare equal to display names.
func nameKey(s string) string {
	return utils.Normalize(strings.ReplaceAll(s, "_", " "))
}
