package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/utils"
)

// QuestionEntry is what a synthetic question id resolves to.
type QuestionEntry struct {
	CategoryPath string
	Question     string
	Answer       string
}

// QuestionIndexer mints stable synthetic ids for (category, question) pairs
// the moment a menu displays them, and resolves whatever a client later
// echoes back — the exact id, the question text, or an id the client
// re-derived that was never minted here.
type QuestionIndexer struct {
	knowledge *kb.KB

	mu         sync.RWMutex
	version    uint64
	byID       map[string]*QuestionEntry
	byPosition map[string]string // "path#position" -> minted id
}

// NewQuestionIndexer creates an indexer over the given knowledge base.
func NewQuestionIndexer(knowledge *kb.KB) *QuestionIndexer {
	return &QuestionIndexer{
		knowledge:  knowledge,
		byID:       make(map[string]*QuestionEntry),
		byPosition: make(map[string]string),
	}
}

// ensureFresh drops minted ids when the knowledge base was replaced, so a
// hot-reloaded tree never serves answers registered against the old one.
func (qi *QuestionIndexer) ensureFresh() {
	v := qi.knowledge.Version()
	qi.mu.Lock()
	if qi.version != v {
		qi.version = v
		qi.byID = make(map[string]*QuestionEntry)
		qi.byPosition = make(map[string]string)
	}
	qi.mu.Unlock()
}

// Register returns the synthetic id for the question at the given 1-based
// position of a category. Repeated calls for the same (path, position) return
// the same id; slug collisions between categories get a numeric suffix.
func (qi *QuestionIndexer) Register(categoryPath string, position int, question, answer string) string {
	qi.ensureFresh()
	qi.mu.Lock()
	defer qi.mu.Unlock()

	posKey := categoryPath + "#" + strconv.Itoa(position)
	if id, ok := qi.byPosition[posKey]; ok {
		return id
	}

	base := kb.PathSlug(categoryPath) + "::Q" + strconv.Itoa(position)
	id := base
	for suffix := 1; ; suffix++ {
		existing, taken := qi.byID[id]
		if !taken || (existing.CategoryPath == categoryPath && existing.Question == question) {
			break
		}
		id = fmt.Sprintf("%s_%d", base, suffix)
	}

	qi.byID[id] = &QuestionEntry{CategoryPath: categoryPath, Question: question, Answer: answer}
	qi.byPosition[posKey] = id
	return id
}

// Get returns the entry for an exact id, or nil.
func (qi *QuestionIndexer) Get(id string) *QuestionEntry {
	qi.ensureFresh()
	qi.mu.RLock()
	defer qi.mu.RUnlock()
	return qi.byID[id]
}

// Resolve maps an id or a question text to a registered entry. Lookup order:
// exact id, registered question text by normalized equality, then a live scan
// of the knowledge base (registering the hit on the fly), then the shape of a
// generated id ("SLUG::Qn") parsed against the knowledge base. Returns
// ("", nil) when nothing matches.
func (qi *QuestionIndexer) Resolve(idOrText string) (string, *QuestionEntry) {
	if idOrText == "" {
		return "", nil
	}

	qi.ensureFresh()
	qi.mu.RLock()
	if entry, ok := qi.byID[idOrText]; ok {
		qi.mu.RUnlock()
		return idOrText, entry
	}
	key := utils.Normalize(idOrText)
	if key != "" {
		for id, entry := range qi.byID {
			if utils.Normalize(entry.Question) == key {
				qi.mu.RUnlock()
				return id, entry
			}
		}
	}
	qi.mu.RUnlock()

	if key != "" {
		if path, pos, qa := qi.scanKB(key); qa != nil {
			id := qi.Register(path, pos, qa.Question, qa.Answer)
			return id, qi.Get(id)
		}
	}

	return qi.resolveGeneratedID(idOrText)
}

// scanKB finds a question by normalized text anywhere in the tree.
func (qi *QuestionIndexer) scanKB(key string) (path string, position int, found *kb.QA) {
	qi.knowledge.Walk(func(p string, n *kb.Node) bool {
		for i := range n.Questions {
			if utils.Normalize(n.Questions[i].Question) == key {
				path, position, found = p, i+1, &n.Questions[i]
				return false
			}
		}
		return true
	})
	return path, position, found
}

// resolveGeneratedID handles "SLUG::Qn" ids that look like ours but were
// never minted in this process (client-side reconstruction, or a restart).
func (qi *QuestionIndexer) resolveGeneratedID(id string) (string, *QuestionEntry) {
	marker := strings.Index(id, "::Q")
	if marker < 0 {
		return "", nil
	}

	catPart := strings.ReplaceAll(id[:marker], "_", " ")
	numPart := id[marker+len("::Q"):]
	// strip a disambiguation suffix like "_2"
	if i := strings.Index(numPart, "_"); i >= 0 {
		numPart = numPart[:i]
	}
	position, err := strconv.Atoi(numPart)
	if err != nil || position < 1 {
		return "", nil
	}

	path, node := qi.knowledge.FindByName(catPart)
	if node == nil || !node.IsLeaf() {
		// fuzzy fallback, leaves only: a nested path slug like
		// "APP SUSCRIPCION" must land on the leaf, not its parent
		key := utils.Normalize(catPart)
		qi.knowledge.Walk(func(p string, n *kb.Node) bool {
			if !n.IsLeaf() {
				return true
			}
			nk := utils.Normalize(strings.ReplaceAll(n.Name, "_", " "))
			if strings.Contains(nk, key) || strings.Contains(key, nk) {
				path, node = p, n
				return false
			}
			return true
		})
	}
	if node == nil || position > len(node.Questions) {
		return "", nil
	}

	qa := node.Questions[position-1]
	minted := qi.Register(path, position, qa.Question, qa.Answer)
	return minted, qi.Get(minted)
}
