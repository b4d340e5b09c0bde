package services

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/models"
	"github.com/percapital/faqbot-backend/internal/utils"
)

// ActionType tags what an inbound interactive reply resolved to.
type ActionType int

const (
	ActionUnrecognized ActionType = iota
	ActionShowMainMenu
	ActionShowAppSubmenu
	ActionShowCategory
	ActionShowAnswer
	ActionFeedback
	ActionRating
)

// Action is the resolver's verdict, consumed exhaustively by the
// conversation driver. Only the fields for the tagged type are set.
type Action struct {
	Type         ActionType
	CategoryPath string // ShowCategory
	QuestionID   string // ShowAnswer
	HelpWanted   bool   // Feedback
	RatingLabel  string // Rating
}

// Rating button ids and their recorded labels.
var ratingLabels = map[string]string{
	"RATE_EXCELLENT":         "Excelente",
	"RATE_GOOD":              "Bien",
	"RATE_NEEDS_IMPROVEMENT": "Necesita mejorar",
}

// ReplyResolver classifies the raw id/title a client echoes back from an
// interactive menu. Clients truncate titles, re-encode ids, append
// boilerplate, or drop the id field entirely, so resolution runs through a
// strict priority ladder and never fails harder than Unrecognized.
type ReplyResolver struct {
	knowledge *kb.KB
	indexer   *QuestionIndexer
}

// NewReplyResolver creates a resolver over the knowledge base and indexer.
func NewReplyResolver(knowledge *kb.KB, indexer *QuestionIndexer) *ReplyResolver {
	return &ReplyResolver{knowledge: knowledge, indexer: indexer}
}

// ResolveReply maps an interactive reply to an Action. session may be nil.
// Internal errors degrade to Unrecognized, never a panic.
func (r *ReplyResolver) ResolveReply(reply *models.InteractiveReply, session *models.Session) (action Action) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("⚠️  Resolver panic recovered, treating reply as unrecognized: %v", rec)
			action = Action{Type: ActionUnrecognized}
		}
	}()

	candidate := ExtractCandidate(reply)
	if candidate == "" {
		return Action{Type: ActionUnrecognized}
	}

	// Control words first: reserved replies must never be shadowed by a
	// category or question that happens to normalize the same way.
	if a, ok := r.controlAction(candidate); ok {
		return a
	}

	// Qualified subcategory path ("APP::REGISTRO") before generic category
	// matching, so a nested node is never mistaken for its parent.
	if strings.Contains(candidate, kb.PathSep) && !strings.Contains(candidate, "::Q") {
		if path, node := r.knowledge.Canonical(candidate); node != nil {
			return Action{Type: ActionShowCategory, CategoryPath: path}
		}
	}

	if !strings.Contains(candidate, "::Q") {
		if path, node := r.knowledge.FindByName(candidate); node != nil {
			return Action{Type: ActionShowCategory, CategoryPath: path}
		}
		if path, node := r.knowledge.FindFuzzy(candidate); node != nil {
			return Action{Type: ActionShowCategory, CategoryPath: path}
		}
	}

	if id, entry := r.indexer.Resolve(candidate); entry != nil {
		return Action{Type: ActionShowAnswer, QuestionID: id}
	}

	if a, ok := r.sessionFallback(candidate, session); ok {
		return a
	}

	return Action{Type: ActionUnrecognized}
}

// controlAction matches the closed vocabulary of reserved replies.
func (r *ReplyResolver) controlAction(candidate string) (Action, bool) {
	upper := strings.ToUpper(strings.TrimSpace(candidate))

	switch utils.Normalize(upper) {
	case "SI", "YES":
		return Action{Type: ActionFeedback, HelpWanted: true}, true
	case "NO":
		return Action{Type: ActionFeedback, HelpWanted: false}, true
	}

	switch upper {
	case "APP_MAIN", "APP_GENERAL":
		return Action{Type: ActionShowAppSubmenu}, true
	case "MENU", "MENÚ", "VOLVER", "INICIO":
		return Action{Type: ActionShowMainMenu}, true
	}

	if strings.HasPrefix(upper, "RATE_") {
		label, ok := ratingLabels[upper]
		if !ok {
			label = "Desconocida"
		}
		return Action{Type: ActionRating, RatingLabel: label}, true
	}

	return Action{}, false
}

// sessionFallback interprets the candidate against the category the session
// is currently browsing: a leading menu number, then a symmetric fuzzy
// prefix match for titles the client truncated.
func (r *ReplyResolver) sessionFallback(candidate string, session *models.Session) (Action, bool) {
	if session == nil || session.Category == "" {
		return Action{}, false
	}
	path, node := r.knowledge.Canonical(session.Category)
	if node == nil || !node.IsLeaf() {
		return Action{}, false
	}

	if idx := utils.LeadingIndex(candidate); idx >= 1 && idx <= len(node.Questions) {
		qa := node.Questions[idx-1]
		id := r.indexer.Register(path, idx, qa.Question, qa.Answer)
		return Action{Type: ActionShowAnswer, QuestionID: id}, true
	}

	stripped := utils.Normalize(utils.StripIndexPrefix(candidate))
	if stripped == "" {
		return Action{}, false
	}
	for i, qa := range node.Questions {
		nq := utils.Normalize(qa.Question)
		half := len(nq) / 2
		if half < 5 {
			half = 5
		}
		if half > len(nq) {
			half = len(nq)
		}
		if strings.HasPrefix(nq, stripped) || strings.HasPrefix(stripped, nq[:half]) {
			id := r.indexer.Register(path, i+1, qa.Question, qa.Answer)
			return Action{Type: ActionShowAnswer, QuestionID: id}, true
		}
	}

	return Action{}, false
}

// ExtractCandidate pulls the machine id (or failing that, the title) out of
// an interactive reply, tolerating JSON-encoded values, re-encoded path
// separators, and boilerplate the client appended. Never panics; returns ""
// when nothing usable is present.
func ExtractCandidate(reply *models.InteractiveReply) string {
	if reply == nil {
		return ""
	}

	inner := reply.ListReply
	if inner == nil {
		inner = reply.ButtonReply
	}
	if inner == nil {
		return ""
	}

	for _, raw := range []string{inner.ID, inner.Title} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		// some clients echo a JSON-encoded object instead of the plain id
		if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
			var parsed map[string]any
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
				for _, key := range []string{"id", "title", "payload", "name", "value"} {
					if s, ok := parsed[key].(string); ok && strings.TrimSpace(s) != "" {
						raw = strings.TrimSpace(s)
						break
					}
				}
			}
		}

		raw = strings.ReplaceAll(raw, "%3A%3A", kb.PathSep)

		// strip trailing descriptions some clients glue onto the title
		for _, sep := range []string{" - ", " | ", "\n", "Información sobre", "Information about"} {
			if i := strings.Index(raw, sep); i >= 0 {
				raw = strings.TrimSpace(raw[:i])
			}
		}

		if raw != "" {
			return raw
		}
	}
	return ""
}
