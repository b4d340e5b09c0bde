package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/utils"
)

// WhatsApp display limits (Cloud API).
const (
	maxButtons      = 3
	maxRowsPerList  = 10
	buttonTitleMax  = 20
	rowTitleMax     = 24
	rowDescMax      = 72
	sectionTitleMax = 24
	headerMax       = 60
)

// RenderedMenu is an outbound menu in one of the two interactive shapes:
// reply buttons for up to three options, a list otherwise.
type RenderedMenu struct {
	Header   string
	Body     string
	Buttons  []Button
	Sections []Section
}

// IsButtons reports whether the menu rendered as reply buttons.
func (m *RenderedMenu) IsButtons() bool {
	return len(m.Buttons) > 0
}

// MenuRenderer builds outbound menus from knowledge base nodes. Every
// question it displays is registered with the indexer so the row id can be
// resolved when it comes back.
type MenuRenderer struct {
	knowledge *kb.KB
	indexer   *QuestionIndexer
}

// NewMenuRenderer creates a renderer over the knowledge base and indexer.
func NewMenuRenderer(knowledge *kb.KB, indexer *QuestionIndexer) *MenuRenderer {
	return &MenuRenderer{knowledge: knowledge, indexer: indexer}
}

// MainMenu renders one list row per top-level category.
func (r *MenuRenderer) MainMenu() *RenderedMenu {
	roots := r.knowledge.Roots()
	rows := make([]Row, 0, len(roots))
	for _, root := range roots {
		rows = append(rows, Row{
			ID:          utils.Slugify(root.Name),
			Title:       utils.Truncate(root.Name, rowTitleMax),
			Description: r.rootDescription(root),
		})
	}
	rows = capRows("Menú Principal", rows)

	return &RenderedMenu{
		Header:   utils.Truncate("Menú Principal", headerMax),
		Body:     "Selecciona la categoría sobre la que necesitas información:",
		Sections: []Section{{Title: utils.Truncate("Categorías disponibles", sectionTitleMax), Rows: rows}},
	}
}

// rootDescription summarizes a top-level entry without repeating its title.
func (r *MenuRenderer) rootDescription(n *kb.Node) string {
	if !n.IsLeaf() {
		names := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			names = append(names, titleCase(c.Name))
		}
		return utils.Truncate(strings.Join(names, ", "), rowDescMax)
	}
	return utils.Truncate(fmt.Sprintf("%d preguntas frecuentes", len(n.Questions)), rowDescMax)
}

// CategoryMenu renders the selectable options of a node: child categories
// for a branch, questions for a leaf. Three or fewer options become reply
// buttons, more become a single-section list.
func (r *MenuRenderer) CategoryMenu(path string, node *kb.Node) *RenderedMenu {
	if node.IsLeaf() {
		return r.questionsMenu(path, node)
	}
	return r.submenuMenu(path, node)
}

func (r *MenuRenderer) submenuMenu(path string, node *kb.Node) *RenderedMenu {
	body := fmt.Sprintf("¿Sobre qué aspecto de %s necesitas información?", titleCase(node.Name))

	if len(node.Children) <= maxButtons {
		buttons := make([]Button, 0, len(node.Children))
		for _, c := range node.Children {
			buttons = append(buttons, Button{
				ID:    childPathID(path, c.Name),
				Title: utils.Truncate(c.Name, buttonTitleMax),
			})
		}
		return &RenderedMenu{Body: body, Buttons: buttons}
	}

	rows := make([]Row, 0, len(node.Children))
	for _, c := range node.Children {
		rows = append(rows, Row{
			ID:          childPathID(path, c.Name),
			Title:       utils.Truncate(c.Name, rowTitleMax),
			Description: utils.Truncate("Consultas sobre "+c.Name, rowDescMax),
		})
	}
	rows = capRows(node.Name, rows)

	return &RenderedMenu{
		Header:   utils.Truncate(node.Name, headerMax),
		Body:     body,
		Sections: []Section{{Title: utils.Truncate("Opciones", sectionTitleMax), Rows: rows}},
	}
}

func (r *MenuRenderer) questionsMenu(path string, node *kb.Node) *RenderedMenu {
	if len(node.Questions) <= maxButtons {
		buttons := make([]Button, 0, len(node.Questions))
		for i, qa := range node.Questions {
			id := r.indexer.Register(path, i+1, qa.Question, qa.Answer)
			buttons = append(buttons, Button{
				ID:    id,
				Title: utils.Truncate(fmt.Sprintf("%d. %s", i+1, qa.Question), buttonTitleMax),
			})
		}
		return &RenderedMenu{
			Body:    fmt.Sprintf("*%s*\n\nSelecciona tu pregunta:", node.Name),
			Buttons: buttons,
		}
	}

	rows := make([]Row, 0, len(node.Questions))
	for i, qa := range node.Questions {
		id := r.indexer.Register(path, i+1, qa.Question, qa.Answer)
		title := utils.Truncate(fmt.Sprintf("%d. %s", i+1, qa.Question), rowTitleMax)

		// description only when the title could not hold the whole
		// question; a description equal to the title just reads twice
		desc := ""
		if strings.HasSuffix(title, "...") {
			desc = utils.Truncate(qa.Question, rowDescMax)
		}

		rows = append(rows, Row{ID: id, Title: title, Description: desc})
	}
	rows = capRows(node.Name, rows)

	return &RenderedMenu{
		Header:   utils.Truncate(node.Name, headerMax),
		Body:     "Selecciona tu pregunta:",
		Sections: []Section{{Title: utils.Truncate(node.Name, sectionTitleMax), Rows: rows}},
	}
}

// childPathID builds the qualified row id for a subcategory, slug per
// segment with the path separator kept ("APP::REGISTRO").
func childPathID(parentPath, childName string) string {
	segments := strings.Split(parentPath, kb.PathSep)
	for i, seg := range segments {
		segments[i] = utils.Slugify(seg)
	}
	return strings.Join(segments, kb.PathSep) + kb.PathSep + utils.Slugify(childName)
}

// titleCase lowercases a shouting category name and capitalizes each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// capRows enforces the per-section row limit; excess options are dropped
// with a log line rather than failing the whole menu.
func capRows(context string, rows []Row) []Row {
	if len(rows) <= maxRowsPerList {
		return rows
	}
	log.Printf("⚠️  Menu %q has %d options, truncating to %d (WhatsApp row limit)",
		context, len(rows), maxRowsPerList)
	return rows[:maxRowsPerList]
}
