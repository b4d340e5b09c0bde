package services

import (
	"strings"
	"testing"

	"github.com/percapital/faqbot-backend/internal/kb"
)

func newRenderer() (*MenuRenderer, *ReplyResolver, *kb.KB) {
	knowledge := kb.Default()
	indexer := NewQuestionIndexer(knowledge)
	return NewMenuRenderer(knowledge, indexer), NewReplyResolver(knowledge, indexer), knowledge
}

func TestMainMenuStructure(t *testing.T) {
	renderer, _, knowledge := newRenderer()

	menu := renderer.MainMenu()
	if menu.IsButtons() {
		t.Fatal("main menu should render as a list")
	}
	if len(menu.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(menu.Sections))
	}
	rows := menu.Sections[0].Rows
	if len(rows) != len(knowledge.Roots()) {
		t.Fatalf("got %d rows, want %d", len(rows), len(knowledge.Roots()))
	}

	for _, row := range rows {
		if len([]rune(row.Title)) > 24 {
			t.Errorf("row title %q exceeds 24 runes", row.Title)
		}
		if len([]rune(row.Description)) > 72 {
			t.Errorf("row description %q exceeds 72 runes", row.Description)
		}
		if row.Description == row.Title {
			t.Errorf("row %q repeats its title as description", row.Title)
		}
	}
}

func TestMainMenuRowsRoundTrip(t *testing.T) {
	renderer, resolver, _ := newRenderer()

	for _, row := range renderer.MainMenu().Sections[0].Rows {
		action := resolver.ResolveReply(listReply(row.ID, row.Title), nil)
		if action.Type != ActionShowCategory {
			t.Errorf("main menu row id %q resolved to %+v", row.ID, action)
		}
	}
}

func TestSubmenuRoundTrip(t *testing.T) {
	renderer, resolver, knowledge := newRenderer()

	path, node := knowledge.FindByName("APP")
	if node == nil {
		t.Fatal("no APP branch in default tree")
	}

	menu := renderer.CategoryMenu(path, node)
	if menu.IsButtons() {
		// four children, must overflow to a list
		t.Fatal("APP submenu should render as a list")
	}
	for _, row := range menu.Sections[0].Rows {
		action := resolver.ResolveReply(listReply(row.ID, row.Title), nil)
		if action.Type != ActionShowCategory {
			t.Errorf("submenu row id %q resolved to %+v", row.ID, action)
			continue
		}
		if !strings.HasPrefix(action.CategoryPath, "APP"+kb.PathSep) {
			t.Errorf("row id %q resolved outside the APP branch: %q", row.ID, action.CategoryPath)
		}
	}
}

func TestQuestionsMenuShapes(t *testing.T) {
	renderer, _, knowledge := newRenderer()

	// one question: reply buttons
	path, node := knowledge.Canonical("RIESGOS")
	menu := renderer.CategoryMenu(path, node)
	if !menu.IsButtons() || len(menu.Buttons) != 1 {
		t.Fatalf("RIESGOS should render 1 button, got %+v", menu)
	}
	if !strings.HasPrefix(menu.Buttons[0].Title, "1. ") {
		t.Errorf("button title should be numbered, got %q", menu.Buttons[0].Title)
	}
	if len([]rune(menu.Buttons[0].Title)) > 20 {
		t.Errorf("button title %q exceeds 20 runes", menu.Buttons[0].Title)
	}

	// nine questions: a list
	path, node = knowledge.Canonical("APP::SUSCRIPCIÓN")
	menu = renderer.CategoryMenu(path, node)
	if menu.IsButtons() {
		t.Fatal("SUSCRIPCIÓN should render as a list")
	}
	rows := menu.Sections[0].Rows
	if len(rows) != 9 {
		t.Fatalf("got %d rows, want 9", len(rows))
	}
	for _, row := range rows {
		if len([]rune(row.Title)) > 24 {
			t.Errorf("row title %q exceeds 24 runes", row.Title)
		}
		if row.Description != "" && !strings.HasSuffix(row.Title, "...") {
			t.Errorf("row %q has a description although the title was not truncated", row.Title)
		}
	}
}

// Every question id a menu emits must resolve back to the exact question it
// was rendered for, across every leaf category.
func TestEveryEmittedQuestionIDRoundTrips(t *testing.T) {
	knowledge := kb.Default()
	indexer := NewQuestionIndexer(knowledge)
	renderer := NewMenuRenderer(knowledge, indexer)
	resolver := NewReplyResolver(knowledge, indexer)

	knowledge.Walk(func(path string, node *kb.Node) bool {
		if !node.IsLeaf() {
			return true
		}
		menu := renderer.CategoryMenu(path, node)

		ids := make([]string, 0, len(node.Questions))
		for _, b := range menu.Buttons {
			ids = append(ids, b.ID)
		}
		for _, s := range menu.Sections {
			for _, r := range s.Rows {
				ids = append(ids, r.ID)
			}
		}

		for i, id := range ids {
			action := resolver.ResolveReply(listReply(id, ""), nil)
			if action.Type != ActionShowAnswer {
				t.Errorf("%s row %d: id %q resolved to %+v", path, i, id, action)
				continue
			}
			entry := indexer.Get(action.QuestionID)
			if entry == nil || entry.Question != node.Questions[i].Question {
				t.Errorf("%s row %d: id %q resolved to wrong question %+v", path, i, id, entry)
			}
		}
		return true
	})
}

func TestRowCapAtWhatsAppLimit(t *testing.T) {
	questions := make([]kb.QA, 14)
	for i := range questions {
		questions[i] = kb.QA{Question: "¿Pregunta?", Answer: "Respuesta."}
	}
	knowledge := kb.New([]*kb.Node{{Name: "GRANDE", Questions: questions}})
	indexer := NewQuestionIndexer(knowledge)
	renderer := NewMenuRenderer(knowledge, indexer)

	menu := renderer.CategoryMenu("GRANDE", knowledge.Roots()[0])
	if got := len(menu.Sections[0].Rows); got != 10 {
		t.Errorf("got %d rows, want the 10-row cap", got)
	}
}
