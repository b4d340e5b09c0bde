package services

import (
	"context"
	"log"
	"time"

	"github.com/percapital/faqbot-backend/internal/kb"
	"github.com/percapital/faqbot-backend/internal/models"
	"github.com/percapital/faqbot-backend/internal/storage"
	"github.com/percapital/faqbot-backend/internal/utils"
)

const (
	welcomeText = "¡Hola! 👋 Bienvenido a Per Capital\n\n" +
		"Soy tu asistente virtual y estoy aquí para ayudarte con tus consultas.\n\n" +
		"¿Cómo puedo ayudarte hoy?"
	redirectText = "Para brindarte la mejor ayuda, por favor utiliza los botones y opciones del menú. Te muestro el menú:"
	mediaText    = "He recibido tu archivo multimedia. Para brindarte la mejor ayuda, por favor utiliza el menú de opciones:"
	unreadText   = "No pude leer tu selección. Intentemos de nuevo."
	noCategory   = "Lo siento, no pude encontrar esa categoría."
	noAnswer     = "Lo siento, no pude encontrar la respuesta a esa pregunta."
	noQuestions  = "No hay preguntas disponibles en esta categoría."
	moreHelpText = "¿Necesitas ayuda con alguna otra cosa?"
	ratingText   = "¡Gracias por usar nuestro asistente virtual! 😊\n\n¿Cómo calificarías la ayuda recibida?"
)

var greetings = map[string]bool{}

func init() {
	for _, g := range []string{
		"hola", "hello", "hi", "buenas", "buenos dias", "buenas tardes",
		"buenas noches", "saludos", "que tal", "hey", "inicio",
	} {
		greetings[utils.Normalize(g)] = true
	}
}

// ConversationDriver runs the menu state machine. It owns all session
// mutation; resolver, indexer and renderer are consulted, never the other
// way around. A failed outbound send is logged and the local state
// transition happens anyway.
type ConversationDriver struct {
	store     storage.Store
	sender    Sender
	knowledge *kb.KB
	indexer   *QuestionIndexer
	resolver  *ReplyResolver
	renderer  *MenuRenderer

	// TypingDelay paces multi-message turns. Zero in tests.
	TypingDelay time.Duration
	SessionTTL  time.Duration
}

// NewConversationDriver wires the driver with its collaborators.
func NewConversationDriver(store storage.Store, sender Sender, knowledge *kb.KB) *ConversationDriver {
	indexer := NewQuestionIndexer(knowledge)
	return &ConversationDriver{
		store:       store,
		sender:      sender,
		knowledge:   knowledge,
		indexer:     indexer,
		resolver:    NewReplyResolver(knowledge, indexer),
		renderer:    NewMenuRenderer(knowledge, indexer),
		TypingDelay: 800 * time.Millisecond,
		SessionTTL:  24 * time.Hour,
	}
}

// Indexer exposes the question registry (admin introspection).
func (d *ConversationDriver) Indexer() *QuestionIndexer {
	return d.indexer
}

// HandleMessage processes one inbound message end to end.
func (d *ConversationDriver) HandleMessage(ctx context.Context, msg models.InboundMessage) {
	log.Printf("📱 Processing message id=%s from=%s type=%s", msg.ID, msg.From, msg.Type)

	switch msg.Type {
	case "text":
		body := ""
		if msg.Text != nil {
			body = msg.Text.Body
		}
		d.processText(ctx, msg.From, body)

	case "interactive":
		d.processInteractive(ctx, msg.From, msg.Interactive)

	case "image", "document", "audio", "video", "sticker":
		d.send(ctx, msg.From, mediaText)
		d.pause()
		d.sendMainMenu(ctx, msg.From)

	default:
		log.Printf("Unsupported message type %q from %s", msg.Type, msg.From)
		d.sendMainMenu(ctx, msg.From)
	}
}

func (d *ConversationDriver) processText(ctx context.Context, from, text string) {
	if greetings[utils.Normalize(text)] {
		d.sendWelcomeSequence(ctx, from)
		return
	}

	session := d.session(from)
	if session == nil {
		d.sendWelcomeSequence(ctx, from)
		return
	}

	d.send(ctx, from, redirectText)
	d.pause()
	d.sendMainMenu(ctx, from)
}

func (d *ConversationDriver) processInteractive(ctx context.Context, from string, reply *models.InteractiveReply) {
	session := d.session(from)
	action := d.resolver.ResolveReply(reply, session)

	switch action.Type {
	case ActionShowMainMenu:
		d.sendMainMenu(ctx, from)

	case ActionShowAppSubmenu:
		d.sendAppSubmenu(ctx, from)

	case ActionShowCategory:
		d.sendCategory(ctx, from, action.CategoryPath)

	case ActionShowAnswer:
		d.sendAnswer(ctx, from, action.QuestionID)

	case ActionFeedback:
		if action.HelpWanted {
			d.sendMainMenu(ctx, from)
		} else {
			d.sendRatingRequest(ctx, from)
		}

	case ActionRating:
		d.handleRating(ctx, from, action.RatingLabel)

	case ActionUnrecognized:
		d.send(ctx, from, unreadText)
		d.sendMainMenu(ctx, from)

	default:
		log.Printf("⚠️  Unhandled action type %d for %s", action.Type, from)
		d.sendMainMenu(ctx, from)
	}
}

func (d *ConversationDriver) sendWelcomeSequence(ctx context.Context, to string) {
	d.pause()
	d.send(ctx, to, welcomeText)
	d.pause()
	d.sendMainMenu(ctx, to)
}

func (d *ConversationDriver) sendMainMenu(ctx context.Context, to string) {
	d.sendMenu(ctx, to, d.renderer.MainMenu())
	d.saveState(to, models.StateMainMenu, "")
}

// sendAppSubmenu shows the APP branch; without one the main menu is the
// sanest recovery.
func (d *ConversationDriver) sendAppSubmenu(ctx context.Context, to string) {
	for _, root := range d.knowledge.Roots() {
		if !root.IsLeaf() {
			d.sendMenu(ctx, to, d.renderer.CategoryMenu(root.Name, root))
			d.saveState(to, models.StateAppSubmenu, root.Name)
			return
		}
	}
	d.sendMainMenu(ctx, to)
}

func (d *ConversationDriver) sendCategory(ctx context.Context, to, path string) {
	canonical, node := d.knowledge.Canonical(path)
	if node == nil {
		d.send(ctx, to, noCategory)
		d.sendMainMenu(ctx, to)
		return
	}

	if node.IsLeaf() && len(node.Questions) == 0 {
		d.send(ctx, to, noQuestions)
		d.sendMainMenu(ctx, to)
		return
	}

	d.sendMenu(ctx, to, d.renderer.CategoryMenu(canonical, node))
	if node.IsLeaf() {
		d.saveState(to, models.StateQuestionsMenu, canonical)
	} else {
		d.saveState(to, models.StateAppSubmenu, canonical)
	}
}

func (d *ConversationDriver) sendAnswer(ctx context.Context, to, questionID string) {
	entry := d.indexer.Get(questionID)
	if entry == nil {
		d.send(ctx, to, noAnswer)
		d.sendMainMenu(ctx, to)
		return
	}

	d.pause()
	d.send(ctx, to, entry.Answer)
	d.pause()
	d.sendMoreHelpOptions(ctx, to, entry.CategoryPath)
}

func (d *ConversationDriver) sendMoreHelpOptions(ctx context.Context, to, categoryPath string) {
	if err := d.sender.SendButtons(ctx, to, moreHelpText, []Button{
		{ID: "YES", Title: "Sí, por favor"},
		{ID: "NO", Title: "No, gracias"},
	}); err != nil {
		log.Printf("❌ Failed to send more-help prompt to %s: %v", to, err)
	}
	d.saveState(to, models.StateMoreHelp, categoryPath)
}

func (d *ConversationDriver) sendRatingRequest(ctx context.Context, to string) {
	if err := d.sender.SendButtons(ctx, to, ratingText, []Button{
		{ID: "RATE_EXCELLENT", Title: "Excelente"},
		{ID: "RATE_GOOD", Title: "Bien"},
		{ID: "RATE_NEEDS_IMPROVEMENT", Title: "Necesita mejorar"},
	}); err != nil {
		log.Printf("❌ Failed to send rating prompt to %s: %v", to, err)
	}
	d.saveState(to, models.StateRating, "")
}

func (d *ConversationDriver) handleRating(ctx context.Context, from, label string) {
	if err := d.store.AddRating(&models.Rating{
		UserPhone: from,
		Label:     label,
		RatedAt:   time.Now(),
	}); err != nil {
		log.Printf("❌ Failed to save rating for %s: %v", from, err)
	}

	thankYou := "¡Gracias por tu calificación: *" + label + "*! 🙏\n\n" +
		"Tu opinión es muy importante para nosotros.\n\n" +
		"Si necesitas más ayuda en el futuro, escríbenos. ¡Que tengas un excelente día! 😊"
	d.send(ctx, from, thankYou)

	if err := d.store.DeleteSession(from); err == nil {
		log.Printf("Saved rating %q for user %s, conversation closed", label, from)
	}
}

// session returns the live session for a user, dropping it if expired.
func (d *ConversationDriver) session(phone string) *models.Session {
	session, err := d.store.GetSession(phone)
	if err != nil {
		return nil
	}
	if session.Expired(d.SessionTTL) {
		_ = d.store.DeleteSession(phone)
		return nil
	}
	return session
}

// saveState overwrites the user's session. State advances even when the
// outbound send before it failed; the provider may retry delivery anyway.
func (d *ConversationDriver) saveState(phone, state, category string) {
	err := d.store.SaveSession(&models.Session{
		PhoneNumber:     phone,
		State:           state,
		Category:        category,
		LastInteraction: time.Now(),
	})
	if err != nil {
		log.Printf("❌ Failed to save session for %s: %v", phone, err)
	}
}

func (d *ConversationDriver) sendMenu(ctx context.Context, to string, menu *RenderedMenu) {
	var err error
	if menu.IsButtons() {
		err = d.sender.SendButtons(ctx, to, menu.Body, menu.Buttons)
	} else {
		err = d.sender.SendList(ctx, to, menu.Header, menu.Body, menu.Sections)
	}
	if err != nil {
		log.Printf("❌ Failed to send menu to %s: %v", to, err)
	}
}

func (d *ConversationDriver) send(ctx context.Context, to, body string) {
	if err := d.sender.SendText(ctx, to, body); err != nil {
		log.Printf("❌ Failed to send text to %s: %v", to, err)
	}
}

func (d *ConversationDriver) pause() {
	if d.TypingDelay > 0 {
		time.Sleep(d.TypingDelay)
	}
}
