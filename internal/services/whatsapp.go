package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	graphAPIVersion = "v18.0"

	footerText     = "Per Capital - Tu asistente virtual"
	listButtonText = "Ver opciones"
)

// Button is one reply button (max 3 per message).
type Button struct {
	ID    string
	Title string
}

// Row is one list row.
type Row struct {
	ID          string
	Title       string
	Description string
}

// Section is one titled group of list rows.
type Section struct {
	Title string
	Rows  []Row
}

// Sender sends outbound WhatsApp messages. The conversation driver only
// talks to this interface; tests swap in a recorder.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
	SendButtons(ctx context.Context, to, body string, buttons []Button) error
	SendList(ctx context.Context, to, header, body string, sections []Section) error
}

// WhatsAppService talks to the Meta WhatsApp Cloud API.
type WhatsAppService struct {
	token         string
	phoneNumberID string
	apiURL        string
	client        *http.Client
}

// NewWhatsAppService creates the Cloud API client from WHATSAPP_TOKEN and
// PHONE_NUMBER_ID. Missing or placeholder credentials leave the service in a
// degraded mode where sends fail loudly instead of panicking.
func NewWhatsAppService() *WhatsAppService {
	token := os.Getenv("WHATSAPP_TOKEN")
	phoneNumberID := os.Getenv("PHONE_NUMBER_ID")

	return &WhatsAppService{
		token:         token,
		phoneNumberID: phoneNumberID,
		apiURL:        fmt.Sprintf("https://graph.facebook.com/%s/%s/messages", graphAPIVersion, phoneNumberID),
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether real credentials are present.
func (w *WhatsAppService) Configured() bool {
	return w.token != "" && w.phoneNumberID != "" &&
		!strings.Contains(strings.ToLower(w.token), "your_") &&
		!strings.Contains(strings.ToLower(w.phoneNumberID), "your_")
}

// Cloud API payload shapes. Field names belong to the external API.

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type interactivePayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Interactive      interactive `json:"interactive"`
}

type interactive struct {
	Type   string             `json:"type"`
	Header *interactiveHeader `json:"header,omitempty"`
	Body   textBody           `json:"body"`
	Footer *textBody          `json:"footer,omitempty"`
	Action interactiveAction  `json:"action"`
}

type interactiveHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type interactiveAction struct {
	Button   string           `json:"button,omitempty"`
	Buttons  []replyButton    `json:"buttons,omitempty"`
	Sections []payloadSection `json:"sections,omitempty"`
}

type replyButton struct {
	Type  string      `json:"type"`
	Reply buttonReply `json:"reply"`
}

type buttonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type payloadSection struct {
	Title string       `json:"title"`
	Rows  []payloadRow `json:"rows"`
}

type payloadRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (w *WhatsAppService) SendText(ctx context.Context, to, body string) error {
	return w.post(ctx, textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	})
}

func (w *WhatsAppService) SendButtons(ctx context.Context, to, body string, buttons []Button) error {
	rb := make([]replyButton, 0, len(buttons))
	for _, b := range buttons {
		rb = append(rb, replyButton{Type: "reply", Reply: buttonReply{ID: b.ID, Title: b.Title}})
	}

	return w.post(ctx, interactivePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: interactive{
			Type:   "button",
			Body:   textBody{Body: body},
			Footer: &textBody{Body: footerText},
			Action: interactiveAction{Buttons: rb},
		},
	})
}

func (w *WhatsAppService) SendList(ctx context.Context, to, header, body string, sections []Section) error {
	ps := make([]payloadSection, 0, len(sections))
	for _, s := range sections {
		rows := make([]payloadRow, 0, len(s.Rows))
		for _, r := range s.Rows {
			rows = append(rows, payloadRow{ID: r.ID, Title: r.Title, Description: r.Description})
		}
		ps = append(ps, payloadSection{Title: s.Title, Rows: rows})
	}

	msg := interactivePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: interactive{
			Type:   "list",
			Body:   textBody{Body: body},
			Footer: &textBody{Body: footerText},
			Action: interactiveAction{Button: listButtonText, Sections: ps},
		},
	}
	if header != "" {
		msg.Interactive.Header = &interactiveHeader{Type: "text", Text: header}
	}
	return w.post(ctx, msg)
}

func (w *WhatsAppService) post(ctx context.Context, payload any) error {
	if !w.Configured() {
		log.Println("❌ Missing or placeholder WhatsApp credentials - message not sent")
		return fmt.Errorf("whatsapp credentials not configured")
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.apiURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		log.Printf("❌ WhatsApp API request failed: %v", err)
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("❌ WhatsApp API returned %s: %s", resp.Status, string(respBody))
		return fmt.Errorf("whatsapp API returned %s: %s", resp.Status, string(respBody))
	}

	log.Printf("✅ WhatsApp message sent to %s", recipientOf(payload))
	return nil
}

func recipientOf(payload any) string {
	switch p := payload.(type) {
	case textPayload:
		return p.To
	case interactivePayload:
		return p.To
	}
	return "?"
}
