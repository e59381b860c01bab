package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopassist/shopassist/internal/models"
	"github.com/shopassist/shopassist/internal/utils/response"
)

// MessageProcessor turns one inbound chat message into a reply. Implemented
// by the assistant; each call is independent of any previous message.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, message, from string) string
}

type WebhookHandler struct {
	processor   MessageProcessor
	verifyToken string
}

func NewWebhookHandler(processor MessageProcessor, verifyToken string) *WebhookHandler {
	return &WebhookHandler{processor: processor, verifyToken: verifyToken}
}

// POST /webhook/whatsapp carries a Twilio-style form payload. The reply goes
// back synchronously in the response body; assistant failures still answer
// 200 with an apology so the channel never retries.
func (h *WebhookHandler) Receive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := r.ParseForm(); err != nil {
			response.WriteJson(w, http.StatusOK, models.WebhookReply{Message: "Sorry, something went wrong. Please try again."})
			return
		}

		body := r.FormValue("Body")
		from := r.FormValue("From")

		reply := h.processor.ProcessMessage(r.Context(), body, from)

		slog.Info("Webhook message handled", slog.String("from", from))
		response.WriteJson(w, http.StatusOK, models.WebhookReply{Message: reply})
	}
}

// GET /webhook/whatsapp is the WhatsApp Business subscription handshake.
func (h *WebhookHandler) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		mode := r.URL.Query().Get("hub.mode")
		token := r.URL.Query().Get("hub.verify_token")
		challenge := r.URL.Query().Get("hub.challenge")

		if mode != "subscribe" || token != h.verifyToken {
			slog.Warn("Webhook verification failed", slog.String("mode", mode))
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		slog.Info("Webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
	}
}
