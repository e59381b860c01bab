package models

// InboundMessage is one webhook delivery from the chat channel. Each message
// is handled independently; no conversation state is kept between deliveries.
type InboundMessage struct {
	Body string
	From string
}

type WebhookReply struct {
	Message string `json:"message"`
}
