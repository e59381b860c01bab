// Package assistant is the conversational front-end: it turns one inbound
// chat message into catalog lookups or cart mutations and a human-readable
// reply. Language understanding is delegated to an external model; the
// assistant itself keeps no state between messages.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/shopassist/shopassist/internal/errors"
	"github.com/shopassist/shopassist/internal/models"
	"github.com/shopassist/shopassist/pkg/storeapi"
)

// LLM is the external language model boundary.
type LLM interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// CatalogReader is the direct read path used only when the store API call
// fails. It is backed by the same catalog store as the API, so existence and
// stock rules are identical on both paths.
type CatalogReader interface {
	ListProducts(ctx context.Context, query string) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

const systemPrompt = `You are a sales assistant for an online clothing store.

You can trigger these store operations by putting exactly one marker line in
your reply:
1. Show the catalog: ACTION:list_products
2. Search products: ACTION:search_products:<term>
3. Product details: ACTION:get_product:<id>
4. Create a cart: ACTION:create_cart:<id>x<qty>[,<id>x<qty>...]
5. Just talk: reply directly with no marker.

Be friendly, present products with name, price and a short description, and
when the customer wants to buy, ask which products and quantities.`

type Assistant struct {
	llm      LLM
	api      *storeapi.Client
	catalog  CatalogReader
	sanitize *bluemonday.Policy
}

// New builds an assistant. llm may be nil, in which case a keyword fallback
// answers without the model.
func New(llm LLM, api *storeapi.Client, catalog CatalogReader) *Assistant {
	return &Assistant{
		llm:      llm,
		api:      api,
		catalog:  catalog,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// ProcessMessage handles one inbound message and always returns something the
// channel can deliver; failures degrade to apologetic replies, never errors.
func (a *Assistant) ProcessMessage(ctx context.Context, message, from string) string {

	message = strings.TrimSpace(a.sanitize.Sanitize(message))

	if message == "" {
		return "I didn't catch that. What are you looking for?"
	}

	if a.llm == nil {
		return a.keywordReply(ctx, message)
	}

	reply, err := a.llm.GenerateText(ctx, systemPrompt+"\n\nCustomer: "+message)
	if err != nil {
		slog.Warn("Model call failed, using keyword fallback", slog.String("from", from), slog.String("error", err.Error()))
		return a.keywordReply(ctx, message)
	}

	intent := ParseIntent(reply)

	switch intent.Kind {

	case IntentListProducts:
		return a.productsReply(ctx, message, "")

	case IntentSearchProducts:
		return a.productsReply(ctx, message, intent.SearchTerm)

	case IntentGetProduct:
		return a.productReply(ctx, message, intent.ProductID)

	case IntentCreateCart:
		return a.createCartReply(ctx, intent.Items)

	default:
		return intent.Reply
	}
}

func (a *Assistant) productsReply(ctx context.Context, message, query string) string {

	products, err := a.listProducts(ctx, query)
	if err != nil {
		slog.Error("Product lookup failed on both paths", slog.String("error", err.Error()))
		return "Sorry, I can't reach the catalog right now. Please try again in a moment."
	}

	formatted := FormatProducts(products, query)

	return a.embellish(ctx, message, formatted)
}

func (a *Assistant) productReply(ctx context.Context, message string, id int64) string {

	product, err := a.getProduct(ctx, id)
	if err != nil {
		if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
			return "❌ That product doesn't exist. Ask me for the catalog to see what's available."
		}
		slog.Error("Product lookup failed on both paths", slog.Int64("productId", id), slog.String("error", err.Error()))
		return "Sorry, I can't reach the catalog right now. Please try again in a moment."
	}

	return a.embellish(ctx, message, FormatProduct(product))
}

// createCartReply goes through the store API only; cart writes have no
// direct-to-store fallback.
func (a *Assistant) createCartReply(ctx context.Context, items []models.CartItemRequest) string {

	cart, err := a.api.CreateCart(ctx, items)
	if err != nil {

		if appErr, ok := appErrors.IsAppError(err); ok {
			switch appErr.Code {
			case appErrors.ErrCodeNotFound:
				return fmt.Sprintf("❌ %s", appErr.Message)
			case appErrors.ErrCodeInsufficientStock:
				return fmt.Sprintf("❌ %s. Try a smaller quantity.", appErr.Message)
			}
		}

		slog.Error("Cart creation via store api failed", slog.String("error", err.Error()))
		return "Sorry, I couldn't create the cart right now. Please try again."
	}

	return "✅ Cart created!\n\n" + FormatCart(cart)
}

func (a *Assistant) listProducts(ctx context.Context, query string) ([]*models.Product, error) {

	products, err := a.api.ListProducts(ctx, query)
	if err == nil {
		return products, nil
	}

	if _, ok := appErrors.IsAppError(err); ok {
		// The API answered; don't second-guess it with a direct read.
		return nil, err
	}

	slog.Warn("Store api unreachable, reading catalog directly", slog.String("error", err.Error()))

	return a.catalog.ListProducts(ctx, query)
}

func (a *Assistant) getProduct(ctx context.Context, id int64) (*models.Product, error) {

	product, err := a.api.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}

	if _, ok := appErrors.IsAppError(err); ok {
		return nil, err
	}

	slog.Warn("Store api unreachable, reading catalog directly", slog.String("error", err.Error()))

	return a.catalog.GetProductByID(ctx, id)
}

// embellish asks the model to phrase raw results conversationally. If the
// model is unavailable the raw formatting is good enough to send.
func (a *Assistant) embellish(ctx context.Context, message, results string) string {

	if a.llm == nil {
		return results
	}

	prompt := fmt.Sprintf("The customer asked: %s\n\nStore results:\n%s\n\nPresent these results in a friendly, concise reply. Keep every name, price and id.", message, results)

	reply, err := a.llm.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		return results
	}

	return strings.TrimSpace(reply)
}

// keywordReply is the no-model path: a few fixed heuristics over the message.
func (a *Assistant) keywordReply(ctx context.Context, message string) string {

	msg := strings.ToLower(message)

	switch {

	case containsAny(msg, "hello", "hi ", "hey", "hola"):
		return "👋 Hi! I'm the shop assistant.\n\nI can:\n• show you the catalog ('products')\n• search ('search shirts')\n• build a cart for you\n\nWhat are you after?"

	case containsAny(msg, "products", "catalog", "everything"):
		products, err := a.listProducts(ctx, "")
		if err != nil {
			return "Sorry, I can't reach the catalog right now. Please try again in a moment."
		}
		return FormatProducts(products, "")

	case strings.HasPrefix(msg, "search"), strings.HasPrefix(msg, "find"):
		term := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, "search"), "find"))
		products, err := a.listProducts(ctx, term)
		if err != nil {
			return "Sorry, I can't reach the catalog right now. Please try again in a moment."
		}
		return FormatProducts(products, term)

	default:
		return "🤔 I can help with:\n\n• 'products' — see the catalog\n• 'search <term>' — find something specific\n• 'I want to buy...' — build a cart\n\nWhat do you need?"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
