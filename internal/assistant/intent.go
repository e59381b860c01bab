package assistant

import (
	"strconv"
	"strings"

	"github.com/shopassist/shopassist/internal/models"
)

// The model is instructed to embed at most one ACTION marker line in its
// reply. Everything it can ask for is one of these variants; anything that
// does not parse degrades to a plain conversational reply.
type IntentKind int

const (
	IntentReply IntentKind = iota
	IntentListProducts
	IntentSearchProducts
	IntentGetProduct
	IntentCreateCart
)

const actionMarker = "ACTION:"

type Intent struct {
	Kind       IntentKind
	Reply      string
	SearchTerm string
	ProductID  int64
	Items      []models.CartItemRequest
}

// ParseIntent decodes a model reply into a typed intent. The first line
// carrying the ACTION marker is parsed strictly; on any parse failure the
// whole reply is returned as a conversational answer with marker lines
// removed.
func ParseIntent(reply string) Intent {

	lines := strings.Split(reply, "\n")

	for _, line := range lines {
		idx := strings.Index(line, actionMarker)
		if idx < 0 {
			continue
		}

		action := strings.TrimSpace(line[idx+len(actionMarker):])

		if intent, ok := parseAction(action); ok {
			return intent
		}

		break
	}

	return Intent{Kind: IntentReply, Reply: stripMarkers(reply)}
}

func parseAction(action string) (Intent, bool) {

	verb, args, _ := strings.Cut(action, ":")

	switch strings.TrimSpace(verb) {

	case "list_products":
		return Intent{Kind: IntentListProducts}, true

	case "search_products":
		term := strings.TrimSpace(args)
		if term == "" {
			return Intent{}, false
		}
		return Intent{Kind: IntentSearchProducts, SearchTerm: term}, true

	case "get_product":
		id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
		if err != nil || id <= 0 {
			return Intent{}, false
		}
		return Intent{Kind: IntentGetProduct, ProductID: id}, true

	case "create_cart":
		items, ok := parseCartItems(args)
		if !ok {
			return Intent{}, false
		}
		return Intent{Kind: IntentCreateCart, Items: items}, true
	}

	return Intent{}, false
}

// parseCartItems reads a "<id>x<qty>[,<id>x<qty>...]" argument list.
func parseCartItems(args string) ([]models.CartItemRequest, bool) {

	parts := strings.Split(args, ",")

	items := make([]models.CartItemRequest, 0, len(parts))

	for _, part := range parts {

		idStr, qtyStr, found := strings.Cut(strings.TrimSpace(part), "x")
		if !found {
			return nil, false
		}

		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(qtyStr), 10, 64)
		if err != nil || qty <= 0 {
			return nil, false
		}

		items = append(items, models.CartItemRequest{ProductID: id, Qty: qty})
	}

	if len(items) == 0 {
		return nil, false
	}

	return items, true
}

func stripMarkers(reply string) string {

	lines := strings.Split(reply, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.Contains(line, actionMarker) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
