package assistant

import (
	"fmt"
	"strings"

	"github.com/shopassist/shopassist/internal/models"
)

const maxListedProducts = 10

func FormatProducts(products []*models.Product, query string) string {

	if len(products) == 0 {
		if query != "" {
			return fmt.Sprintf("No products matched %q. Try another search term.", query)
		}
		return "The catalog is empty right now. Please check back later."
	}

	var sb strings.Builder

	if query != "" {
		fmt.Fprintf(&sb, "🔍 Results for %q:\n\n", query)
	} else {
		sb.WriteString("🛍️ Available products:\n\n")
	}

	for i, p := range products {
		if i == maxListedProducts {
			break
		}
		fmt.Fprintf(&sb, "• %s\n  💰 $%.2f — stock: %d (id %d)\n", p.Name, p.Price, p.Stock, p.ID)
	}

	if len(products) > maxListedProducts {
		fmt.Fprintf(&sb, "\n... and %d more", len(products)-maxListedProducts)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func FormatProduct(p *models.Product) string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "🔍 %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&sb, "📝 %s\n", p.Description)
	}
	fmt.Fprintf(&sb, "💰 $%.2f\n📦 Stock: %d\n🆔 ID: %d", p.Price, p.Stock, p.ID)

	return sb.String()
}

func FormatCart(cart *models.Cart) string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "🛒 Cart #%d\n\n", cart.ID)

	if len(cart.Items) == 0 {
		sb.WriteString("🗑️ The cart is empty.\n")
	} else {
		for _, line := range cart.Items {
			fmt.Fprintf(&sb, "• %s\n  qty %d × $%.2f = $%.2f\n", line.Name, line.Qty, line.Price, line.Price*float64(line.Qty))
		}
	}

	fmt.Fprintf(&sb, "\nTotal items: %d\n💰 Total: $%.2f", cart.TotalItems, cart.TotalAmount)

	return sb.String()
}
