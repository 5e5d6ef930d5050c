// Package pricing computes the final price and option summary for a product
// given the user's current selections. Quotes are pure functions of their
// inputs; nothing here reads or mutates shared state.
package pricing

import (
	"fmt"
	"strconv"

	"pixibai/internal/domain"
)

// Quote is the outcome of pricing one customization.
type Quote struct {
	PriceCents  int64  `json:"priceCents"`
	Description string `json:"description,omitempty"`
}

// ForProduct prices a catalog product against the current selections.
// Gift cards are priced separately via ForGiftCard since their price is the
// chosen amount, not a product attribute.
func ForProduct(p domain.Product, sel domain.SelectedOptions) Quote {
	switch p.Type {
	case domain.TypeAlbum:
		return albumQuote(p, sel)
	case domain.TypeFrame:
		return frameQuote(p, sel)
	default:
		return Quote{PriceCents: p.BasePriceCents}
	}
}

// ForGiftCard prices a gift card: the chosen amount is the price, and the
// summary names the recipient.
func ForGiftCard(d domain.GiftCardDetails) Quote {
	return Quote{
		PriceCents:  d.AmountCents,
		Description: "Para: " + d.RecipientName,
	}
}

func albumQuote(p domain.Product, sel domain.SelectedOptions) Quote {
	size, cover, pages := AlbumSelection(p, sel)
	price := p.BasePriceCents + size.PriceCents + cover.PriceCents + pages.PriceCents
	return Quote{
		PriceCents:  price,
		Description: fmt.Sprintf("%s, %s, %s Pags.", size.Name, cover.Name, pages.Name),
	}
}

// AlbumSelection resolves the three album dimensions, falling back to each
// option list's first entry when the user has made no explicit choice.
func AlbumSelection(p domain.Product, sel domain.SelectedOptions) (size, cover, pages domain.ProductOption) {
	if p.Options != nil {
		size = resolveOption(p.Options.Sizes, sel.Size)
		cover = resolveOption(p.Options.Covers, sel.Cover)
		pages = resolveOption(p.Options.Pages, sel.Pages)
	}
	return size, cover, pages
}

func resolveOption(opts []domain.ProductOption, name string) domain.ProductOption {
	if name != "" {
		if o, ok := domain.OptionByName(opts, name); ok {
			return o
		}
	}
	o, _ := domain.DefaultOption(opts)
	return o
}

func frameQuote(p domain.Product, sel domain.SelectedOptions) Quote {
	qty := sel.Quantity
	if qty <= 0 {
		qty = 1
	}

	// Exact tier match wins. Anything else falls back to linear
	// base-price-times-quantity; an empty tier list degrades the same way.
	// The fallback is a known approximation carried over from the original
	// pricing rules, kept rather than interpolating between tiers.
	price := p.BasePriceCents * int64(qty)
	if p.Options != nil {
		for _, tier := range p.Options.Tiers {
			if tier.Qty == qty {
				price = tier.PriceCents
				break
			}
		}
	}

	desc := fmt.Sprintf("%d cuadro", qty)
	if qty > 1 {
		desc += "s"
	}
	if sel.HasFrame {
		if p.Options != nil && p.Options.Frame != nil {
			price += p.Options.Frame.PriceCents * int64(qty)
		}
		desc += ", con marco"
	}
	return Quote{PriceCents: price, Description: desc}
}

// PageCount derives the numeric page count from a page option name.
// A zero-length or non-numeric name parses to 0.
func PageCount(name string) int {
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0
	}
	return n
}
