package domain

// SelectedOptions captures the user's in-progress choices for one product.
// Size, Cover and Pages hold option names; Pages is also derived into a
// numeric page count at finalization.
type SelectedOptions struct {
	Size      string `json:"size,omitempty"`
	Cover     string `json:"cover,omitempty"`
	Pages     string `json:"pages,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	HasFrame  bool   `json:"hasFrame,omitempty"`
}

// GiftCardDetails doubles as the gift card's own price: the chosen amount is
// the final cart price regardless of occasion or message content.
type GiftCardDetails struct {
	AmountCents    int64  `json:"amountCents"`
	Occasion       string `json:"occasion"`
	RecipientName  string `json:"recipientName"`
	RecipientEmail string `json:"recipientEmail"`
	Message        string `json:"message,omitempty"`
}

// CartItem is a finalized purchase line. The Product field is a snapshot
// taken at finalization, so later catalog changes never alter stored prices.
// Immutable after creation except for removal from the cart.
type CartItem struct {
	ID              string           `json:"id"`
	Product         Product          `json:"product"`
	Quantity        int              `json:"quantity"`
	PriceCents      int64            `json:"priceCents"`
	Description     string           `json:"description,omitempty"`
	Photos          []Photo          `json:"photos,omitempty"`
	GiftCardDetails *GiftCardDetails `json:"giftCardDetails,omitempty"`
	SelectedOptions *SelectedOptions `json:"selectedOptions,omitempty"`
}
