package domain

// ProductType tags a catalog product with its customization flow.
type ProductType string

const (
	TypeAlbum     ProductType = "album"
	TypeMagnets   ProductType = "magnets"
	TypeFrame     ProductType = "frame"
	TypeOrnaments ProductType = "ornaments"
	TypeGiftCard  ProductType = "giftcard"
)

// IsPhotoBased reports whether the product flow collects uploaded photos.
func (t ProductType) IsPhotoBased() bool {
	return t != TypeGiftCard
}

type Product struct {
	ID             string          `json:"id"`
	Type           ProductType     `json:"type"`
	Name           string          `json:"name"`
	Tagline        string          `json:"tagline"`
	Details        []DetailSection `json:"details,omitempty"`
	PriceText      string          `json:"priceText"`
	BasePriceCents int64           `json:"basePriceCents,omitempty"`
	Options        *ProductOptions `json:"options,omitempty"`
}

type DetailSection struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// ProductOptions bundles the configurable dimensions a product may carry.
// Nil slices mean the dimension does not apply to the product.
type ProductOptions struct {
	Sizes  []ProductOption `json:"sizes,omitempty"`
	Covers []ProductOption `json:"covers,omitempty"`
	Pages  []ProductOption `json:"pages,omitempty"`
	Frame  *FrameAddOn     `json:"frame,omitempty"`
	Tiers  []Tier          `json:"tiers,omitempty"`
}

// ProductOption is a named choice contributing a fixed delta to the base price.
type ProductOption struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

// FrameAddOn is the per-unit surcharge for adding a frame to a printed piece.
type FrameAddOn struct {
	PriceCents int64 `json:"priceCents"`
}

// Tier maps an exact quantity to an absolute price. Tiers are not additive:
// each quantity carries its own total, not a per-unit rate.
type Tier struct {
	Qty        int   `json:"qty"`
	PriceCents int64 `json:"priceCents"`
}

// OptionByName looks up an option by its stable name key. The second return
// is false when the name matches no option in the list.
func OptionByName(opts []ProductOption, name string) (ProductOption, bool) {
	for _, o := range opts {
		if o.Name == name {
			return o, true
		}
	}
	return ProductOption{}, false
}

// DefaultOption returns the first listed option, the default applied when the
// user has made no explicit selection for a dimension.
func DefaultOption(opts []ProductOption) (ProductOption, bool) {
	if len(opts) == 0 {
		return ProductOption{}, false
	}
	return opts[0], true
}
