package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNoPhotos rejects finalizing a photo-based session with zero photos.
	ErrNoPhotos = errors.New("at least one photo required")
	// ErrRecipientRequired rejects a gift card without a recipient name.
	ErrRecipientRequired = errors.New("recipient name required")
	// ErrInvalidEmail rejects a syntactically invalid recipient email.
	ErrInvalidEmail = errors.New("invalid recipient email")
	// ErrNoProductSelected guards the customizer view against entry without
	// a selected product.
	ErrNoProductSelected = errors.New("no product selected")
	// ErrUnsupportedImage indicates an upload that could not be decoded.
	ErrUnsupportedImage = errors.New("unsupported image format")
	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingShippingField rejects a checkout form with a blank field.
	ErrMissingShippingField = errors.New("missing shipping field")
)
