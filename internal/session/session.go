// Package session holds the per-product customization state collected before
// a purchase becomes a cart item. Sessions live in memory only and disappear
// on finalize, restart or process exit.
package session

import (
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pixibai/internal/domain"
	"pixibai/internal/pricing"
)

// Session is one product's in-progress configuration.
type Session struct {
	ID           string                 `json:"id"`
	Product      domain.Product         `json:"product"`
	Photos       []domain.Photo         `json:"photos"`
	CoverPhotoID string                 `json:"coverPhotoId,omitempty"`
	Options      domain.SelectedOptions `json:"options"`
	GiftCard     domain.GiftCardDetails `json:"giftCard"`
}

// OptionsPatch carries partial option updates; nil fields are left unchanged.
type OptionsPatch struct {
	Size     *string `json:"size"`
	Cover    *string `json:"cover"`
	Pages    *string `json:"pages"`
	Quantity *int    `json:"quantity"`
	HasFrame *bool   `json:"hasFrame"`
}

// Store keeps active sessions keyed by id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create opens a session for the given product. Gift card sessions start
// with the storefront defaults.
func (s *Store) Create(product domain.Product) Session {
	sess := &Session{
		ID:      uuid.NewString(),
		Product: product,
		Options: domain.SelectedOptions{Quantity: 1},
	}
	if product.Type == domain.TypeGiftCard {
		sess.GiftCard = domain.GiftCardDetails{
			AmountCents: 5000,
			Occasion:    "Feliz Cumpleaños",
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess.snapshot()
}

// Get returns a copy of the session or domain.ErrNotFound.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, domain.ErrNotFound
	}
	return sess.snapshot(), nil
}

// AddPhotos appends uploaded photos. For albums the first photo added while
// no cover is set becomes the cover.
func (s *Store) AddPhotos(id string, photos []domain.Photo) (Session, error) {
	return s.update(id, func(sess *Session) error {
		sess.Photos = append(sess.Photos, photos...)
		if sess.Product.Type == domain.TypeAlbum && sess.CoverPhotoID == "" && len(photos) > 0 {
			sess.CoverPhotoID = photos[0].ID
		}
		return nil
	})
}

// UpdateCaption edits a photo's caption in place, preserving identity.
func (s *Store) UpdateCaption(id, photoID, caption string) (Session, error) {
	return s.update(id, func(sess *Session) error {
		p := sess.photoByID(photoID)
		if p == nil {
			return domain.ErrNotFound
		}
		p.Caption = caption
		return nil
	})
}

// ReplacePhotoImage swaps a photo's image data after an AI edit. The photo
// keeps its id, caption and date.
func (s *Store) ReplacePhotoImage(id string, edited domain.Photo) (Session, error) {
	return s.update(id, func(sess *Session) error {
		p := sess.photoByID(edited.ID)
		if p == nil {
			return domain.ErrNotFound
		}
		p.Data = edited.Data
		p.MIMEType = edited.MIMEType
		p.PreviewURL = edited.PreviewURL
		return nil
	})
}

// RemovePhoto deletes a photo. If it was the cover, the cover moves to the
// first remaining photo, or clears when none remain.
func (s *Store) RemovePhoto(id, photoID string) (Session, error) {
	return s.update(id, func(sess *Session) error {
		idx := -1
		for i := range sess.Photos {
			if sess.Photos[i].ID == photoID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		sess.Photos = append(sess.Photos[:idx], sess.Photos[idx+1:]...)
		if sess.CoverPhotoID == photoID {
			if len(sess.Photos) > 0 {
				sess.CoverPhotoID = sess.Photos[0].ID
			} else {
				sess.CoverPhotoID = ""
			}
		}
		return nil
	})
}

// SetCover marks an existing photo as the album cover.
func (s *Store) SetCover(id, photoID string) (Session, error) {
	return s.update(id, func(sess *Session) error {
		if sess.photoByID(photoID) == nil {
			return domain.ErrNotFound
		}
		sess.CoverPhotoID = photoID
		return nil
	})
}

// SetOptions applies a partial option update.
func (s *Store) SetOptions(id string, patch OptionsPatch) (Session, error) {
	return s.update(id, func(sess *Session) error {
		if patch.Size != nil {
			sess.Options.Size = *patch.Size
		}
		if patch.Cover != nil {
			sess.Options.Cover = *patch.Cover
		}
		if patch.Pages != nil {
			sess.Options.Pages = *patch.Pages
		}
		if patch.Quantity != nil {
			sess.Options.Quantity = *patch.Quantity
		}
		if patch.HasFrame != nil {
			sess.Options.HasFrame = *patch.HasFrame
		}
		return nil
	})
}

// SetGiftCard replaces the gift card details.
func (s *Store) SetGiftCard(id string, details domain.GiftCardDetails) (Session, error) {
	return s.update(id, func(sess *Session) error {
		sess.GiftCard = details
		return nil
	})
}

// Quote prices the session's current state without finalizing it.
func (s *Store) Quote(id string) (pricing.Quote, error) {
	sess, err := s.Get(id)
	if err != nil {
		return pricing.Quote{}, err
	}
	if sess.Product.Type == domain.TypeGiftCard {
		return pricing.ForGiftCard(sess.GiftCard), nil
	}
	return pricing.ForProduct(sess.Product, sess.Options), nil
}

// Finalize converts the session into a cart line item and discards the
// session. Photo-based sessions with zero photos are rejected; gift cards
// require a recipient name and a syntactically valid email.
func (s *Store) Finalize(id string) (domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.CartItem{}, domain.ErrNotFound
	}

	item, err := sess.finalize()
	if err != nil {
		return domain.CartItem{}, err
	}
	delete(s.sessions, id)
	return item, nil
}

// Clear discards all active sessions. Used on storefront restart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*Session)
}

func (sess *Session) finalize() (domain.CartItem, error) {
	if sess.Product.Type == domain.TypeGiftCard {
		return sess.finalizeGiftCard()
	}
	return sess.finalizePhotos()
}

func (sess *Session) finalizePhotos() (domain.CartItem, error) {
	if len(sess.Photos) == 0 {
		return domain.CartItem{}, domain.ErrNoPhotos
	}

	quote := pricing.ForProduct(sess.Product, sess.Options)
	sel := sess.resolvedOptions()

	quantity := 1
	if sess.Product.Type == domain.TypeFrame {
		quantity = len(sess.Photos)
	}

	photos := make([]domain.Photo, len(sess.Photos))
	copy(photos, sess.Photos)

	return domain.CartItem{
		Product:         sess.Product,
		Quantity:        quantity,
		PriceCents:      quote.PriceCents,
		Description:     quote.Description,
		Photos:          photos,
		SelectedOptions: &sel,
	}, nil
}

func (sess *Session) finalizeGiftCard() (domain.CartItem, error) {
	details := sess.GiftCard
	if strings.TrimSpace(details.RecipientName) == "" {
		return domain.CartItem{}, domain.ErrRecipientRequired
	}
	if _, err := mail.ParseAddress(details.RecipientEmail); err != nil {
		return domain.CartItem{}, domain.ErrInvalidEmail
	}

	quote := pricing.ForGiftCard(details)
	return domain.CartItem{
		Product:         sess.Product,
		Quantity:        1,
		PriceCents:      quote.PriceCents,
		Description:     quote.Description,
		GiftCardDetails: &details,
	}, nil
}

// resolvedOptions normalizes the selections stored on the cart item: album
// dimensions fall back to their defaults and the page count is derived.
func (sess *Session) resolvedOptions() domain.SelectedOptions {
	sel := sess.Options
	if sess.Product.Type == domain.TypeAlbum {
		size, cover, pages := pricing.AlbumSelection(sess.Product, sel)
		sel.Size = size.Name
		sel.Cover = cover.Name
		sel.Pages = pages.Name
		sel.PageCount = pricing.PageCount(pages.Name)
	}
	if sel.Quantity <= 0 {
		sel.Quantity = 1
	}
	return sel
}

func (sess *Session) photoByID(photoID string) *domain.Photo {
	for i := range sess.Photos {
		if sess.Photos[i].ID == photoID {
			return &sess.Photos[i]
		}
	}
	return nil
}

func (sess *Session) snapshot() Session {
	out := *sess
	out.Photos = make([]domain.Photo, len(sess.Photos))
	copy(out.Photos, sess.Photos)
	return out
}

func (s *Store) update(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, domain.ErrNotFound
	}
	if err := fn(sess); err != nil {
		return Session{}, err
	}
	return sess.snapshot(), nil
}
