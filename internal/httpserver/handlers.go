package httpserver

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pixibai/internal/appstate"
	"pixibai/internal/checkout"
	"pixibai/internal/domain"
	"pixibai/internal/money"
	"pixibai/internal/photo"
	"pixibai/internal/session"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func (h *handlers) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.deps.Catalog.All()})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Catalog.ByID(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type createSessionRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	p, err := h.deps.Catalog.ByID(req.ProductID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	sess := h.deps.Sessions.Create(*p)
	c.JSON(http.StatusCreated, sess)
}

func (h *handlers) getSession(c *gin.Context) {
	sess, err := h.deps.Sessions.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) addPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one photo file required"})
		return
	}

	photos := make([]domain.Photo, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
			return
		}
		ph, err := photo.FromUpload(fh.Filename, data)
		if err != nil {
			h.renderError(c, err)
			return
		}
		photos = append(photos, ph)
	}

	sess, err := h.deps.Sessions.AddPhotos(c.Param("id"), photos)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type captionRequest struct {
	Caption string `json:"caption"`
}

func (h *handlers) updateCaption(c *gin.Context) {
	var req captionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid caption payload"})
		return
	}
	sess, err := h.deps.Sessions.UpdateCaption(c.Param("id"), c.Param("photoId"), req.Caption)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) setCover(c *gin.Context) {
	sess, err := h.deps.Sessions.SetCover(c.Param("id"), c.Param("photoId"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type editPhotoRequest struct {
	Instruction string `json:"instruction"`
}

func (h *handlers) editPhoto(c *gin.Context) {
	var req editPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Instruction) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Por favor, introduce una instrucción."})
		return
	}

	sess, err := h.deps.Sessions.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	var target *domain.Photo
	for i := range sess.Photos {
		if sess.Photos[i].ID == c.Param("photoId") {
			target = &sess.Photos[i]
			break
		}
	}
	if target == nil {
		h.renderError(c, domain.ErrNotFound)
		return
	}

	data, mimeType, err := h.deps.Assistant.EditImage(c.Request.Context(), target.Data, target.MIMEType, req.Instruction)
	if err != nil {
		h.logger.Printf("image edit failed: %v", err)
	}
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"edited":  false,
			"message": "No se pudo editar la imagen. Inténtalo de nuevo con otras instrucciones.",
		})
		return
	}

	edited, err := photo.WithImage(*target, data, mimeType)
	if err != nil {
		h.logger.Printf("decode edited image: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"edited":  false,
			"message": "No se pudo editar la imagen. Inténtalo de nuevo con otras instrucciones.",
		})
		return
	}
	updated, err := h.deps.Sessions.ReplacePhotoImage(sess.ID, edited)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"edited": true, "session": updated})
}

func (h *handlers) removePhoto(c *gin.Context) {
	sess, err := h.deps.Sessions.RemovePhoto(c.Param("id"), c.Param("photoId"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) setOptions(c *gin.Context) {
	var patch session.OptionsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid options payload"})
		return
	}
	sess, err := h.deps.Sessions.SetOptions(c.Param("id"), patch)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type giftCardRequest struct {
	AmountCents    int64  `json:"amountCents" binding:"required"`
	Occasion       string `json:"occasion"`
	RecipientName  string `json:"recipientName"`
	RecipientEmail string `json:"recipientEmail"`
	Message        string `json:"message"`
}

func (h *handlers) setGiftCard(c *gin.Context) {
	var req giftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift card payload"})
		return
	}
	sess, err := h.deps.Sessions.SetGiftCard(c.Param("id"), domain.GiftCardDetails{
		AmountCents:    req.AmountCents,
		Occasion:       req.Occasion,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		Message:        req.Message,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) quoteSession(c *gin.Context) {
	quote, err := h.deps.Sessions.Quote(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"priceCents":  quote.PriceCents,
		"price":       money.FormatPEN(quote.PriceCents),
		"description": quote.Description,
	})
}

func (h *handlers) finalizeSession(c *gin.Context) {
	item, err := h.deps.Sessions.Finalize(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	stored := h.deps.Cart.Add(item)
	h.deps.App.Dispatch(appstate.Event{Kind: appstate.EventNavigate, View: appstate.ViewCart})
	c.JSON(http.StatusCreated, gin.H{
		"item":      stored,
		"cartCount": h.deps.Cart.Count(),
	})
}

func (h *handlers) getCart(c *gin.Context) {
	items := h.deps.Cart.Items()
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"totalCents": h.deps.Cart.TotalCents(),
		"total":      money.FormatPEN(h.deps.Cart.TotalCents()),
		"count":      h.deps.Cart.Count(),
	})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	h.deps.Cart.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *handlers) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.App.Current())
}

type navigateRequest struct {
	View appstate.View `json:"view" binding:"required"`
}

func (h *handlers) navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.View.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid view required"})
		return
	}
	state := h.deps.App.Dispatch(appstate.Event{Kind: appstate.EventNavigate, View: req.View})
	c.JSON(http.StatusOK, state)
}

type selectProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) selectProduct(c *gin.Context) {
	var req selectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	if _, err := h.deps.Catalog.ByID(req.ProductID); err != nil {
		h.renderError(c, err)
		return
	}
	state := h.deps.App.Dispatch(appstate.Event{Kind: appstate.EventSelectProduct, ProductID: req.ProductID})
	c.JSON(http.StatusOK, state)
}

func (h *handlers) restart(c *gin.Context) {
	h.deps.Cart.Clear()
	h.deps.Sessions.Clear()
	state := h.deps.App.Dispatch(appstate.Event{Kind: appstate.EventRestart})
	c.JSON(http.StatusOK, state)
}

func (h *handlers) getCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, checkout.Summarize(h.deps.Cart.Items()))
}

func (h *handlers) placeOrder(c *gin.Context) {
	var details checkout.ShippingDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipping payload"})
		return
	}
	confirmation, err := checkout.PlaceOrder(h.deps.Cart.Items(), details)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}
	reply, err := h.deps.Assistant.Chat(c.Request.Context(), strings.TrimSpace(req.Message))
	if err != nil {
		h.logger.Printf("chat request failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"reply": fallbackChatReply})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

const fallbackChatReply = "Lo siento, tuve un problema para procesar tu solicitud. Inténtalo de nuevo."

func (h *handlers) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrNoPhotos),
		errors.Is(err, domain.ErrRecipientRequired),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrMissingShippingField),
		errors.Is(err, domain.ErrUnsupportedImage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
