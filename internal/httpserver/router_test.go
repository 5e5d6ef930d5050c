package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pixibai/internal/appstate"
	"pixibai/internal/cart"
	"pixibai/internal/catalog"
	"pixibai/internal/session"
)

type stubAssistant struct {
	chatReply   string
	chatErr     error
	lastMessage string

	editData []byte
	editMIME string
	editErr  error
}

func (s *stubAssistant) Chat(_ context.Context, message string) (string, error) {
	s.lastMessage = message
	return s.chatReply, s.chatErr
}

func (s *stubAssistant) EditImage(_ context.Context, _ []byte, _, _ string) ([]byte, string, error) {
	return s.editData, s.editMIME, s.editErr
}

func newTestRouter(t *testing.T, assistant AssistantClient) (*gin.Engine, Deps) {
	t.Helper()
	deps := Deps{
		Catalog:   catalog.Default(),
		Sessions:  session.NewStore(),
		Cart:      cart.NewStore(),
		App:       appstate.NewContainer(),
		Assistant: assistant,
	}
	logger := log.New(io.Discard, "", 0)
	router, err := buildRouter(logger, deps, []string{"*"})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router, deps
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func pngUpload(t *testing.T) ([]byte, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("photos", "foto.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(imgBuf.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()
	return body.Bytes(), w.FormDataContentType()
}

func createSession(t *testing.T, router *gin.Engine, productID string) session.Session {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{"productId": productID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var sess session.Session
	decodeBody(t, rec, &sess)
	return sess
}

func uploadPhoto(t *testing.T, router *gin.Engine, sessionID string) session.Session {
	t.Helper()
	body, contentType := pngUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+sessionID+"/photos", bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload photo: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var sess session.Session
	decodeBody(t, rec, &sess)
	return sess
}

func TestListProducts(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Products) != 5 {
		t.Fatalf("expected 5 products, got %d", len(resp.Products))
	}
}

func TestGetProductNotFound(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodGet, "/api/products/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateSessionUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{"productId": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAlbumFlowToCart(t *testing.T) {
	router, deps := newTestRouter(t, &stubAssistant{})

	sess := createSession(t, router, "fotolibro")
	sess = uploadPhoto(t, router, sess.ID)
	if len(sess.Photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(sess.Photos))
	}
	if sess.CoverPhotoID != sess.Photos[0].ID {
		t.Fatalf("expected first photo as cover, got %q", sess.CoverPhotoID)
	}

	rec := doJSON(t, router, http.MethodPatch, "/api/sessions/"+sess.ID+"/options", gin.H{"cover": "Duro"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set options: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/sessions/"+sess.ID+"/quote", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d", rec.Code)
	}
	var quote struct {
		PriceCents int64  `json:"priceCents"`
		Price      string `json:"price"`
	}
	decodeBody(t, rec, &quote)
	if quote.PriceCents != 8900+2500 {
		t.Fatalf("expected 11400, got %d", quote.PriceCents)
	}
	if quote.Price != "S/ 114.00" {
		t.Fatalf("unexpected formatted price: %q", quote.Price)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finalize: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	if got := deps.Cart.Count(); got != 1 {
		t.Fatalf("expected cart count 1, got %d", got)
	}
	if deps.App.Current().View != appstate.ViewCart {
		t.Fatalf("expected cart view after finalize, got %s", deps.App.Current().View)
	}
}

func TestFinalizeWithoutPhotosRejected(t *testing.T) {
	router, deps := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "fotolibro")

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if deps.Cart.Count() != 0 {
		t.Fatalf("cart should stay empty, got %d", deps.Cart.Count())
	}
}

func TestGiftCardFlow(t *testing.T) {
	router, deps := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "tarjeta-regalo")

	rec := doJSON(t, router, http.MethodPut, "/api/sessions/"+sess.ID+"/giftcard", gin.H{
		"amountCents":    10000,
		"occasion":       "Baby Shower",
		"recipientName":  "Ana",
		"recipientEmail": "ana@ejemplo.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set gift card: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("finalize: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if deps.Cart.TotalCents() != 10000 {
		t.Fatalf("expected total 10000, got %d", deps.Cart.TotalCents())
	}
}

func TestGiftCardFinalizeValidation(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "tarjeta-regalo")

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing recipient, got %d", rec.Code)
	}
}

func TestRemoveCartItemIsIdempotent(t *testing.T) {
	router, deps := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "imanes")
	uploadPhoto(t, router, sess.ID)
	doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)

	items := deps.Cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/cart/items/"+items[0].ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items/"+items[0].ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on repeat delete, got %d", rec.Code)
	}
}

func TestNavigateGuard(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodPost, "/api/view", gin.H{"view": "PRODUCT_CUSTOMIZER"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var state appstate.State
	decodeBody(t, rec, &state)
	if state.View != appstate.ViewStorefront {
		t.Fatalf("expected storefront fallback, got %s", state.View)
	}
}

func TestNavigateInvalidView(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodPost, "/api/view", gin.H{"view": "LOGIN"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRestartClearsEverything(t *testing.T) {
	router, deps := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "esferas")
	uploadPhoto(t, router, sess.ID)
	doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)
	doJSON(t, router, http.MethodPost, "/api/view/product", gin.H{"productId": "cuadros"})

	rec := doJSON(t, router, http.MethodPost, "/api/restart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var state appstate.State
	decodeBody(t, rec, &state)
	if state.View != appstate.ViewStorefront || state.SelectedProductID != "" {
		t.Fatalf("expected initial state, got %+v", state)
	}
	if deps.Cart.Count() != 0 {
		t.Fatalf("expected empty cart, got %d", deps.Cart.Count())
	}
}

func TestCheckoutFlow(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "imanes")
	uploadPhoto(t, router, sess.ID)
	doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/finalize", nil)

	rec := doJSON(t, router, http.MethodGet, "/api/checkout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", rec.Code)
	}
	var summary struct {
		Total string `json:"total"`
	}
	decodeBody(t, rec, &summary)
	if summary.Total != "S/ 49.00" {
		t.Fatalf("unexpected total: %q", summary.Total)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"fullName": "María Torres",
		"address":  "Av. Larco 123",
		"city":     "Lima",
		"phone":    "987654321",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("place order: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"fullName": "María Torres",
		"address":  "Av. Larco 123",
		"city":     "Lima",
		"phone":    "987654321",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestChat(t *testing.T) {
	stub := &stubAssistant{chatReply: "¡Hola! ¿En qué puedo ayudarte?"}
	router, _ := newTestRouter(t, stub)

	rec := doJSON(t, router, http.MethodPost, "/api/chat", gin.H{"message": "  ¿Cuánto demora el envío?  "})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	decodeBody(t, rec, &resp)
	if resp.Reply != stub.chatReply {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if stub.lastMessage != "¿Cuánto demora el envío?" {
		t.Fatalf("message not trimmed: %q", stub.lastMessage)
	}
}

func TestChatEmptyMessageRejected(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodPost, "/api/chat", gin.H{"message": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChatFallbackOnFailure(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{chatErr: errors.New("boom")})
	rec := doJSON(t, router, http.MethodPost, "/api/chat", gin.H{"message": "hola"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	decodeBody(t, rec, &resp)
	if resp.Reply != fallbackChatReply {
		t.Fatalf("expected fallback reply, got %q", resp.Reply)
	}
}

func TestEditPhotoRetryOnNoImage(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "fotolibro")
	sess = uploadPhoto(t, router, sess.ID)

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/photos/"+sess.Photos[0].ID+"/edit", gin.H{
		"instruction": "fondo nocturno",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Edited  bool   `json:"edited"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	if resp.Edited {
		t.Fatal("expected edited=false when the model returns no image")
	}
	if !strings.Contains(resp.Message, "Inténtalo de nuevo") {
		t.Fatalf("expected retry prompt, got %q", resp.Message)
	}
}

func TestEditPhotoSuccess(t *testing.T) {
	var editedPNG bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	if err := png.Encode(&editedPNG, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	router, deps := newTestRouter(t, &stubAssistant{editData: editedPNG.Bytes(), editMIME: "image/png"})
	sess := createSession(t, router, "fotolibro")
	sess = uploadPhoto(t, router, sess.ID)

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/photos/"+sess.Photos[0].ID+"/edit", gin.H{
		"instruction": "quita el fondo",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Edited bool `json:"edited"`
	}
	decodeBody(t, rec, &resp)
	if !resp.Edited {
		t.Fatal("expected edited=true")
	}

	stored, err := deps.Sessions.Get(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Photos[0].ID != sess.Photos[0].ID {
		t.Fatal("photo identity must be preserved across edits")
	}
	if !bytes.Equal(stored.Photos[0].Data, editedPNG.Bytes()) {
		t.Fatal("photo data should hold the edited image")
	}
}

func TestEditPhotoEmptyInstruction(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	sess := createSession(t, router, "fotolibro")
	sess = uploadPhoto(t, router, sess.ID)

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+sess.ID+"/photos/"+sess.Photos[0].ID+"/edit", gin.H{
		"instruction": "  ",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, &stubAssistant{})
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
