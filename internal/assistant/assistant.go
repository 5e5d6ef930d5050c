// Package assistant wraps the two generative AI collaborators: the support
// chat bot and the photo editor. Both are opaque remote calls; callers treat
// failures as user-visible messages, never as crashes.
package assistant

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const (
	chatModel  = "gemini-2.5-flash"
	imageModel = "gemini-2.5-flash-image"

	systemInstruction = `You are a helpful assistant for "Pixibai", a photo printing service in Peru. Answer questions about photo albums, magnets, frames, and other products, as well as the creation process and delivery. Keep your answers friendly and concise.`
)

// Client talks to the Gemini API. A single running chat keeps the
// conversation context across messages.
type Client struct {
	genai *genai.Client

	mu   sync.Mutex
	chat *genai.Chat
}

// New builds a Client for the Gemini API backend.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return &Client{genai: gc}, nil
}

// Chat sends one user message on the running conversation and returns the
// reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	chat, err := c.chatSession(ctx)
	if err != nil {
		return "", err
	}
	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("send chat message: %w", err)
	}
	return resp.Text(), nil
}

// EditImage asks the image model to apply the instruction to the picture.
// Returns (nil, "", nil) when the model produced no image; callers map that
// to a retry prompt rather than an error.
func (c *Client) EditImage(ctx context.Context, imageData []byte, mimeType, instruction string) ([]byte, string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(imageData, mimeType),
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.genai.Models.GenerateContent(ctx, imageModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("edit image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}
	return nil, "", nil
}

func (c *Client) chatSession(ctx context.Context) (*genai.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chat != nil {
		return c.chat, nil
	}
	chat, err := c.genai.Chats.Create(ctx, chatModel, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	c.chat = chat
	return c.chat, nil
}
