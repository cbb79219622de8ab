package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/aidenreynolds-dev/assistive-navigation-device/internal/debug"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client asks a vision-capable OpenAI model for a short description of
// a captured image.
type Client struct {
	api       openai.Client
	model     string
	prompt    string
	maxTokens int
}

// NewClient creates a vision analysis client. The API key is the one
// secret read from the environment at startup; everything else comes
// from configuration.
func NewClient(apiKey, model, prompt string, maxTokens int) *Client {
	return &Client{
		api:       openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		prompt:    prompt,
		maxTokens: maxTokens,
	}
}

// Describe reads the captured JPEG at path, ships it as a base64 data
// URL together with the instruction prompt, and returns the model's
// description.
func (c *Client) Describe(ctx context.Context, path string) (string, error) {
	dataURL, err := toDataURL(path)
	if err != nil {
		return "", err
	}

	debug.Verbose("Vision: sending image (%d chars as data URL) to %s", len(dataURL), c.model)

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.model),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(c.prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision request: %w", err)
	}

	text := ExtractText(resp.RawJSON())
	if text == "" {
		return "", fmt.Errorf("vision response contained no text")
	}

	debug.Live("Vision: model says: %s", text)
	return text, nil
}

// toDataURL reads the image file and converts it into a base64 data URL.
func toDataURL(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw), nil
}
