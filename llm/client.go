package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

// ErrMalformedDecision marks a decision response that did not decode into
// the expected JSON shape.
var ErrMalformedDecision = errors.New("malformed decision response")

// Client is an OpenAI-compatible LLM client
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new LLM client. baseURL may be empty for the OpenAI
// default; any OpenAI-compatible endpoint works.
func NewClient(apiKey, baseURL, model string) *Client {
	if model == "" {
		model = defaultModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// ActionDecision is the JSON shape the decision prompt asks the model for
type ActionDecision struct {
	Like      bool   `json:"like"`
	Retweet   bool   `json:"retweet"`
	Quote     bool   `json:"quote"`
	Reply     bool   `json:"reply"`
	Rationale string `json:"rationale"`
}

// DecideActions asks the model which actions to take on a tweet. The
// response is requested in JSON mode and decoded strictly; anything that
// does not decode is reported as ErrMalformedDecision.
func (c *Client) DecideActions(systemPrompt, tweetContext string) (*ActionDecision, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: tweetContext},
		},
		Temperature: 0.1, // Low temperature for consistent decisions
		MaxTokens:   200,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decide actions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var decision ActionDecision
	if err := json.Unmarshal([]byte(content), &decision); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDecision, err)
	}
	return &decision, nil
}

// Generate produces reply/quote body text
func (c *Client) Generate(systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// DescribeImage returns a short description of the image at the given URL
// for injection into reply prompts.
func (c *Client) DescribeImage(imageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Describe this image in one or two sentences.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		MaxTokens: 120,
	})
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
