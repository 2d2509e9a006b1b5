package assist

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// Client is the interface all text-generation backends satisfy.
type Client interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// NewClient picks a backend from the environment: the CLI client for local
// plans, the mock client for offline development, the API client otherwise.
func NewClient() Client {
	if os.Getenv("USE_CLI_ASSISTANT") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		log.Println("Assistant using Claude CLI (local plan)")
		return NewCLIClient(cliPath)
	}
	if os.Getenv("MOCK_ASSISTANT") == "true" {
		log.Println("Assistant using mock data")
		return NewMockClient()
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-opus-4-5-20251101"
	}
	log.Println("Assistant using Anthropic API:", model)
	return NewAPIClient(model)
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

// Generate issues a single request. There is no retry: failures degrade at
// the caller (fallback text for explanations, "quiz unavailable" for
// quizzes).
func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if strings.Contains(userPrompt, "multiple choice quiz") {
		return buildMockQuizJSON(), nil
	}
	return "[Mock] This topic covers a core Python concept. It is best learned by writing small programs that exercise it directly. See the example below.\n\n```python\nprint(\"hello\")\n```", nil
}

func buildMockQuizJSON() string {
	topics := []string{"list methods", "dictionary lookups", "loop control"}

	questions := make([]string, 0, 3)
	for i, topic := range topics {
		correct := i % 4
		options := make([]string, 0, 4)
		for j := 0; j < 4; j++ {
			label := "incorrect"
			if j == correct {
				label = "correct"
			}
			options = append(options, fmt.Sprintf(`"[Mock] %s option about %s"`, label, topic))
		}
		questions = append(questions, fmt.Sprintf(
			`{"question":"[Mock] Which statement about %s is accurate?","options":[%s],"correctAnswer":%d,"explanation":"[Mock] The correct option describes how %s actually behaves."}`,
			topic, strings.Join(options, ","), correct, topic))
	}

	return "[" + strings.Join(questions, ",") + "]"
}
