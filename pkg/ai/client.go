package ai

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/Debian1107/Reviewed/internal/config"
	"github.com/Debian1107/Reviewed/pkg/logger"
)

var client *openai.Client
var isInitialized bool

// InitializeAIService initializes the OpenAI-compatible client from
// configuration. Without credentials the content check is disabled and
// suggestions pass through unchecked.
func InitializeAIService() {
	log := logger.L().Named("ai")

	if config.C.OpenAIAPIKey == "" {
		log.Warn("AI content check disabled - OPENAI_API_KEY not provided")
		isInitialized = false
		return
	}

	opts := []option.RequestOption{option.WithAPIKey(config.C.OpenAIAPIKey)}
	if config.C.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.C.OpenAIBaseURL))
	}

	clientValue := openai.NewClient(opts...)
	client = &clientValue
	isInitialized = true
	log.Info("AI content check initialized")
}

// IsEnabled returns whether the AI service is properly initialized.
func IsEnabled() bool {
	return isInitialized && client != nil
}

// generateCompletion sends one system+user exchange and returns the text.
func generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !IsEnabled() {
		return "", &AIError{Message: "AI service is not enabled"}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(config.C.OpenAIModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(300),
		Temperature: openai.Float(0.0),
	})
	if err != nil {
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// AIError represents an AI service error.
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
