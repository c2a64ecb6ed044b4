package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/dto"
	"banking-chatbot/pkg/httpclient"
	"banking-chatbot/pkg/logger"
	"banking-chatbot/pkg/ratelimit"
	"banking-chatbot/pkg/utils"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrEmptyCompletion marks a generation call that succeeded at the transport
// level but produced no usable text. Callers decide the fallback.
var ErrEmptyCompletion = errors.New("generation service returned no usable output")

// Safety thresholds are maximally permissive, the financial-advice persona
// otherwise trips the default filters.
var safetySettings = []dto.SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

type AIRepository interface {
	ClassifyIntent(ctx context.Context, query string) (string, error)
	GenerateResponse(ctx context.Context, query string, profile *dto.CustomerProfile, contextData *dto.CustomerContext, history []dto.HistoryEntry, previousThought *string) (*dto.GenerateResult, error)
	FollowUpSuggestions(intent string) []string
}

// geminiAIRepository talks to the Google Gemini API: the SDK for token
// counting, a plain REST call for generation.
type geminiAIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		httpClient:     httpclient.New(cfg.Gemini.BaseURL, cfg.Gemini.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) ClassifyIntent(ctx context.Context, query string) (string, error) {
	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{
			{Role: "user", Parts: []dto.Part{{Text: promptClassifyIntent(query)}}},
		},
		GenerationConfig: &dto.GenerationConfig{
			Temperature: utils.ToPointer(0.1),
		},
		SafetySettings: safetySettings,
	}

	resp, err := r.sendRequest(ctx, payload)
	if err != nil {
		r.logger.WarnContext(ctx, "intent classification request failed", logger.ErrorField(err))
		return "", fmt.Errorf("failed to classify intent: %w", err)
	}

	text, _, err := extractCompletion(resp)
	if err != nil {
		return "", err
	}

	intent := strings.ToLower(strings.TrimSpace(text))
	for _, known := range dto.KnownIntents() {
		if intent == known {
			return intent, nil
		}
	}

	return "", fmt.Errorf("unrecognized intent label %q", intent)
}

// GenerateResponse performs a single generation attempt, there is no retry.
// The only bound on the round trip is the client timeout from config.
func (r *geminiAIRepository) GenerateResponse(
	ctx context.Context,
	query string,
	profile *dto.CustomerProfile,
	contextData *dto.CustomerContext,
	history []dto.HistoryEntry,
	previousThought *string,
) (*dto.GenerateResult, error) {
	currentQuery := r.buildGenerationPrompt(query, profile, contextData, history)

	finalPart := dto.Part{Text: currentQuery}
	if previousThought != nil {
		finalPart.ThoughtSignature = *previousThought
	}

	contents := mapHistory(history, r.cfg.Chat.HistoryLimit)
	contents = append(contents, dto.Content{Role: "user", Parts: []dto.Part{finalPart}})

	payload := dto.GeminiAPIRequest{
		Contents: contents,
		GenerationConfig: &dto.GenerationConfig{
			Temperature:     utils.ToPointer(0.8),
			MaxOutputTokens: utils.ToPointer(800),
			TopP:            utils.ToPointer(0.95),
		},
		SafetySettings: safetySettings,
	}

	resp, err := r.sendRequest(ctx, payload)
	if err != nil {
		r.logger.ErrorContext(ctx, "generation request failed", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}

	text, thought, err := extractCompletion(resp)
	if err != nil {
		return nil, err
	}

	result := &dto.GenerateResult{
		Response:  strings.TrimSpace(text),
		ModelUsed: r.cfg.Gemini.BaseModel,
	}
	if resp.ModelVersion != "" {
		result.ModelUsed = resp.ModelVersion
	}
	if thought != "" {
		result.ThoughtSignature = utils.ToPointer(thought)
	}

	return result, nil
}

// mapHistory converts the trailing window of prior turns into the Gemini
// role vocabulary: user stays user, everything else becomes model.
func mapHistory(history []dto.HistoryEntry, limit int) []dto.Content {
	if limit <= 0 {
		limit = 8
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	contents := make([]dto.Content, 0, len(history))
	for _, entry := range history {
		role := "model"
		if entry.Role == "user" {
			role = "user"
		}
		contents = append(contents, dto.Content{
			Role:  role,
			Parts: []dto.Part{{Text: entry.Content}},
		})
	}
	return contents
}

func (r *geminiAIRepository) sendRequest(ctx context.Context, payload dto.GeminiAPIRequest) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{}
	for _, c := range payload.Contents {
		for _, p := range c.Parts {
			contents = append(contents, genai.NewContentFromText(p.Text, genai.Role(c.Role)))
		}
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token gemini limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request gemini limit: %w", err)
	}

	geminiAPIResponse := dto.GeminiAPIResponse{}
	apiURL := fmt.Sprintf("/%s:generateContent?key=%s", r.cfg.Gemini.BaseModel, r.cfg.Gemini.APIKey)

	geminiResp, err := r.httpClient.Post(ctx, apiURL, payload, nil, &geminiAPIResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to gemini: %w", err)
	}

	if geminiResp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "failed to get data from gemini", logger.IntField("status_code", geminiResp.StatusCode))
		return nil, fmt.Errorf("failed to get data: %v", string(geminiResp.Body))
	}

	return &geminiAPIResponse, nil
}

// extractCompletion pulls the generated text and any thought signature out
// of the first candidate.
func extractCompletion(resp *dto.GeminiAPIResponse) (string, string, error) {
	if resp == nil || len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", "", ErrEmptyCompletion
	}

	var text, thought string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
		if part.ThoughtSignature != "" {
			thought = part.ThoughtSignature
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", "", ErrEmptyCompletion
	}

	return text, thought, nil
}
