package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/elboletin/newsbot/internal/config"
)

const (
	circuitBreakerThreshold = 5
	circuitBreakerTimeout   = 1 * time.Minute

	errRateLimiter          = "rate limiter error: %w"
	errOpenAIChatCompletion = "openai chat completion error: %w"
)

type openaiClient struct {
	cfg         *config.Config
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter

	// Circuit breaker state
	consecutiveFailures int
	circuitOpenUntil    time.Time
	mu                  sync.Mutex
}

func newOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		cfg:         cfg,
		client:      openai.NewClient(cfg.LLMAPIKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 5),
	}
}

func (c *openaiClient) checkCircuit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.circuitOpenUntil) {
		return fmt.Errorf("circuit breaker is open until %v", c.circuitOpenUntil)
	}

	return nil
}

func (c *openaiClient) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveFailures = 0
}

func (c *openaiClient) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveFailures++

	if c.consecutiveFailures >= circuitBreakerThreshold {
		c.circuitOpenUntil = time.Now().Add(circuitBreakerTimeout)
		c.logger.Warn().
			Int("consecutive_failures", c.consecutiveFailures).
			Time("open_until", c.circuitOpenUntil).
			Msg("Circuit breaker opened")
	}
}

// complete runs one chat completion with the shared limiter and breaker.
func (c *openaiClient) complete(ctx context.Context, prompt string, jsonResponse bool) (string, error) {
	if err := c.checkCircuit(); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	req := openai.ChatCompletionRequest{
		Model: c.cfg.LLMModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	if jsonResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.recordFailure()

		return "", fmt.Errorf(errOpenAIChatCompletion, err)
	}

	c.recordSuccess()

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openaiClient) Translate(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, fmt.Sprintf(translatePrompt, text), false)
}

func (c *openaiClient) Summarize(ctx context.Context, title, description string, category config.Category) (string, error) {
	prompt := fmt.Sprintf(summarizePrompt, title, description, strings.ToUpper(string(category)))

	return c.complete(ctx, prompt, false)
}

type scoreResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

func (c *openaiClient) ScoreBatch(ctx context.Context, inputs []ScoreInput) (map[int]float64, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(scorePromptHeader, len(inputs)))

	for _, in := range inputs {
		sb.WriteString(fmt.Sprintf("[%d] (%s) %s\n", in.Index, in.Category, in.Title))
	}

	content, err := c.complete(ctx, sb.String(), true)
	if err != nil {
		return nil, err
	}

	results, err := parseScoreResults(content)
	if err != nil {
		return nil, err
	}

	scores := make(map[int]float64, len(results))

	for _, res := range results {
		if res.Score < 0 || res.Score > 10 {
			return nil, fmt.Errorf("score out of range for index %d: %v", res.Index, res.Score)
		}

		scores[res.Index] = res.Score
	}

	return scores, nil
}

// parseScoreResults accepts the requested {"results": [...]} shape, a bare
// array, or any array-valued key. LLMs drift on envelope shape more than on
// element shape.
func parseScoreResults(content string) ([]scoreResult, error) {
	var wrapper struct {
		Results []scoreResult `json:"results"`
	}

	if err := json.Unmarshal([]byte(content), &wrapper); err == nil && len(wrapper.Results) > 0 {
		return wrapper.Results, nil
	}

	var results []scoreResult
	if err := json.Unmarshal([]byte(content), &results); err == nil && len(results) > 0 {
		return results, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		for _, v := range raw {
			arr, ok := v.([]interface{})
			if !ok || len(arr) == 0 {
				continue
			}

			arrBytes, _ := json.Marshal(v)
			if err := json.Unmarshal(arrBytes, &results); err == nil && len(results) > 0 {
				return results, nil
			}
		}
	}

	return nil, fmt.Errorf("failed to extract any results from LLM response: %s", content)
}
