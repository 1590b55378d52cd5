package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/metrics"
	"github.com/civiclens/backend/pkg/circuitbreaker"
	"github.com/civiclens/backend/pkg/logger"
	"github.com/civiclens/backend/pkg/retry"
)

// Required key sets for the structured call sites. The normalizer is generic;
// these are the per-endpoint contracts.
var (
	gapAnalysisRequiredKeys    = []string{"overall_completeness_score"}
	rtiEligibilityRequiredKeys = []string{"eligible", "score", "reason"}
)

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.Breaker
	retryConfig retry.Config
}

type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type CompletionResponse struct {
	Content string
	Usage   Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

func NewClient(apiKey, model string, temperature float32, maxTokens, timeoutSec int) *Client {
	client := openai.NewClient(apiKey)

	cb := circuitbreaker.New("llm", circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Cooldown:         30 * time.Second,
		MaxProbes:        2,
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}

	if timeoutSec <= 0 {
		timeoutSec = 60
	}

	logger.Info("LLM client initialized", zap.String("model", model))

	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     time.Duration(timeoutSec) * time.Second,
		cb:          cb,
		retryConfig: retryConfig,
	}
}

func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		},
	}

	var result *CompletionResponse

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.client.CreateChatCompletion(
				ctx,
				openai.ChatCompletionRequest{
					Model:       c.model,
					Messages:    messages,
					Temperature: temperature,
					MaxTokens:   maxTokens,
				},
			)

			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}

			logger.Debug("LLM completion generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			metrics.LLMTokensUsed.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
			metrics.LLMTokensUsed.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))

			result = &CompletionResponse{
				Content: resp.Choices[0].Message.Content,
				Usage: Usage{
					PromptTokens:     resp.Usage.PromptTokens,
					CompletionTokens: resp.Usage.CompletionTokens,
					TotalTokens:      resp.Usage.TotalTokens,
				},
			}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// AnalyzePolicyGaps asks the model for an implementation-gap breakdown of a
// policy document. A transport error is returned as error; a response that
// cannot be parsed comes back as a non-OK ParseResult carrying the raw text.
func (c *Client) AnalyzePolicyGaps(ctx context.Context, policyText string, meta PolicyMetadata) (ParseResult, error) {
	resp, err := c.Complete(ctx, CompletionRequest{
		SystemPrompt: gapAnalysisSystemPrompt,
		UserPrompt:   BuildGapAnalysisPrompt(policyText, meta),
		Temperature:  0.2,
		MaxTokens:    1024,
	})
	if err != nil {
		return ParseResult{}, fmt.Errorf("gap analysis completion failed: %w", err)
	}

	result := ParseStructured(resp.Content, gapAnalysisRequiredKeys)
	if !result.OK {
		metrics.LLMParseFailures.Inc()
		logger.Warn("Gap analysis response not parseable",
			zap.String("reason", result.Reason),
			zap.Int("raw_length", len(result.Raw)),
		)
	}
	return result, nil
}

// SummarizePolicy generates the bilingual citizen summary for a policy text.
func (c *Client) SummarizePolicy(ctx context.Context, policyText string) (SummarySections, error) {
	resp, err := c.Complete(ctx, CompletionRequest{
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   BuildSummaryPrompt(policyText),
		Temperature:  0.3,
		MaxTokens:    800,
	})
	if err != nil {
		return SummarySections{}, fmt.Errorf("summary completion failed: %w", err)
	}

	sections := ParseSummarySections(resp.Content)
	logger.Info("Policy summarized",
		zap.Int("english_length", len(sections.English)),
		zap.Int("hindi_length", len(sections.Hindi)),
	)
	return sections, nil
}

// AssessRTIEligibility checks whether a complaint can become an RTI request.
func (c *Client) AssessRTIEligibility(ctx context.Context, pageURL, complaint string) (ParseResult, error) {
	resp, err := c.Complete(ctx, CompletionRequest{
		SystemPrompt: rtiEligibilitySystemPrompt,
		UserPrompt:   BuildRTIEligibilityPrompt(pageURL, complaint),
		Temperature:  0.1,
		MaxTokens:    300,
	})
	if err != nil {
		return ParseResult{}, fmt.Errorf("eligibility completion failed: %w", err)
	}

	result := ParseStructured(resp.Content, rtiEligibilityRequiredKeys)
	if !result.OK {
		metrics.LLMParseFailures.Inc()
	}
	return result, nil
}

// DraftRTIRequest produces the formal RTI application text.
func (c *Client) DraftRTIRequest(ctx context.Context, pageURL, complaint, authority string) (string, error) {
	resp, err := c.Complete(ctx, CompletionRequest{
		SystemPrompt: rtiDraftSystemPrompt,
		UserPrompt:   BuildRTIDraftPrompt(pageURL, complaint, authority),
		Temperature:  0.3,
		MaxTokens:    1200,
	})
	if err != nil {
		return "", fmt.Errorf("rti draft completion failed: %w", err)
	}

	return resp.Content, nil
}
