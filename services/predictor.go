package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/config"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

var (
	predictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opd_predictions_total",
		Help: "Total number of OPD predictions produced.",
	})
	predictionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opd_prediction_fallbacks_total",
		Help: "Total number of predictions served from the rule-based fallback.",
	})
)

// PredictionResult is the five-field forecast the gateway always returns.
type PredictionResult struct {
	RiskLevel            string  `json:"risk_level"`
	PredictedLoad        int     `json:"predicted_load"`
	CongestionConfidence float64 `json:"congestion_confidence"`
	BestVisitingTime     string  `json:"best_visiting_time"`
	Recommendation       string  `json:"recommendation"`
}

// CompletionClient abstracts the external text-completion service so tests can
// inject canned or failing replies.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = "You are a medical AI assistant specialized in hospital OPD load prediction and patient scheduling."

// OpenAIClient talks to the chat-completions endpoint over plain HTTP with a
// bounded timeout. Sampling parameters are fixed.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion endpoint returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// PredictorService builds prompts, calls the completion model through a
// circuit breaker, and absorbs every failure mode into a rule-based fallback.
// Predict never returns an error.
type PredictorService struct {
	client  CompletionClient
	breaker *gobreaker.CircuitBreaker
}

func NewPredictorService(client CompletionClient) *PredictorService {
	return &PredictorService{
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "openai",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func buildPrompt(age int, department, symptoms string) string {
	return fmt.Sprintf(`You are an AI healthcare assistant analyzing hospital OPD (Outpatient Department) load prediction.

Patient Information:
- Age: %d
- Department: %s
- Symptoms: %s

Based on this information, analyze:
1. OPD Risk Level (Low/Medium/High)
2. Predicted OPD Load (number of patients, 1-100)
3. Congestion Confidence (0.0-1.0)
4. Best Visiting Time (e.g., "8:00 AM - 10:00 AM")
5. Detailed Recommendation (personalized advice)

Respond in this exact JSON format:
{
    "risk_level": "Low/Medium/High",
    "predicted_load": <number>,
    "congestion_confidence": <0.0-1.0>,
    "best_visiting_time": "<time range>",
    "recommendation": "<detailed advice>"
}
`, age, department, symptoms)
}

// Predict runs the Pending -> CallExternal -> {ParseSuccess | CallFailure} ->
// Result flow. Any network error, timeout, open breaker, malformed reply or
// out-of-range field yields the fallback instead of an error.
func (s *PredictorService) Predict(ctx context.Context, age int, department, symptoms string) PredictionResult {
	predictionsTotal.Inc()

	reply, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.Complete(ctx, systemPrompt, buildPrompt(age, department, symptoms))
	})
	if err != nil {
		log.Warn().Err(err).Str("department", department).Msg("completion call failed, using fallback")
		predictionFallbacks.Inc()
		return fallbackPrediction(department, symptoms)
	}

	result, err := parsePrediction(reply.(string))
	if err != nil {
		log.Warn().Err(err).Str("department", department).Msg("completion reply rejected, using fallback")
		predictionFallbacks.Inc()
		return fallbackPrediction(department, symptoms)
	}
	return result
}

// parsePrediction decodes the model reply strictly: valid JSON, all five
// fields present, values inside the documented ranges.
func parsePrediction(raw string) (PredictionResult, error) {
	var payload struct {
		RiskLevel            *string  `json:"risk_level"`
		PredictedLoad        *int     `json:"predicted_load"`
		CongestionConfidence *float64 `json:"congestion_confidence"`
		BestVisitingTime     *string  `json:"best_visiting_time"`
		Recommendation       *string  `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return PredictionResult{}, fmt.Errorf("malformed prediction JSON: %w", err)
	}
	if payload.RiskLevel == nil || payload.PredictedLoad == nil || payload.CongestionConfidence == nil ||
		payload.BestVisitingTime == nil || payload.Recommendation == nil {
		return PredictionResult{}, fmt.Errorf("prediction JSON missing required field")
	}
	if !models.ValidRiskLevel(*payload.RiskLevel) {
		return PredictionResult{}, fmt.Errorf("unknown risk level %q", *payload.RiskLevel)
	}
	if *payload.PredictedLoad < 1 || *payload.PredictedLoad > 100 {
		return PredictionResult{}, fmt.Errorf("predicted load %d out of range", *payload.PredictedLoad)
	}
	if *payload.CongestionConfidence < 0 || *payload.CongestionConfidence > 1 {
		return PredictionResult{}, fmt.Errorf("congestion confidence %f out of range", *payload.CongestionConfidence)
	}
	return PredictionResult{
		RiskLevel:            *payload.RiskLevel,
		PredictedLoad:        *payload.PredictedLoad,
		CongestionConfidence: *payload.CongestionConfidence,
		BestVisitingTime:     *payload.BestVisitingTime,
		Recommendation:       *payload.Recommendation,
	}, nil
}

// fallbackPrediction is the deterministic-shape, randomized-value substitute.
func fallbackPrediction(department, symptoms string) PredictionResult {
	return PredictionResult{
		RiskLevel:            models.RiskMedium,
		PredictedLoad:        30 + rand.Intn(41),
		CongestionConfidence: 0.75,
		BestVisitingTime:     "9:00 AM - 11:00 AM",
		Recommendation: fmt.Sprintf(
			"Based on your symptoms (%s), we recommend visiting during morning hours for faster service. The %s department typically has moderate patient flow.",
			symptoms, department,
		),
	}
}
