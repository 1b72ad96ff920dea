// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds clients for external services.
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/models"
	"github.com/go-resty/resty/v2"
)

// ErrClassifierUnavailable is returned when the classification backend
// cannot be reached or returns a non-success status.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// Classifier turns a free-text health message into a structured
// classification. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// ClassifierConfig configures the HTTP classifier client.
type ClassifierConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

const classifierPrompt = `Classify the health log message into JSON with fields ` +
	`"category" (menstrual_cycle, contraceptive, symptom, sexual_activity, note or other), ` +
	`"content" (short normalized description) and ` +
	`"date_expression" (the date phrase from the message, or "today"). ` +
	`Respond with the JSON object only.`

type httpClassifier struct {
	client *resty.Client
	model  string
	logger *logger.Logger
}

// NewHTTPClassifier builds a [Classifier] over an OpenAI-compatible chat
// completions endpoint.
func NewHTTPClassifier(cfg ClassifierConfig, log *logger.Logger) Classifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey)

	return &httpClassifier{client: cli, model: cfg.Model, logger: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Classify implements [Classifier]. Any transport or parsing failure
// degrades to a generic classification so message handling can proceed.
func (c *httpClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	log := logger.FromContext(ctx)
	fallback := models.Classification{
		Category:       models.CategoryGeneric,
		Content:        text,
		DateExpression: "today",
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: classifierPrompt},
				{Role: "user", Content: text},
			},
		}).
		Post("/v1/chat/completions")
	if err != nil {
		log.Err(err).Msg("classifier request failed")
		return fallback, fmt.Errorf("%w: %s", ErrClassifierUnavailable, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("classifier returned error status")
		return fallback, fmt.Errorf("%w: status %d", ErrClassifierUnavailable, resp.StatusCode())
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil || len(parsed.Choices) == 0 {
		log.Error().Msg("classifier returned unparseable body")
		return fallback, fmt.Errorf("%w: malformed response", ErrClassifierUnavailable)
	}

	classification, err := parseClassification(parsed.Choices[0].Message.Content)
	if err != nil {
		log.Err(err).Msg("classifier answer is not valid JSON")
		return fallback, nil
	}

	if classification.Content == "" {
		classification.Content = text
	}
	if classification.Category == "" {
		classification.Category = models.CategoryGeneric
	}
	if classification.DateExpression == "" {
		classification.DateExpression = "today"
	}

	return classification, nil
}

// parseClassification extracts the JSON object from the model answer,
// tolerating surrounding prose and code fences.
func parseClassification(answer string) (models.Classification, error) {
	start := strings.IndexByte(answer, '{')
	end := strings.LastIndexByte(answer, '}')
	if start == -1 || end <= start {
		return models.Classification{}, errors.New("no JSON object in answer")
	}

	var classification models.Classification
	if err := json.Unmarshal([]byte(answer[start:end+1]), &classification); err != nil {
		return models.Classification{}, err
	}

	return classification, nil
}
