/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package summary

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/humaidq/labscan/logging"
	"github.com/humaidq/labscan/pathology"
)

var logger = logging.Logger(logging.SourceSummary)

const systemPrompt = "You are a helpful medical assistant. Provide concise, clear summaries of pathology report results. " +
	"Highlight any values marked HIGH, LOW or ABNORMAL and their potential significance. " +
	"Be informative but not alarmist. Never mention consulting a healthcare professional, this is shown separately. " +
	"Use basic markdown (italic, bold, lists), but don't use headings in your response."

// Config holds the OpenAI-compatible backend configuration.
type Config struct {
	URL   string
	Model string
}

// OpenAI-compatible request/response structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Delta   chatMessage `json:"delta,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ConfigFromEnv loads the backend configuration from OLLAMA_URL and OLLAMA_MODEL.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		URL:   os.Getenv("OLLAMA_URL"),
		Model: os.Getenv("OLLAMA_MODEL"),
	}

	if cfg.URL == "" || cfg.Model == "" {
		return Config{}, ErrNotConfigured
	}

	return cfg, nil
}

// BuildPrompt renders an export record as the user prompt.
func BuildPrompt(export pathology.Export) string {
	var sb strings.Builder

	sb.WriteString("Please summarize the following pathology report:\n\n")

	info := export.PatientInfo
	writeInfo := func(label string, v *string) {
		if v != nil && *v != "" {
			fmt.Fprintf(&sb, "%s: %s\n", label, *v)
		}
	}

	writeInfo("Patient", info.Name)
	writeInfo("Age", info.Age)
	writeInfo("Sex", info.Sex)
	writeInfo("Collected", info.CollectionDate)
	writeInfo("Laboratory", info.LabName)

	sb.WriteString("\n---\n\nResults:\n\n")

	for _, t := range export.Tests {
		unit := ""
		if t.Unit != "" {
			unit = " " + t.Unit
		}

		ref := ""
		switch {
		case t.Ranges != nil:
			ref = fmt.Sprintf(" (Reference: %g - %g)", t.Ranges.NormalMin, t.Ranges.NormalMax)
		case t.ReferenceRange != "":
			ref = fmt.Sprintf(" (Reference: %s)", t.ReferenceRange)
		}

		fmt.Fprintf(&sb, "- %s: %s%s%s [%s]\n", t.Name, t.Value, unit, ref, t.Status)
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString("Please provide:\n")
	sb.WriteString("1. A brief overview of the results\n")
	sb.WriteString("2. Any values that are concerning and why\n")
	sb.WriteString("3. General health observations based on these results\n")

	return sb.String()
}

// Stream asks the backend for a summary of export and calls onChunk with each
// piece of streamed text. An error from onChunk stops the stream.
func Stream(ctx context.Context, cfg Config, export pathology.Export, onChunk func(string) error) error {
	if len(export.Tests) == 0 {
		return ErrNoTests
	}

	return streamChatCompletion(ctx, cfg, systemPrompt, BuildPrompt(export), onChunk)
}

// Client streams summaries from a fixed backend.
type Client struct {
	cfg Config
}

// NewClient returns a client for cfg.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Summarize streams a summary of export to onChunk.
func (c *Client) Summarize(ctx context.Context, export pathology.Export, onChunk func(string) error) error {
	return Stream(ctx, c.cfg, export, onChunk)
}

func streamChatCompletion(ctx context.Context, cfg Config, system, user string, onChunk func(string) error) error {
	reqBody := chatRequest{
		Model:  cfg.Model,
		Stream: true,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(cfg.URL, "/") + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 300 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call summary backend: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("Failed to close summary response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrUpstreamStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	reader := bufio.NewReader(resp.Body)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		done, chunkErr := handleStreamLine(line, onChunk)
		if chunkErr != nil {
			return chunkErr
		}

		if done || errors.Is(err, io.EOF) {
			return nil
		}
	}
}

// handleStreamLine processes one "data: {...}" line and reports whether the
// stream has ended.
func handleStreamLine(line []byte, onChunk func(string) error) (bool, error) {
	lineStr := strings.TrimSpace(string(line))
	if !strings.HasPrefix(lineStr, "data: ") {
		return false, nil
	}

	data := strings.TrimPrefix(lineStr, "data: ")
	if data == "[DONE]" {
		return true, nil
	}

	var chatResp chatResponse
	if err := json.Unmarshal([]byte(data), &chatResp); err != nil {
		logger.Debug("Skipping malformed stream chunk", "error", err)
		return false, nil
	}

	if chatResp.Error != nil {
		return false, fmt.Errorf("%w: %s", ErrUpstream, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return false, nil
	}

	if content := chatResp.Choices[0].Delta.Content; content != "" {
		if err := onChunk(content); err != nil {
			return false, err
		}
	}

	return false, nil
}
