// Package insight summarizes sales data through an external text-generation
// provider. Provider failures never surface to the caller: they collapse
// into a fixed fallback message so the dashboard panel degrades instead of
// breaking the session.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SauravKesari/billify/internal/models"
)

const (
	// NoDataMessage is returned for an empty invoice set, without any call.
	NoDataMessage = "No sales data available yet. Create some invoices to get AI insights!"
	// FallbackMessage replaces any provider error.
	FallbackMessage = "Unable to generate insights at this time. Please try again later."

	systemInstruction = "You are a helpful financial analyst for a small business."
	defaultBaseURL    = "https://generativelanguage.googleapis.com"
	defaultModel      = "gemini-2.5-flash"
)

// Client calls a Gemini-style generateContent endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// New builds a client. Empty model/baseURL fall back to the defaults; the
// API key is sent as provided.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// invoiceSummary is the compact projection sent to the provider; full
// invoices would waste tokens for no analytical gain.
type invoiceSummary struct {
	Date      time.Time `json:"date"`
	Total     float64   `json:"total"`
	Customer  string    `json:"customer"`
	ItemCount int       `json:"itemCount"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// SummarizeSales asks the provider for a short executive summary of the
// invoices. The response text is treated opaquely.
func (c *Client) SummarizeSales(ctx context.Context, invoices []models.Invoice) string {
	if len(invoices) == 0 {
		return NoDataMessage
	}
	summary := make([]invoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		summary = append(summary, invoiceSummary{
			Date:      inv.Date,
			Total:     inv.Total,
			Customer:  inv.CustomerName,
			ItemCount: len(inv.Items),
		})
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return FallbackMessage
	}
	prompt := "Analyze the following sales invoice data and provide a brief, actionable executive summary " +
		"(max 3 bullet points) highlighting trends, top performers, or anomalies. Format the output as Markdown.\n\n" +
		"Data: " + string(data)

	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		GenerationConfig:  &generationConfig{Temperature: 0.7},
	})
	if err != nil {
		return FallbackMessage
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return FallbackMessage
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return FallbackMessage
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FallbackMessage
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FallbackMessage
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return FallbackMessage
	}
	return out.Candidates[0].Content.Parts[0].Text
}
