package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const libreMaxInput = 4500

// Public fallback instances, tried after any self-hosted one.
var defaultLibreEndpoints = []string{
	"https://translate.argosopentech.com/translate",
	"https://libretranslate.com/translate",
	"https://translate.astian.org/translate",
}

var errAllEndpointsFailed = errors.New("all libretranslate endpoints failed")

// libreTranslate tries a list of LibreTranslate instances in order and keeps
// the first non-empty answer. A self-hosted endpoint, when configured, goes
// first.
type libreTranslate struct {
	endpoints []string
	client    *http.Client
}

func NewLibreTranslate(ownEndpoint string, timeout time.Duration) Provider {
	endpoints := make([]string, 0, len(defaultLibreEndpoints)+1)

	if own := strings.TrimSpace(ownEndpoint); own != "" {
		endpoints = append(endpoints, own)
	}

	endpoints = append(endpoints, defaultLibreEndpoints...)

	return &libreTranslate{
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
	}
}

func (l *libreTranslate) Name() string { return "libretranslate" }

func (l *libreTranslate) MaxInput() int { return libreMaxInput }

func (l *libreTranslate) Translate(ctx context.Context, text string) (string, error) {
	var lastErr error

	for _, endpoint := range l.endpoints {
		out, err := l.translateOne(ctx, endpoint, text)
		if err != nil {
			lastErr = err

			continue
		}

		if out != "" {
			return out, nil
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %w", errAllEndpointsFailed, lastErr)
	}

	return "", errAllEndpointsFailed
}

func (l *libreTranslate) translateOne(ctx context.Context, endpoint, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "auto",
		"target": "es",
		"format": "text",
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("endpoint %s: status %d", endpoint, resp.StatusCode)
	}

	var body struct {
		TranslatedText string `json:"translatedText"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return strings.TrimSpace(body.TranslatedText), nil
}
