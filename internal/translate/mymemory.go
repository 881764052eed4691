package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultMyMemoryURL = "https://api.mymemory.translated.net/get"
	myMemoryMaxInput   = 500
)

// myMemory queries the MyMemory translation API. It needs a concrete langpair
// (it rejects "auto"), so the source side comes from the language heuristic.
type myMemory struct {
	endpoint string
	client   *http.Client
}

func NewMyMemory(timeout time.Duration) Provider {
	return &myMemory{
		endpoint: defaultMyMemoryURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (m *myMemory) Name() string { return "mymemory" }

func (m *myMemory) MaxInput() int { return myMemoryMaxInput }

func (m *myMemory) Translate(ctx context.Context, text string) (string, error) {
	src := DetectLang(text)
	if src == "es" {
		return text, nil
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", src+"|es")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get mymemory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: status %d", resp.StatusCode)
	}

	var body struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	out := strings.TrimSpace(body.ResponseData.TranslatedText)

	// MyMemory reports some errors inline as translated text.
	if out == "" || strings.Contains(strings.ToUpper(out), "INVALID SOURCE LANGUAGE") {
		return "", fmt.Errorf("mymemory returned no usable translation")
	}

	return out, nil
}
