// Package cloudinary talks to the Cloudinary upload API, which serves as
// both durable image storage and the remote transformation engine.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"time"

	"photoshare/internal/config"
)

const defaultBaseURL = "https://api.cloudinary.com"

type Client struct {
	cfg        config.CloudinaryConfig
	baseURL    string
	httpClient *http.Client
}

// New builds a client from an explicit config. Nothing is read from the
// environment or stored in package state.
func New(cfg config.CloudinaryConfig) *Client {
	return &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake server.
func NewWithBaseURL(cfg config.CloudinaryConfig, baseURL string) *Client {
	c := New(cfg)
	c.baseURL = baseURL
	return c
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload stores raw image bytes under publicID and returns the durable URL.
func (c *Client) Upload(ctx context.Context, file []byte, publicID string) (string, error) {
	return c.upload(ctx, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", "upload")
		if err != nil {
			return err
		}
		_, err = part.Write(file)
		return err
	}, map[string]string{
		"public_id": publicID,
	})
}

// Transform asks the engine to fetch sourceURL, apply the transformation
// string (e.g. "c_fill,w_100,h_100" or "e_art:zorro") and store the result
// under publicID. The source asset is untouched.
func (c *Client) Transform(ctx context.Context, sourceURL, publicID, transformation string) (string, error) {
	return c.upload(ctx, func(w *multipart.Writer) error {
		return w.WriteField("file", sourceURL)
	}, map[string]string{
		"public_id":      publicID,
		"transformation": transformation,
	})
}

func (c *Client) upload(ctx context.Context, writeFile func(*multipart.Writer) error, params map[string]string) (string, error) {
	params["timestamp"] = strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := writeFile(w); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("failed to build multipart body: %w", err)
		}
	}
	if err := w.WriteField("api_key", c.cfg.APIKey); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.WriteField("signature", sign(params, c.cfg.APISecret)); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("cloudinary returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("cloudinary returned status %d", resp.StatusCode)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode cloudinary response: %w", err)
	}

	if c.cfg.Secure || result.URL == "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}

// sign builds the SHA-1 signature Cloudinary expects: parameters sorted by
// name, joined with &, with the API secret appended.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var toSign bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			toSign.WriteByte('&')
		}
		toSign.WriteString(k)
		toSign.WriteByte('=')
		toSign.WriteString(params[k])
	}
	toSign.WriteString(secret)

	sum := sha1.Sum(toSign.Bytes())
	return hex.EncodeToString(sum[:])
}
