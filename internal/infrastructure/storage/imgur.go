package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"
)

// ImgurStorage upload ảnh anonymous qua Imgur API (header Client-ID)
type ImgurStorage struct {
	clientID   string
	apiURL     string
	httpClient *http.Client
}

var _ ObjectStore = (*ImgurStorage)(nil)

func NewImgurStorage(clientID, apiURL string, timeout time.Duration) *ImgurStorage {
	if apiURL == "" {
		apiURL = "https://api.imgur.com/3/image"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ImgurStorage{
		clientID:   clientID,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *ImgurStorage) Name() string { return ProviderImgur }

type imgurResponse struct {
	Data struct {
		Link  string `json:"link"`
		Error any    `json:"error"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

func (s *ImgurStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.clientID == "" {
		return "", fmt.Errorf("imgur client id is not configured")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", path.Base(key))
	if err != nil {
		return "", fmt.Errorf("build imgur form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build imgur form: %w", err)
	}
	if err := writer.WriteField("type", "file"); err != nil {
		return "", fmt.Errorf("build imgur form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build imgur form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, body)
	if err != nil {
		return "", fmt.Errorf("create imgur request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgur request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read imgur response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imgur returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed imgurResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse imgur response: %w", err)
	}
	if !parsed.Success || parsed.Data.Link == "" {
		return "", fmt.Errorf("imgur upload unsuccessful (status %d)", parsed.Status)
	}

	return parsed.Data.Link, nil
}
