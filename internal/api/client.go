package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/echotype/echotype/internal/model"
)

const defaultTimeout = 60 * time.Second

// Client talks to the dictation backend. All calls are request/response
// JSON over HTTP; the session cookie, when set, authenticates them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cookie     string
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetCookie installs a session cookie for authenticated calls.
func (c *Client) SetCookie(cookie string) {
	c.cookie = cookie
}

// Cookie returns the current session cookie, if any.
func (c *Client) Cookie() string {
	return c.cookie
}

// OCR submits an image as a data URL and returns the recognized text and
// extracted candidates.
func (c *Client) OCR(ctx context.Context, imageDataURL string) (OCRResult, error) {
	if imageDataURL == "" {
		return OCRResult{}, &ServiceError{Op: "ocr", Message: "no image provided"}
	}
	var resp ocrResponse
	err := c.post(ctx, "ocr", "/api/ocr", map[string]any{"image": imageDataURL}, &resp)
	if err != nil {
		return OCRResult{}, err
	}
	if !resp.Success {
		return OCRResult{}, &ServiceError{Op: "ocr", Message: "recognition failed"}
	}
	return OCRResult{Text: resp.Text, Extracted: resp.Extracted.toTyped()}, nil
}

// Extract re-runs word/sentence extraction over raw text.
func (c *Client) Extract(ctx context.Context, text, mode string) (Extracted, error) {
	if strings.TrimSpace(text) == "" {
		return Extracted{}, &ServiceError{Op: "extract", Message: "no text provided"}
	}
	var resp extractResponse
	err := c.post(ctx, "extract", "/api/extract", map[string]any{"text": text, "mode": mode}, &resp)
	if err != nil {
		return Extracted{}, err
	}
	if !resp.Success {
		return Extracted{}, &ServiceError{Op: "extract", Message: "extraction failed"}
	}
	return resp.Extracted.toTyped(), nil
}

// Synthesize requests speech for a single text. Rate and pitch are passed
// through to the service unchanged.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string, rate, pitch int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ServiceError{Op: "tts", Message: "no text provided"}
	}
	var resp ttsResponse
	err := c.post(ctx, "tts", "/api/tts", map[string]any{
		"text":     text,
		"voice_id": voiceID,
		"rate":     rate,
		"pitch":    pitch,
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.Success || resp.AudioURL == "" {
		return "", &ServiceError{Op: "tts", Message: "synthesis failed"}
	}
	return resp.AudioURL, nil
}

// SynthesizeBatch requests speech for many items in one call. Per-item
// failures are reported in the results, not as an error.
func (c *Client) SynthesizeBatch(ctx context.Context, items []BatchItem, voiceID string, rate, pitch int) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, nil
	}
	var resp ttsBatchResponse
	err := c.post(ctx, "tts batch", "/api/tts/batch", map[string]any{
		"items":    items,
		"voice_id": voiceID,
		"rate":     rate,
		"pitch":    pitch,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ServiceError{Op: "tts batch", Message: "batch synthesis failed"}
	}
	return resp.Results, nil
}

// Login authenticates and captures the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	if email == "" || password == "" {
		return model.User{}, &ServiceError{Op: "login", Message: "email and password are required"}
	}
	var resp authResponse
	err := c.post(ctx, "login", "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return model.User{}, err
	}
	if !resp.Success {
		return model.User{}, &ServiceError{Op: "login", Message: messageOr(resp.Message, "login failed")}
	}
	return resp.User, nil
}

// Register creates an account and captures the session cookie.
func (c *Client) Register(ctx context.Context, name, email, password string) (model.User, error) {
	if email == "" || password == "" {
		return model.User{}, &ServiceError{Op: "register", Message: "email and password are required"}
	}
	var resp authResponse
	err := c.post(ctx, "register", "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return model.User{}, err
	}
	if !resp.Success {
		return model.User{}, &ServiceError{Op: "register", Message: messageOr(resp.Message, "registration failed")}
	}
	return resp.User, nil
}

// Logout ends the server-side session and drops the cookie.
func (c *Client) Logout(ctx context.Context) error {
	var resp successResponse
	if err := c.post(ctx, "logout", "/api/auth/logout", map[string]any{}, &resp); err != nil {
		return err
	}
	c.cookie = ""
	return nil
}

// CurrentUser looks up the authenticated user via the session cookie.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var resp authResponse
	if err := c.get(ctx, "current user", "/api/auth/me", &resp); err != nil {
		return model.User{}, err
	}
	if !resp.Success {
		return model.User{}, &ServiceError{Op: "current user", Message: "not authenticated"}
	}
	return resp.User, nil
}

// SubmitPractice posts one finished session to the practice-history service.
func (c *Client) SubmitPractice(ctx context.Context, record model.PracticeRecord) error {
	var resp successResponse
	err := c.post(ctx, "practice record", "/api/practice", map[string]any{
		"title":         record.Title,
		"total_items":   record.TotalItems,
		"correct_count": record.CorrectCount,
		"wrong_count":   record.WrongCount,
		"accuracy":      record.Accuracy,
		"words_data":    record.WordsData,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &ServiceError{Op: "practice record", Message: "record rejected"}
	}
	return nil
}

// PracticeHistory lists the authenticated user's past sessions.
func (c *Client) PracticeHistory(ctx context.Context) ([]PracticeSession, error) {
	var resp practiceListResponse
	if err := c.get(ctx, "practice history", "/api/practice", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ServiceError{Op: "practice history", Message: "history unavailable"}
	}
	return resp.Sessions, nil
}

// PracticeSessionDetail fetches one past session by id.
func (c *Client) PracticeSessionDetail(ctx context.Context, id int) (PracticeSession, error) {
	var resp practiceDetailResponse
	if err := c.get(ctx, "practice detail", fmt.Sprintf("/api/practice/%d", id), &resp); err != nil {
		return PracticeSession{}, err
	}
	if !resp.Success {
		return PracticeSession{}, &ServiceError{Op: "practice detail", Message: "session unavailable"}
	}
	return resp.Session, nil
}

// DownloadAudio fetches a synthesized audio resource.
func (c *Client) DownloadAudio(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Op: "audio download", Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Op: "audio download", Status: resp.StatusCode, Message: resp.Status}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Op: "audio download", Message: err.Error()}
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, op, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ServiceError{Op: op, Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if cookie := resp.Header.Get("Set-Cookie"); cookie != "" {
		if i := strings.IndexByte(cookie, ';'); i >= 0 {
			cookie = cookie[:i]
		}
		c.cookie = cookie
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Op: op, Message: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		msg := resp.Status
		if json.Unmarshal(data, &errResp) == nil {
			msg = messageOr(errResp.Error, messageOr(errResp.Message, resp.Status))
		}
		return &ServiceError{Op: op, Status: resp.StatusCode, Message: msg}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ServiceError{Op: op, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
