package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/aditwb/storysync/internal/client/auth"
	"github.com/aditwb/storysync/internal/client/models"
	"github.com/aditwb/storysync/internal/common"
	"github.com/aditwb/storysync/internal/logging"
)

const defaultTimeout = 15 * time.Second

// HTTPGateway talks to the story service over HTTP with bearer-token auth.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	tokens  auth.TokenStore
	log     logging.Logger
}

// NewHTTPGateway returns a gateway for the API rooted at baseURL
// (e.g. "https://story-api.example.com/v1").
func NewHTTPGateway(baseURL string, tokens auth.TokenStore, log logging.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		log:     log.With("component", "gateway"),
	}
}

type storiesResponse struct {
	Error   bool           `json:"error"`
	Message string         `json:"message"`
	Stories []models.Story `json:"listStory"`
}

type storyResponse struct {
	Error   bool          `json:"error"`
	Message string        `json:"message"`
	Story   *models.Story `json:"story"`
}

type loginResponse struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	LoginResult *struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Token  string `json:"token"`
	} `json:"loginResult"`
}

// FetchStories lists stories. Transport failures resolve to an Err result
// with NetworkFailure set, never to a returned Go error.
func (g *HTTPGateway) FetchStories(ctx context.Context) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/stories", nil)
	if err != nil {
		return FetchResult{Err: true, NetworkFailure: true, Message: err.Error()}
	}
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn(ctx, "fetch stories failed", "err", err)
		return FetchResult{Err: true, NetworkFailure: true, Message: "network error: could not reach story service"}
	}
	defer resp.Body.Close()

	var body storiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return FetchResult{Err: true, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FetchResult{Err: true, Message: orDefault(body.Message, "failed to load stories")}
	}
	return FetchResult{Message: orDefault(body.Message, "stories loaded"), Stories: body.Stories}
}

// FetchStory loads one story by id.
func (g *HTTPGateway) FetchStory(ctx context.Context, id string) StoryResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/stories/"+id, nil)
	if err != nil {
		return StoryResult{Err: true, NetworkFailure: true, Message: err.Error()}
	}
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn(ctx, "fetch story failed", "id", id, "err", err)
		return StoryResult{Err: true, NetworkFailure: true, Message: "network error: could not reach story service"}
	}
	defer resp.Body.Close()

	var body storyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return StoryResult{Err: true, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StoryResult{Err: true, Message: orDefault(body.Message, fmt.Sprintf("failed to load story (%d)", resp.StatusCode))}
	}
	return StoryResult{Message: orDefault(body.Message, "story loaded"), Story: body.Story}
}

// CreateStory uploads the payload as multipart/form-data: description, photo
// binary, and lat/lon when both coordinates are present.
func (g *HTTPGateway) CreateStory(ctx context.Context, payload NewStoryPayload) CreateResult {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", payload.Description); err != nil {
		return CreateResult{Err: true, Message: err.Error()}
	}
	name := payload.PhotoName
	if name == "" {
		name = "photo.jpg"
	}
	fw, err := w.CreateFormFile("photo", name)
	if err != nil {
		return CreateResult{Err: true, Message: err.Error()}
	}
	if _, err := fw.Write(payload.Photo); err != nil {
		return CreateResult{Err: true, Message: err.Error()}
	}
	if payload.Lat != nil && payload.Lon != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*payload.Lat, 'f', -1, 64)); err != nil {
			return CreateResult{Err: true, Message: err.Error()}
		}
		if err := w.WriteField("lon", strconv.FormatFloat(*payload.Lon, 'f', -1, 64)); err != nil {
			return CreateResult{Err: true, Message: err.Error()}
		}
	}
	if err := w.Close(); err != nil {
		return CreateResult{Err: true, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/stories", &buf)
	if err != nil {
		return CreateResult{Err: true, NetworkFailure: true, Message: err.Error()}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn(ctx, "create story failed", "err", err)
		return CreateResult{Err: true, NetworkFailure: true, Message: "network error: could not upload story"}
	}
	defer resp.Body.Close()

	var body storyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return CreateResult{Err: true, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CreateResult{Err: true, Message: orDefault(body.Message, "failed to add story")}
	}
	return CreateResult{Message: orDefault(body.Message, "story added"), Story: body.Story}
}

// Login authenticates and stores the bearer token plus display name in the
// token store. Unlike fetch/create, login failures are returned as errors:
// there is no offline fallback for authentication.
func (g *HTTPGateway) Login(ctx context.Context, email, password string) error {
	reqBody, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/login", bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("malformed login response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || body.LoginResult == nil {
		return fmt.Errorf("login failed: %s", orDefault(body.Message, resp.Status))
	}

	g.tokens.Set(body.LoginResult.Token, body.LoginResult.Name)
	g.log.Info(ctx, "logged in", "user", body.LoginResult.Name)
	return nil
}

// Ping probes the service. Any HTTP status counts as reachable.
func (g *HTTPGateway) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, g.baseURL+"/stories", nil)
	if err != nil {
		return err
	}
	g.authorize(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

func (g *HTTPGateway) authorize(req *http.Request) {
	if token := g.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
