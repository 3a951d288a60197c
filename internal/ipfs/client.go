// Package ipfs stores credential documents through a pinning service and reads them back from a gateway.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/quantumauth-io/quantum-go-utils/retry"

	"github.com/quantumauth-io/credential-minter/internal/metrics"
	"github.com/quantumauth-io/credential-minter/internal/validate"
)

const (
	DefaultAPIURL  = "https://api.pinata.cloud"
	DefaultGateway = "gateway.pinata.cloud"

	pinFilePath = "/pinning/pinFileToIPFS"

	maxGatewayRetries = 4

	// MaxRetrieveBytes bounds a gateway download.
	MaxRetrieveBytes = 32 << 20
)

var ErrNotConfigured = errors.New("ipfs: pinning service token is not configured")

// StatusError is a non-success HTTP answer from the pinning service or the gateway.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

// Config mirrors the storage section of the application config.
type Config struct {
	APIURL  string `mapstructure:"apiUrl"`
	JWT     string `mapstructure:"jwt"`
	Gateway string `mapstructure:"gateway"`
	// RetryDelayMilliseconds is the first backoff step for gateway reads.
	RetryDelayMilliseconds int `mapstructure:"retryDelayMs"`
}

type Client struct {
	httpClient *http.Client
	apiURL     string
	jwt        string
	gateway    string
	scheme     string
	retryDelay time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithGatewayScheme overrides the https scheme used for gateway reads.
func WithGatewayScheme(scheme string) Option {
	return func(c *Client) {
		if scheme != "" {
			c.scheme = scheme
		}
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiURL:     strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"),
		jwt:        strings.TrimSpace(cfg.JWT),
		gateway:    strings.Trim(strings.TrimSpace(cfg.Gateway), "/"),
		scheme:     "https",
		retryDelay: time.Duration(cfg.RetryDelayMilliseconds) * time.Millisecond,
	}
	if c.apiURL == "" {
		c.apiURL = DefaultAPIURL
	}
	if c.gateway == "" {
		c.gateway = DefaultGateway
	}
	if c.retryDelay <= 0 {
		c.retryDelay = 500 * time.Millisecond
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinMetadata struct {
	Name string `json:"name"`
}

// Upload pins data under name and returns its content hash.
func (c *Client) Upload(ctx context.Context, name, mimeType string, data []byte) (hash string, err error) {
	defer func() { metrics.StorageRequests.WithLabelValues("upload", metrics.Outcome(err)).Inc() }()

	if c.jwt == "" {
		return "", ErrNotConfigured
	}
	if len(data) == 0 {
		return "", &validate.ValidationError{Field: "file", Reason: "file is empty"}
	}
	if strings.TrimSpace(name) == "" {
		name = "document"
	}

	body, contentType, err := multipartBody(name, mimeType, data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+pinFilePath, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pin %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Op: "pinFileToIPFS", Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out pinResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode pin response: %w", err)
	}
	if err := validate.IpfsHash(out.IpfsHash); err != nil {
		return "", fmt.Errorf("pinning service returned unusable hash: %w", err)
	}

	metrics.StorageUploadBytes.Add(float64(len(data)))
	log.Info("document pinned", "name", name, "hash", out.IpfsHash, "size", out.PinSize)
	return out.IpfsHash, nil
}

func multipartBody(name, mimeType string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h.Set("Content-Type", mimeType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}

	meta, err := json.Marshal(pinMetadata{Name: name})
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("pinataMetadata", string(meta)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// GatewayURL is the public address of hash on the configured gateway.
func (c *Client) GatewayURL(hash string) string {
	return fmt.Sprintf("%s://%s/ipfs/%s", c.scheme, c.gateway, strings.TrimSpace(hash))
}

// Retrieve downloads hash from the gateway. Transport errors and 5xx answers are retried with
// backoff; other answers are final.
func (c *Client) Retrieve(ctx context.Context, hash string) (data []byte, err error) {
	defer func() { metrics.StorageRequests.WithLabelValues("retrieve", metrics.Outcome(err)).Inc() }()

	if err := validate.IpfsHash(hash); err != nil {
		return nil, err
	}

	cfg := retry.DefaultConfig()
	cfg.MaxNumRetries = maxGatewayRetries
	cfg.InitialDelayBeforeRetrying = c.retryDelay
	cfg.MaxDelayBeforeRetrying = 10 * c.retryDelay

	out, err := retry.Retry(ctx, cfg,
		func(ctx context.Context) ([]interface{}, error) {
			body, err := c.fetch(ctx, hash)
			if err != nil {
				return nil, err
			}
			return []interface{}{body}, nil
		},
		func(err error) bool {
			var fe *finalError
			return !errors.As(err, &fe)
		},
		"retrieve "+hash)
	if err != nil {
		var fe *finalError
		if errors.As(err, &fe) {
			return nil, fe.err
		}
		return nil, err
	}
	body, _ := out[0].([]byte)
	return body, nil
}

// finalError marks a gateway failure that retrying cannot fix.
type finalError struct{ err error }

func (e *finalError) Error() string { return e.err.Error() }

func (c *Client) fetch(ctx context.Context, hash string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.GatewayURL(hash), nil)
	if err != nil {
		return nil, &finalError{err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway get %s: %w", hash, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn("gateway unavailable, retrying", "hash", hash, "status", resp.StatusCode)
		return nil, &StatusError{Op: "gateway", Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &finalError{err: &StatusError{Op: "gateway", Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxRetrieveBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", hash, err)
	}
	if len(body) > MaxRetrieveBytes {
		return nil, &finalError{err: fmt.Errorf("retrieve %s: content exceeds %d bytes", hash, MaxRetrieveBytes)}
	}
	return body, nil
}
