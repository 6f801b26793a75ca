// Package client is the HTTP client used by peervaultctl to talk to the
// inventory service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gookit/goutil"

	pkgapi "github.com/peervault/peervault/pkg/api"
)

// Client talks to a running peervault instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against the given base URL, e.g. "http://127.0.0.1:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// ExportResult is a raw export bundle plus the peer count the server reported.
type ExportResult struct {
	Bundle     []byte
	PeersCount int
}

// Export downloads the full inventory bundle.
func (c *Client) Export(ctx context.Context) (*ExportResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/export", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export body: %w", err)
	}

	result := &ExportResult{Bundle: body}
	if count, err := goutil.ToInt(resp.Header.Get("X-Peers-Count")); err == nil {
		result.PeersCount = count
	}
	return result, nil
}

// Import uploads a bundle and returns the per-record results.
func (c *Client) Import(ctx context.Context, bundle []byte) (*pkgapi.ImportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/import", bytes.NewReader(bundle))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("import request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var envelope pkgapi.Response[pkgapi.ImportResponse]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode import response: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("import response carried no data")
	}
	return envelope.Data, nil
}

// ListPeers fetches all peers.
func (c *Client) ListPeers(ctx context.Context) ([]pkgapi.Peer, error) {
	var peers []pkgapi.Peer
	if err := c.getJSON(ctx, "/api/v1/peers", &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

// CreatePeer registers a new peer.
func (c *Client) CreatePeer(ctx context.Context, req pkgapi.CreatePeerRequest) (*pkgapi.Peer, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/peers", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create peer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.errorFromResponse(resp)
	}

	var envelope pkgapi.Response[pkgapi.Peer]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode peer response: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("peer response carried no data")
	}
	return envelope.Data, nil
}

// DeletePeer removes a peer by ID.
func (c *Client) DeletePeer(ctx context.Context, peerID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/v1/peers/"+peerID, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete peer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return c.errorFromResponse(resp)
	}
	return nil
}

// ListGroups fetches all groups.
func (c *Client) ListGroups(ctx context.Context) ([]pkgapi.Group, error) {
	var groups []pkgapi.Group
	if err := c.getJSON(ctx, "/api/v1/groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope struct {
		Success bool              `json:"success"`
		Data    json.RawMessage   `json:"data"`
		Error   *pkgapi.ErrorInfo `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !envelope.Success {
		return apiError(envelope.Error, 0)
	}
	return json.Unmarshal(envelope.Data, dst)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var envelope pkgapi.Response[any]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return apiError(envelope.Error, resp.StatusCode)
}

func apiError(info *pkgapi.ErrorInfo, status int) error {
	if info == nil {
		return fmt.Errorf("server returned status %d", status)
	}
	return fmt.Errorf("%s (%s)", info.Message, info.Code)
}
