/*
Copyright 2026 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package qualys

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

// ErrAuthFailed is returned when the gateway rejects the credentials.
var ErrAuthFailed = errors.New("authentication failed")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Op, e.Status)
}

// Session holds the bearer token obtained from Authenticate. It is passed
// explicitly to the calls that need it.
type Session struct {
	Token string
}

// Client talks to one platform with one set of credentials. Every call is
// attempted exactly once.
type Client struct {
	platform   Platform
	username   string
	password   string
	httpClient *http.Client
}

// DefaultTimeout bounds a single HTTP call when no client is supplied.
const DefaultTimeout = 5 * time.Minute

// NewClient builds a client. A nil httpClient gets a default one.
func NewClient(platform Platform, username, password string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		platform:   platform,
		username:   username,
		password:   password,
		httpClient: httpClient,
	}
}

// Platform returns the platform the client talks to.
func (c *Client) Platform() Platform {
	return c.platform
}

// Authenticate exchanges the credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) (*Session, error) {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)
	form.Set("token", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.platform.Gateway+"/auth", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, statusError("auth", resp))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading token: %v", ErrAuthFailed, err)
	}
	token := strings.TrimSpace(string(body))
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrAuthFailed)
	}
	log.WithField("platform", c.platform.Name).Debug("authenticated")
	return &Session{Token: token}, nil
}

// ListConnectors returns the gateway's connector records for a cloud.
func (c *Client) ListConnectors(ctx context.Context, sess *Session, cloud core.CloudProvider) ([]map[string]any, error) {
	if sess == nil || sess.Token == "" {
		return nil, errors.New("list connectors: no session")
	}
	u := fmt.Sprintf("%s/connectors/v1.0/%s/list", c.platform.Gateway, cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")

	var payload map[string]any
	if err := c.do(req, "list connectors", &payload); err != nil {
		return nil, err
	}
	return objects(core.LookupList(payload, "content")), nil
}

// ListAssetDataConnectors returns the data[] items of the QPS asset data
// connector search for a cloud. Each item is still wrapped in its
// connector-type key.
func (c *Client) ListAssetDataConnectors(ctx context.Context, cloud core.CloudProvider) ([]map[string]any, error) {
	cfg, ok := assetDataConnectors[cloud]
	if !ok {
		return nil, fmt.Errorf("no asset data connector endpoint for %s", cloud)
	}
	u := fmt.Sprintf("%s/qps/rest/3.0/search/am/%s", c.platform.API, cfg.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(`{"ServiceRequest":{}}`))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var payload map[string]any
	if err := c.do(req, "list asset data connectors", &payload); err != nil {
		return nil, err
	}
	return objects(core.LookupList(payload, "ServiceResponse.data")), nil
}

// SearchHostAssets runs a host asset search and returns the HostAsset
// records. Results are capped at SearchLimit; there is no pagination.
func (c *Client) SearchHostAssets(ctx context.Context, f HostFilter) ([]core.Host, error) {
	body, err := f.Marshal(time.Now())
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.platform.API+"/qps/rest/2.0/search/am/hostasset", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/json")

	var payload map[string]any
	if err := c.do(req, "search host assets", &payload); err != nil {
		return nil, err
	}

	items := core.LookupList(payload, "ServiceResponse.data")
	hosts := make([]core.Host, 0, len(items))
	for _, item := range items {
		h := core.LookupObject(item, "HostAsset")
		if h == nil {
			h = map[string]any{}
		}
		hosts = append(hosts, core.Host(h))
	}
	if len(hosts) >= SearchLimit {
		log.WithField("limit", SearchLimit).Warn("host asset search hit the result limit; results may be incomplete")
	}
	return hosts, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

func statusError(op string, resp *http.Response) *StatusError {
	_, _ = io.Copy(io.Discard, resp.Body)
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status}
}

func objects(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
