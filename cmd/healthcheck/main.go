// Command healthcheck probes the local omnisearch /healthz endpoint and exits
// non-zero unless it reports ok. It is the container HEALTHCHECK binary.
package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"time"
)

const defaultAddr = "127.0.0.1:3000"

func main() {
	os.Exit(check("http://" + normalizeAddr(os.Getenv("OMNISEARCH_LISTEN_ADDR"))))
}

// check returns 0 when baseURL/healthz answers 200 with status "ok".
func check(baseURL string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return 1
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 1
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != "ok" {
		return 1
	}
	return 0
}

// normalizeAddr points the probe at loopback when the server binds all
// interfaces, since the healthcheck runs inside the same container.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
