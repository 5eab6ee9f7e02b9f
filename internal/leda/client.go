// Package leda queries the HyperLeda database for distance moduli and converts
// them to distances.
package leda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Delimiter separates the fields of a response line
const Delimiter = ";"

// Query parameters of the meandata request
const (
	table  = "meandata"
	fields = "objname,modz,mod0,modbest"
)

// ErrUnavailable is returned when the catalog answers with a non-200 status
var ErrUnavailable = errors.New("hyperleda database unavailable")

// Client resolves object names to distances using the HyperLeda query script
type Client struct {
	http      *http.Client
	logger    *slog.Logger
	endpoint  string
	userAgent string
}

// NewClient creates a new client for the given endpoint
func NewClient(endpoint string, timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

// Filter returns the SQL filter selecting a single object by name.
// Single quotes inside the name are doubled.
func Filter(name string) string {
	return "objname='" + strings.ReplaceAll(name, "'", "''") + "'"
}

// QueryValues builds the query string parameters for a meandata lookup of name
func QueryValues(name string) url.Values {
	params := url.Values{}
	params.Set("n", table)
	params.Set("c", "o")
	params.Set("of", "1,leda,simbad")
	params.Set("nra", "l")
	params.Set("nakd", "1")
	params.Set("d", fields)
	params.Set("sql", Filter(name))
	params.Set("ob", "")
	params.Set("a", "csv["+Delimiter+"]")
	return params
}

// Resolve queries the catalog for name and returns its distance estimate.
//
// An object the catalog does not know, or one without any modulus, resolves to
// a zero Estimate and a nil error. A non-200 answer returns ErrUnavailable.
func (c *Client) Resolve(ctx context.Context, name string) (Estimate, error) {
	body, err := c.fetch(ctx, name)
	if err != nil {
		return Estimate{Object: name}, err
	}

	rows := ParseResponse(body)
	if len(rows) == 0 {
		c.logger.Debug("no data rows returned", "object", name)
		return Estimate{Object: name}, nil
	}

	if len(rows) > 1 {
		// Every row is evaluated but only the last one is kept; there is no
		// reduction across rows.
		c.logger.Warn("multiple data rows returned, using the last one",
			"object", name,
			"rows", len(rows))
	}

	var est Estimate
	for _, row := range rows {
		est, err = row.Estimate()
		if err != nil {
			return Estimate{Object: name, Rows: len(rows)}, err
		}
	}
	est.Object = name
	est.Rows = len(rows)

	c.logger.Debug("distance resolved",
		"object", name,
		"field", est.Field,
		"modulus", est.Modulus,
		"distance_mly", est.DistanceMly)

	return est, nil
}

// fetch issues the GET request and returns the response body
func (c *Client) fetch(ctx context.Context, name string) (string, error) {
	reqURL := c.endpoint + "?" + QueryValues(name).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}
