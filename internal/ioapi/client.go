// Package ioapi implements statapi.Client for the two GENESIS REST
// services: the national Regionaldatenbank and the Landesdatenbank NRW.
// This is an impure I/O package.
package ioapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/statapi"
	"golang.org/x/text/encoding/charmap"
)

const (
	// SourceRegional and SourceLandes name the services in logs and
	// cache keys.
	SourceRegional = "regional"
	SourceLandes   = "landesdatenbank"

	// statusWarning is the GENESIS "result contains hints" code; the
	// payload is still usable. Codes >= 100 are errors.
	statusWarning = 22
)

type client struct {
	source   string
	baseURL  string
	user     string
	password string
	singleYr bool
	hc       *http.Client
}

// NewRegional creates a client for the national Regionaldatenbank.
// It accepts multi-year windows per call.
func NewRegional(cfg *config.APIConfig) statapi.Client {
	return &client{
		source:   SourceRegional,
		baseURL:  strings.TrimSuffix(cfg.RegionalURL, "/"),
		user:     cfg.RegionalUser,
		password: cfg.RegionalPassword,
		hc:       httpClient(cfg),
	}
}

// NewLandes creates a client for the Landesdatenbank NRW. The service
// only honors single-year windows, so requests with StartYear != EndYear
// are rejected before any network call.
func NewLandes(cfg *config.APIConfig) statapi.Client {
	return &client{
		source:   SourceLandes,
		baseURL:  strings.TrimSuffix(cfg.LandesURL, "/"),
		user:     cfg.LandesUser,
		password: cfg.LandesPassword,
		singleYr: true,
		hc:       httpClient(cfg),
	}
}

func httpClient(cfg *config.APIConfig) *http.Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		// table exports are generated server-side and take minutes
		timeout = 5 * time.Minute
	}
	return &http.Client{Timeout: timeout}
}

func (c *client) Source() string { return c.source }

// FetchTable requests one datencsv export and returns its decoded text.
func (c *client) FetchTable(
	ctx context.Context,
	req statapi.TableRequest,
) (string, error) {
	if c.singleYr && req.StartYear != req.EndYear {
		return "", YearWindowError(c.source, req)
	}

	endpoint := c.baseURL + "/data/table"

	params := url.Values{}
	params.Set("username", c.user)
	params.Set("password", c.password)
	params.Set("name", req.TableID)
	params.Set("area", "all")
	params.Set("format", "datencsv")
	params.Set("compress", "false")
	params.Set("language", "de")
	params.Set("startyear", strconv.Itoa(req.StartYear))
	params.Set("endyear", strconv.Itoa(req.EndYear))

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", RequestError(c.source, req.TableID, err)
	}

	slog.Debug("Fetching table export",
		"source", c.source,
		"table", req.TableID,
		"start_year", req.StartYear,
		"end_year", req.EndYear,
	)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return "", RequestError(c.source, req.TableID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", RequestError(c.source, req.TableID, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", StatusError(
			c.source, req.TableID,
			fmt.Errorf("http status %d", resp.StatusCode))
	}

	text := decodeCharset(body)

	return unwrapEnvelope(c.source, req.TableID, text)
}

// decodeCharset returns the body as UTF-8. The services are documented as
// UTF-8 but occasionally serve ISO 8859-1; invalid UTF-8 falls back to a
// Latin-1 decode.
func decodeCharset(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		// Latin-1 decoding cannot actually fail; keep the raw bytes if
		// it somehow does.
		return string(body)
	}
	slog.Debug("Export was not UTF-8, decoded as ISO 8859-1")
	return string(decoded)
}

// envelope is the JSON wrapper the 2020 REST API puts around datencsv
// payloads. Older deployments return the bare CSV body instead.
type envelope struct {
	Status struct {
		Code    int    `json:"Code"`
		Content string `json:"Content"`
	} `json:"Status"`
	Object struct {
		Content string `json:"Content"`
	} `json:"Object"`
}

func unwrapEnvelope(source, tableID, text string) (string, error) {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if !strings.HasPrefix(trimmed, "{") {
		// bare CSV body
		return text, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return "", DecodeError(source, tableID, err)
	}

	code := env.Status.Code
	if code != 0 && code != statusWarning && code < 100 {
		// informational codes, payload usable
		slog.Debug("GENESIS status note",
			"source", source, "table", tableID,
			"code", code, "note", env.Status.Content)
	}
	if code >= 100 {
		return "", StatusError(source, tableID, fmt.Errorf(
			"genesis status %d: %s", code, env.Status.Content))
	}
	if code == statusWarning {
		slog.Warn("GENESIS returned a warning with the payload",
			"source", source, "table", tableID,
			"note", env.Status.Content)
	}

	if env.Object.Content == "" {
		return "", DecodeError(source, tableID,
			fmt.Errorf("envelope has no Object.Content"))
	}
	return env.Object.Content, nil
}
