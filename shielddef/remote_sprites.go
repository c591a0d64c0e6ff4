package shielddef

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jamesrr39/goutil/errorsx"
)

// NewSpriteClient is the HTTP client used for sprite sheets served by a style host
func NewSpriteClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil
	return client
}

var errNotFound = errors.New("not found")

// FetchSpriteSheet downloads "<baseURL>@2x.json" and "<baseURL>@2x.png", falling back
// to the 1x files if the host has no 2x sheet.
func FetchSpriteSheet(ctx context.Context, client *retryablehttp.Client, baseURL string) (*SpriteSheet, errorsx.Error) {
	for _, suffix := range []string{"@2x", ""} {
		indexBytes, err := fetch(ctx, client, baseURL+suffix+".json")
		if err != nil {
			if errorsx.Cause(err) == errNotFound {
				continue
			}
			return nil, errorsx.Wrap(err, "baseURL", baseURL)
		}

		imageBytes, err := fetch(ctx, client, baseURL+suffix+".png")
		if err != nil {
			return nil, errorsx.Wrap(err, "baseURL", baseURL)
		}

		sheet, err := ParseSpriteSheet(indexBytes, imageBytes)
		if err != nil {
			return nil, errorsx.Wrap(err, "baseURL", baseURL)
		}

		return sheet, nil
	}

	return nil, errorsx.Errorf("no sprite sheet found at %q", baseURL)
}

func fetch(ctx context.Context, client *retryablehttp.Client, url string) ([]byte, errorsx.Error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errorsx.Wrap(err, "url", url)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errorsx.Wrap(err, "url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errorsx.Wrap(errNotFound, "url", url)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errorsx.Errorf("unexpected status code fetching %q: %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorsx.Wrap(err, "url", url)
	}

	return data, nil
}
