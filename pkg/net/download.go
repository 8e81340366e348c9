package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	downloadMaxRetries     = 4
	downloadMaxElapsedTime = 30 * time.Second
	tempFilePattern        = ".download-*"
)

var ErrURLNotFound = errors.New("URL not found")

// Download saves the content at url to path. Server errors and transport
// failures are retried with exponential backoff; a 404 is returned as
// ErrURLNotFound without retrying. The target file only appears once the
// whole body has been written.
func Download(ctx context.Context, url, path string) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = downloadMaxElapsedTime

	op := func() error {
		err := download(ctx, url, path)
		if errors.Is(err, ErrURLNotFound) || errors.Is(err, context.Canceled) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, d time.Duration) {
		PrintRetry(url, err, d)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(bo, downloadMaxRetries), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return fmt.Errorf("error downloading %s: %w", url, err)
	}
	return nil
}

func download(ctx context.Context, url, path string) (retErr error) {
	resp, err := getResp(ctx, url)
	if err != nil {
		return fmt.Errorf("error executing HTTP Get request: %w", err)
	}
	defer resp.Body.Close()
	PrintHTTPResponse(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrURLNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status (%d - %s)", resp.StatusCode, resp.Status)
	}

	out, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			out.Close()
			os.Remove(out.Name())
		}
	}()

	if _, err = io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("error saving downloaded content to file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(out.Name(), path); err != nil {
		return fmt.Errorf("error moving download into place: %w", err)
	}

	return nil
}
