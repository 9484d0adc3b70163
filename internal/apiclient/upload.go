package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
)

// Upload posts r as a multipart file under field. onProgress, when set,
// receives the percentage of the request body sent so far. It may be called
// from the transport's goroutine.
func (c *Client) Upload(ctx context.Context, endpoint, field, filename string, r io.Reader, onProgress func(percent int)) error {
	cfg := c.cfg.Load()
	url := cfg.BaseURL + endpoint

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return c.fail(ctx, &SetupError{Method: http.MethodPost, URL: url, Err: fmt.Errorf("create form file: %w", err)})
	}
	if _, err := io.Copy(part, r); err != nil {
		return c.fail(ctx, &SetupError{Method: http.MethodPost, URL: url, Err: fmt.Errorf("read upload: %w", err)})
	}
	if err := mw.Close(); err != nil {
		return c.fail(ctx, &SetupError{Method: http.MethodPost, URL: url, Err: fmt.Errorf("finish form: %w", err)})
	}

	size := int64(buf.Len())
	var body io.Reader = &buf
	if onProgress != nil {
		body = &progressReader{r: &buf, total: size, onProgress: onProgress, last: -1}
	}
	return c.send(ctx, cfg, http.MethodPost, url, body, size, mw.FormDataContentType(), nil, nil)
}

type progressReader struct {
	mu         sync.Mutex
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.mu.Lock()
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		changed := percent != p.last
		p.last = percent
		p.mu.Unlock()
		if changed {
			p.onProgress(percent)
		}
	}
	return n, err
}
