package curly

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPConvertRequest describes a conversion whose input is fetched over
// HTTP.
type HTTPConvertRequest struct {
	URL     string
	Client  *http.Client // nil means http.DefaultClient
	Writer  io.Writer
	Options []Option
}

// HTTPConvert fetches req.URL and streams the converted body to
// req.Writer. Only http and https URLs are accepted.
func HTTPConvert(ctx context.Context, req HTTPConvertRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("convert http: nil writer")
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("convert http: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("convert http: unsupported scheme %q", u.Scheme)
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("convert http: %w", err)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("convert http: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("convert http: %s: %s", req.URL, resp.Status)
	}
	return ConvertStream(ConvertRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Options: req.Options,
	})
}
