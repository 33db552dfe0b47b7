package curly

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPConvert(t *testing.T) {
	doc := "It's a 'remote' document.\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("HTTPConvert: %v", err)
	}
	if got := out.String(); got != ConvertMarkdown(doc) {
		t.Errorf("got %q, want %q", got, ConvertMarkdown(doc))
	}
}

func TestHTTPConvertRejectsScheme(t *testing.T) {
	err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:    "ftp://example.com/doc.md",
		Writer: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("ftp scheme accepted")
	}
}

func TestHTTPConvertStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("non-200 accepted")
	}
}
