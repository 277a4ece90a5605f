package printing

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-rod/rod/lib/launcher"
)

func TestBrowserPathPrefersConfigured(t *testing.T) {
	got, err := BrowserPath("/opt/chrome/chrome")
	if err != nil || got != "/opt/chrome/chrome" {
		t.Fatalf("BrowserPath = %q, %v", got, err)
	}
}

func TestPDF(t *testing.T) {
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("no chrome available")
	}
	b, err := PDF(context.Background(), "<html><body><h1>Delivery Note</h1></body></html>")
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("output is not a pdf")
	}
}
