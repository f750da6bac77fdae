package main

import (
	"strings"
	"testing"
)

func TestShareURL(t *testing.T) {
	url := shareURL()

	if !strings.HasPrefix(url, "http://") {
		t.Errorf("shareURL() = %q, want http:// prefix", url)
	}
	if !strings.HasSuffix(url, ":8000/") {
		t.Errorf("shareURL() = %q, want :8000/ suffix", url)
	}
}
