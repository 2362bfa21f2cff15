package security

import (
	"testing"
	"time"
)

func TestValidateURL_AllowedURLs(t *testing.T) {
	guard := NewURLGuard()

	allowed := []string{
		"https://example.com/poster.jpg",
		"http://images.example.org/p/123.png",
		"HTTPS://EXAMPLE.COM/UPPER.JPG",
		"https://8.8.8.8/poster.jpg",
	}

	for _, rawURL := range allowed {
		if err := guard.ValidateURL(rawURL); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", rawURL, err)
		}
	}
}

func TestValidateURL_DisallowedSchemes(t *testing.T) {
	guard := NewURLGuard()

	blocked := []string{
		"ftp://example.com/poster.jpg",
		"file:///etc/passwd",
		"gopher://example.com/",
		"javascript:alert(1)",
		"//example.com/no-scheme.jpg",
	}

	for _, rawURL := range blocked {
		if err := guard.ValidateURL(rawURL); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", rawURL)
		}
	}
}

func TestValidateURL_BlockedIPs(t *testing.T) {
	guard := NewURLGuard()

	blocked := []string{
		"http://127.0.0.1/poster.jpg",
		"http://127.0.0.1:8080/poster.jpg",
		"http://10.0.0.5/internal.jpg",
		"http://172.16.0.1/x.jpg",
		"http://192.168.1.1/router.jpg",
		// クラウドメタデータIP
		"http://169.254.169.254/latest/meta-data/",
		"http://0.0.0.0/x.jpg",
		"http://[::1]/x.jpg",
		"http://[fe80::1]/x.jpg",
		"http://[fd00::1]/x.jpg",
	}

	for _, rawURL := range blocked {
		if err := guard.ValidateURL(rawURL); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", rawURL)
		}
	}
}

func TestValidateURL_BlockedHostnames(t *testing.T) {
	guard := NewURLGuard()

	for _, rawURL := range []string{
		"http://localhost/poster.jpg",
		"http://LOCALHOST:8080/poster.jpg",
	} {
		if err := guard.ValidateURL(rawURL); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", rawURL)
		}
	}
}

func TestValidateURL_MalformedURLs(t *testing.T) {
	guard := NewURLGuard()

	for _, rawURL := range []string{
		"",
		"http://",
		"://missing-scheme",
	} {
		if err := guard.ValidateURL(rawURL); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", rawURL)
		}
	}
}

func TestNewSafeClient_SetsTimeout(t *testing.T) {
	guard := NewURLGuard()

	client := guard.NewSafeClient(5 * time.Second)
	if client == nil {
		t.Fatal("expected non-nil client")
	}
	if client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want %v", client.Timeout, 5*time.Second)
	}
}
