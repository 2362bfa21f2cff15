package security

import "testing"

func TestSanitize_StripsHTMLTags(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		input string
		want  string
	}{
		{"Inception", "Inception"},
		{"<script>alert('xss')</script>Inception", "Inception"},
		{"<b>Bold Title</b>", "Bold Title"},
		{`<img src=x onerror=alert(1)>The Matrix`, "The Matrix"},
		{"<a href='https://evil.example'>Link</a>", "Link"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := s.Sanitize(tt.input); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// タグ除去後のエンティティが元のリテラル文字に戻ること
func TestSanitize_UnescapesEntities(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		input string
		want  string
	}{
		{"Fast & Furious", "Fast & Furious"},
		{"Léon: The Professional", "Léon: The Professional"},
		{"君の名は。", "君の名は。"},
	}

	for _, tt := range tests {
		if got := s.Sanitize(tt.input); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := NewTextSanitizer()

	inputs := []string{
		"Fast & Furious",
		"<b>Bold</b> & <i>Italic</i>",
		"Plain title",
	}

	for _, input := range inputs {
		once := s.Sanitize(input)
		twice := s.Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
