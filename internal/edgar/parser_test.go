package edgar

import (
	"strings"
	"testing"
)

func TestDocumentText(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style>
<script>var x = 1;</script></head>
<body><p>On March 15, 2024, the Company announced a
<b>1-for-10</b> reverse stock split.</p></body></html>`

	text, err := DocumentText(html)
	if err != nil {
		t.Fatalf("DocumentText: %v", err)
	}

	if !strings.Contains(text, "On March 15, 2024, the Company announced a 1-for-10 reverse stock split.") {
		t.Errorf("unexpected text: %q", text)
	}
	if strings.Contains(text, "var x") || strings.Contains(text, "color: red") {
		t.Error("script and style content must be stripped")
	}
}

func TestDocumentTextPlain(t *testing.T) {
	text, err := DocumentText("plain   text\n\nwith   gaps")
	if err != nil {
		t.Fatalf("DocumentText: %v", err)
	}
	if text != "plain text with gaps" {
		t.Errorf("got %q, want collapsed whitespace", text)
	}
}
