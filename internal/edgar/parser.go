package edgar

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DocumentText strips a filing document down to its visible plain text.
// Script and style bodies are removed first; whatever remains is the text
// the extractors run over, with runs of whitespace collapsed to single
// spaces. Non-HTML input degrades gracefully: goquery treats it as a text
// node and it comes back near-verbatim.
func DocumentText(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
