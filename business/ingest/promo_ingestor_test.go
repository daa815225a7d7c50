package ingest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const promoPage = `<html><body>
<article>Diskon 50% <b>GoFood</b> minimal pembelian 50rb</article>
<a href="/x">  Lihat   Penawaran  </a>
<div><span></span></div>
</body></html>`

func TestElementTextJoinsFragments(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(promoPage))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	var texts []string
	walkElements(doc, func(n *html.Node) {
		if n.Data != "article" && n.Data != "a" {
			return
		}
		if text := elementText(n); text != "" {
			texts = append(texts, text)
		}
	})

	if len(texts) != 2 {
		t.Fatalf("texts = %v, want article and anchor", texts)
	}
	if texts[0] != "Diskon 50% GoFood minimal pembelian 50rb" {
		t.Errorf("article text = %q", texts[0])
	}
	if texts[1] != "Lihat Penawaran" {
		t.Errorf("anchor text = %q, want trimmed fragments", texts[1])
	}
}

func TestElementTextEmptyElement(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><div>   </div></body></html>`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	found := false
	walkElements(doc, func(n *html.Node) {
		if n.Data == "div" && elementText(n) != "" {
			found = true
		}
	})
	if found {
		t.Error("whitespace-only element must yield empty text")
	}
}
