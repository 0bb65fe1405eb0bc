package tui

import (
	"html"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	xhtml "golang.org/x/net/html"
)

// descriptionLines renders a game description for the detail view.
// BGG descriptions arrive entity-escaped ("&#10;" for newlines) and
// occasionally carry inline markup, so both are handled before wrapping.
func descriptionLines(raw string, width int) []string {
	decoded := html.UnescapeString(raw)
	if strings.TrimSpace(decoded) == "" {
		return nil
	}

	text := markupToText(decoded)
	if strings.TrimSpace(text) == "" {
		text = decoded
	}
	return wrapText(collapseBlankLines(text), width)
}

type textWriter struct {
	b          strings.Builder
	quoteDepth int
	listStack  []int // 0 for unordered, next item number for ordered
	skip       int
	hrefs      []string
}

func (w *textWriter) endsWith(s string) bool {
	return strings.HasSuffix(w.b.String(), s)
}

func (w *textWriter) newline() {
	if w.b.Len() > 0 && !w.endsWith("\n") {
		w.b.WriteString("\n")
	}
}

func (w *textWriter) paragraph() {
	if w.b.Len() == 0 || w.endsWith("\n\n") {
		return
	}
	w.newline()
	w.b.WriteString("\n")
}

func (w *textWriter) text(s string) {
	if w.skip > 0 {
		return
	}
	if strings.TrimSpace(s) == "" {
		if s != "" && w.b.Len() > 0 && !w.endsWith(" ") && !w.endsWith("\n") {
			w.b.WriteString(" ")
		}
		return
	}
	if w.quoteDepth == 0 {
		w.b.WriteString(s)
		return
	}
	prefix := strings.Repeat("│ ", w.quoteDepth)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if w.b.Len() == 0 || w.endsWith("\n") {
				w.b.WriteString(prefix)
			}
			w.b.WriteString(trimmed)
		}
		if i < len(lines)-1 {
			w.b.WriteString("\n")
		}
	}
}

func (w *textWriter) start(tok xhtml.Token) {
	switch tok.Data {
	case "br":
		w.b.WriteString("\n")
	case "p", "div":
		w.paragraph()
	case "blockquote":
		w.newline()
		w.quoteDepth++
	case "ul":
		w.listStack = append(w.listStack, 0)
	case "ol":
		w.listStack = append(w.listStack, 1)
	case "li":
		w.newline()
		if n := len(w.listStack); n > 0 && w.listStack[n-1] > 0 {
			w.b.WriteString(strconv.Itoa(w.listStack[n-1]) + ". ")
			w.listStack[n-1]++
		} else {
			w.b.WriteString("- ")
		}
	case "a":
		href := ""
		for _, attr := range tok.Attr {
			if attr.Key == "href" {
				href = attr.Val
			}
		}
		w.hrefs = append(w.hrefs, href)
	case "script", "style":
		w.skip++
	}
}

func (w *textWriter) end(name string) {
	switch name {
	case "p", "div":
		w.paragraph()
	case "blockquote":
		if w.quoteDepth > 0 {
			w.quoteDepth--
		}
		w.newline()
	case "ul", "ol":
		if n := len(w.listStack); n > 0 {
			w.listStack = w.listStack[:n-1]
		}
		w.newline()
	case "a":
		if n := len(w.hrefs); n > 0 {
			if href := w.hrefs[n-1]; href != "" {
				w.b.WriteString(" (" + href + ")")
			}
			w.hrefs = w.hrefs[:n-1]
		}
	case "script", "style":
		if w.skip > 0 {
			w.skip--
		}
	}
}

// markupToText flattens inline HTML into plain text with line structure.
func markupToText(s string) string {
	z := xhtml.NewTokenizer(strings.NewReader(s))
	var w textWriter
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return w.b.String()
		case xhtml.StartTagToken:
			w.start(z.Token())
		case xhtml.SelfClosingTagToken:
			tok := z.Token()
			w.start(tok)
			if tok.Data == "a" || tok.Data == "script" || tok.Data == "style" {
				w.end(tok.Data)
			}
		case xhtml.EndTagToken:
			tn, _ := z.TagName()
			w.end(string(tn))
		case xhtml.TextToken:
			w.text(string(z.Text()))
		}
	}
}

// collapseBlankLines trims trailing spaces and squeezes runs of blank lines.
func collapseBlankLines(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// wrapText wraps text to width terminal cells. Quote prefixes are carried
// onto continuation lines.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		prefix := ""
		for strings.HasPrefix(para[len(prefix):], "│ ") {
			prefix += "│ "
		}
		words := strings.Fields(para[len(prefix):])
		if len(words) == 0 {
			lines = append(lines, strings.TrimRight(prefix, " "))
			continue
		}

		avail := max(1, width-runewidth.StringWidth(prefix))
		current := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= avail {
				current += " " + word
				continue
			}
			lines = append(lines, prefix+current)
			current = word
		}
		lines = append(lines, prefix+current)
	}
	return lines
}
