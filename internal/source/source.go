// Package source reads requirement documents from disk and turns them into
// plain text the extraction step can read.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported requirements format (use .txt, .md or .html)")
	ErrEmptyInput        = errors.New("requirements document is empty")
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Input is a requirements document ready for extraction.
type Input struct {
	Name   string // title, or the file name when the document has none
	Format Format
	Text   string
}

var formatsByExt = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	f, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	return f, nil
}

// Read loads the file at path. HTML is converted to markdown; text and
// markdown are used verbatim.
func Read(path string) (*Input, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements: %w", err)
	}
	in, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		in.Name = filepath.Base(path)
	}
	return in, nil
}

// Parse converts raw content of a known format.
func Parse(data []byte, format Format) (*Input, error) {
	in := &Input{Format: format}
	switch format {
	case FormatText, FormatMarkdown:
		in.Text = strings.TrimSpace(string(data))
		if format == FormatMarkdown {
			in.Name = markdownTitle(in.Text)
		}
	case FormatHTML:
		res, err := NewConverter().Convert(data)
		if err != nil {
			return nil, fmt.Errorf("converting html: %w", err)
		}
		in.Name = res.Title
		in.Text = res.Markdown
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if in.Text == "" {
		return nil, ErrEmptyInput
	}
	return in, nil
}

var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// ConvertResult is converted HTML content.
type ConvertResult struct {
	Title    string
	Markdown string
}

// Converter turns requirement pages exported as HTML into markdown.
type Converter struct {
	converter *md.Converter
}

func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Converter{converter: converter}
}

func (c *Converter) Convert(content []byte) (*ConvertResult, error) {
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, err
	}

	title := htmlTitle(doc)
	body := stripNoise(doc, string(content))

	markdown, err := c.converter.ConvertString(body)
	if err != nil {
		return nil, err
	}
	markdown = cleanMarkdown(markdown)
	if title == "" {
		title = markdownTitle(markdown)
	}
	return &ConvertResult{Title: title, Markdown: markdown}, nil
}

func htmlTitle(doc *html.Node) string {
	n := findElement(doc, "title")
	if n == nil || n.FirstChild == nil {
		return ""
	}
	return strings.TrimSpace(n.FirstChild.Data)
}

// stripNoise drops elements that never carry requirements and renders the
// body back to HTML.
func stripNoise(doc *html.Node, raw string) string {
	removeElements(doc, "head", "nav", "footer", "script", "style", "noscript", "iframe", "form", "button")
	body := findElement(doc, "body")
	if body == nil {
		raw = scriptRe.ReplaceAllString(raw, "")
		return styleRe.ReplaceAllString(raw, "")
	}
	var sb strings.Builder
	if err := html.Render(&sb, body); err != nil {
		return raw
	}
	return sb.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func removeElements(n *html.Node, tags ...string) {
	drop := make(map[string]bool, len(tags))
	for _, t := range tags {
		drop[t] = true
	}
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.ElementNode && drop[c.Data] {
				node.RemoveChild(c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(n)
}

func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func markdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
