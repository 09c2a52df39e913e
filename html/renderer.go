// Package html renders parsed articles as standalone HTML pages.
package html

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wikisynth"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Renderer implements wikisynth.Renderer at compile time.
var _ wikisynth.Renderer = (*Renderer)(nil)

const defaultStylesheet = `body{font-family:Georgia,serif;max-width:46em;margin:2em auto;line-height:1.5}
figure{margin:1em 0}img{max-width:100%}figcaption{font-size:.9em;color:#555}
ul.keywords{list-style:none;padding:0}ul.keywords li{display:inline-block;margin:0 .4em .4em 0;padding:.1em .6em;border-radius:1em;background:#eef}`

// Renderer builds an HTML document tree for an article and serializes it.
type Renderer struct {
	// Stylesheet is inlined in the document head. Empty omits the style
	// element.
	Stylesheet string
}

// NewRenderer creates a Renderer with the default stylesheet.
func NewRenderer() *Renderer {
	return &Renderer{Stylesheet: defaultStylesheet}
}

// Render returns the article as an HTML page. Sections with neither a
// paragraph nor images are omitted. Image sources point at the media
// repository and captions are cleaned of wiki markup.
func (r *Renderer) Render(article *wikisynth.ParsedArticle, keywords []string) (string, error) {
	if article == nil {
		return "", wikisynth.Errorf(wikisynth.EINVALID, "article required")
	}

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), article.Title))
	if r.Stylesheet != "" {
		head.AppendChild(withText(element(atom.Style), r.Stylesheet))
	}

	body := element(atom.Body)
	body.AppendChild(r.renderArticle(article, keywords))

	root := element(atom.Html, attr("lang", "en"))
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &xhtml.Node{Type: xhtml.DocumentNode}
	doc.AppendChild(&xhtml.Node{Type: xhtml.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := xhtml.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderArticle(article *wikisynth.ParsedArticle, keywords []string) *xhtml.Node {
	node := element(atom.Article)
	node.AppendChild(withText(element(atom.H1), article.Title))

	if len(article.RedirectedFrom) > 0 {
		note := element(atom.P, attr("class", "redirected"))
		note.AppendChild(textNode("Redirected from " + strings.Join(article.RedirectedFrom, ", ")))
		node.AppendChild(note)
	}

	for _, s := range article.Sections {
		if s.Paragraph == "" && len(s.Images) == 0 {
			continue
		}
		node.AppendChild(renderSection(s))
	}

	if len(article.References) > 0 {
		refs := element(atom.Section, attr("class", "references"))
		refs.AppendChild(withText(element(atom.H2), "References"))
		refs.AppendChild(list(atom.Ol, "", article.References))
		node.AppendChild(refs)
	}

	if len(keywords) > 0 {
		nav := element(atom.Nav)
		nav.AppendChild(withText(element(atom.H2), "Keywords"))
		nav.AppendChild(list(atom.Ul, "keywords", keywords))
		node.AppendChild(nav)
	}

	return node
}

func renderSection(s wikisynth.Section) *xhtml.Node {
	node := element(atom.Section)
	node.AppendChild(withText(element(atom.H2), s.Title))
	if s.Paragraph != "" {
		node.AppendChild(withText(element(atom.P), s.Paragraph))
	}
	for _, img := range s.Images {
		node.AppendChild(renderFigure(img))
	}
	return node
}

func renderFigure(item wikisynth.MediaItem) *xhtml.Node {
	caption := wikisynth.CleanMarkup(item.Caption)
	alt := caption
	if alt == "" {
		alt = item.Filename
	}

	fig := element(atom.Figure)
	fig.AppendChild(element(atom.Img,
		attr("src", wikisynth.MediaURL(item.Filename)),
		attr("alt", alt),
		attr("loading", "lazy"),
	))
	if caption != "" {
		fig.AppendChild(withText(element(atom.Figcaption), caption))
	}
	return fig
}

func list(a atom.Atom, class string, items []string) *xhtml.Node {
	var node *xhtml.Node
	if class != "" {
		node = element(a, attr("class", class))
	} else {
		node = element(a)
	}
	for _, item := range items {
		node.AppendChild(withText(element(atom.Li), item))
	}
	return node
}

func element(a atom.Atom, attrs ...xhtml.Attribute) *xhtml.Node {
	return &xhtml.Node{
		Type:     xhtml.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) xhtml.Attribute {
	return xhtml.Attribute{Key: key, Val: val}
}

func textNode(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}

func withText(n *xhtml.Node, s string) *xhtml.Node {
	n.AppendChild(textNode(s))
	return n
}
