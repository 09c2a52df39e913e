package mock

import "github.com/fwojciec/wikisynth"

var _ wikisynth.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikisynth.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ wikisynth.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of wikisynth.Renderer.
type Renderer struct {
	RenderFn func(article *wikisynth.ParsedArticle, keywords []string) (string, error)
}

func (r *Renderer) Render(article *wikisynth.ParsedArticle, keywords []string) (string, error) {
	return r.RenderFn(article, keywords)
}
