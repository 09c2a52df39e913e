// Package gemini answers questions about parsed articles with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/wikisynth"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Asker implements wikisynth.Asker at compile time.
var _ wikisynth.Asker = (*Asker)(nil)

// Asker implements wikisynth.Asker using Google Gemini.
type Asker struct {
	client *genai.Client

	// Model names the Gemini model. Empty means DefaultModel.
	Model string
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client) *Asker {
	return &Asker{client: client, Model: DefaultModel}
}

// Ask answers a question using the formatted article as the only context.
func (a *Asker) Ask(ctx context.Context, article *wikisynth.ParsedArticle, question string) (string, error) {
	if article == nil {
		return "", wikisynth.Errorf(wikisynth.EINVALID, "article required")
	}
	if strings.TrimSpace(question) == "" {
		return "", wikisynth.Errorf(wikisynth.EINVALID, "question required")
	}
	if !hasContent(article) {
		return "", wikisynth.Errorf(wikisynth.ENOTFOUND, "article %q has no content", article.Title)
	}

	model := a.Model
	if model == "" {
		model = DefaultModel
	}

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(article, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", wikisynth.Errorf(wikisynth.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

func hasContent(article *wikisynth.ParsedArticle) bool {
	for _, s := range article.Sections {
		if s.Paragraph != "" || len(s.Images) > 0 {
			return true
		}
	}
	return len(article.References) > 0
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about an encyclopedia article. Answer based only on the article provided. If the answer is not in the article, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the article and question.
func BuildUserPrompt(article *wikisynth.ParsedArticle, question string) string {
	var sb strings.Builder
	sb.WriteString("<article>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", article.Title)
	if len(article.RedirectedFrom) > 0 {
		fmt.Fprintf(&sb, "<redirected_from>%s</redirected_from>\n", strings.Join(article.RedirectedFrom, ", "))
	}
	fmt.Fprintf(&sb, "<content>\n%s</content>\n", wikisynth.FormatArticle(article))
	sb.WriteString("</article>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
