package wikisynth_test

import (
	"testing"

	"github.com/fwojciec/wikisynth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWikitext(t *testing.T) {
	t.Parallel()

	t.Run("end-to-end scenario", func(t *testing.T) {
		t.Parallel()

		wikitext := "Intro text.\n\n==History==\nSome history text with a [[File:Pic.jpg|thumb|A caption]] image.\n==References==\nref stuff"

		article := wikisynth.ParseWikitext("Example", wikitext)

		assert.Equal(t, "Example", article.Title)
		require.Len(t, article.Sections, 2)
		assert.Equal(t, "Lead", article.Sections[0].Title)
		assert.Equal(t, "Intro text.", article.Sections[0].Paragraph)
		assert.Empty(t, article.Sections[0].Images)
		assert.Equal(t, "History", article.Sections[1].Title)
		assert.Equal(t, "Some history text with a image.", article.Sections[1].Paragraph)
		assert.Equal(t, []wikisynth.MediaItem{{Filename: "Pic.jpg", Caption: "A caption"}}, article.Sections[1].Images)
		for _, s := range article.Sections {
			assert.NotEqual(t, "References", s.Title)
		}
	})

	t.Run("collects references and strips templates", func(t *testing.T) {
		t.Parallel()

		wikitext := "{{Short description|Small mammal}}\n{{Infobox|name={{lang|la|Felis}}}}\nThe '''cat'''<ref>Linnaeus 1758</ref> is a [[carnivore|carnivorous]] mammal.<ref name=\"msw\">MSW3</ref><ref name=\"msw\"/>\n\n==Etymology==\nThe word ''cat''<ref>OED</ref> is old."

		article := wikisynth.ParseWikitext("Cat", wikitext)

		assert.Equal(t, []string{"Linnaeus 1758", "MSW3", "OED"}, article.References)
		require.Len(t, article.Sections, 2)
		assert.Equal(t, "The cat is a carnivorous mammal.", article.Sections[0].Paragraph)
		assert.Equal(t, "The word cat is old.", article.Sections[1].Paragraph)
	})

	t.Run("gallery section yields images and no paragraph", func(t *testing.T) {
		t.Parallel()

		wikitext := "Lead.\n==Gallery==\n<gallery>\nFile:One.jpg|One\nFile:Two.jpg\n</gallery>"

		article := wikisynth.ParseWikitext("Cats", wikitext)

		require.Len(t, article.Sections, 2)
		assert.Empty(t, article.Sections[1].Paragraph)
		assert.Equal(t, []wikisynth.MediaItem{
			{Filename: "One.jpg", Caption: "One"},
			{Filename: "Two.jpg", Caption: ""},
		}, article.Sections[1].Images)
	})

	t.Run("empty wikitext yields an empty Lead", func(t *testing.T) {
		t.Parallel()

		article := wikisynth.ParseWikitext("Empty", "")

		require.Len(t, article.Sections, 1)
		assert.Equal(t, "Lead", article.Sections[0].Title)
		assert.Empty(t, article.Sections[0].Paragraph)
		assert.Empty(t, article.References)
	})
}
