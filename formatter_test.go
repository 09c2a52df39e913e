package wikisynth_test

import (
	"testing"

	"github.com/fwojciec/wikisynth"
	"github.com/stretchr/testify/assert"
)

func TestFormatArticle(t *testing.T) {
	t.Parallel()

	t.Run("formats sections, images and references", func(t *testing.T) {
		t.Parallel()

		article := &wikisynth.ParsedArticle{
			Title: "Cat",
			Sections: []wikisynth.Section{
				{Title: "Lead", Paragraph: "The cat is a mammal."},
				{Title: "Empty"},
				{Title: "Anatomy", Paragraph: "Cats have claws.", Images: []wikisynth.MediaItem{
					{Filename: "Paw.jpg", Caption: "A [[paw|cat paw]]"},
					{Filename: "Skull.jpg"},
				}},
			},
			References: []string{"Linnaeus 1758", "MSW3"},
		}

		result := wikisynth.FormatArticle(article)

		expected := "# Cat\n" +
			"\n## Lead\nThe cat is a mammal.\n" +
			"\n## Anatomy\nCats have claws.\n[image: Paw.jpg] A cat paw\n[image: Skull.jpg]\n" +
			"\n## References\n1. Linnaeus 1758\n2. MSW3\n"
		assert.Equal(t, expected, result)
	})

	t.Run("returns empty string for nil article", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, wikisynth.FormatArticle(nil))
	})
}
