package wikisynth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/wikisynth"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wikisynth.Errorf(wikisynth.ENOTFOUND, "page %q not found", "Cat")

	assert.Equal(t, wikisynth.ENOTFOUND, wikisynth.ErrorCode(err))
	assert.Equal(t, "page \"Cat\" not found", wikisynth.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", wikisynth.Errorf(wikisynth.ETOOMANYREDIRECTS, "too many redirects"))

	assert.Equal(t, wikisynth.ETOOMANYREDIRECTS, wikisynth.ErrorCode(err))
	assert.Equal(t, "too many redirects", wikisynth.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, wikisynth.EINTERNAL, wikisynth.ErrorCode(err))
	assert.Equal(t, "connection reset", wikisynth.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikisynth.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wikisynth.ErrorMessage(nil))
}

func TestMediaURL(t *testing.T) {
	t.Parallel()

	t.Run("appends filename to media base path", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://commons.wikimedia.org/wiki/Special:FilePath/Pic.jpg", wikisynth.MediaURL("Pic.jpg"))
	})

	t.Run("escapes spaces", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://commons.wikimedia.org/wiki/Special:FilePath/Cat%20poster.jpg", wikisynth.MediaURL("Cat poster.jpg"))
	})
}

func TestCachedArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		err := (&wikisynth.CachedArticle{Wikitext: "text"}).Validate()

		assert.Equal(t, wikisynth.EINVALID, wikisynth.ErrorCode(err))
	})

	t.Run("accepts empty wikitext", func(t *testing.T) {
		t.Parallel()

		err := (&wikisynth.CachedArticle{Title: "Cat"}).Validate()

		assert.NoError(t, err)
	})
}
