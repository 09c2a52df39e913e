// Package yaml loads keyword configuration from YAML files.
package yaml

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/wikisynth"
	"gopkg.in/yaml.v3"
)

// Stoplist is a stopword file:
//
//	replace: false
//	terms:
//	  - paris
//	  - france
type Stoplist struct {
	// Replace drops the built-in stopwords instead of extending them.
	Replace bool     `yaml:"replace"`
	Terms   []string `yaml:"terms"`
}

// LoadStoplist loads a stoplist from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, wikisynth.Errorf(wikisynth.ENOTFOUND, "stoplist %q not found", path)
	} else if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, wikisynth.Errorf(wikisynth.EINVALID, "parse stoplist %q: %s", path, err)
	}
	return &sl, nil
}

// Stopwords returns the effective stopword list: defaults plus the file's
// terms, or only the terms when Replace is set. Terms are lower-cased and
// blank entries dropped.
func (s *Stoplist) Stopwords(defaults []string) []string {
	var words []string
	if !s.Replace {
		words = append(words, defaults...)
	}
	for _, t := range s.Terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			words = append(words, t)
		}
	}
	return words
}
