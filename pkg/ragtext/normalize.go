package ragtext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Whitespace as OCR output contains it: ASCII spacing plus vertical tab and
// Unicode separators such as the no-break space.
const whitespaceClass = `\s\v\p{Z}`

var (
	hyphenBreak = regexp.MustCompile(`-[` + whitespaceClass + `]+`)
	artifacts   = regexp.MustCompile(`[^A-Za-z0-9` + whitespaceClass + `]`)
)

// Normalizer runs the cleaning pipeline. It holds no mutable state and is
// safe for concurrent use.
type Normalizer struct {
	stopwords   map[string]struct{}
	foldAccents bool
}

// NewNormalizer builds a normalizer from cfg
func NewNormalizer(cfg Config) *Normalizer {
	n := &Normalizer{
		stopwords:   englishStopwords,
		foldAccents: cfg.FoldAccents,
	}
	if len(cfg.ExtraStopwords) > 0 {
		n.stopwords = make(map[string]struct{}, len(englishStopwords)+len(cfg.ExtraStopwords))
		for w := range englishStopwords {
			n.stopwords[w] = struct{}{}
		}
		for _, w := range cfg.ExtraStopwords {
			n.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
	return n
}

// Normalize applies hyphenation correction, artifact removal, lowercasing
// and stopword filtering, in that order
func (n *Normalizer) Normalize(text string) string {
	return n.FilterStopwords(n.Clean(text))
}

// Clean applies every step except stopword filtering
func (n *Normalizer) Clean(text string) string {
	text = CorrectHyphenation(text)
	if n.foldAccents {
		text = foldAccents(text)
	}
	text = RemoveArtifacts(text)
	return strings.ToLower(text)
}

// FilterStopwords drops stopword tokens and rejoins the rest with single spaces
func (n *Normalizer) FilterStopwords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, stop := n.stopwords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// IsStopword reports whether word is in this normalizer's stopword set
func (n *Normalizer) IsStopword(word string) bool {
	_, ok := n.stopwords[strings.ToLower(word)]
	return ok
}

// CorrectHyphenation deletes every hyphen that is followed by whitespace,
// together with that whitespace: "recog- nition" becomes "recognition".
func CorrectHyphenation(text string) string {
	return hyphenBreak.ReplaceAllString(text, "")
}

// RemoveArtifacts strips every character that is not an ASCII letter, an
// ASCII digit or whitespace.
func RemoveArtifacts(text string) string {
	return artifacts.ReplaceAllString(text, "")
}

// foldAccents decomposes characters and drops combining marks
func foldAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}
