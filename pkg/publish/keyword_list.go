// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"slices"
	"unicode/utf8"

	"github.com/cratehub/registry/pkg/wire"
)

const (
	// MaxKeywords is the maximum number of keywords a crate may declare.
	MaxKeywords = 5
	// MaxKeywordLength is the exclusive upper bound on keyword length, in
	// characters (Unicode code points).
	MaxKeywordLength = 20
)

// KeywordList is an ordered list of at most MaxKeywords keywords, each
// shorter than MaxKeywordLength characters.
type KeywordList struct {
	keywords []Keyword
}

// NewKeywordList checks the list bounds and returns a list holding a copy of
// keywords. The count bound is checked before the length bound.
func NewKeywordList(keywords []Keyword) (KeywordList, error) {
	if len(keywords) > MaxKeywords {
		return KeywordList{}, &TooManyKeywordsError{Count: len(keywords)}
	}
	for _, k := range keywords {
		if utf8.RuneCountInString(k.keyword) >= MaxKeywordLength {
			return KeywordList{}, &KeywordTooLongError{Value: k.keyword}
		}
	}
	return KeywordList{keywords: slices.Clone(keywords)}, nil
}

// ParseKeywordList validates every string as a Keyword, stopping at the
// first invalid one, then applies the list bounds.
func ParseKeywordList(raw []string) (KeywordList, error) {
	keywords := make([]Keyword, 0, len(raw))
	for _, s := range raw {
		k, err := ParseKeyword(s)
		if err != nil {
			return KeywordList{}, err
		}
		keywords = append(keywords, k)
	}
	return NewKeywordList(keywords)
}

// Keywords returns a copy of the keywords in declaration order.
func (l KeywordList) Keywords() []Keyword { return slices.Clone(l.keywords) }

// Len returns the number of keywords.
func (l KeywordList) Len() int { return len(l.keywords) }

// Strings returns the keywords as plain strings.
func (l KeywordList) Strings() []string {
	out := make([]string, len(l.keywords))
	for i, k := range l.keywords {
		out[i] = k.keyword
	}
	return out
}

// UnmarshalWire implements wire.Unmarshaler. Elements are validated first,
// then the list bounds.
func (l *KeywordList) UnmarshalWire(v wire.Value) error {
	keywords, err := wire.DecodeSeq[Keyword](v)
	if err != nil {
		return err
	}
	list, err := NewKeywordList(keywords)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

// MarshalWire implements wire.Marshaler. Bounds are not re-checked.
func (l KeywordList) MarshalWire() any { return wire.EncodeSeq(l.keywords) }
