package profile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/portfolio-ai/internal/types"
)

// Owner identifies the person the profile describes.
type Owner struct {
	FullName  string
	FirstName string
	// Variants are the lower-cased name forms that count as a reference to the owner
	Variants []string
}

// NewOwner derives the owner identity from a display name.
func NewOwner(name string) Owner {
	name = strings.TrimSpace(name)
	parts := strings.Fields(name)

	owner := Owner{FullName: name}
	if len(parts) > 0 {
		owner.FirstName = parts[0]
	}

	seen := make(map[string]bool)
	add := func(v string) {
		v = strings.ToLower(v)
		if len(v) < 2 || seen[v] {
			return
		}
		seen[v] = true
		owner.Variants = append(owner.Variants, v)
	}

	add(strings.Join(parts, " "))
	for _, p := range parts {
		add(p)
	}
	return owner
}

// OwnerOf returns the owner of a profile document.
func OwnerOf(doc *types.ProfileDocument) Owner {
	if doc == nil {
		return NewOwner("")
	}
	return NewOwner(doc.PersonalInfo.Name)
}

// Mentions reports whether text refers to the owner by any name variant. Variants match
// whole words only, so a short name such as "Li" does not match inside "climate".
func (o Owner) Mentions(text string) bool {
	lower := strings.ToLower(text)
	for _, v := range o.Variants {
		if containsWord(lower, v) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
