package domain

import (
	"fmt"
	"strings"
)

// EmojiKind tells how a category icon is rendered.
type EmojiKind string

const (
	// EmojiUnicode is a plain Unicode emoji sequence, e.g. "📚".
	EmojiUnicode EmojiKind = "unicode"
	// EmojiImageRef is an external image reference.
	EmojiImageRef EmojiKind = "imageRef"
)

// TwemojiBaseURL serves one SVG per emoji code point sequence.
const TwemojiBaseURL = "https://cdnjs.cloudflare.com/ajax/libs/twemoji/14.0.2/svg/"

// DefaultCategoryEmoji is shown by viewers when a category has no icon.
const DefaultCategoryEmoji = "📁"

// customEmojiImages maps the picker's named custom icons to their images.
var customEmojiImages = map[string]string{
	"water-gun":    "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_22939_www.google.com-p6LtxbKDbqbMWp9bHRa6gaIQipkhzp.jpeg",
	"camera-flash": "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_221142_www.google.com-FgXBuh5Jo1gvp5mibnnU5WhPrZvdL4.jpeg",
	"eyes":         "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_221439_www.google.com-keCMNsaduqi2pKVuZQHSXWLqy8c9wq.jpeg",
	"ghost":        "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_221455_www.google.com-ZPO6BC1B0NL5jlBBLjl9T5cZcw2ffj.jpeg",
	"movie-camera": "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_22120_www.google.com-DRgzjv7wMCWNJROa418ZkWZmq70tgC.jpeg",
	"pistol":       "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_22914_www.google.com-w8k6fX0qjlEc8PMGlfk9ETD4EiYZ6h.jpeg",
	"alien":        "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_22115_www.google.com-wpY5lzSmOD95myydnVjzGcncsjm6Dt.jpeg",
	"devil":        "https://hebbkx1anhila5yf.public.blob.vercel-storage.com/Screenshot_26-8-2025_22105_www.google.com-D20W9tO7QVKYpYK2zIGGZwIXIkSzjU.jpeg",
}

// Emoji is the icon of a category: either a Unicode emoji or an image reference.
type Emoji struct {
	Kind EmojiKind `json:"kind"`

	// Value is the emoji text for EmojiUnicode, or the URL for EmojiImageRef.
	Value string `json:"value"`

	// Name is the picker name of a custom image ("ghost"), empty otherwise.
	Name string `json:"name,omitempty"`
}

// UnicodeEmoji builds a Unicode emoji.
func UnicodeEmoji(s string) Emoji {
	return Emoji{Kind: EmojiUnicode, Value: s}
}

// ImageEmoji builds an image-reference emoji.
func ImageEmoji(url string) Emoji {
	return Emoji{Kind: EmojiImageRef, Value: url}
}

// ParseEmoji classifies a raw picker token.
// Returns nil for an empty token, which means "no emoji selected".
func ParseEmoji(token string) *Emoji {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if url, ok := customEmojiImages[token]; ok {
		return &Emoji{Kind: EmojiImageRef, Value: url, Name: token}
	}
	if strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://") {
		e := ImageEmoji(token)
		return &e
	}
	e := UnicodeEmoji(token)
	return &e
}

// Valid reports whether the variant is well formed.
func (e Emoji) Valid() bool {
	if e.Value == "" {
		return false
	}
	return e.Kind == EmojiUnicode || e.Kind == EmojiImageRef
}

// Token returns the picker token that ParseEmoji maps back to e.
func (e Emoji) Token() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Value
}

// ImageURL returns something an <img> can render: the reference itself,
// or the Twemoji SVG for a Unicode emoji.
func (e Emoji) ImageURL() string {
	if e.Kind == EmojiImageRef {
		return e.Value
	}
	return TwemojiURL(e.Value)
}

// TwemojiURL derives the Twemoji SVG URL from the code points of s.
// Example: "👍🏽" -> .../1f44d-1f3fd.svg
func TwemojiURL(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return TwemojiBaseURL + strings.Join(parts, "-") + ".svg"
}

// sameEmoji compares two optional emojis.
func sameEmoji(a, b *Emoji) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind == b.Kind && a.Value == b.Value
}
