// Package entry owns the book-reflection record: its schema, persistence,
// and the edit-key and visibility rules governing access to it.
package entry

import "encoding/json"

// Privacy controls who may read an entry.
type Privacy string

const (
	// PrivacyPublic entries are readable by anyone holding the slug.
	PrivacyPublic Privacy = "public"
	// PrivacyPrivate entries are readable only through an owning user.
	PrivacyPrivate Privacy = "private"
)

// Entry is one book reflection, stored as JSON under its slug.
type Entry struct {
	Slug       string   `json:"slug"`
	BookTitle  string   `json:"bookTitle"`
	Tagline    string   `json:"tagline"`
	Reflection string   `json:"reflection"`
	BookCover  string   `json:"bookCover,omitempty"`
	Images     []string `json:"images,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	EditKey    string   `json:"editKey,omitempty"`
	Privacy    Privacy  `json:"privacy,omitempty"`
	Likes      int      `json:"likes,omitempty"`
}

// IsPrivate reports whether the entry requires ownership to read. Records
// written before the privacy field existed have it empty and are public.
func (e *Entry) IsPrivate() bool {
	return e.Privacy == PrivacyPrivate
}

// Public returns a copy safe to hand to any reader: the edit key is
// stripped, never anything else.
func (e *Entry) Public() *Entry {
	pub := *e
	pub.EditKey = ""
	return &pub
}

// Summary is the reduced shape served by batch listing and the feed.
type Summary struct {
	Slug      string  `json:"slug"`
	BookTitle string  `json:"bookTitle"`
	CreatedAt string  `json:"createdAt"`
	Tagline   string  `json:"tagline"`
	BookCover string  `json:"bookCover,omitempty"`
	Privacy   Privacy `json:"privacy,omitempty"`
	Likes     int     `json:"likes,omitempty"`
}

// Summary projects the entry onto its listing shape.
func (e *Entry) Summary() Summary {
	return Summary{
		Slug:      e.Slug,
		BookTitle: e.BookTitle,
		CreatedAt: e.CreatedAt,
		Tagline:   e.Tagline,
		BookCover: e.BookCover,
		Privacy:   e.Privacy,
		Likes:     e.Likes,
	}
}

// Nullable is a string field that distinguishes three JSON states: absent
// (Defined=false), explicit null (Defined=true, Value=nil), and a value.
// A plain *string cannot tell "remove the cover" apart from "leave it".
type Nullable struct {
	Defined bool
	Value   *string
}

// UnmarshalJSON is only invoked when the field is present in the payload,
// so Defined flips to true for both null and string values.
func (n *Nullable) UnmarshalJSON(data []byte) error {
	n.Defined = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// Patch is a partial update. Nil pointers leave the stored value unchanged;
// only the whitelisted fields below can ever be modified. Slug, createdAt,
// and editKey are immutable.
type Patch struct {
	BookTitle  *string   `json:"bookTitle"`
	Tagline    *string   `json:"tagline"`
	Reflection *string   `json:"reflection"`
	Images     *[]string `json:"images"`
	BookCover  Nullable  `json:"bookCover"`
	Privacy    *Privacy  `json:"privacy"`
}
