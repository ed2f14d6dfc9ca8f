package content

import (
	"bytes"
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// Optional is a patch field that remembers whether the client sent it and
// whether it was sent as an explicit null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

// Null returns an Optional that clears the field.
func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Changes is a field-level merge expressed with store field names.
type Changes struct {
	Set   bson.M
	Unset []string
}

// Empty reports whether applying c would leave a document untouched.
func (c Changes) Empty() bool { return len(c.Set) == 0 && len(c.Unset) == 0 }

type changeBuilder struct {
	ch   Changes
	errs []FieldError
}

func newChangeBuilder() *changeBuilder {
	return &changeBuilder{ch: Changes{Set: bson.M{}}}
}

// required handles a field that may be replaced but never cleared.
func (b *changeBuilder) required(field string, o Optional[string], rule string) {
	if !o.Set {
		return
	}
	if o.Null {
		b.errs = append(b.errs, FieldError{Field: field, Rule: "not_null", Message: field + " may not be null"})
		return
	}
	if rule != "" {
		if fe, ok := checkVar(field, o.Value, rule); !ok {
			b.errs = append(b.errs, fe)
			return
		}
	}
	b.ch.Set[field] = o.Value
}

// nullable handles a field where an explicit null or an empty string removes
// the stored value.
func (b *changeBuilder) nullable(field string, o Optional[string], rule string) {
	if !o.Set {
		return
	}
	if o.Null || o.Value == "" {
		b.ch.Unset = append(b.ch.Unset, field)
		return
	}
	b.required(field, o, rule)
}

func (b *changeBuilder) done() (Changes, error) {
	if len(b.errs) > 0 {
		return Changes{}, &ValidationError{Fields: b.errs}
	}
	return b.ch, nil
}

// BiographyUpdate is the body of PUT /biography.
type BiographyUpdate struct {
	Name    Optional[string] `json:"name"`
	Title   Optional[string] `json:"title"`
	Bio     Optional[string] `json:"bio"`
	Tagline Optional[string] `json:"tagline"`
}

func (u BiographyUpdate) Changes() (Changes, error) {
	b := newChangeBuilder()
	b.required("name", u.Name, "")
	b.required("title", u.Title, "")
	b.required("bio", u.Bio, "")
	b.required("tagline", u.Tagline, "")
	return b.done()
}

// PartnershipUpdate is the body of PUT /partnerships/{id}.
type PartnershipUpdate struct {
	Name   Optional[string] `json:"name"`
	Role   Optional[string] `json:"role"`
	Logo   Optional[string] `json:"logo"`
	Handle Optional[string] `json:"handle"`
	URL    Optional[string] `json:"url"`
}

func (u PartnershipUpdate) Changes() (Changes, error) {
	b := newChangeBuilder()
	b.required("name", u.Name, "")
	b.required("role", u.Role, "")
	b.required("logo", u.Logo, "")
	b.required("handle", u.Handle, "")
	b.nullable("url", u.URL, "http_url")
	return b.done()
}

// SocialMediaUpdate is the body of PUT /social-media/{id}.
type SocialMediaUpdate struct {
	Platform Optional[string] `json:"platform"`
	URL      Optional[string] `json:"url"`
	Icon     Optional[string] `json:"icon"`
	Color    Optional[string] `json:"color"`
}

func (u SocialMediaUpdate) Changes() (Changes, error) {
	b := newChangeBuilder()
	b.required("platform", u.Platform, "")
	b.required("url", u.URL, "http_url")
	b.required("icon", u.Icon, "")
	b.required("color", u.Color, "")
	return b.done()
}
