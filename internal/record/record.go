// Package record defines the tagged page records that graphs are built from.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Value is a categorical property value: either a single string or a list.
type Value struct {
	Single string
	List   []string
	IsList bool
}

// String wraps a single-valued property.
func String(s string) Value {
	return Value{Single: s}
}

// List wraps a multi-valued property.
func List(values ...string) Value {
	return Value{List: values, IsList: true}
}

// MarshalJSON encodes the value as a JSON string or array of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Single)
}

// UnmarshalJSON accepts a JSON string or array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = Value{List: list, IsList: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Value{Single: s}
	return nil
}

// Record is one externally sourced page snapshot.
type Record struct {
	ID             string
	Title          string
	Keywords       []string
	CreatedTime    string
	LastEditedTime string
	URL            string

	// Props holds categorical and free-form properties by property name.
	Props map[string]Value
}

// Reserved JSON keys of the flat record form.
const (
	keyID             = "id"
	keyTitle          = "title"
	keyKeywords       = "keywords"
	keyCreatedTime    = "createdTime"
	keyLastEditedTime = "lastEditedTime"
	keyURL            = "url"
)

// IsReserved reports whether name collides with a fixed record field.
func IsReserved(name string) bool {
	switch name {
	case keyID, keyTitle, keyKeywords, keyCreatedTime, keyLastEditedTime, keyURL:
		return true
	}
	return false
}

// Values returns the list value of a property. Absent properties and
// single-string values yield nil.
func (r Record) Values(name string) []string {
	v, ok := r.Props[name]
	if !ok || !v.IsList {
		return nil
	}
	return v.List
}

// First returns the first value of a property: the first list element or the
// single string. ok is false when the property is absent or empty.
func (r Record) First(name string) (string, bool) {
	v, ok := r.Props[name]
	if !ok {
		return "", false
	}
	if v.IsList {
		if len(v.List) == 0 {
			return "", false
		}
		return v.List[0], true
	}
	if v.Single == "" {
		return "", false
	}
	return v.Single, true
}

// PropertyNames returns the record's property names in sorted order.
func (r Record) PropertyNames() []string {
	names := make([]string, 0, len(r.Props))
	for name := range r.Props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithKeywords returns a copy of r with Keywords replaced.
func (r Record) WithKeywords(keywords []string) Record {
	r.Keywords = append([]string(nil), keywords...)
	return r
}

// MarshalJSON writes the flat form: fixed keys plus one key per property.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Props)+6)
	for name, v := range r.Props {
		m[name] = v
	}
	m[keyID] = r.ID
	m[keyTitle] = r.Title
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	m[keyKeywords] = keywords
	if r.CreatedTime != "" {
		m[keyCreatedTime] = r.CreatedTime
	}
	if r.LastEditedTime != "" {
		m[keyLastEditedTime] = r.LastEditedTime
	}
	if r.URL != "" {
		m[keyURL] = r.URL
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the flat form. Unknown keys holding a string or a list
// of strings become properties; other JSON types are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Record{Props: make(map[string]Value)}
	for key, msg := range raw {
		var err error
		switch key {
		case keyID:
			err = json.Unmarshal(msg, &out.ID)
		case keyTitle:
			err = json.Unmarshal(msg, &out.Title)
		case keyKeywords:
			err = json.Unmarshal(msg, &out.Keywords)
		case keyCreatedTime:
			err = json.Unmarshal(msg, &out.CreatedTime)
		case keyLastEditedTime:
			err = json.Unmarshal(msg, &out.LastEditedTime)
		case keyURL:
			err = json.Unmarshal(msg, &out.URL)
		default:
			var v Value
			if json.Unmarshal(msg, &v) == nil {
				out.Props[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
	}
	if out.ID == "" {
		return fmt.Errorf("record is missing %q", keyID)
	}

	*r = out
	return nil
}
