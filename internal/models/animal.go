// internal/models/animal.go
package models

import "time"

// Field names as they are stored in the animals collection.
const (
	FieldID              = "id"
	FieldSpecies         = "species"
	FieldSex             = "sex"
	FieldSize            = "size"
	FieldColor           = "color"
	FieldWhereItIs       = "whereItIs"
	FieldCharacteristics = "characteristics"
	FieldImageURLs       = "imageURLs"
	FieldFoundOwner      = "foundOwner"
	FieldCreatedAt       = "createdAt"
)

// SexUnknown is the value clients use when the animal's sex could not be determined.
const SexUnknown = "não se sabe"

// Animal is one lost/found listing. Clients may store arbitrary fields, so the
// record is kept as a field map and the well-known attributes are read through accessors.
type Animal map[string]interface{}

// ID returns the store-assigned identifier.
func (a Animal) ID() string {
	id, _ := a[FieldID].(string)
	return id
}

func (a Animal) SetID(id string) {
	a[FieldID] = id
}

// WhereItIs returns the raw location string. ok is false when the field is
// absent or not a string.
func (a Animal) WhereItIs() (string, bool) {
	loc, ok := a[FieldWhereItIs].(string)
	return loc, ok
}

// FoundOwner reports whether the animal was reunited. A missing field counts as false.
func (a Animal) FoundOwner() bool {
	found, _ := a[FieldFoundOwner].(bool)
	return found
}

// CreatedAt returns the creation timestamp.
func (a Animal) CreatedAt() (time.Time, bool) {
	switch v := a[FieldCreatedAt].(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	}
	return time.Time{}, false
}

// Characteristics returns the tag list, ignoring non-string entries.
func (a Animal) Characteristics() []string {
	return stringSlice(a[FieldCharacteristics])
}

// ImageURLs returns the image URL list, ignoring non-string entries.
func (a Animal) ImageURLs() []string {
	return stringSlice(a[FieldImageURLs])
}

// HasCharacteristic reports whether code is one of the animal's characteristics.
func (a Animal) HasCharacteristic(code string) bool {
	for _, c := range a.Characteristics() {
		if c == code {
			return true
		}
	}
	return false
}

// HasImageMatching reports whether any image URL satisfies match.
func (a Animal) HasImageMatching(match func(url string) bool) bool {
	for _, u := range a.ImageURLs() {
		if match(u) {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of the record.
func (a Animal) Clone() Animal {
	out := make(Animal, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// StripProtectedFields removes the fields owned by the store.
func (a Animal) StripProtectedFields() {
	delete(a, FieldID)
	delete(a, FieldCreatedAt)
}

func stringSlice(v interface{}) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
