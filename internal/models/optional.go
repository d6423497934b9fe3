package models

import "encoding/json"

// OptionalID is a nullable id field of a patch body. It tells apart a field
// that was left out, one sent as null, and one carrying a value.
type OptionalID struct {
	Set   bool
	Valid bool
	Value int64
}

// SomeID returns a present, non-null OptionalID
func SomeID(id int64) OptionalID {
	return OptionalID{Set: true, Valid: true, Value: id}
}

// NullID returns an OptionalID that was explicitly sent as null
func NullID() OptionalID {
	return OptionalID{Set: true}
}

// UnmarshalJSON only runs when the key is present in the body
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid, o.Value = false, 0
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Ptr returns the value, or nil when the field is null or absent
func (o OptionalID) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
