package models

import "gopkg.in/yaml.v3"

// NullKey is the record key used for an empty header cell.
const NullKey = "null"

// Record represents one data row keyed by the sheet's header labels.
// Keys keep column order. When two header cells share a label the later
// column's value wins and the key stays at the earlier column's position.
type Record struct {
	m orderedMap[interface{}]
}

// NewRecord creates an empty record with room for size fields.
func NewRecord(size int) Record {
	return Record{m: newOrderedMap[interface{}](size)}
}

// Set stores the cell value for a header key.
func (r *Record) Set(key string, value interface{}) {
	r.m.set(key, value)
}

// Get returns the value stored under key.
func (r Record) Get(key string) (interface{}, bool) {
	return r.m.get(key)
}

// Keys returns the record's keys in column order.
func (r Record) Keys() []string {
	return append([]string(nil), r.m.keys...)
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.m.keys)
}

// ToMap returns the fields as a plain map.
func (r Record) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(r.m.keys))
	for k, v := range r.m.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the record as a JSON object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	return r.m.marshalJSON()
}

// MarshalYAML encodes the record as a YAML mapping in column order.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.m.marshalYAML()
}

var _ yaml.Marshaler = Record{}
