package models

// ResultSet maps a sheet key ("sheet_<name>") to that sheet's records,
// in the order the sheets were extracted.
type ResultSet struct {
	m orderedMap[[]Record]
}

// NewResultSet creates an empty result set.
func NewResultSet() ResultSet {
	return ResultSet{m: newOrderedMap[[]Record](0)}
}

// Set stores the records of one sheet. A nil slice is stored as empty.
func (s *ResultSet) Set(key string, records []Record) {
	if records == nil {
		records = []Record{}
	}
	s.m.set(key, records)
}

// Get returns the records stored under key.
func (s ResultSet) Get(key string) ([]Record, bool) {
	return s.m.get(key)
}

// Keys returns the sheet keys in extraction order.
func (s ResultSet) Keys() []string {
	return append([]string(nil), s.m.keys...)
}

// Len returns the number of sheets.
func (s ResultSet) Len() int {
	return len(s.m.keys)
}

// MarshalJSON encodes the result set as a JSON object in sheet order.
func (s ResultSet) MarshalJSON() ([]byte, error) {
	return s.m.marshalJSON()
}

// MarshalYAML encodes the result set as a YAML mapping in sheet order.
func (s ResultSet) MarshalYAML() (interface{}, error) {
	return s.m.marshalYAML()
}

// Facts is the extraction payload handed to Ansible.
type Facts struct {
	// AnsibleFacts holds the result set.
	AnsibleFacts ResultSet `json:"ansible_facts" yaml:"ansible_facts"`
}
