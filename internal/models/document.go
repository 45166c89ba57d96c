package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Fields holds document keys that have no typed counterpart on a record.
// They are stored inline next to the typed fields and round-trip untouched.
type Fields map[string]interface{}

// marshalDocument encodes known and folds extra keys into the same object.
// Typed fields win on key collisions.
func marshalDocument(known interface{}, extra Fields) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}

	merged := make(map[string]json.RawMessage, len(extra)+8)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, exists := merged[key]; exists {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = raw
	}
	return json.Marshal(merged)
}

// unmarshalDocument decodes data into known and returns every key not
// claimed by one of known's json tags.
func unmarshalDocument(data []byte, known interface{}, keys map[string]struct{}) (Fields, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var all map[string]interface{}
	if err := dec.Decode(&all); err != nil {
		return nil, err
	}
	for key, value := range all {
		if _, ok := keys[key]; ok {
			delete(all, key)
			continue
		}
		all[key] = exactNumbers(value)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Fields(all), nil
}

// exactNumbers replaces json.Number values with int64 when the literal is an
// integer that fits, float64 otherwise. Nested objects and arrays are walked.
func exactNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = exactNumbers(inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = exactNumbers(inner)
		}
		return t
	default:
		return v
	}
}

// jsonKeys lists the object keys a struct type claims through its json tags.
func jsonKeys(v interface{}) map[string]struct{} {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}
