package postgres

import (
	"encoding/json"

	"go-learnlab-backend/internal/domain"
)

// Structured sub-documents live in TEXT columns as serialized JSON. These
// helpers keep the encode/decode rules in one place: encoding never fails the
// write (empty object/array on marshal error), decoding tolerates the column
// defaults '{}' / '[]' and legacy empty strings.

func encodeJSON(v interface{}, empty string) string {
	if v == nil {
		return empty
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return empty
	}
	return string(raw)
}

func decodeDoc(raw string) domain.Document {
	doc := domain.Document{}
	if raw == "" {
		return doc
	}
	_ = json.Unmarshal([]byte(raw), &doc)
	return doc
}

func decodeDocList(raw string) []domain.Document {
	list := []domain.Document{}
	if raw == "" {
		return list
	}
	_ = json.Unmarshal([]byte(raw), &list)
	return list
}

func decodeStrings(raw string) []string {
	list := []string{}
	if raw == "" {
		return list
	}
	_ = json.Unmarshal([]byte(raw), &list)
	return list
}

func decodeInt64s(raw string) []int64 {
	list := []int64{}
	if raw == "" {
		return list
	}
	_ = json.Unmarshal([]byte(raw), &list)
	return list
}
