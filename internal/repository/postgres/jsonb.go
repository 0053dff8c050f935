package postgres

import (
	"encoding/json"
	"fmt"
)

// jsonbParam encodes v for a `$n::jsonb` placeholder. Simple-protocol mode
// sends parameters as text, so values are encoded here instead of by pgx.
func jsonbParam(v interface{}) (*string, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	s := string(raw)
	return &s, nil
}

// jsonbScan decodes a nullable jsonb column read as text.
func jsonbScan(raw *string, dst interface{}) error {
	if raw == nil || *raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(*raw), dst); err != nil {
		return fmt.Errorf("decode jsonb: %w", err)
	}
	return nil
}
