package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON is the jsonb column type behind DraftRecord.Snapshot. Lead drafts
// round-trip through it untyped so schema changes in the lead shape never
// require a migration of persisted snapshots.
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
}
