package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores an ordered list of strings as a JSON text column, keeping
// the list embedded in its parent row instead of a join table. Works the same
// on postgres and sqlite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func (l *StringList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Compact trims every entry and drops the empty ones, preserving order.
func (l StringList) Compact() StringList {
	compacted := make(StringList, 0, len(l))
	for _, entry := range l {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			compacted = append(compacted, trimmed)
		}
	}
	return compacted
}
