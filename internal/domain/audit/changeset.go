package audit

import (
	"fmt"
	"time"
)

// FieldChange captures one field's old and new value in a mutation. Values
// are normalized to a small set of primitive kinds before storage so that
// diffing and reporting never reparse serialized text.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ChangeSet maps field names to their changes. An update change set never
// contains fields whose value did not change.
type ChangeSet map[string]FieldChange

// NormalizeValue reduces arbitrary snapshot values to nil, bool, int64,
// float64 or string. Times become RFC 3339 strings; typed strings (status
// enums) collapse to their string form via fmt.Stringer.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return val
	case string:
		return val
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NormalizeState normalizes every value of a snapshot map.
func NormalizeState(state map[string]any) map[string]any {
	if state == nil {
		return nil
	}
	out := make(map[string]any, len(state))
	for field, v := range state {
		out[field] = NormalizeValue(v)
	}
	return out
}

// Diff computes the change set between two snapshots of the same record,
// keeping only fields whose normalized value differs. Fields missing from
// one side are treated as nil.
func Diff(before, after map[string]any) ChangeSet {
	cs := make(ChangeSet)

	for field, oldRaw := range before {
		oldVal := NormalizeValue(oldRaw)
		newVal := NormalizeValue(after[field])
		if oldVal != newVal {
			cs[field] = FieldChange{Old: oldVal, New: newVal}
		}
	}
	for field, newRaw := range after {
		if _, seen := before[field]; seen {
			continue
		}
		newVal := NormalizeValue(newRaw)
		if newVal != nil {
			cs[field] = FieldChange{Old: nil, New: newVal}
		}
	}

	return cs
}

// BeforeState extracts the old-value side of a change set.
func (cs ChangeSet) BeforeState() map[string]any {
	out := make(map[string]any, len(cs))
	for field, chg := range cs {
		out[field] = chg.Old
	}
	return out
}

// AfterState extracts the new-value side of a change set.
func (cs ChangeSet) AfterState() map[string]any {
	out := make(map[string]any, len(cs))
	for field, chg := range cs {
		out[field] = chg.New
	}
	return out
}
