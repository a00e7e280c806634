package engine

import "github.com/carefluent/alarmbridge/internal/document"

type defKey struct {
	name string
	typ  FlowType
}

// BuildAlarmDefinitions emits one AlarmDefinition per distinct
// (alarm name, type) pair across all flow records, in first-seen order.
// The definition's value is the row's sending-system name, falling back
// to the alarm name itself; on duplicates the first occurrence wins, so
// rows that later disagree on the sending system do not churn the output.
func BuildAlarmDefinitions(records []FlowRecord) []document.AlarmDefinition {
	seen := make(map[defKey]bool, len(records))
	out := make([]document.AlarmDefinition, 0, len(records))
	for _, rec := range records {
		if rec.AlarmName == "" {
			continue
		}
		key := defKey{name: fold(rec.AlarmName), typ: rec.Type}
		if seen[key] {
			continue
		}
		seen[key] = true

		value := rec.SendingSystem
		if value == "" {
			value = rec.AlarmName
		}
		out = append(out, document.AlarmDefinition{
			Name:   rec.AlarmName,
			Type:   rec.Type.String(),
			Values: []document.AlarmValue{{Category: "", Value: value}},
		})
	}
	return out
}
