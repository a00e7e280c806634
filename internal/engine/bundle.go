package engine

// bundle.go collapses rows that describe the same delivery rule.
//
// Source sheets commonly repeat one rule across many rows, varying only
// the alarm name (ten alarms that all page the same recipients with the
// same timing). Emitting a flow per row would multiply the output and
// break the downstream platform's flow-cardinality expectations, so rows
// sharing every attribute except the alarm name collapse into one bundle.

// bundleKey is the case-folded signature of a delivery rule. A comparable
// struct rather than a joined string, so no separator can collide with
// cell data.
type bundleKey struct {
	typ      FlowType
	group    string
	priority string
	ringtone string
	response string
	device   string
	slots    [SlotCount]Slot
}

func signatureOf(rec FlowRecord) bundleKey {
	k := bundleKey{
		typ:      rec.Type,
		group:    fold(rec.ConfigGroup),
		priority: fold(rec.Priority),
		ringtone: fold(rec.Ringtone),
		response: fold(rec.ResponseOptions),
		device:   fold(rec.Device),
	}
	for i, s := range rec.Slots {
		k.slots[i] = Slot{Delay: fold(s.Delay), Recipient: fold(s.Recipient)}
	}
	return k
}

// FlowBundle is a set of FlowRecords sharing one signature. The first
// member is the sample supplying every non-alarm-name attribute.
type FlowBundle struct {
	Records    []FlowRecord
	AlarmNames []string // deduplicated, first-seen order and spelling
}

// Sample returns the bundle's first record.
func (b *FlowBundle) Sample() FlowRecord {
	return b.Records[0]
}

// BundleFlows partitions records by signature, preserving first-seen
// bundle order. Bundling is idempotent: a one-row-per-bundle input set
// comes back unchanged.
func BundleFlows(records []FlowRecord) []*FlowBundle {
	index := make(map[bundleKey]*FlowBundle)
	var out []*FlowBundle
	for _, rec := range records {
		key := signatureOf(rec)
		b := index[key]
		if b == nil {
			b = &FlowBundle{}
			index[key] = b
			out = append(out, b)
		}
		b.Records = append(b.Records, rec)
		if !containsFold(b.AlarmNames, rec.AlarmName) {
			b.AlarmNames = append(b.AlarmNames, rec.AlarmName)
		}
	}
	return out
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if fold(n) == fold(name) {
			return true
		}
	}
	return false
}
