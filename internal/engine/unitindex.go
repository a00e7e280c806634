package engine

// UnitRef names one physical unit within a facility.
type UnitRef struct {
	Facility string
	Unit     string
}

// UnitLinkIndex answers two lookups built from the unit-breakdown sheet:
// which units a config group covers, and which fail-safe group a facility
// falls back to. Built once per conversion, read-only afterward.
type UnitLinkIndex struct {
	groups   map[string][]UnitRef
	failSafe map[string]string
}

// BuildUnitLinkIndex indexes UnitRecords.
//
// Every unit name in a record links to the record's nurse-call group and
// patient-monitoring group (when those are non-empty); list order is
// first-seen and duplicate facility/unit pairs within a group collapse.
// A record with both a facility and a fail-safe group sets the facility's
// fail-safe mapping, last write winning when a facility repeats.
func BuildUnitLinkIndex(units []UnitRecord) *UnitLinkIndex {
	idx := &UnitLinkIndex{
		groups:   make(map[string][]UnitRef),
		failSafe: make(map[string]string),
	}
	for _, u := range units {
		for _, name := range u.Units {
			if u.NurseCallGroup != "" {
				idx.link(u.NurseCallGroup, u.Facility, name)
			}
			if u.ClinicalGroup != "" {
				idx.link(u.ClinicalGroup, u.Facility, name)
			}
		}
		if u.Facility != "" && u.FailSafeGroup != "" {
			idx.failSafe[fold(u.Facility)] = u.FailSafeGroup
		}
	}
	return idx
}

func (idx *UnitLinkIndex) link(group, facility, unit string) {
	key := fold(group)
	for _, ref := range idx.groups[key] {
		if fold(ref.Facility) == fold(facility) && fold(ref.Unit) == fold(unit) {
			return
		}
	}
	idx.groups[key] = append(idx.groups[key], UnitRef{Facility: facility, Unit: unit})
}

// UnitsFor returns the units linked to a config group, in first-seen
// order. Unknown groups return nil; there is no all-units fallback here.
func (idx *UnitLinkIndex) UnitsFor(configGroup string) []UnitRef {
	return idx.groups[fold(configGroup)]
}

// FailSafeGroupFor returns the fail-safe group recorded for a facility,
// or "" when none is.
func (idx *UnitLinkIndex) FailSafeGroupFor(facility string) string {
	return idx.failSafe[fold(facility)]
}
