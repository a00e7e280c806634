package engine

import (
	"strings"

	"github.com/carefluent/alarmbridge/internal/document"
	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

// Sheets carries the three source grids. A nil grid means the sheet is
// missing; its records simply come out empty.
type Sheets struct {
	Units      *sheet.Grid
	NurseCalls *sheet.Grid
	Clinicals  *sheet.Grid
}

// Conventional sheet names, shared with the upload part names on the
// HTTP surface.
const (
	SheetUnits      = "units"
	SheetNurseCalls = "nursecalls"
	SheetClinicals  = "clinicals"
)

// ConvertWorkbook runs Convert over the conventionally named sheets of
// a workbook. Absent sheets read as nil grids and contribute nothing.
func ConvertWorkbook(wb *sheet.Workbook, aliases schema.AliasTable) *document.ConfigDocument {
	return Convert(Sheets{
		Units:      wb.Sheet(SheetUnits),
		NurseCalls: wb.Sheet(SheetNurseCalls),
		Clinicals:  wb.Sheet(SheetClinicals),
	}, aliases)
}

// Convert runs the full pipeline: extraction, linkage, bundling,
// destination/parameter synthesis, and document assembly. It is a pure
// function of its inputs; nothing is retained between calls.
func Convert(in Sheets, aliases schema.AliasTable) *document.ConfigDocument {
	units := ExtractUnits(in.Units, aliases.Units)
	nurse := ExtractFlows(in.NurseCalls, aliases.NurseCalls, NurseCalls)
	clinical := ExtractFlows(in.Clinicals, aliases.Clinicals, Clinicals)
	return Transform(units, nurse, clinical)
}

// Transform assembles the output document from already-extracted records.
// Nurse-call flows precede clinical flows; within a type, bundle order is
// first-seen row order, so the output is deterministic for a given input.
func Transform(units []UnitRecord, nurse, clinical []FlowRecord) *document.ConfigDocument {
	idx := BuildUnitLinkIndex(units)

	all := make([]FlowRecord, 0, len(nurse)+len(clinical))
	all = append(all, nurse...)
	all = append(all, clinical...)

	doc := &document.ConfigDocument{
		Version:               document.Version,
		AlarmAlertDefinitions: BuildAlarmDefinitions(all),
		DeliveryFlows:         make([]document.DeliveryFlow, 0, len(all)),
	}
	for _, b := range BundleFlows(nurse) {
		doc.DeliveryFlows = append(doc.DeliveryFlows, buildFlow(b, idx))
	}
	for _, b := range BundleFlows(clinical) {
		doc.DeliveryFlows = append(doc.DeliveryFlows, buildFlow(b, idx))
	}
	return doc
}

func buildFlow(b *FlowBundle, idx *UnitLinkIndex) document.DeliveryFlow {
	sample := b.Sample()
	dests := BuildDestinations(b, idx)
	linked := idx.UnitsFor(sample.ConfigGroup)

	units := make([]document.UnitRef, 0, len(linked))
	for _, u := range linked {
		units = append(units, document.UnitRef{FacilityName: u.Facility, Name: u.Unit})
	}

	alarms := make([]string, len(b.AlarmNames))
	copy(alarms, b.AlarmNames)

	return document.DeliveryFlow{
		AlarmsAlerts:        alarms,
		Conditions:          []document.Condition{},
		Destinations:        dests,
		Interfaces:          interfacesOf(b),
		Name:                flowName(b, linked),
		ParameterAttributes: BuildParameters(b, dests),
		Priority:            sample.Priority,
		Status:              document.StatusActive,
		Units:               units,
	}
}

// interfacesOf lists the distinct non-empty sending-system names across
// the bundle's members, first-seen order. Usually a single entry.
func interfacesOf(b *FlowBundle) []string {
	out := make([]string, 0, 1)
	for _, rec := range b.Records {
		if rec.SendingSystem == "" || containsFold(out, rec.SendingSystem) {
			continue
		}
		out = append(out, rec.SendingSystem)
	}
	return out
}

// flowName synthesizes the human-facing flow name:
//
//	SEND KIND | PRIORITY | alarm names | unit names | facility
//
// Only the first linked facility contributes; a bundle spanning several
// facilities does not enumerate them all here. The priority segment is
// empty when the row specified none.
func flowName(b *FlowBundle, linked []UnitRef) string {
	sample := b.Sample()

	facility := ""
	if len(linked) > 0 {
		facility = linked[0].Facility
	}
	var unitNames []string
	for _, u := range linked {
		if fold(u.Facility) == fold(facility) {
			unitNames = append(unitNames, u.Unit)
		}
	}

	segments := []string{
		"SEND " + sample.Type.Kind(),
		strings.ToUpper(sample.Priority),
		strings.Join(b.AlarmNames, ", "),
		strings.Join(unitNames, ", "),
		facility,
	}
	return strings.Join(segments, " | ")
}
