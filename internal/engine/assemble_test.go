package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/carefluent/alarmbridge/internal/document"
	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

// TestConvertNurseCallScenario walks the full pipeline for a small but
// realistic nurse-call workbook: one unit row plus two alarm rows that
// share every attribute except the alarm name.
func TestConvertNurseCallScenario(t *testing.T) {
	unitsGrid := unitSheet([]string{"St. Mary", "4 West", "NC-4W", "", ""})
	nurseGrid := alarmSheet(
		[]string{"NC-4W", "Call Bell", "", "Medium", "", "", "", "0", "VGroup: Charge RN"},
		[]string{"NC-4W", "Bed Alarm", "", "Medium", "", "", "", "0", "VGroup: Charge RN"},
	)

	doc := Convert(Sheets{Units: unitsGrid, NurseCalls: nurseGrid}, schema.Default())

	if doc.Version != "1.1.0" {
		t.Errorf("version = %q, want 1.1.0", doc.Version)
	}
	if len(doc.DeliveryFlows) != 1 {
		t.Fatalf("got %d delivery flows, want 1", len(doc.DeliveryFlows))
	}
	flow := doc.DeliveryFlows[0]

	if want := []string{"Call Bell", "Bed Alarm"}; !reflect.DeepEqual(flow.AlarmsAlerts, want) {
		t.Errorf("alarmsAlerts = %v, want %v", flow.AlarmsAlerts, want)
	}
	if flow.Priority != "high" {
		t.Errorf("priority = %q, want high", flow.Priority)
	}
	if flow.Status != "Active" {
		t.Errorf("status = %q, want Active", flow.Status)
	}

	if len(flow.Destinations) != 1 {
		t.Fatalf("got %d destinations, want 1", len(flow.Destinations))
	}
	d := flow.Destinations[0]
	if d.Order != 0 || d.DelaySeconds != 0 {
		t.Errorf("destination order/delay = %d/%d, want 0/0", d.Order, d.DelaySeconds)
	}
	if len(d.Groups) != 1 || d.Groups[0].Name != "Charge RN" || d.Groups[0].FacilityName != "St. Mary" {
		t.Errorf("groups = %+v", d.Groups)
	}

	wantUnits := []document.UnitRef{{FacilityName: "St. Mary", Name: "4 West"}}
	if !reflect.DeepEqual(flow.Units, wantUnits) {
		t.Errorf("units = %+v, want %+v", flow.Units, wantUnits)
	}

	if len(doc.AlarmAlertDefinitions) != 2 {
		t.Errorf("got %d alarm definitions, want 2", len(doc.AlarmAlertDefinitions))
	}

	wantName := "SEND NURSECALL | HIGH | Call Bell, Bed Alarm | 4 West | St. Mary"
	if flow.Name != wantName {
		t.Errorf("flow name = %q, want %q", flow.Name, wantName)
	}
}

// TestConvertClinicalFailSafe checks that a clinical flow for a facility
// with a fail-safe group ends in a NoDeliveries group destination.
func TestConvertClinicalFailSafe(t *testing.T) {
	unitsGrid := unitSheet([]string{"St. Mary", "4 West", "", "PM-4W", "House Supervisor"})
	clinGrid := alarmSheet(
		[]string{"PM-4W", "SpO2 Low", "Philips", "High", "", "", "", "0", "VAssign: RN"},
	)

	doc := Convert(Sheets{Units: unitsGrid, Clinicals: clinGrid}, schema.Default())

	if len(doc.DeliveryFlows) != 1 {
		t.Fatalf("got %d delivery flows, want 1", len(doc.DeliveryFlows))
	}
	flow := doc.DeliveryFlows[0]

	if len(flow.Destinations) < 2 {
		t.Fatalf("got %d destinations, want at least 2", len(flow.Destinations))
	}
	last := flow.Destinations[len(flow.Destinations)-1]
	if last.DestinationType != "NoDeliveries" {
		t.Errorf("last destinationType = %q, want NoDeliveries", last.DestinationType)
	}
	if last.RecipientType != "group" {
		t.Errorf("last recipientType = %q, want group", last.RecipientType)
	}

	if !strings.HasPrefix(flow.Name, "SEND CLINICAL | URGENT | ") {
		t.Errorf("flow name = %q, want CLINICAL/URGENT prefix", flow.Name)
	}
	if want := []string{"Philips"}; !reflect.DeepEqual(flow.Interfaces, want) {
		t.Errorf("interfaces = %v, want %v", flow.Interfaces, want)
	}
}

func TestConvertMissingSheets(t *testing.T) {
	doc := Convert(Sheets{}, schema.Default())
	if len(doc.DeliveryFlows) != 0 {
		t.Errorf("got %d flows from empty input, want 0", len(doc.DeliveryFlows))
	}
	if len(doc.AlarmAlertDefinitions) != 0 {
		t.Errorf("got %d definitions from empty input, want 0", len(doc.AlarmAlertDefinitions))
	}
	if doc.DeliveryFlows == nil || doc.AlarmAlertDefinitions == nil {
		t.Error("empty collections must be non-nil so they render as []")
	}
}

func TestTransformUnlinkedGroupAttachesNoUnits(t *testing.T) {
	rec := FlowRecord{Type: NurseCalls, ConfigGroup: "orphan", AlarmName: "Call Bell"}
	rec.Slots[0] = Slot{Delay: "0", Recipient: "VGroup: Desk"}

	doc := Transform(nil, []FlowRecord{rec}, nil)
	if len(doc.DeliveryFlows) != 1 {
		t.Fatalf("got %d flows, want 1", len(doc.DeliveryFlows))
	}
	flow := doc.DeliveryFlows[0]
	if len(flow.Units) != 0 {
		t.Errorf("units = %+v, want empty (no all-units fallback)", flow.Units)
	}
	if flow.Units == nil {
		t.Error("units must be non-nil so they render as []")
	}
}

func TestTransformUnknownPriorityPassesThrough(t *testing.T) {
	rec := FlowRecord{
		Type:        NurseCalls,
		ConfigGroup: "g",
		AlarmName:   "Call Bell",
		RawPriority: "Critical",
		Priority:    NormalizePriority("Critical"),
	}
	rec.Slots[0] = Slot{Delay: "0", Recipient: "Desk"}

	doc := Transform(nil, []FlowRecord{rec}, nil)
	if got := doc.DeliveryFlows[0].Priority; got != "Critical" {
		t.Errorf("priority = %q, want untranslated Critical", got)
	}
}

func TestTransformFlowOrderNurseCallsFirst(t *testing.T) {
	nurse := FlowRecord{Type: NurseCalls, ConfigGroup: "a", AlarmName: "Call Bell"}
	nurse.Slots[0] = Slot{Delay: "0", Recipient: "Desk"}
	clin := FlowRecord{Type: Clinicals, ConfigGroup: "b", AlarmName: "SpO2 Low"}
	clin.Slots[0] = Slot{Delay: "0", Recipient: "Desk"}

	doc := Transform(nil, []FlowRecord{nurse}, []FlowRecord{clin})
	if len(doc.DeliveryFlows) != 2 {
		t.Fatalf("got %d flows, want 2", len(doc.DeliveryFlows))
	}
	if !strings.HasPrefix(doc.DeliveryFlows[0].Name, "SEND NURSECALL") {
		t.Errorf("first flow = %q, want a nurse-call flow", doc.DeliveryFlows[0].Name)
	}
	if !strings.HasPrefix(doc.DeliveryFlows[1].Name, "SEND CLINICAL") {
		t.Errorf("second flow = %q, want a clinical flow", doc.DeliveryFlows[1].Name)
	}
}

// TestConvertWorkbook feeds the pipeline through a workbook keyed by
// the conventional sheet names; the absent clinicals sheet reads as a
// nil grid.
func TestConvertWorkbook(t *testing.T) {
	units := sheet.NewGrid(SheetUnits)
	units.AppendRow(
		sheet.String("Facility"),
		sheet.String("Unit Name"),
		sheet.String("Nurse Call Config Group"),
	)
	units.AppendRow(sheet.String("St. Mary"), sheet.String("4 West"), sheet.String("NC-4W"))

	nurse := sheet.NewGrid(SheetNurseCalls)
	nurse.AppendRow(
		sheet.String("Config Group"),
		sheet.String("Alarm Name"),
		sheet.String("Priority"),
		sheet.String("1st Recipient"),
	)
	nurse.AppendRow(
		sheet.String("NC-4W"),
		sheet.String("Call Bell"),
		sheet.String("High"),
		sheet.String("VGroup: Charge RN"),
	)

	wb := sheet.NewWorkbook()
	wb.Add(units)
	wb.Add(nurse)

	doc := ConvertWorkbook(wb, schema.Default())

	if len(doc.DeliveryFlows) != 1 {
		t.Fatalf("got %d delivery flows, want 1", len(doc.DeliveryFlows))
	}
	flow := doc.DeliveryFlows[0]
	if flow.Priority != "urgent" {
		t.Errorf("priority = %q, want urgent", flow.Priority)
	}
	wantUnits := []document.UnitRef{{FacilityName: "St. Mary", Name: "4 West"}}
	if !reflect.DeepEqual(flow.Units, wantUnits) {
		t.Errorf("units = %+v, want %+v", flow.Units, wantUnits)
	}
	if len(doc.AlarmAlertDefinitions) != 1 {
		t.Errorf("got %d alarm definitions, want 1", len(doc.AlarmAlertDefinitions))
	}
}
