package engine

import (
	"reflect"
	"testing"

	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

func unitSheet(rows ...[]string) *sheet.Grid {
	g := sheet.NewGrid("Unit Breakdown")
	g.AppendRow(
		sheet.String("Facility"),
		sheet.String("Unit Name"),
		sheet.String("Nurse Call Config Group"),
		sheet.String("Patient Monitoring Config Group"),
		sheet.String("No Caregivers Group"),
	)
	for _, r := range rows {
		cells := make([]sheet.Cell, len(r))
		for i, v := range r {
			cells[i] = sheet.String(v)
		}
		g.AppendRow(cells...)
	}
	return g
}

func TestExtractUnits(t *testing.T) {
	aliases := schema.Default().Units

	t.Run("qualifying rows extract", func(t *testing.T) {
		g := unitSheet(
			[]string{"St. Mary", "4 West, 4 East", "NC-4", "PM-4", "House Supervisor"},
			[]string{"", "", "", "", ""}, // blank row skipped
			[]string{"Mercy", "ICU", "NC-ICU", "", ""},
		)
		got := ExtractUnits(g, aliases)
		want := []UnitRecord{
			{
				Facility:       "St. Mary",
				Units:          []string{"4 West", "4 East"},
				NurseCallGroup: "NC-4",
				ClinicalGroup:  "PM-4",
				FailSafeGroup:  "House Supervisor",
			},
			{
				Facility:       "Mercy",
				Units:          []string{"ICU"},
				NurseCallGroup: "NC-ICU",
			},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractUnits() = %+v, want %+v", got, want)
		}
	})

	t.Run("row with facility but no units still qualifies", func(t *testing.T) {
		g := unitSheet([]string{"St. Mary", "", "", "", "House Supervisor"})
		got := ExtractUnits(g, aliases)
		if len(got) != 1 || got[0].FailSafeGroup != "House Supervisor" {
			t.Errorf("ExtractUnits() = %+v, want one fail-safe-only record", got)
		}
	})

	t.Run("duplicate unit names collapse ordered", func(t *testing.T) {
		g := unitSheet([]string{"St. Mary", "4 West; 4 west, 4 East", "NC-4", "", ""})
		got := ExtractUnits(g, aliases)
		if len(got) != 1 {
			t.Fatalf("got %d records, want 1", len(got))
		}
		want := []string{"4 West", "4 East"}
		if !reflect.DeepEqual(got[0].Units, want) {
			t.Errorf("units = %v, want %v", got[0].Units, want)
		}
	})

	t.Run("nil grid yields nothing", func(t *testing.T) {
		if got := ExtractUnits(nil, aliases); got != nil {
			t.Errorf("ExtractUnits(nil) = %+v, want nil", got)
		}
	})
}

func alarmSheet(rows ...[]string) *sheet.Grid {
	g := sheet.NewGrid("Nurse Call")
	g.AppendRow(
		sheet.String("Config Group"),
		sheet.String("Alarm Name"),
		sheet.String("Sending System"),
		sheet.String("Priority"),
		sheet.String("Ringtone"),
		sheet.String("Response Options"),
		sheet.String("Device"),
		sheet.String("1st Delay"),
		sheet.String("1st Recipient"),
		sheet.String("2nd Delay"),
		sheet.String("2nd Recipient"),
	)
	for _, r := range rows {
		cells := make([]sheet.Cell, len(r))
		for i, v := range r {
			cells[i] = sheet.String(v)
		}
		g.AppendRow(cells...)
	}
	return g
}

func TestExtractFlows(t *testing.T) {
	aliases := schema.Default().NurseCalls

	t.Run("typed record from a full row", func(t *testing.T) {
		g := alarmSheet([]string{
			"NC-4W", "Call Bell", "Rauland", "Medium", "Chime",
			"Escalate", "Badge", "0", "VGroup: Charge RN", "90", "VAssign: [Room] CNA",
		})
		got := ExtractFlows(g, aliases, NurseCalls)
		if len(got) != 1 {
			t.Fatalf("got %d records, want 1", len(got))
		}
		rec := got[0]
		if rec.Type != NurseCalls {
			t.Errorf("type = %v, want NurseCalls", rec.Type)
		}
		if rec.AlarmName != "Call Bell" || rec.ConfigGroup != "NC-4W" {
			t.Errorf("alarm/group = %q/%q", rec.AlarmName, rec.ConfigGroup)
		}
		if rec.RawPriority != "Medium" || rec.Priority != "high" {
			t.Errorf("priority = %q/%q, want Medium/high", rec.RawPriority, rec.Priority)
		}
		if rec.Slots[0] != (Slot{Delay: "0", Recipient: "VGroup: Charge RN"}) {
			t.Errorf("slot 0 = %+v", rec.Slots[0])
		}
		if rec.Slots[1] != (Slot{Delay: "90", Recipient: "VAssign: [Room] CNA"}) {
			t.Errorf("slot 1 = %+v", rec.Slots[1])
		}
		if !rec.Slots[2].empty() {
			t.Errorf("slot 2 = %+v, want empty", rec.Slots[2])
		}
	})

	t.Run("rows without an alarm name are skipped whole", func(t *testing.T) {
		g := alarmSheet(
			[]string{"NC-4W", "", "Rauland", "High"},
			[]string{"NC-4W", "Bed Alarm", "", "High"},
		)
		got := ExtractFlows(g, aliases, NurseCalls)
		if len(got) != 1 || got[0].AlarmName != "Bed Alarm" {
			t.Errorf("ExtractFlows() = %+v, want only Bed Alarm", got)
		}
	})

	t.Run("missing columns read as empty fields", func(t *testing.T) {
		g := sheet.NewGrid("Clinicals")
		g.AppendRow(sheet.String("Alarm Name"))
		g.AppendRow(sheet.String("SpO2 Low"))
		got := ExtractFlows(g, schema.Default().Clinicals, Clinicals)
		if len(got) != 1 {
			t.Fatalf("got %d records, want 1", len(got))
		}
		if got[0].ConfigGroup != "" || got[0].Priority != "" {
			t.Errorf("expected empty fields for unmapped columns, got %+v", got[0])
		}
	})

	t.Run("nil grid yields nothing", func(t *testing.T) {
		if got := ExtractFlows(nil, aliases, NurseCalls); got != nil {
			t.Errorf("ExtractFlows(nil) = %+v, want nil", got)
		}
	})
}
