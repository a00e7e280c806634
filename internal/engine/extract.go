package engine

import (
	"regexp"
	"strings"

	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

// unitSplitRe delimits multi-unit cells ("4 West, 4 East; ICU").
var unitSplitRe = regexp.MustCompile(`[,;\n]`)

// ExtractUnits turns the unit-breakdown sheet into UnitRecords.
//
// A row qualifies when at least one of the facility and unit-name cells
// is non-empty; fully blank rows and decoration are skipped. A nil grid
// or an unresolvable header yields no records (missing-sheet semantics).
func ExtractUnits(g *sheet.Grid, aliases schema.SheetAliases) []UnitRecord {
	hdr, ok := ResolveHeader(g, aliases)
	if !ok {
		return nil
	}

	var out []UnitRecord
	for r := hdr.Row + 1; r <= g.LastRow(); r++ {
		facility := cellValue(g, hdr, r, schema.FieldFacility)
		unitsCell := cellValue(g, hdr, r, schema.FieldUnits)
		if facility == "" && unitsCell == "" {
			continue
		}
		out = append(out, UnitRecord{
			Facility:       facility,
			Units:          splitUnits(unitsCell),
			NurseCallGroup: cellValue(g, hdr, r, schema.FieldNurseCallGroup),
			ClinicalGroup:  cellValue(g, hdr, r, schema.FieldClinicalGroup),
			FailSafeGroup:  cellValue(g, hdr, r, schema.FieldFailSafeGroup),
		})
	}
	return out
}

// ExtractFlows turns one alarm sheet into FlowRecords of the given type.
// Rows without an alarm name are skipped whole; no partial records.
func ExtractFlows(g *sheet.Grid, aliases schema.SheetAliases, typ FlowType) []FlowRecord {
	hdr, ok := ResolveHeader(g, aliases)
	if !ok {
		return nil
	}

	var out []FlowRecord
	for r := hdr.Row + 1; r <= g.LastRow(); r++ {
		alarm := cellValue(g, hdr, r, schema.FieldAlarmName)
		if alarm == "" {
			continue
		}
		rawPriority := cellValue(g, hdr, r, schema.FieldPriority)
		rec := FlowRecord{
			Type:            typ,
			ConfigGroup:     cellValue(g, hdr, r, schema.FieldConfigGroup),
			AlarmName:       alarm,
			SendingSystem:   cellValue(g, hdr, r, schema.FieldSendingSystem),
			RawPriority:     rawPriority,
			Priority:        NormalizePriority(rawPriority),
			Ringtone:        cellValue(g, hdr, r, schema.FieldRingtone),
			ResponseOptions: cellValue(g, hdr, r, schema.FieldResponseOptions),
			Device:          cellValue(g, hdr, r, schema.FieldDevice),
		}
		for slot := 0; slot < SlotCount; slot++ {
			rec.Slots[slot] = Slot{
				Delay:     cellValue(g, hdr, r, schema.DelayField(slot)),
				Recipient: cellValue(g, hdr, r, schema.RecipientField(slot)),
			}
		}
		out = append(out, rec)
	}
	return out
}

// cellValue reads one logical field from a row. Unresolved fields read as
// empty for every row rather than aborting the row.
func cellValue(g *sheet.Grid, hdr HeaderMap, row int, field string) string {
	col, ok := hdr.Col(field)
	if !ok {
		return ""
	}
	return g.Value(row, col)
}

// splitUnits splits a delimited unit-name cell into an ordered set:
// trimmed, empties dropped, duplicates removed keeping the first.
func splitUnits(raw string) []string {
	parts := unitSplitRe.Split(raw, -1)
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" || seen[fold(name)] {
			continue
		}
		seen[fold(name)] = true
		out = append(out, name)
	}
	return out
}
