// Package schema defines the logical fields the conversion engine reads
// from each source sheet, and the header aliases that map real-world
// column names onto them.
//
// The spreadsheets this tool ingests are maintained by hand at many
// sites, so the same logical column shows up under a dozen spellings
// ("Nurse Call Config Group", "NC Group", "NurseCall Configuration
// Group...", and so on). Alias sets absorb that variation; header
// matching itself is case- and punctuation-insensitive (see the engine's
// header resolver).
package schema

import "fmt"

// Logical fields on the unit-breakdown sheet.
const (
	FieldFacility       = "facility"
	FieldUnits          = "units"
	FieldNurseCallGroup = "nurse_call_group"
	FieldClinicalGroup  = "clinical_group"
	FieldFailSafeGroup  = "fail_safe_group"
)

// Logical fields shared by the two alarm sheets.
const (
	FieldConfigGroup     = "config_group"
	FieldAlarmName       = "alarm_name"
	FieldSendingSystem   = "sending_system"
	FieldPriority        = "priority"
	FieldRingtone        = "ringtone"
	FieldResponseOptions = "response_options"
	FieldDevice          = "device"
)

// SlotCount is the number of delay/recipient slot pairs an alarm row can
// carry.
const SlotCount = 5

// DelayField returns the logical field key for the delay of slot (0-based).
func DelayField(slot int) string {
	return fmt.Sprintf("delay_%d", slot+1)
}

// RecipientField returns the logical field key for the recipient of slot
// (0-based).
func RecipientField(slot int) string {
	return fmt.Sprintf("recipient_%d", slot+1)
}

// SheetAliases maps a logical field key to the accepted header spellings
// for one sheet. Alias strings are compared after header normalization,
// so they should be written lowercase with single spaces.
type SheetAliases map[string][]string

// AliasTable carries the alias sets for all three source sheets.
type AliasTable struct {
	Units      SheetAliases `json:"units"`
	NurseCalls SheetAliases `json:"nurseCalls"`
	Clinicals  SheetAliases `json:"clinicals"`
}

// ordinals spell out the slot positions as they appear in real headers
// ("1st Delay", "Recipient 2", ...).
var ordinals = [SlotCount]string{"1st", "2nd", "3rd", "4th", "5th"}

// Default returns the alias table covering the column spellings observed
// in production spreadsheets. Callers may extend or replace it.
func Default() AliasTable {
	return AliasTable{
		Units: SheetAliases{
			FieldFacility: {"facility", "facility name", "hospital", "campus"},
			FieldUnits: {
				"unit", "units", "unit name", "unit names",
				"unit breakdown", "units included",
			},
			FieldNurseCallGroup: {
				"nurse call config group", "nurse call configuration group",
				"nurse call group", "nc config group", "nc group",
			},
			FieldClinicalGroup: {
				"patient monitoring config group",
				"patient monitoring configuration group",
				"patient monitoring group", "pm config group", "pm group",
				"clinical config group", "clinical group",
			},
			FieldFailSafeGroup: {
				"no caregivers group", "no caregiver group",
				"fail safe group", "failsafe group", "fail safe",
			},
		},
		NurseCalls: flowAliases(),
		Clinicals:  flowAliases(),
	}
}

// flowAliases builds the alias set shared by the nurse-call and patient
// monitoring alarm sheets.
func flowAliases() SheetAliases {
	a := SheetAliases{
		FieldConfigGroup: {
			"config group", "configuration group",
			"unit group", "group",
		},
		FieldAlarmName: {
			"alarm", "alarm name", "alert", "alert name",
			"alarm alert name", "alarm type",
		},
		FieldSendingSystem: {
			"sending system", "sending system name",
			"source system", "system", "interface",
		},
		FieldPriority: {"priority", "alarm priority", "alert priority"},
		FieldRingtone: {"ringtone", "ring tone", "alert tone", "tone"},
		FieldResponseOptions: {
			"response options", "response option",
			"responses", "response",
		},
		FieldDevice: {"device", "device type", "delivery device"},
	}
	for slot := 0; slot < SlotCount; slot++ {
		n := slot + 1
		a[DelayField(slot)] = []string{
			fmt.Sprintf("delay %d", n),
			fmt.Sprintf("%s delay", ordinals[slot]),
			fmt.Sprintf("delay time %d", n),
		}
		a[RecipientField(slot)] = []string{
			fmt.Sprintf("recipient %d", n),
			fmt.Sprintf("recipients %d", n),
			fmt.Sprintf("%s recipient", ordinals[slot]),
			fmt.Sprintf("%s recipients", ordinals[slot]),
		}
	}
	// An unnumbered first slot is common on single-escalation sheets.
	a[DelayField(0)] = append(a[DelayField(0)], "delay", "delay time")
	a[RecipientField(0)] = append(a[RecipientField(0)], "recipient", "recipients")
	return a
}
