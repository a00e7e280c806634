// Package engine implements the transformation from tabular alarm
// configuration rows to a notification configuration document.
//
// The input is three loosely structured sheets (unit inventory, nurse
// call alarms, patient monitoring alarms). The engine resolves header
// aliases, normalizes rows into typed records, links config groups to
// units, collapses rows that describe the same delivery rule for
// different alarms, and synthesizes destinations and parameters. The
// whole pipeline is a pure batch transform: no state survives a call.
package engine

import "strings"

// FlowType distinguishes the two alarm sheets.
type FlowType int

const (
	NurseCalls FlowType = iota
	Clinicals
)

// String returns the type name used for alarm definitions.
func (t FlowType) String() string {
	if t == Clinicals {
		return "Clinicals"
	}
	return "NurseCalls"
}

// Kind returns the uppercase short form used in generated flow names.
func (t FlowType) Kind() string {
	if t == Clinicals {
		return "CLINICAL"
	}
	return "NURSECALL"
}

// SlotCount is the number of delay/recipient escalation slots per row.
const SlotCount = 5

// Slot is one delay/recipient pair from an alarm row, raw text as read
// from the sheet.
type Slot struct {
	Delay     string
	Recipient string
}

// empty reports whether the slot carries neither a delay nor a recipient.
func (s Slot) empty() bool {
	return strings.TrimSpace(s.Delay) == "" && strings.TrimSpace(s.Recipient) == ""
}

// UnitRecord is one qualifying row from the unit-breakdown sheet.
// Immutable after extraction.
type UnitRecord struct {
	Facility       string
	Units          []string // ordered set, split from a delimited cell
	NurseCallGroup string
	ClinicalGroup  string
	FailSafeGroup  string
}

// FlowRecord is one qualifying row from an alarm sheet. AlarmName is
// always non-empty; rows without one are skipped at extraction.
type FlowRecord struct {
	Type            FlowType
	ConfigGroup     string
	AlarmName       string
	SendingSystem   string
	RawPriority     string
	Priority        string // normalized; empty means "not specified"
	Ringtone        string
	ResponseOptions string
	Device          string
	Slots           [SlotCount]Slot
}

// fold is the case/whitespace normalization used for signature and index
// keys throughout the engine.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
