// Package document defines the notification configuration document the
// engine produces, and its deterministic JSON rendering.
//
// The rendered text is consumed both by the downstream alerting platform
// and by review tooling that diffs successive conversions, so formatting
// stability is a hard requirement: struct field order fixes key order,
// indentation is two spaces, and empty lists always render as [].
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Version is the document schema version the engine emits.
const Version = "1.1.0"

// Destination type values.
const (
	DestinationNormal       = "Normal"
	DestinationNoDeliveries = "NoDeliveries"
)

// Recipient type values.
const (
	RecipientGroup          = "group"
	RecipientFunctionalRole = "functional_role"
)

// Presence configuration values.
const (
	PresenceDevice        = "device"
	PresenceUserAndDevice = "user_and_device"
)

// StatusActive is the status every generated delivery flow carries.
const StatusActive = "Active"

// ConfigDocument is the top-level output document.
type ConfigDocument struct {
	Version               string            `json:"version"`
	AlarmAlertDefinitions []AlarmDefinition `json:"alarmAlertDefinitions"`
	DeliveryFlows         []DeliveryFlow    `json:"deliveryFlows"`
}

// AlarmDefinition registers one alarm with the downstream platform.
type AlarmDefinition struct {
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Values []AlarmValue `json:"values"`
}

// AlarmValue identifies the upstream value an alarm definition matches on.
type AlarmValue struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// DeliveryFlow is one delivery rule: which alarms trigger, with what
// priority and timing, to which recipients.
type DeliveryFlow struct {
	AlarmsAlerts        []string             `json:"alarmsAlerts"`
	Conditions          []Condition          `json:"conditions"`
	Destinations        []Destination        `json:"destinations"`
	Interfaces          []string             `json:"interfaces"`
	Name                string               `json:"name"`
	ParameterAttributes []ParameterAttribute `json:"parameterAttributes"`
	Priority            string               `json:"priority"`
	Status              string               `json:"status"`
	Units               []UnitRef            `json:"units"`
}

// Condition is a flow trigger condition. The converter never emits
// conditions; the field exists so the document shape matches what the
// platform accepts.
type Condition struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Destination is one ordered notification target within a flow.
type Destination struct {
	Order           int         `json:"order"`
	DelaySeconds    int         `json:"delaySeconds"`
	DestinationType string      `json:"destinationType"`
	RecipientType   string      `json:"recipientType"`
	PresenceConfig  string      `json:"presenceConfig"`
	Groups          []MemberRef `json:"groups"`
	FunctionalRoles []MemberRef `json:"functionalRoles"`
	Users           []MemberRef `json:"users"`
}

// MemberRef names a group, functional role, or user within a facility.
type MemberRef struct {
	FacilityName string `json:"facilityName"`
	Name         string `json:"name"`
}

// UnitRef names a physical unit within a facility.
type UnitRef struct {
	FacilityName string `json:"facilityName"`
	Name         string `json:"name"`
}

// ParameterAttribute is one flow parameter. Value may be a string, bool,
// integer, or string list; DestinationOrder, when set, scopes the
// parameter to a single destination.
type ParameterAttribute struct {
	Name             string `json:"name"`
	Value            any    `json:"value"`
	DestinationOrder *int   `json:"destinationOrder,omitempty"`
}

// Render returns the document as pretty-printed JSON with two-space
// indentation and a trailing newline. Key order follows struct field
// order, HTML escaping is off, and the output is byte-stable for a given
// document.
func (d *ConfigDocument) Render() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}
