package engine

import (
	"reflect"
	"testing"

	"github.com/carefluent/alarmbridge/internal/document"
)

// paramNames flattens a parameter list to its name sequence.
func paramNames(params []document.ParameterAttribute) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func findParam(t *testing.T, params []document.ParameterAttribute, name string) document.ParameterAttribute {
	t.Helper()
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("parameter %q not found", name)
	return document.ParameterAttribute{}
}

func TestBuildParametersNurseCalls(t *testing.T) {
	idx := linkedIndex()

	build := func(responseOptions, priority, ringtone string) []document.ParameterAttribute {
		rec := FlowRecord{
			Type:            NurseCalls,
			ConfigGroup:     "NC-4W",
			AlarmName:       "Call Bell",
			Priority:        NormalizePriority(priority),
			Ringtone:        ringtone,
			ResponseOptions: responseOptions,
		}
		rec.Slots[0] = Slot{Delay: "0", Recipient: "VGroup: Charge RN"}
		b := bundleOf(rec)
		return BuildParameters(b, BuildDestinations(b, idx))
	}

	t.Run("destinationName prefix per destination", func(t *testing.T) {
		params := build("", "Medium", "")
		if params[0].Name != "destinationName" {
			t.Fatalf("first parameter = %q, want destinationName", params[0].Name)
		}
		if params[0].Value != "Group" {
			t.Errorf("destinationName value = %v, want Group", params[0].Value)
		}
		if params[0].DestinationOrder == nil || *params[0].DestinationOrder != 0 {
			t.Errorf("destinationName order = %v, want 0", params[0].DestinationOrder)
		}
	})

	t.Run("role destination names itself after the role", func(t *testing.T) {
		rec := FlowRecord{Type: NurseCalls, ConfigGroup: "NC-4W", AlarmName: "Call Bell"}
		rec.Slots[0] = Slot{Recipient: "VAssign: [Room] CNA"}
		b := bundleOf(rec)
		params := BuildParameters(b, BuildDestinations(b, idx))
		if params[0].Value != "CNA" {
			t.Errorf("destinationName value = %v, want CNA", params[0].Value)
		}
	})

	t.Run("no response disables responses", func(t *testing.T) {
		params := build("No Response", "Medium", "")
		want := []string{
			"destinationName",
			"responseType", "responseAllowed",
			"breakThrough",
			"popup", "enunciate", "ttl", "retractRules", "vibrate",
			"message", "patientMRN", "placeUid", "patientName",
			"eventIdentification", "shortMessage", "subject",
		}
		if got := paramNames(params); !reflect.DeepEqual(got, want) {
			t.Errorf("parameter order = %v, want %v", got, want)
		}
		if v := findParam(t, params, "responseType").Value; v != "None" {
			t.Errorf("responseType = %v, want None", v)
		}
		if v := findParam(t, params, "responseAllowed").Value; v != false {
			t.Errorf("responseAllowed = %v, want false", v)
		}
	})

	t.Run("default response block offers accept and decline", func(t *testing.T) {
		params := build("Accept", "Medium", "")
		want := []string{
			"destinationName",
			"accept", "acceptAndCall", "acceptBadgePhrases",
			"respondingLineText", "respondingUserText", "responsePath",
			"responseType",
			"breakThrough",
			"popup", "enunciate", "ttl", "retractRules", "vibrate",
			"message", "patientMRN", "placeUid", "patientName",
			"eventIdentification", "shortMessage", "subject",
		}
		if got := paramNames(params); !reflect.DeepEqual(got, want) {
			t.Errorf("parameter order = %v, want %v", got, want)
		}
		if v := findParam(t, params, "responseType").Value; v != "Accept/Decline" {
			t.Errorf("responseType = %v, want Accept/Decline", v)
		}
	})

	t.Run("escalate adds decline parameters on destination 0", func(t *testing.T) {
		params := build("Escalate", "Medium", "")
		decline := findParam(t, params, "decline")
		if decline.DestinationOrder == nil || *decline.DestinationOrder != 0 {
			t.Errorf("decline order = %v, want 0", decline.DestinationOrder)
		}
		phrases := findParam(t, params, "declineBadgePhrases")
		if phrases.DestinationOrder == nil || *phrases.DestinationOrder != 0 {
			t.Errorf("declineBadgePhrases order = %v, want 0", phrases.DestinationOrder)
		}
	})

	t.Run("urgent priority breaks through", func(t *testing.T) {
		if v := findParam(t, build("", "High", ""), "breakThrough").Value; v != "voceraAndDevice" {
			t.Errorf("breakThrough = %v, want voceraAndDevice", v)
		}
		if v := findParam(t, build("", "Medium", ""), "breakThrough").Value; v != "none" {
			t.Errorf("breakThrough = %v, want none", v)
		}
	})

	t.Run("ringtone becomes alertSound only when set", func(t *testing.T) {
		params := build("", "Medium", "Chime")
		if v := findParam(t, params, "alertSound").Value; v != "Chime" {
			t.Errorf("alertSound = %v, want Chime", v)
		}
		for _, p := range build("", "Medium", "") {
			if p.Name == "alertSound" {
				t.Error("alertSound emitted without a ringtone")
			}
		}
	})

	t.Run("fixed parameters", func(t *testing.T) {
		params := build("", "Medium", "")
		if v := findParam(t, params, "ttl").Value; v != 10 {
			t.Errorf("ttl = %v, want 10", v)
		}
		if v := findParam(t, params, "retractRules").Value; !reflect.DeepEqual(v, []string{"ttlHasElapsed"}) {
			t.Errorf("retractRules = %v", v)
		}
		if v := findParam(t, params, "vibrate").Value; v != "short" {
			t.Errorf("vibrate = %v, want short", v)
		}
	})
}

func TestBuildParametersClinicals(t *testing.T) {
	idx := linkedIndex()

	build := func(priority, ringtone string) []document.ParameterAttribute {
		rec := FlowRecord{
			Type:        Clinicals,
			ConfigGroup: "PM-4W",
			AlarmName:   "SpO2 Low",
			Priority:    NormalizePriority(priority),
			Ringtone:    ringtone,
		}
		rec.Slots[0] = Slot{Delay: "0", Recipient: "VAssign: RN"}
		b := bundleOf(rec)
		return BuildParameters(b, BuildDestinations(b, idx))
	}

	t.Run("branch order is fixed", func(t *testing.T) {
		// Two destinations (slot + fail-safe) contribute two shared
		// destinationName parameters before the branch block.
		want := []string{
			"destinationName", "destinationName",
			"destinationName", "destinationName",
			"message", "shortMessage", "subject",
			"alertSound", "responseAllowed", "breakThrough", "enunciate",
			"message", "patientMRN", "patientName", "placeUid",
			"popup", "eventIdentification", "responseType",
			"shortMessage", "subject", "ttl", "retractRules", "vibrate",
		}
		if got := paramNames(build("Medium", "")); !reflect.DeepEqual(got, want) {
			t.Errorf("parameter order = %v, want %v", got, want)
		}
	})

	t.Run("header block names both destinations", func(t *testing.T) {
		params := build("Medium", "")
		// params[2] and params[3] are the fixed header block entries.
		if params[2].Value != "Nurse Alert" || *params[2].DestinationOrder != 0 {
			t.Errorf("header destinationName 0 = %+v", params[2])
		}
		if params[3].Value != "NoCaregivers" || *params[3].DestinationOrder != 1 {
			t.Errorf("header destinationName 1 = %+v", params[3])
		}
		if *params[4].DestinationOrder != 1 {
			t.Errorf("message override order = %d, want 1", *params[4].DestinationOrder)
		}
	})

	t.Run("ringtone falls back to the default tone", func(t *testing.T) {
		if v := findParam(t, build("Medium", "Pulse"), "alertSound").Value; v != "Pulse" {
			t.Errorf("alertSound = %v, want Pulse", v)
		}
		if v := findParam(t, build("Medium", ""), "alertSound").Value; v != "alarm" {
			t.Errorf("alertSound fallback = %v, want alarm", v)
		}
	})

	t.Run("breakThrough ignores priority", func(t *testing.T) {
		for _, prio := range []string{"Low", "Medium", "High", ""} {
			if v := findParam(t, build(prio, ""), "breakThrough").Value; v != "voceraAndDevice" {
				t.Errorf("breakThrough with priority %q = %v, want voceraAndDevice", prio, v)
			}
		}
	})

	t.Run("responses are always off", func(t *testing.T) {
		params := build("High", "")
		if v := findParam(t, params, "responseType").Value; v != "None" {
			t.Errorf("responseType = %v, want None", v)
		}
		if v := findParam(t, params, "responseAllowed").Value; v != false {
			t.Errorf("responseAllowed = %v, want false", v)
		}
	})
}
