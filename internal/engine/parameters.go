package engine

import (
	"strings"

	"github.com/carefluent/alarmbridge/internal/document"
)

// parameters.go emits the ordered parameter list for a flow. The
// downstream platform reads some parameters positionally, so the order
// within each branch below is load-bearing and must not be reshuffled.

// Message templates. The {token} placeholders are expanded by the
// alerting platform at delivery time; the converter passes them through
// verbatim.
const (
	tmplMessage      = "{alarm.description} {patient.location}"
	tmplPatientMRN   = "{patient.mrn}"
	tmplPlaceUID     = "{place.uid}"
	tmplPatientName  = "{patient.name}"
	tmplEventID      = "{event.id}"
	tmplShortMessage = "{alarm.description}"
	tmplSubject      = "{alarm.name} - {unit.name}"

	tmplRespondingLine = "{responding.line}"
	tmplRespondingUser = "{responding.user}"
	tmplRespondingPath = "{responding.path}"
)

// No-caregiver overrides for the clinical fail-safe destination.
const (
	noCaregiverMessage      = "No caregivers assigned: {alarm.description}"
	noCaregiverShortMessage = "No caregivers assigned"
	noCaregiverSubject      = "No caregivers assigned - {unit.name}"
)

// defaultClinicalTone sounds when a clinical row specifies no ringtone.
const defaultClinicalTone = "alarm"

// Break-through values: whether the alert overrides do-not-disturb.
const (
	breakThroughAll  = "voceraAndDevice"
	breakThroughNone = "none"
)

const alertTTL = 10

// BuildParameters produces the parameter attribute list for one bundle,
// given the destinations BuildDestinations produced for it.
//
// Both branches start with one destinationName parameter per
// destination, valued with the destination's first functional-role name
// or the literal "Group", and scoped to that destination's order.
func BuildParameters(b *FlowBundle, dests []document.Destination) []document.ParameterAttribute {
	params := make([]document.ParameterAttribute, 0, 24)
	for _, d := range dests {
		name := "Group"
		if len(d.FunctionalRoles) > 0 {
			name = d.FunctionalRoles[0].Name
		}
		params = append(params, atOrder("destinationName", name, d.Order))
	}

	sample := b.Sample()
	if sample.Type == Clinicals {
		return append(params, clinicalParameters(sample)...)
	}
	return append(params, nurseCallParameters(sample)...)
}

// nurseCallParameters emits the NurseCalls branch.
//
// The response block reads the free-text response-options cell: "no
// response" turns responses off entirely; "escalate" adds decline
// handling on the first destination; anything else gets plain
// accept/decline.
func nurseCallParameters(sample FlowRecord) []document.ParameterAttribute {
	var params []document.ParameterAttribute
	response := fold(sample.ResponseOptions)

	if strings.Contains(response, "no response") {
		params = append(params,
			param("responseType", "None"),
			param("responseAllowed", false),
		)
	} else {
		params = append(params,
			param("accept", "Accept"),
			param("acceptAndCall", "Accept and Call"),
			param("acceptBadgePhrases", []string{"accept"}),
			param("respondingLineText", tmplRespondingLine),
			param("respondingUserText", tmplRespondingUser),
			param("responsePath", tmplRespondingPath),
			param("responseType", "Accept/Decline"),
		)
		if strings.Contains(response, "escalate") {
			params = append(params,
				atOrder("decline", "Decline", 0),
				atOrder("declineBadgePhrases", []string{"decline"}, 0),
			)
		}
	}

	breakThrough := breakThroughNone
	if sample.Priority == PriorityUrgent {
		breakThrough = breakThroughAll
	}
	params = append(params, param("breakThrough", breakThrough))

	if sample.Ringtone != "" {
		params = append(params, param("alertSound", sample.Ringtone))
	}

	return append(params,
		param("popup", true),
		param("enunciate", true),
		param("ttl", alertTTL),
		param("retractRules", []string{"ttlHasElapsed"}),
		param("vibrate", "short"),
		param("message", tmplMessage),
		param("patientMRN", tmplPatientMRN),
		param("placeUid", tmplPlaceUID),
		param("patientName", tmplPatientName),
		param("eventIdentification", tmplEventID),
		param("shortMessage", tmplShortMessage),
		param("subject", tmplSubject),
	)
}

// clinicalParameters emits the Clinicals branch: a fixed two-destination
// header block (caregiver alert, then the no-caregiver fail-safe with
// message overrides), followed by fixed delivery settings. Clinicals
// never offers accept/decline and breaks through unconditionally,
// regardless of priority.
func clinicalParameters(sample FlowRecord) []document.ParameterAttribute {
	tone := sample.Ringtone
	if tone == "" {
		tone = defaultClinicalTone
	}

	return []document.ParameterAttribute{
		atOrder("destinationName", "Nurse Alert", 0),
		atOrder("destinationName", "NoCaregivers", 1),
		atOrder("message", noCaregiverMessage, 1),
		atOrder("shortMessage", noCaregiverShortMessage, 1),
		atOrder("subject", noCaregiverSubject, 1),
		param("alertSound", tone),
		param("responseAllowed", false),
		param("breakThrough", breakThroughAll),
		param("enunciate", true),
		param("message", tmplMessage),
		param("patientMRN", tmplPatientMRN),
		param("patientName", tmplPatientName),
		param("placeUid", tmplPlaceUID),
		param("popup", true),
		param("eventIdentification", tmplEventID),
		param("responseType", "None"),
		param("shortMessage", tmplShortMessage),
		param("subject", tmplSubject),
		param("ttl", alertTTL),
		param("retractRules", []string{"ttlHasElapsed"}),
		param("vibrate", "short"),
	}
}

func param(name string, value any) document.ParameterAttribute {
	return document.ParameterAttribute{Name: name, Value: value}
}

func atOrder(name string, value any, order int) document.ParameterAttribute {
	o := order
	return document.ParameterAttribute{Name: name, Value: value, DestinationOrder: &o}
}
