package engine

import "github.com/carefluent/alarmbridge/internal/document"

// BuildDestinations synthesizes the ordered destination list for one
// bundle.
//
// Slots are walked in position order; a slot with neither delay nor
// recipient text is skipped, and a kept slot's destination carries the
// slot index as its order (gaps stay visible to reviewers). Every group
// and role entry is tagged with the first facility linked to the
// bundle's config group, or "" when the group links to no units.
//
// Clinicals bundles additionally get a fail-safe destination when the
// first facility has a fail-safe group recorded: a NoDeliveries group
// destination appended after the slot destinations, ordered at the
// current destination count.
func BuildDestinations(b *FlowBundle, idx *UnitLinkIndex) []document.Destination {
	sample := b.Sample()

	facility := ""
	if linked := idx.UnitsFor(sample.ConfigGroup); len(linked) > 0 {
		facility = linked[0].Facility
	}

	dests := make([]document.Destination, 0, SlotCount+1)
	for i, slot := range sample.Slots {
		if slot.empty() {
			continue
		}
		d := document.Destination{
			Order:           i,
			DelaySeconds:    ParseDelay(slot.Delay),
			DestinationType: document.DestinationNormal,
			RecipientType:   document.RecipientGroup,
			PresenceConfig:  document.PresenceDevice,
			Groups:          []document.MemberRef{},
			FunctionalRoles: []document.MemberRef{},
			Users:           []document.MemberRef{},
		}
		for _, rc := range ParseRecipients(slot.Recipient) {
			ref := document.MemberRef{FacilityName: facility, Name: rc.Name}
			if rc.Kind == RecipientFunctionalRole {
				d.FunctionalRoles = append(d.FunctionalRoles, ref)
			} else {
				d.Groups = append(d.Groups, ref)
			}
		}
		// Any role on the destination switches it to role delivery with
		// user-level presence.
		if len(d.FunctionalRoles) > 0 {
			d.RecipientType = document.RecipientFunctionalRole
			d.PresenceConfig = document.PresenceUserAndDevice
		}
		dests = append(dests, d)
	}

	if sample.Type == Clinicals {
		if fs := idx.FailSafeGroupFor(facility); fs != "" {
			dests = append(dests, document.Destination{
				Order:           len(dests),
				DelaySeconds:    0,
				DestinationType: document.DestinationNoDeliveries,
				RecipientType:   document.RecipientGroup,
				PresenceConfig:  document.PresenceDevice,
				Groups:          []document.MemberRef{{FacilityName: facility, Name: fs}},
				FunctionalRoles: []document.MemberRef{},
				Users:           []document.MemberRef{},
			})
		}
	}
	return dests
}
