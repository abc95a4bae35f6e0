package services

import "strings"

// Capability is what an actor is allowed to do, derived once per request
// from the linked employee's position and passed explicitly from there on.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityMechanic
	CapabilitySupervisor
	CapabilityChief
)

func (c Capability) String() string {
	switch c {
	case CapabilityMechanic:
		return "mechanic"
	case CapabilitySupervisor:
		return "supervisor"
	case CapabilityChief:
		return "chief"
	default:
		return "none"
	}
}

// AtLeast reports whether c grants at least the rights of min.
func (c Capability) AtLeast(min Capability) bool {
	return c >= min
}

// CapabilityForPosition maps an employee's free-text position onto a
// capability. The position column predates this service and carries both
// English and Spanish values, so both spellings are recognized.
func CapabilityForPosition(position string) Capability {
	switch strings.ToLower(strings.TrimSpace(position)) {
	case "chief", "jefe", "admin", "administrator", "administrador":
		return CapabilityChief
	case "supervisor", "encargado":
		return CapabilitySupervisor
	case "mechanic", "mecanico", "mecánico", "technician", "técnico":
		return CapabilityMechanic
	default:
		return CapabilityNone
	}
}
