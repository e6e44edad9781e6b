// Package principal identifies the parties calling into the marketplace.
// Principals are opaque identities; the marketplace never stores accounts for
// them, it only checks who is allowed to act on which asset.
package principal

type Role string

const (
	// RoleTrader can list, rent, negotiate extensions and return control.
	RoleTrader Role = "trader"
	// RoleAdmin can additionally change the marketplace fee configuration.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTrader, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}
