package domain

import (
	"fmt"
	"strings"
)

// roleSynonyms maps every accepted spelling of a role to its canonical
// variant. The platform's admin frontend historically submitted the French
// enum values in mixed casing and the Arabic display labels verbatim, so both
// are accepted on input. Lookup keys are lower-cased.
var roleSynonyms = map[string]Role{
	"superadmin": RoleSuperadmin,
	"مدير عام":   RoleSuperadmin,

	"admin":          RoleAdmin,
	"administrateur": RoleAdmin,
	"مدير":           RoleAdmin,

	"tribunal": RoleTribunal,
	"المحكمة":  RoleTribunal,

	"tribunalmanager": RoleTribunalManager,
	"الوزارة":         RoleTribunalManager,

	"orgacredit":   RoleCreditOrganism,
	"شركة القروض":  RoleCreditOrganism,

	"encherisseur": RoleBidder,
	"enchérisseur": RoleBidder,
	"متزايد":       RoleBidder,
}

// ParseRole resolves a user-supplied role string to its canonical variant.
// Matching is case-insensitive and accepts the legacy display synonyms.
// Unknown values are rejected, never silently defaulted.
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if role, ok := roleSynonyms[key]; ok {
		return role, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
