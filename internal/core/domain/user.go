package domain

import "time"

// Role identifies what an authenticated actor is allowed to do.
type Role string

const (
	RoleSuperadmin      Role = "superadmin"
	RoleAdmin           Role = "admin"
	RoleTribunal        Role = "tribunal"
	RoleTribunalManager Role = "tribunalmanager"
	RoleCreditOrganism  Role = "orgacredit"
	RoleBidder          Role = "encherisseur"
)

// User models an account on the platform. Accounts are created inactive and
// unverified; moderation flips the flags. Blocked accounts count as inactive
// for every access decision.
type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	FirstName    string `json:"first_name" bson:"first_name"`
	LastName     string `json:"last_name" bson:"last_name"`
	Role         Role   `json:"role" bson:"role"`
	IsActive     bool   `json:"is_active" bson:"is_active"`
	IsVerified   bool   `json:"is_verified" bson:"is_verified"`
	IsBlocked    bool   `json:"is_blocked" bson:"is_blocked"`
	PhoneNumber  string `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address      string `json:"address,omitempty" bson:"address,omitempty"`
	CIN          string `json:"cin,omitempty" bson:"cin,omitempty"`

	// Jurisdiction and organisation references (reference data, optional).
	TribunalID       string `json:"tribunal_id,omitempty" bson:"tribunal_id,omitempty"`
	CountryID        string `json:"country_id,omitempty" bson:"country_id,omitempty"`
	CityID           string `json:"city_id,omitempty" bson:"city_id,omitempty"`
	ForeignCity      string `json:"foreign_city,omitempty" bson:"foreign_city,omitempty"`
	CreditOrganismID string `json:"credit_organism_id,omitempty" bson:"credit_organism_id,omitempty"`
	CommerceRegistry string `json:"commerce_registry,omitempty" bson:"commerce_registry,omitempty"`
	CompanyName      string `json:"company_name,omitempty" bson:"company_name,omitempty"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// IsAdmin reports whether the user holds an administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

// IsSuperadmin reports strict superadmin membership.
func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}

// CanManage reports whether the user may mutate a resource owned by ownerID:
// the owner themselves, or any admin.
func (u *User) CanManage(ownerID string) bool {
	return u.ID == ownerID || u.IsAdmin()
}

// CanAccess reports whether the account is usable at all. Blocked accounts
// are treated as inactive regardless of the is_active flag.
func (u *User) CanAccess() bool {
	return u.IsActive && !u.IsBlocked
}

// FullName returns the display name used in enriched projections.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
