package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"superadmin", RoleSuperadmin},
		{"SuperAdmin", RoleSuperadmin},
		{"مدير عام", RoleSuperadmin},
		{"admin", RoleAdmin},
		{"Administrateur", RoleAdmin},
		{"مدير", RoleAdmin},
		{"tribunal", RoleTribunal},
		{"المحكمة", RoleTribunal},
		{"tribunalmanager", RoleTribunalManager},
		{"الوزارة", RoleTribunalManager},
		{"orgacredit", RoleCreditOrganism},
		{"شركة القروض", RoleCreditOrganism},
		{"encherisseur", RoleBidder},
		{"Enchérisseur", RoleBidder},
		{"متزايد", RoleBidder},
		{"  admin  ", RoleAdmin},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "root", "moderator", "bidder"} {
		if _, err := ParseRole(in); !errors.Is(err, ErrUnknownRole) {
			t.Errorf("ParseRole(%q): want ErrUnknownRole, got %v", in, err)
		}
	}
}

func TestUserPredicates(t *testing.T) {
	admin := &User{ID: "a", Role: RoleAdmin}
	super := &User{ID: "s", Role: RoleSuperadmin}
	bidder := &User{ID: "b", Role: RoleBidder}

	if !admin.IsAdmin() || !super.IsAdmin() {
		t.Error("admin and superadmin must be IsAdmin")
	}
	if bidder.IsAdmin() {
		t.Error("bidder must not be IsAdmin")
	}
	if admin.IsSuperadmin() {
		t.Error("admin must not be IsSuperadmin")
	}
	if !super.IsSuperadmin() {
		t.Error("superadmin must be IsSuperadmin")
	}

	if !bidder.CanManage("b") {
		t.Error("owner must manage their own resource")
	}
	if bidder.CanManage("other") {
		t.Error("non-owner non-admin must not manage")
	}
	if !admin.CanManage("other") {
		t.Error("admin must manage any resource")
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name    string
		active  bool
		blocked bool
		want    bool
	}{
		{"active unblocked", true, false, true},
		{"inactive", false, false, false},
		{"active but blocked", true, true, false},
		{"inactive and blocked", false, true, false},
	}
	for _, tt := range tests {
		u := &User{IsActive: tt.active, IsBlocked: tt.blocked}
		if got := u.CanAccess(); got != tt.want {
			t.Errorf("%s: CanAccess = %v, want %v", tt.name, got, tt.want)
		}
	}
}
