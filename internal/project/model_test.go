package project

import "testing"

func TestRoleOf(t *testing.T) {
	p := Project{ID: "p1", OwnerID: "owner", MemberIDs: []string{"m1", "m2"}}

	cases := []struct {
		userID string
		want   Role
	}{
		{"owner", RoleOwner},
		{"m1", RoleMember},
		{"m2", RoleMember},
		{"stranger", RoleNone},
		{"", RoleNone},
	}
	for _, tc := range cases {
		if got := p.RoleOf(tc.userID); got != tc.want {
			t.Errorf("RoleOf(%q) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}

func TestParticipants(t *testing.T) {
	p := Project{OwnerID: "owner", MemberIDs: []string{"m1"}}
	got := p.Participants()
	if len(got) != 2 || got[0] != "owner" || got[1] != "m1" {
		t.Fatalf("unexpected participants: %v", got)
	}
}
