package project

import "time"

// Project groups users sharing a ledger. The owner is assigned once at
// creation and is never stored in MemberIDs; authorization treats the owner as
// an implicit member.
type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	MemberIDs   []string
	CreatedAt   time.Time
}

// Role is the authorization level of a user within a project.
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleMember:
		return "member"
	default:
		return "none"
	}
}

// RoleOf answers "is user U authorized for this project, and at what level?".
// Every operation derives its policy from this single query.
func (p Project) RoleOf(userID string) Role {
	if userID == "" {
		return RoleNone
	}
	if p.OwnerID == userID {
		return RoleOwner
	}
	for _, id := range p.MemberIDs {
		if id == userID {
			return RoleMember
		}
	}
	return RoleNone
}

// Participants returns the owner followed by the member set.
func (p Project) Participants() []string {
	out := make([]string, 0, len(p.MemberIDs)+1)
	out = append(out, p.OwnerID)
	out = append(out, p.MemberIDs...)
	return out
}
