package types

import "strings"

// RoleType is a member's standing within a group.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleCurator RoleType = "curator"
	RoleMember  RoleType = "member"
)

// Rank is the store ordering of a role; lower ranks are listed first.
func (r RoleType) Rank() int {
	switch r {
	case RoleAdmin:
		return 0
	case RoleCurator:
		return 1
	case RoleMember:
		return 2
	}
	return -1
}

func (r RoleType) IsValid() bool {
	return r.Rank() >= 0
}

// IsStaff reports whether the role is part of a group's staff (admins and curators).
func (r RoleType) IsStaff() bool {
	return r == RoleAdmin || r == RoleCurator
}

// RoleFilter names the role sets member listings are filtered by.
type RoleFilter int

const (
	RoleFilterStaff RoleFilter = iota + 1
	RoleFilterAll
)

// Roles returns the roles selected by the filter. Unknown filters select
// nothing.
func (f RoleFilter) Roles() []RoleType {
	switch f {
	case RoleFilterStaff:
		return []RoleType{RoleAdmin, RoleCurator}
	case RoleFilterAll:
		return []RoleType{RoleAdmin, RoleCurator, RoleMember}
	}
	return nil
}

func (f RoleFilter) Contains(role RoleType) bool {
	for _, r := range f.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Strings returns the roles as plain strings, suitable as a text[] query argument.
func (f RoleFilter) Strings() []string {
	roles := f.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func (f RoleFilter) String() string {
	switch f {
	case RoleFilterStaff:
		return "staff"
	case RoleFilterAll:
		return "all"
	}
	return "unknown"
}

// GroupType is the category of a group.
type GroupType string

const (
	GroupOpen     GroupType = "open"
	GroupReviewed GroupType = "reviewed"
	GroupClosed   GroupType = "closed"
)

func (g GroupType) IsValid() bool {
	switch g {
	case GroupOpen, GroupReviewed, GroupClosed:
		return true
	}
	return false
}

// Scope is a requester's visibility level.
type Scope string

const (
	ScopeStaff         Scope = "staff"
	ScopeNdaed         Scope = "ndaed"
	ScopeVouched       Scope = "vouched"
	ScopeAuthenticated Scope = "authenticated"
	ScopePublic        Scope = "public"
)

// Rank orders scopes from least (public) to most (staff) privileged.
func (s Scope) Rank() int {
	switch s {
	case ScopeStaff:
		return 4
	case ScopeNdaed:
		return 3
	case ScopeVouched:
		return 2
	case ScopeAuthenticated:
		return 1
	}
	return 0
}

// CanSee reports whether a requester with scope s may see a profile displayed at level display.
func (s Scope) CanSee(display Scope) bool {
	return display.Rank() <= s.Rank()
}

// ParseScope maps a claim value to a Scope. Anything unrecognised is public.
func ParseScope(v string) Scope {
	switch s := Scope(strings.ToLower(strings.TrimSpace(v))); s {
	case ScopeStaff, ScopeNdaed, ScopeVouched, ScopeAuthenticated:
		return s
	}
	return ScopePublic
}
