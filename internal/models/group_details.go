package models

import (
	"time"

	"github.com/Marga-Ghale/ora-group-views/internal/types"
	"github.com/google/uuid"
)

// ============================================
// Group Details View
// ============================================

type GroupInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Typ         types.GroupType `json:"typ"`
}

type HostResponse struct {
	UserUUID uuid.UUID `json:"user_uuid"`
	Username string    `json:"username"`
	Email    *string   `json:"email,omitempty"`
}

type DisplayMember struct {
	UserUUID   uuid.UUID      `json:"user_uuid"`
	Username   string         `json:"username"`
	FirstName  *string        `json:"first_name,omitempty"`
	LastName   *string        `json:"last_name,omitempty"`
	Email      *string        `json:"email,omitempty"`
	Picture    *string        `json:"picture,omitempty"`
	IsStaff    bool           `json:"is_staff"`
	Role       types.RoleType `json:"role"`
	Since      time.Time      `json:"since"`
	Expiration *time.Time     `json:"expiration,omitempty"`
	Host       *HostResponse  `json:"host,omitempty"`
}

// MemberPage is one page of a member listing. Next is set only when
// another page may follow.
type MemberPage struct {
	Next    *int64          `json:"next"`
	Members []DisplayMember `json:"members"`
}

type DisplayGroupDetails struct {
	Group           GroupInfo  `json:"group"`
	Members         MemberPage `json:"members"`
	Curators        MemberPage `json:"curators"`
	MemberCount     int64      `json:"member_count"`
	InvitationCount int64      `json:"invitation_count"`
	RenewalCount    int64      `json:"renewal_count"`
}
