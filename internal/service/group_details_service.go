package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Marga-Ghale/ora-group-views/internal/models"
	"github.com/Marga-Ghale/ora-group-views/internal/repository"
	"github.com/Marga-Ghale/ora-group-views/internal/types"
)

// ============================================
// Group Details Service
// ============================================

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// DetailsQuery describes one group details request. Next pages the curator
// list; MembersNext pages the member list, which otherwise starts at the
// beginning.
type DetailsQuery struct {
	GroupName   string
	Scope       types.Scope
	PageSize    int64
	Next        *int64
	MembersNext *int64
}

// GroupDetailsService aggregates a group's membership state for display
type GroupDetailsService interface {
	GetDetails(ctx context.Context, q DetailsQuery) (*models.DisplayGroupDetails, error)
}

type groupDetailsService struct {
	store    repository.MembershipStore
	pageSize PageSizeConfig
}

// NewGroupDetailsService creates a group details aggregator reading from store.
// Zero page size settings fall back to DefaultPageSize and MaxPageSize.
func NewGroupDetailsService(store repository.MembershipStore, pageSize PageSizeConfig) GroupDetailsService {
	if pageSize.Default <= 0 {
		pageSize.Default = DefaultPageSize
	}
	if pageSize.Max <= 0 {
		pageSize.Max = MaxPageSize
	}
	return &groupDetailsService{store: store, pageSize: pageSize}
}

func (s *groupDetailsService) GetDetails(ctx context.Context, q DetailsQuery) (*models.DisplayGroupDetails, error) {
	if strings.TrimSpace(q.GroupName) == "" {
		return nil, ErrInvalidInput
	}
	if (q.Next != nil && *q.Next < 0) || (q.MembersNext != nil && *q.MembersNext < 0) {
		return nil, ErrInvalidInput
	}
	size := s.clampPageSize(q.PageSize)

	memberCount, err := s.store.MemberCount(ctx, q.GroupName)
	if err != nil {
		return nil, storeError("member count", err)
	}

	group, err := s.store.GetGroup(ctx, q.GroupName)
	if err != nil {
		return nil, storeError("get group", err)
	}

	curators, err := s.page(ctx, q.GroupName, q.Scope, types.RoleFilterStaff, size, q.Next)
	if err != nil {
		return nil, storeError("curators", err)
	}

	members, err := s.page(ctx, q.GroupName, q.Scope, types.RoleFilterAll, size, q.MembersNext)
	if err != nil {
		return nil, storeError("members", err)
	}

	invitationCount, err := s.store.PendingInvitationsCount(ctx, q.GroupName)
	if err != nil {
		return nil, storeError("invitation count", err)
	}

	renewalCount, err := s.store.RenewalCount(ctx, q.GroupName, nil)
	if err != nil {
		return nil, storeError("renewal count", err)
	}

	return &models.DisplayGroupDetails{
		Group: models.GroupInfo{
			Name:        group.Name,
			Description: group.Description,
			Typ:         group.Typ,
		},
		Members:         members,
		Curators:        curators,
		MemberCount:     memberCount,
		InvitationCount: invitationCount,
		RenewalCount:    renewalCount,
	}, nil
}

func (s *groupDetailsService) clampPageSize(size int64) int64 {
	if size <= 0 {
		size = int64(s.pageSize.Default)
	}
	if size > int64(s.pageSize.Max) {
		size = int64(s.pageSize.Max)
	}
	return size
}

func (s *groupDetailsService) page(ctx context.Context, groupName string, scope types.Scope, roles types.RoleFilter, size int64, cursor *int64) (models.MemberPage, error) {
	var offset int64
	if cursor != nil {
		offset = *cursor
	}

	rows, err := s.store.ScopedMembersAndHost(ctx, groupName, scope, roles, size, offset)
	if err != nil {
		return models.MemberPage{}, err
	}

	page := models.MemberPage{Members: make([]models.DisplayMember, 0, len(rows))}
	for _, m := range rows {
		page.Members = append(page.Members, toDisplayMember(m))
	}
	if int64(len(rows)) == size {
		next := offset + size
		page.Next = &next
	}
	return page, nil
}

// storeError maps an absent group to ErrNotFound and anything else to a StoreFailure.
func storeError(step string, err error) error {
	if errors.Is(err, repository.ErrGroupNotFound) {
		return ErrNotFound
	}
	return &StoreFailure{Step: step, Err: err}
}

func toDisplayMember(m *repository.Member) models.DisplayMember {
	dm := models.DisplayMember{
		UserUUID:   m.UserUUID,
		Username:   m.Username,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Picture:    m.Picture,
		IsStaff:    m.IsStaff,
		Role:       m.Role,
		Since:      m.Since,
		Expiration: m.Expiration,
	}
	if m.Host != nil {
		dm.Host = &models.HostResponse{
			UserUUID: m.Host.UserUUID,
			Username: m.Host.Username,
			Email:    m.Host.Email,
		}
	}
	return dm
}
