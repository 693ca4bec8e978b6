package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Marga-Ghale/ora-group-views/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrGroupNotFound is returned when the requested group has no row.
var ErrGroupNotFound = errors.New("group not found")

// ErrInvalidRoleFilter is returned for role filters that select no roles.
var ErrInvalidRoleFilter = errors.New("invalid role filter")

// ============================================
// Membership Models
// ============================================

// Group is the read-only projection of a group row
type Group struct {
	ID          string
	Name        string
	Description string
	Typ         types.GroupType
	CreatedAt   time.Time
}

// Host is the profile of whoever added a member to the group
type Host struct {
	UserUUID uuid.UUID
	Username string
	Email    *string
}

// Member is a membership row joined with its profile and host
type Member struct {
	ID         int64
	UserUUID   uuid.UUID
	Username   string
	FirstName  *string
	LastName   *string
	Email      *string
	Picture    *string
	IsStaff    bool
	Role       types.RoleType
	Since      time.Time
	Expiration *time.Time
	Host       *Host
}

// ============================================
// Membership Store Interface
// ============================================

// MembershipStore provides the scoped, paginated reads behind the group views
type MembershipStore interface {
	MemberCount(ctx context.Context, groupName string) (int64, error)
	GetGroup(ctx context.Context, groupName string) (*Group, error)
	ScopedMembersAndHost(ctx context.Context, groupName string, scope types.Scope, roles types.RoleFilter, limit, offset int64) ([]*Member, error)
	PendingInvitationsCount(ctx context.Context, groupName string) (int64, error)
	RenewalCount(ctx context.Context, groupName string, before *time.Time) (int64, error)
}

// ============================================
// PostgreSQL Membership Store Implementation
// ============================================

type pgMembershipStore struct {
	pool *pgxpool.Pool
}

// NewMembershipStore creates a PostgreSQL membership store
func NewMembershipStore(pool *pgxpool.Pool) *pgMembershipStore {
	return &pgMembershipStore{pool: pool}
}

func (r *pgMembershipStore) MemberCount(ctx context.Context, groupName string) (int64, error) {
	query := `
		SELECT g.id, (SELECT COUNT(*) FROM memberships m WHERE m.group_id = g.id)
		FROM groups g WHERE g.name = $1
	`
	var groupID string
	var count int64
	err := r.pool.QueryRow(ctx, query, groupName).Scan(&groupID, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrGroupNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("count members of %q: %w", groupName, err)
	}
	return count, nil
}

func (r *pgMembershipStore) GetGroup(ctx context.Context, groupName string) (*Group, error) {
	query := `
		SELECT id, name, description, typ, created_at
		FROM groups WHERE name = $1
	`
	group := &Group{}
	err := r.pool.QueryRow(ctx, query, groupName).Scan(
		&group.ID, &group.Name, &group.Description, &group.Typ, &group.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group %q: %w", groupName, err)
	}
	return group, nil
}

// scopeRankSQL maps a profile's display level to the rank used by types.Scope.
const scopeRankSQL = `CASE p.display
			WHEN 'staff' THEN 4
			WHEN 'ndaed' THEN 3
			WHEN 'vouched' THEN 2
			WHEN 'authenticated' THEN 1
			ELSE 0 END`

// roleRankSQL orders admins, then curators, then members.
const roleRankSQL = `CASE m.role WHEN 'admin' THEN 0 WHEN 'curator' THEN 1 ELSE 2 END`

var scopedMembersQuery = `
		SELECT m.id, p.user_uuid, p.username, p.first_name, p.last_name, p.email, p.picture,
			p.is_staff, m.role, m.since, m.expiration,
			h.user_uuid, h.username, h.email
		FROM memberships m
		INNER JOIN groups g ON g.id = m.group_id
		INNER JOIN profiles p ON p.user_uuid = m.user_uuid
		LEFT JOIN profiles h ON h.user_uuid = m.added_by
		WHERE g.name = $1
			AND m.role = ANY($2)
			AND ` + scopeRankSQL + ` <= $3
		ORDER BY ` + roleRankSQL + `, m.since, m.id
		LIMIT $4 OFFSET $5
	`

func (r *pgMembershipStore) ScopedMembersAndHost(ctx context.Context, groupName string, scope types.Scope, roles types.RoleFilter, limit, offset int64) ([]*Member, error) {
	roleNames := roles.Strings()
	if len(roleNames) == 0 {
		return nil, ErrInvalidRoleFilter
	}

	rows, err := r.pool.Query(ctx, scopedMembersQuery, groupName, roleNames, scope.Rank(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query %s members of %q: %w", roles, groupName, err)
	}
	defer rows.Close()

	members := make([]*Member, 0, limit)
	for rows.Next() {
		member := &Member{}
		var hostUUID *uuid.UUID
		var hostUsername, hostEmail *string
		if err := rows.Scan(
			&member.ID, &member.UserUUID, &member.Username, &member.FirstName, &member.LastName,
			&member.Email, &member.Picture, &member.IsStaff, &member.Role, &member.Since,
			&member.Expiration, &hostUUID, &hostUsername, &hostEmail,
		); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		if hostUUID != nil {
			member.Host = &Host{UserUUID: *hostUUID, Email: hostEmail}
			if hostUsername != nil {
				member.Host.Username = *hostUsername
			}
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

func (r *pgMembershipStore) PendingInvitationsCount(ctx context.Context, groupName string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM invitations i
		INNER JOIN groups g ON g.id = i.group_id
		WHERE g.name = $1 AND i.status = 'pending'
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, groupName).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending invitations of %q: %w", groupName, err)
	}
	return count, nil
}

func (r *pgMembershipStore) RenewalCount(ctx context.Context, groupName string, before *time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM memberships m
		INNER JOIN groups g ON g.id = m.group_id
		WHERE g.name = $1
			AND m.expiration IS NOT NULL
			AND ($2::timestamptz IS NULL OR m.expiration <= $2)
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, groupName, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("count renewals of %q: %w", groupName, err)
	}
	return count, nil
}

// ExpireInvitations marks pending invitations past their expiry as expired.
func (r *pgMembershipStore) ExpireInvitations(ctx context.Context) (int, error) {
	query := `UPDATE invitations SET status = 'expired' WHERE expires_at < NOW() AND status = 'pending'`
	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
