package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	// Membership reads, cache-fronted when redis is configured
	MembershipStore MembershipStore

	// Maintenance operations used by the scheduler
	Invitations InvitationExpirer
	GroupCache  GroupCachePurger
}

// InvitationExpirer flips stale pending invitations to expired.
type InvitationExpirer interface {
	ExpireInvitations(ctx context.Context) (int, error)
}

// GroupCachePurger drops cached group records.
type GroupCachePurger interface {
	PurgeGroups(ctx context.Context) (int, error)
}

// NewRepositories wires the postgres store and, when client is non-nil, the
// redis group cache in front of it.
func NewRepositories(pool *pgxpool.Pool, client *redis.Client, groupTTL time.Duration) *Repositories {
	pg := NewMembershipStore(pool)
	repos := &Repositories{
		MembershipStore: pg,
		Invitations:     pg,
	}
	if client != nil {
		cached := NewCachedGroupStore(pg, client, groupTTL)
		repos.MembershipStore = cached
		repos.GroupCache = cached
	}
	return repos
}
