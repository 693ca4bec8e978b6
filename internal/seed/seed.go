// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Marga-Ghale/ora-group-views/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Profile is a seeded user profile
type Profile struct {
	UUID     uuid.UUID
	Username string
	First    string
	Last     string
	Display  types.Scope
	Role     types.RoleType
}

// DesignTeam returns the development roster: 3 admins, 2 curators and 10 members.
func DesignTeam() []Profile {
	var profiles []Profile
	add := func(role types.RoleType, n int, display types.Scope) {
		for i := 1; i <= n; i++ {
			username := fmt.Sprintf("%s%02d", role, i)
			profiles = append(profiles, Profile{
				UUID:     uuid.NewSHA1(uuid.NameSpaceOID, []byte("design-team/"+username)),
				Username: username,
				First:    string(role),
				Last:     fmt.Sprintf("%02d", i),
				Display:  display,
				Role:     role,
			})
		}
	}
	add(types.RoleAdmin, 3, types.ScopeStaff)
	add(types.RoleCurator, 2, types.ScopeVouched)
	add(types.RoleMember, 10, types.ScopePublic)
	return profiles
}

// SeedData inserts the design-team group, its roster and a couple of
// invitations. Rows that already exist are left untouched.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	logrus.Info("[Seed] Creating design-team data...")

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var groupID string
		err := tx.QueryRow(ctx, `
			INSERT INTO groups (name, description, typ)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			RETURNING id
		`, "design-team", "Product design and UX research", types.GroupReviewed).Scan(&groupID)
		if err != nil {
			return fmt.Errorf("seed group: %w", err)
		}

		profiles := DesignTeam()
		host := profiles[0].UUID
		now := time.Now().UTC()

		for i, p := range profiles {
			if _, err := tx.Exec(ctx, `
				INSERT INTO profiles (user_uuid, username, first_name, last_name, email, is_staff, display)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (user_uuid) DO NOTHING
			`, p.UUID, p.Username, p.First, p.Last, p.Username+"@example.com", p.Role.IsStaff(), p.Display); err != nil {
				return fmt.Errorf("seed profile %s: %w", p.Username, err)
			}

			var expiration *time.Time
			if p.Role == types.RoleMember && i%3 == 0 {
				e := now.AddDate(0, 0, 30)
				expiration = &e
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO memberships (group_id, user_uuid, role, added_by, since, expiration)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (group_id, user_uuid) DO NOTHING
			`, groupID, p.UUID, p.Role, host, now.Add(time.Duration(i)*time.Minute), expiration); err != nil {
				return fmt.Errorf("seed membership %s: %w", p.Username, err)
			}
		}

		for i := 1; i <= 2; i++ {
			invitee := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("design-team/invitee%02d", i)))
			username := fmt.Sprintf("invitee%02d", i)
			if _, err := tx.Exec(ctx, `
				INSERT INTO profiles (user_uuid, username, display)
				VALUES ($1, $2, 'public')
				ON CONFLICT (user_uuid) DO NOTHING
			`, invitee, username); err != nil {
				return fmt.Errorf("seed profile %s: %w", username, err)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO invitations (group_id, user_uuid, invited_by, expires_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (group_id, user_uuid) DO NOTHING
			`, groupID, invitee, host, now.AddDate(0, 0, 14)); err != nil {
				return fmt.Errorf("seed invitation %s: %w", username, err)
			}
		}

		logrus.WithField("members", len(profiles)).Info("[Seed] design-team ready")
		return nil
	})
}
