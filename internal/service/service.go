package service

import (
	"errors"
	"fmt"

	"github.com/Marga-Ghale/ora-group-views/internal/config"
	"github.com/Marga-Ghale/ora-group-views/internal/repository"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// StoreFailure is returned when a membership store read fails for a reason
// other than the group being absent.
type StoreFailure struct {
	Step string
	Err  error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}

// ============================================
// Services Container
// ============================================

type Services struct {
	GroupDetails GroupDetailsService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config *config.Config
	Repos  *repository.Repositories
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		GroupDetails: NewGroupDetailsService(
			deps.Repos.MembershipStore,
			PageSizeConfig{
				Default: deps.Config.DefaultPageSize,
				Max:     deps.Config.MaxPageSize,
			},
		),
	}
}
