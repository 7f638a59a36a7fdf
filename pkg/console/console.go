// Package console implements the review surface: listing and annotating
// infraction reports, toggling their archive state and managing patroller
// accounts, including provisioning new credentials without disturbing the
// administrator's own session.
package console

import (
	"errors"

	"github.com/vvaraldi/Infraction-Orford/pkg/identity"
	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
	patrollerTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/patroller"
)

// ErrPasswordOutOfBand is returned when an account edit carries a password:
// rotation is not supported from this surface and the operator needs to be
// told so, not silently ignored.
var ErrPasswordOutOfBand = errors.New("password changes are not supported from the account surface")

// ReportStore is the report-side persistence contract, implemented by the
// infraction DB service.
type ReportStore interface {
	GetInfractions(includeArchived bool) ([]infractionTypes.Infraction, error)
	GetInfractionByID(id string) (infractionTypes.Infraction, error)
	SaveAdminComment(id string, comments string) error
	SetArchiveState(id string, archived bool) error
}

// AccountStore is the account-side persistence contract, implemented by the
// patroller DB service.
type AccountStore interface {
	CreatePatroller(newPatroller *patrollerTypes.Patroller) (*patrollerTypes.Patroller, error)
	GetPatrollerByID(id string) (*patrollerTypes.Patroller, error)
	UpdatePatrollerProfile(id string, name string, role string, status string, allowInfraction bool, allowInspection bool) error
	DeletePatroller(id string) error
	GetAllPatrollers() ([]patrollerTypes.Patroller, error)
}

type Console struct {
	reports  ReportStore
	accounts AccountStore
	provider identity.Provider
}

func NewConsole(reports ReportStore, accounts AccountStore, provider identity.Provider) *Console {
	return &Console{reports: reports, accounts: accounts, provider: provider}
}

// ListInfractions fetches the page ordered by creation timestamp at the
// store, then applies the requested secondary order in memory.
func (c *Console) ListInfractions(includeArchived bool, sortBy SortBy) ([]infractionTypes.Infraction, error) {
	infractions, err := c.reports.GetInfractions(includeArchived)
	if err != nil {
		return nil, err
	}
	reorder(infractions, sortBy)
	return infractions, nil
}

func (c *Console) GetInfraction(id string) (infractionTypes.Infraction, error) {
	return c.reports.GetInfractionByID(id)
}

// SaveReviewerComment writes the comment text and its modification
// timestamp, nothing else.
func (c *Console) SaveReviewerComment(id string, comment string) error {
	return c.reports.SaveAdminComment(id, comment)
}

// ToggleArchive re-reads the record immediately before flipping the flag, so
// the toggle acts on current state rather than whatever the listing cached.
// Returns the new archived state.
func (c *Console) ToggleArchive(id string) (bool, error) {
	current, err := c.reports.GetInfractionByID(id)
	if err != nil {
		return false, err
	}
	archived := !current.Archived
	if err := c.reports.SetArchiveState(id, archived); err != nil {
		return false, err
	}
	return archived, nil
}

// NewAccount carries the provisioning input for a patroller account.
type NewAccount struct {
	Name            string
	Email           string
	Password        string
	Role            string
	Status          string
	AllowInfraction bool
	AllowInspection bool
}

// CreateAccount provisions a credential through a secondary identity
// instance, then writes the profile record under the assigned principal id.
// The secondary instance is disposed on every path, so the administrator's
// own session is never switched or terminated by this operation.
func (c *Console) CreateAccount(account NewAccount) (*patrollerTypes.Patroller, error) {
	secondary, dispose := c.provider.Secondary()
	defer dispose()

	principal, err := secondary.SignUp(account.Email, account.Password)
	if err != nil {
		return nil, err
	}

	profile := &patrollerTypes.Patroller{
		ID:              principal.UID,
		Name:            account.Name,
		Email:           principal.Email,
		Role:            account.Role,
		Status:          account.Status,
		AllowInfraction: account.AllowInfraction,
		AllowInspection: account.AllowInspection,
	}
	return c.accounts.CreatePatroller(profile)
}

// AccountUpdate carries the administrator-mutable profile fields. Email is
// immutable after creation and has no field here.
type AccountUpdate struct {
	Name            string
	Role            string
	Status          string
	AllowInfraction bool
	AllowInspection bool
	Password        string
}

// UpdateAccount edits profile fields only. A password in the update is
// rejected outright; rotation happens out of band.
func (c *Console) UpdateAccount(id string, update AccountUpdate) error {
	if update.Password != "" {
		return ErrPasswordOutOfBand
	}
	return c.accounts.UpdatePatrollerProfile(id, update.Name, update.Role, update.Status, update.AllowInfraction, update.AllowInspection)
}

// DeleteAccount removes only the profile record; the identity-provider
// credential is deliberately left in place.
func (c *Console) DeleteAccount(id string) error {
	return c.accounts.DeletePatroller(id)
}

func (c *Console) GetAccount(id string) (*patrollerTypes.Patroller, error) {
	return c.accounts.GetPatrollerByID(id)
}

func (c *Console) ListAccounts() ([]patrollerTypes.Patroller, error) {
	return c.accounts.GetAllPatrollers()
}
