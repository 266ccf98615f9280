package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

//go:embed model.conf
var modelText string

// defaultPolicies grants each role the (stage, action) pairs it may perform
var defaultPolicies = [][]string{
	{string(domain.RoleAdmin), "*", "*"},

	{string(domain.RoleProducer), string(domain.StageRaw), string(domain.ActionCreate)},
	{string(domain.RoleProducer), string(domain.StageRaw), string(domain.ActionSell)},
	{string(domain.RoleProducer), string(domain.StageRaw), string(domain.ActionDelete)},
	{string(domain.RoleProducer), string(domain.StageRaw), string(domain.ActionList)},

	{string(domain.RoleManufacturer), string(domain.StageSold), string(domain.ActionDelete)},
	{string(domain.RoleManufacturer), string(domain.StageSold), string(domain.ActionList)},
	{string(domain.RoleManufacturer), string(domain.StageProduct), string(domain.ActionCreate)},
	{string(domain.RoleManufacturer), string(domain.StageProduct), string(domain.ActionDelete)},
	{string(domain.RoleManufacturer), string(domain.StageProduct), string(domain.ActionList)},

	{string(domain.RoleRecycler), string(domain.StageWaste), string(domain.ActionCreate)},
	{string(domain.RoleRecycler), string(domain.StageWaste), string(domain.ActionDelete)},
	{string(domain.RoleRecycler), string(domain.StageWaste), string(domain.ActionList)},
	{string(domain.RoleRecycler), string(domain.StageRecycled), string(domain.ActionRecycle)},
	{string(domain.RoleRecycler), string(domain.StageRecycled), string(domain.ActionDelete)},
	{string(domain.RoleRecycler), string(domain.StageRecycled), string(domain.ActionList)},

	{string(domain.RoleRecycler), string(domain.StageWaste), string(domain.ActionUnwatch)},
	{string(domain.RoleDepositor), string(domain.StageWaste), string(domain.ActionList)},
	{string(domain.RoleDepositor), string(domain.StageWaste), string(domain.ActionUnwatch)},
}

// Authorizer decides whether a role may perform an action on a stage
//
//go:generate mockgen -source=authorizer.go -destination=../mocks/authorizer.go -package=mocks -mock_names=Authorizer=MockAuthorizer
type Authorizer interface {
	// Authorize checks (stage, action) for the principal's role
	Authorize(principal domain.Principal, stage domain.Stage, action domain.Action) error
	// AuthorizeObject checks a non-stage object such as domain.ObjectAccounts
	AuthorizeObject(principal domain.Principal, object string, action domain.Action) error
}

type casbinAuthorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAuthorizer creates a casbin-backed authorizer loaded with the role policy.
// Extra policies are added on top of the defaults as (role, stage, action) triples.
func NewAuthorizer(extra ...[]string) (Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to load authorization model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	policies := append(append([][]string{}, defaultPolicies...), extra...)
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to add policies: %w", err)
	}

	return &casbinAuthorizer{enforcer: enforcer}, nil
}

// Authorize returns a forbidden error unless the principal's role is granted (stage, action)
func (a *casbinAuthorizer) Authorize(principal domain.Principal, stage domain.Stage, action domain.Action) error {
	return a.AuthorizeObject(principal, string(stage), action)
}

func (a *casbinAuthorizer) AuthorizeObject(principal domain.Principal, object string, action domain.Action) error {
	allowed, err := a.enforcer.Enforce(string(principal.Role), object, string(action))
	if err != nil {
		return domain.NewInternalError("authorize", err)
	}
	if !allowed {
		return domain.NewForbiddenError(domain.CodeRoleNotAllowed)
	}
	return nil
}
