// Package access decides, per request, whether a path is reachable for the
// caller. A Policy is an ordered list of stages; the first stage that denies
// wins and later stages are not evaluated.
package access

import "github.com/playverse/gamestore/internal/core/domain"

// Request is the part of an inbound request the policy looks at.
type Request struct {
	Path          string
	Authenticated bool
	Role          domain.Role
	IsSuperuser   bool
}

// Decision is the outcome of a policy evaluation. A denial carries the
// redirect target and the message to show on the next rendered page.
type Decision struct {
	Allowed    bool
	Stage      string
	RedirectTo string
	Message    string
}

// Allow is the zero-cost allow decision.
var Allow = Decision{Allowed: true}

// Stage is one independent authorization check.
type Stage interface {
	Name() string
	// Evaluate returns a denial and true when the stage rejects r.
	Evaluate(r Request) (Decision, bool)
}

// Policy runs its stages in order.
type Policy struct {
	stages []Stage
}

// NewPolicy builds the authentication, admin and client stages from cfg.
func NewPolicy(cfg Config) *Policy {
	return NewPolicyWithStages(
		AuthenticationStage{Public: cfg.Public, LoginPath: cfg.LoginPath},
		AdminStage{Prefixes: cfg.AdminPrefixes, HomePath: cfg.HomePath},
		ClientStage{Prefixes: cfg.ClientPrefixes, HomePath: cfg.HomePath},
	)
}

func NewPolicyWithStages(stages ...Stage) *Policy {
	return &Policy{stages: stages}
}

// Decide is total: every request yields exactly one Decision.
func (p *Policy) Decide(r Request) Decision {
	for _, s := range p.stages {
		if d, denied := s.Evaluate(r); denied {
			d.Allowed = false
			d.Stage = s.Name()
			return d
		}
	}
	return Allow
}

// Stages returns the names of the configured stages in evaluation order.
func (p *Policy) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}
