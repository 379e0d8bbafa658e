package access

import (
	"strings"

	"github.com/playverse/gamestore/internal/core/domain"
)

const (
	StageAuthentication = "authentication"
	StageAdmin          = "admin"
	StageClient         = "client"

	MsgSignInRequired = "You must sign in to access this page."
	MsgAdminRequired  = "Access denied. Administrator permissions are required."
	MsgClientOnly     = "This feature is available to clients only."
)

// AuthenticationStage turns anonymous callers away from non-public paths.
type AuthenticationStage struct {
	Public    PathSet
	LoginPath string
}

func (AuthenticationStage) Name() string { return StageAuthentication }

func (s AuthenticationStage) Evaluate(r Request) (Decision, bool) {
	if r.Authenticated || s.Public.Contains(r.Path) {
		return Decision{}, false
	}
	return Decision{RedirectTo: s.LoginPath, Message: MsgSignInRequired}, true
}

// AdminStage keeps signed-in non-admins out of the administration area.
// Role admin and the superuser capability are checked independently.
type AdminStage struct {
	Prefixes []string
	HomePath string
}

func (AdminStage) Name() string { return StageAdmin }

func (s AdminStage) Evaluate(r Request) (Decision, bool) {
	if !r.Authenticated || !hasAnyPrefix(r.Path, s.Prefixes) {
		return Decision{}, false
	}
	if r.Role == domain.RoleAdmin || r.IsSuperuser {
		return Decision{}, false
	}
	return Decision{RedirectTo: s.HomePath, Message: MsgAdminRequired}, true
}

// ClientStage reserves cart and reservation pages for clients.
type ClientStage struct {
	Prefixes []string
	HomePath string
}

func (ClientStage) Name() string { return StageClient }

func (s ClientStage) Evaluate(r Request) (Decision, bool) {
	if !r.Authenticated || !hasAnyPrefix(r.Path, s.Prefixes) {
		return Decision{}, false
	}
	if r.Role == domain.RoleClient {
		return Decision{}, false
	}
	return Decision{RedirectTo: s.HomePath, Message: MsgClientOnly}, true
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
