// Package access decides, from the locally held session alone, whether a
// client-side route may render and where to send the user otherwise. It never
// touches the network.
package access

import (
	"strings"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/pkg/session"
)

// LoginPath is where unauthenticated navigation ends up.
const LoginPath = "/login"

// State is the outcome class of an evaluation.
type State int

const (
	Unauthenticated State = iota
	AuthenticatedWrongRole
	AuthenticatedAuthorized
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedWrongRole:
		return "wrong_role"
	case AuthenticatedAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Route is a navigable location and the roles allowed to see it. An empty
// Allowed set admits any signed-in role.
type Route struct {
	Path    string
	Allowed []models.UserRole
}

// Decision tells the caller to render when Redirect is empty, otherwise to
// navigate to Redirect. ReturnTo carries the originally requested path for a
// post-login return; nothing consumes it yet.
type Decision struct {
	State    State
	Redirect string
	ReturnTo string
}

// Render reports whether the route may be shown.
func (d Decision) Render() bool {
	return d.Redirect == ""
}

var canonical = map[models.UserRole]string{
	models.RoleSuperuser:     "/superuser",
	models.RoleKepalaSekolah: "/kepala-sekolah",
	models.RoleGuru:          "/guru",
	models.RoleKaryawan:      "/karyawan",
	models.RoleSiswa:         "/siswa",
}

// CanonicalRoute returns the home route of role, or LoginPath for unknown roles.
func CanonicalRoute(role string) string {
	if path, ok := canonical[models.UserRole(role)]; ok {
		return path
	}
	return LoginPath
}

// Routes is the client route table; each dashboard admits only its own role.
func Routes() []Route {
	return []Route{
		{Path: "/superuser", Allowed: []models.UserRole{models.RoleSuperuser}},
		{Path: "/kepala-sekolah", Allowed: []models.UserRole{models.RoleKepalaSekolah}},
		{Path: "/guru", Allowed: []models.UserRole{models.RoleGuru}},
		{Path: "/karyawan", Allowed: []models.UserRole{models.RoleKaryawan}},
		{Path: "/siswa", Allowed: []models.UserRole{models.RoleSiswa}},
	}
}

// Evaluate applies the gate to a protected route. rec is nil when no session
// is stored or the stored one could not be read.
func Evaluate(rec *session.Record, route Route) Decision {
	if rec == nil {
		return Decision{State: Unauthenticated, Redirect: LoginPath, ReturnTo: route.Path}
	}
	if len(route.Allowed) > 0 && !allows(route.Allowed, rec.Role) {
		return Decision{State: AuthenticatedWrongRole, Redirect: CanonicalRoute(rec.Role)}
	}
	return Decision{State: AuthenticatedAuthorized}
}

// Root resolves "/" and any unknown path.
func Root(rec *session.Record) Decision {
	if !hasHome(rec) {
		return Decision{State: Unauthenticated, Redirect: LoginPath}
	}
	return Decision{State: AuthenticatedAuthorized, Redirect: CanonicalRoute(rec.Role)}
}

// Login resolves the login page: signed-in users are sent home. A session
// whose role has no dashboard stays on the login page.
func Login(rec *session.Record) Decision {
	if !hasHome(rec) {
		return Decision{State: Unauthenticated}
	}
	return Decision{State: AuthenticatedAuthorized, Redirect: CanonicalRoute(rec.Role)}
}

func hasHome(rec *session.Record) bool {
	if rec == nil {
		return false
	}
	_, ok := canonical[models.UserRole(rec.Role)]
	return ok
}

func allows(allowed []models.UserRole, role string) bool {
	for _, r := range allowed {
		if string(r) == role {
			return true
		}
	}
	return false
}

type sessionSource interface {
	Current() *session.Record
}

// Gate evaluates navigation against a session context supplied at construction.
type Gate struct {
	session sessionSource
	routes  map[string]Route
}

// NewGate builds a Gate over the standard route table.
func NewGate(sess sessionSource) *Gate {
	routes := make(map[string]Route)
	for _, r := range Routes() {
		routes[r.Path] = r
	}
	return &Gate{session: sess, routes: routes}
}

// Navigate evaluates path against the current session.
func (g *Gate) Navigate(path string) Decision {
	path = normalize(path)
	rec := g.session.Current()

	switch path {
	case LoginPath:
		return Login(rec)
	case "/":
		return Root(rec)
	}
	route, ok := g.routes[path]
	if !ok {
		return Root(rec)
	}
	return Evaluate(rec, route)
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
