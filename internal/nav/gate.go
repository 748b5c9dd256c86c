package nav

import (
	"github.com/empdesk/empdesk-console/internal/models"
)

// SessionReader is the part of the session store the gate needs.
type SessionReader interface {
	Get() (models.Session, bool)
}

// Gate guards protected views: a view runs only when a session is present,
// otherwise the user is sent to login. The check is synchronous and looks
// only at presence; token validity is established lazily through 401s.
type Gate struct {
	sessions SessionReader
	nav      Navigator
}

// NewGate creates an auth gate over the given session source.
func NewGate(sessions SessionReader, navigator Navigator) *Gate {
	return &Gate{sessions: sessions, nav: navigator}
}

// Authenticated reports whether a session is present.
func (g *Gate) Authenticated() bool {
	_, ok := g.sessions.Get()
	return ok
}

// Require runs view only when a session is present; otherwise it redirects
// to login and reports false.
func (g *Gate) Require(view func()) bool {
	if !g.Authenticated() {
		g.nav.NavigateTo(RouteLogin)
		return false
	}
	view()
	return true
}
