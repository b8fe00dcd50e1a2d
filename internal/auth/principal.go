package auth

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

const sessionKey = "principal"

// Principal is the authenticated identity carried in the cookie session.
// Role decides which side of the marketplace the session may act on.
type Principal struct {
	ID    uint
	Role  string
	Name  string
	Phone string
}

func init() {
	gob.Register(Principal{})
}

func (p Principal) IsFarmer() bool { return p.Role == RoleFarmer }
func (p Principal) IsBuyer() bool  { return p.Role == RoleBuyer }

// SaveToSession writes the principal into the cookie session, replacing any
// identity already there.
func SaveToSession(c *gin.Context, p Principal) error {
	session := sessions.Default(c)
	session.Set(sessionKey, p)
	return session.Save()
}

// FromSession returns the session's principal, or false for an anonymous
// session.
func FromSession(c *gin.Context) (Principal, bool) {
	session := sessions.Default(c)
	value := session.Get(sessionKey)
	if value == nil {
		return Principal{}, false
	}
	p, ok := value.(Principal)
	return p, ok
}

// ClearSession invalidates the session, returning it to anonymous.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
