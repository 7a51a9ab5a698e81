package identity

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	sessionUserKey      = "user_id"
	sessionAnonymousKey = "anonymous_id"
)

// Identity is the owner of basket lines and orders: either an authenticated
// user or an anonymous browser session, never both. Construct it only through
// ForUser and Anonymous so the either-or invariant cannot be violated.
type Identity struct {
	userID *uint
	token  *string
}

func ForUser(id uint) Identity {
	return Identity{userID: &id}
}

func Anonymous(token string) Identity {
	return Identity{token: &token}
}

func (i Identity) IsAuthenticated() bool {
	return i.userID != nil
}

// UserID returns the user id and whether the identity is an authenticated one.
func (i Identity) UserID() (uint, bool) {
	if i.userID == nil {
		return 0, false
	}
	return *i.userID, true
}

// Token returns the anonymous session token and whether the identity is anonymous.
func (i Identity) Token() (string, bool) {
	if i.token == nil {
		return "", false
	}
	return *i.token, true
}

// Scope narrows a basket or order query to rows owned by this identity.
func (i Identity) Scope(tx *gorm.DB) *gorm.DB {
	if i.userID != nil {
		return tx.Where("user_id = ?", *i.userID)
	}
	return tx.Where("session_id = ?", *i.token)
}

// Columns returns the (user_id, session_id) pair this identity maps to in
// storage. Exactly one of the two is non-nil.
func (i Identity) Columns() (*uint, *string) {
	return i.userID, i.token
}

// Resolve maps the request to its identity: the logged-in user when the session
// carries one, otherwise the session's anonymous token, minting and storing a
// fresh token on first contact.
func Resolve(c *gin.Context) (Identity, error) {
	sess := sessions.Default(c)

	if userID, ok := sess.Get(sessionUserKey).(uint); ok && userID != 0 {
		return ForUser(userID), nil
	}

	if token, ok := sess.Get(sessionAnonymousKey).(string); ok && token != "" {
		return Anonymous(token), nil
	}

	token := uuid.NewString()
	sess.Set(sessionAnonymousKey, token)
	if err := sess.Save(); err != nil {
		return Identity{}, err
	}
	return Anonymous(token), nil
}

// PreLoginToken returns the anonymous token of the current session, if any.
// The login flow needs it to merge anonymous basket lines into the user's.
func PreLoginToken(c *gin.Context) (string, bool) {
	sess := sessions.Default(c)
	token, ok := sess.Get(sessionAnonymousKey).(string)
	return token, ok && token != ""
}

// Login stores the user in the session and drops the anonymous token, which
// must not survive into the authenticated session.
func Login(c *gin.Context, userID uint) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserKey, userID)
	sess.Delete(sessionAnonymousKey)
	return sess.Save()
}

// Logout clears the whole session.
func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}
