// Package cookie stores sessions in browser cookies, one cookie per session field.
package cookie

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/jrsteele09/bsky-session-server/internal/errors"
	"github.com/jrsteele09/bsky-session-server/internal/utils"
	"github.com/jrsteele09/bsky-session-server/sessions"
)

// Cookie names, in the order they are written.
const (
	AccessJwtKey  = "accessJwt"
	RefreshJwtKey = "refreshJwt"
	HandleKey     = "handle"
	DidKey        = "did"
	ActiveKey     = "active"
	StatusKey     = "status"
)

// Attributes is appended to every session cookie. No Expires/Max-Age, so the
// cookies live for the browser session.
const Attributes = "HttpOnly; Path=/; SameSite=Strict; Secure"

// Keys lists every cookie a complete session needs.
var Keys = []string{AccessJwtKey, RefreshJwtKey, HandleKey, DidKey, ActiveKey, StatusKey}

var _ sessions.CookieCodec = (*Codec)(nil)

// Codec encodes sessions as Set-Cookie directives and decodes them from Cookie headers.
// With a hash key every value is HMAC signed. Without one values are written raw, so a
// value containing ';' would not survive Parse.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec creates a Codec. An empty hashKey disables signing.
func NewCodec(hashKey []byte) *Codec {
	c := &Codec{}
	if len(hashKey) > 0 {
		c.sc = securecookie.New(hashKey, nil)
		c.sc.SetSerializer(securecookie.NopEncoder{})
		c.sc.MaxAge(0)
	}
	return c
}

// Signed reports whether cookie values are signed.
func (c *Codec) Signed() bool {
	return c.sc != nil
}

// Parse splits a Cookie header into name/value pairs. Each entry is split on its first
// '='; an entry without one maps to "". The last duplicate wins.
func Parse(header string) map[string]string {
	cookies := make(map[string]string)
	for _, entry := range strings.Split(header, ";") {
		key, value, _ := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		cookies[key] = strings.TrimSpace(value)
	}
	return cookies
}

// Encode returns one Set-Cookie directive per session field.
func (c *Codec) Encode(session *sessions.SessionData) ([]string, error) {
	if session == nil {
		return nil, errors.ErrIncompleteSession
	}

	fields := [][2]string{
		{AccessJwtKey, session.AccessJwt},
		{RefreshJwtKey, session.RefreshJwt},
		{HandleKey, session.Handle},
		{DidKey, session.Did},
		{ActiveKey, strconv.FormatBool(session.Active)},
		{StatusKey, session.StatusString()},
	}

	directives := make([]string, 0, len(fields))
	for _, field := range fields {
		value, err := c.encodeValue(field[0], field[1])
		if err != nil {
			return nil, err
		}
		directives = append(directives, fmt.Sprintf("%s=%s; %s", field[0], value, Attributes))
	}
	return directives, nil
}

// Decode rebuilds a session from parsed cookies. Every key must be present; all but
// status must be non-empty. ErrIncompleteSession is returned otherwise.
func (c *Codec) Decode(cookies map[string]string) (*sessions.SessionData, error) {
	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		raw, ok := cookies[key]
		if !ok {
			return nil, errors.Wrapf(errors.ErrIncompleteSession, "missing %s", key)
		}
		value, err := c.decodeValue(key, raw)
		if err != nil {
			return nil, err
		}
		if value == "" && key != StatusKey {
			return nil, errors.Wrapf(errors.ErrIncompleteSession, "empty %s", key)
		}
		values[key] = value
	}

	return &sessions.SessionData{
		AccessJwt:  values[AccessJwtKey],
		RefreshJwt: values[RefreshJwtKey],
		Handle:     values[HandleKey],
		Did:        values[DidKey],
		Active:     values[ActiveKey] == "true",
		Status:     utils.NonEmpty(values[StatusKey]),
	}, nil
}

func (c *Codec) DecodeHeader(header string) (*sessions.SessionData, error) {
	return c.Decode(Parse(header))
}

func (c *Codec) Write(w http.ResponseWriter, session *sessions.SessionData) error {
	directives, err := c.Encode(session)
	if err != nil {
		return err
	}
	for _, directive := range directives {
		w.Header().Add("Set-Cookie", directive)
	}
	return nil
}

func (c *Codec) encodeValue(name, value string) (string, error) {
	if c.sc == nil {
		return value, nil
	}
	encoded, err := c.sc.Encode(name, []byte(value))
	if err != nil {
		return "", errors.Wrapf(err, "sign %s cookie", name)
	}
	return encoded, nil
}

func (c *Codec) decodeValue(name, raw string) (string, error) {
	if c.sc == nil {
		return raw, nil
	}
	if raw == "" {
		return "", errors.Wrapf(errors.ErrIncompleteSession, "empty %s", name)
	}
	var value []byte
	if err := c.sc.Decode(name, raw, &value); err != nil {
		return "", errors.WithCause(errors.ErrCookieTampered, err)
	}
	return string(value), nil
}
