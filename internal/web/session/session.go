package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/uniuri"
)

const (
	// CookieName is the name of the admin session cookie.
	CookieName = "admin_session"
	// Issuer is the iss claim of every session token.
	Issuer = "folio"
)

// Claims are the claims of a session token. ID (jti) is the session id.
type Claims struct {
	jwt.RegisteredClaims
}

// Data is the server side record of a session.
type Data struct {
	CreatedAt int64  `json:"createdAt"`
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

// Manager mints, verifies and revokes admin sessions.
type Manager struct {
	storage fiber.Storage
	secret  []byte
	ttl     time.Duration
	secure  bool
	now     func() time.Time
}

// New creates a Manager using the session settings of cfg.
func New(cfg *config.Config, storage fiber.Storage) (*Manager, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	if storage == nil {
		return nil, ErrStorageNil
	}

	if cfg.Webserver.Session.Secret == "" {
		return nil, ErrSecretEmpty
	}

	ttl := cfg.Webserver.Session.ExpiryTime
	if ttl <= 0 {
		ttl = config.DefaultSessionExpiry
	}

	return &Manager{
		storage: storage,
		secret:  []byte(cfg.Webserver.Session.Secret),
		ttl:     ttl,
		secure:  !cfg.DevMode,
		now:     time.Now,
	}, nil
}

// TTL returns the lifetime of new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session record and returns its signed token.
func (m *Manager) Create(data Data) (string, error) {
	id, err := uniuri.NewSessionID()
	if err != nil {
		return "", err
	}

	now := m.now()
	if data.CreatedAt == 0 {
		data.CreatedAt = now.UnixMilli()
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	if err = m.storage.Set(id, raw, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return token, nil
}

// Verify checks the signature, expiry and issuer of token. It does not consult the storage.
func (m *Manager) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	tok, err := parser.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Lookup verifies token and loads its session record.
func (m *Manager) Lookup(token string) (*Data, error) {
	claims, err := m.Verify(token)
	if err != nil {
		return nil, err
	}

	raw, err := m.storage.Get(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	var data Data
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &data, nil
}

// IsAuthenticated reports whether the request carries a valid token for a live session.
func (m *Manager) IsAuthenticated(c *fiber.Ctx) bool {
	_, err := m.Lookup(m.GetCookie(c))
	if err != nil {
		log.Debug().Err(err).Str("path", c.Path()).Msg("request without a valid admin session")
		return false
	}

	return true
}

// Revoke deletes the record of token. Invalid tokens are ignored.
func (m *Manager) Revoke(token string) error {
	claims, err := m.Verify(token)
	if err != nil {
		return nil //nolint:nilerr
	}

	if err = m.storage.Delete(claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// Destroy revokes the session of the request and clears its cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	err := m.Revoke(m.GetCookie(c))

	m.ClearCookie(c)

	return err
}

// SetCookie sends token as the session cookie.
func (m *Manager) SetCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  m.now().Add(m.ttl),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetCookie returns the session cookie of the request, or "".
func (m *Manager) GetCookie(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
