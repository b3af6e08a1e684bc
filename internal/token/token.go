package token

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/models"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour

	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

type Service struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Service) SignAccess(user models.User) (string, error) {
	exp := time.Now().Add(AccessTTL)
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.Name,
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}

func (s *Service) SignRefresh(user models.User) (string, error) {
	exp := time.Now().Add(RefreshTTL)
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.Name,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.RefreshSecret)
}

// IssueSession signs both tokens, stores the refresh token and sets the
// session cookies on the response.
func (s *Service) IssueSession(c echo.Context, user models.User) error {
	access, err := s.SignAccess(user)
	if err != nil {
		return fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.SignRefresh(user)
	if err != nil {
		return fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.saveRefresh(refresh, user.ID); err != nil {
		return err
	}

	c.SetCookie(CreateCookie(AccessCookie, access, "/", time.Now().Add(AccessTTL)))
	c.SetCookie(CreateCookie(RefreshCookie, refresh, "/", time.Now().Add(RefreshTTL)))
	return nil
}

// ClearSession revokes the stored refresh token and expires both cookies.
func (s *Service) ClearSession(c echo.Context) {
	if ck, err := c.Cookie(RefreshCookie); err == nil {
		s.DB.Model(&models.RefreshToken{}).
			Where("token = ?", ck.Value).
			Update("revoked", true)
	}
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(AccessCookie, "", "/", expired))
	c.SetCookie(CreateCookie(RefreshCookie, "", "/", expired))
}

func (s *Service) saveRefresh(tok, userID string) error {
	row := models.RefreshToken{
		Token:     tok,
		UserID:    userID,
		ExpiresAt: time.Now().Add(RefreshTTL).Unix(),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *Service) parseAccess(raw string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, err
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}
	return claims, nil
}

func (s *Service) validateRefresh(raw string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}

	var stored models.RefreshToken
	if err := s.DB.Where("token = ?", raw).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked {
		return nil, fmt.Errorf("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("refresh token expired")
	}
	return claims, nil
}

func (s *Service) rotate(raw string) (string, string, jwt.MapClaims, error) {
	claims, err := s.validateRefresh(raw)
	if err != nil {
		return "", "", nil, err
	}

	user := userFromClaims(claims)
	newAccess, err := s.SignAccess(user)
	if err != nil {
		return "", "", nil, err
	}
	newRefresh, err := s.SignRefresh(user)
	if err != nil {
		return "", "", nil, err
	}
	if err := s.saveRefresh(newRefresh, user.ID); err != nil {
		return "", "", nil, err
	}
	return newAccess, newRefresh, claims, nil
}

func userFromClaims(claims jwt.MapClaims) models.User {
	u := models.User{}
	if v, ok := claims["sub"].(string); ok {
		u.ID = v
	}
	if v, ok := claims["role"].(string); ok {
		u.Role = v
	}
	if v, ok := claims["name"].(string); ok {
		u.Name = v
	}
	return u
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	c.Set("userID", claims["sub"])
	c.Set("role", claims["role"])
	c.Set("userName", claims["name"])
}

// UserID returns the authenticated user's id set by the middleware.
func UserID(c echo.Context) string {
	if v, ok := c.Get("userID").(string); ok {
		return v
	}
	return ""
}

func UserName(c echo.Context) string {
	if v, ok := c.Get("userName").(string); ok {
		return v
	}
	return ""
}

func Role(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}

// RequireUser authenticates the request from the access cookie, transparently
// rotating an expired access token from the refresh cookie.
func (s *Service) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := s.authenticate(c)
		if err != nil {
			return err
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// RequireAdmin is RequireUser plus a role gate.
func (s *Service) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := s.authenticate(c)
		if err != nil {
			return err
		}
		if role, _ := claims["role"].(string); role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		setUserContext(c, claims)
		return next(c)
	}
}

func (s *Service) authenticate(c echo.Context) (jwt.MapClaims, error) {
	if ck, err := c.Cookie(AccessCookie); err == nil {
		claims, parseErr := s.parseAccess(ck.Value)
		if parseErr == nil {
			return claims, nil
		}
		if !errors.Is(parseErr, jwt.ErrTokenExpired) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
	}

	rfCookie, err := c.Cookie(RefreshCookie)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}
	newAccess, newRefresh, claims, err := s.rotate(rfCookie.Value)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "cannot rotate token: "+err.Error())
	}

	c.SetCookie(CreateCookie(AccessCookie, newAccess, "/", time.Now().Add(AccessTTL)))
	c.SetCookie(CreateCookie(RefreshCookie, newRefresh, "/", time.Now().Add(RefreshTTL)))
	return claims, nil
}
