package auth

import (
	"time"

	"go-absensi/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Principal adalah identitas yang dibawa di dalam JWT.
// Name, JenisGTK dan StatusGTK ikut disimpan karena dipakai saat menulis record absensi.
type Principal struct {
	UserID    string
	Role      string
	Name      string
	JenisGTK  string
	StatusGTK string
}

func principalFromUser(u *user.User) Principal {
	return Principal{
		UserID:    u.ID.String(),
		Role:      u.Role,
		Name:      u.Name,
		JenisGTK:  u.JenisGTK,
		StatusGTK: u.StatusGTK,
	}
}

func (p Principal) claims(tokenType, jti string, now time.Time, expiry time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":    p.UserID,
		"role":       p.Role,
		"name":       p.Name,
		"jenis_gtk":  p.JenisGTK,
		"status_gtk": p.StatusGTK,
		"type":       tokenType,
		"jti":        jti,
		"iat":        now.Unix(),
		"exp":        now.Add(expiry).Unix(),
	}
}
