package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/calbook-api/internal/models"
	appErrors "github.com/noah-isme/calbook-api/pkg/errors"
)

// Manage tokens are scoped to a single booking via its public id and expire
// a day after the booking ends, leaving room to cancel a meeting that just
// finished by mistake.
func (s *BookingService) issueManageToken(booking *models.Booking) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   booking.PublicID,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(booking.EndTime.Add(24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.opts.ManageTokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign manage token: %w", err)
	}
	return signed, nil
}

func (s *BookingService) verifyManageToken(raw, publicID string) error {
	if raw == "" {
		return appErrors.ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.opts.ManageTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return appErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != publicID {
		return appErrors.ErrInvalidToken
	}
	return nil
}
