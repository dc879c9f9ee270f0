package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)
	ErrInvalidRole        = fmt.Errorf("%w: unknown role", apperr.ErrValidation)
)

type Finder interface {
	// FindByEmail returns ErrPrincipalMissing when nobody with that role
	// has the email.
	FindByEmail(ctx context.Context, role Role, email string) (*Principal, error)
}

var ErrPrincipalMissing = errors.New("principal not found")

type Principal struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // seconds
	Role        Role   `json:"role"`
	Name        string `json:"name"`
}

type LoginUsecase struct {
	finder    Finder
	jwtSecret []byte
	expMin    int
	now       func() time.Time
}

func NewLoginUsecase(finder Finder, jwtSecret string, expiresMinutes int) *LoginUsecase {
	if expiresMinutes <= 0 {
		expiresMinutes = 60
	}
	return &LoginUsecase{
		finder:    finder,
		jwtSecret: []byte(jwtSecret),
		expMin:    expiresMinutes,
		now:       time.Now,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, role Role, email, password string) (*LoginResult, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	email = strings.TrimSpace(strings.ToLower(email))

	p, err := u.finder.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, ErrPrincipalMissing) {
			// Hide whether email exists
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := u.sign(role, p)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: signed,
		ExpiresIn:   u.expMin * 60,
		Role:        role,
		Name:        p.Name,
	}, nil
}

func (u *LoginUsecase) sign(role Role, p *Principal) (string, error) {
	now := u.now()
	exp := now.Add(time.Duration(u.expMin) * time.Minute)

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(p.ID, 10),
		"typ":   string(role),
		"email": p.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}
