package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 30 * 24 * time.Hour

type UserType string

const (
	Volunteer UserType = "volunteer"
	Org       UserType = "org"
)

func ParseUserType(s string) (UserType, error) {
	switch ut := UserType(s); ut {
	case Volunteer, Org:
		return ut, nil
	default:
		return "", fmt.Errorf("unknown user type %q", s)
	}
}

// Identity is who is calling: an opaque subject and which side of the
// marketplace they act for.
type Identity struct {
	Subject  string   `json:"subject"`
	UserType UserType `json:"user_type"`
}

var errBadClaims = errors.New("token claims malformed")

func GenerateToken(secret []byte, id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       id.Subject,
		"user_type": string(id.UserType),
		"exp":       now.Add(tokenTTL).Unix(),
		"iat":       now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	data, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errBadClaims
	}
	sub, _ := data["sub"].(string)
	rawType, _ := data["user_type"].(string)
	ut, err := ParseUserType(rawType)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", errBadClaims, err)
	}
	return Identity{Subject: sub, UserType: ut}, nil
}
