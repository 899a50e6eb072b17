package utils

import "github.com/golang-jwt/jwt/v5"

// DecodeJWTUnverified fills claims from token without checking the signature.
// The signing key belongs to the API; this side only reads what it was issued.
func DecodeJWTUnverified(token string, claims jwt.Claims) error {
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	return err
}
