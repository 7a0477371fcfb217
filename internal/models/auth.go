package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminInfo is the safe public view of an admin user.
type AdminInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        AdminInfo `json:"user"`
}

// Claims is the JWT payload for authenticated admins.
type Claims struct {
	UserID   string `json:"uid"`
	Name     string `json:"name"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
