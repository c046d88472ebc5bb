package models

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID             bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string        `json:"name" bson:"name"`
	Username       string        `json:"username" bson:"username"`
	Email          string        `json:"email" bson:"email"`
	PasswordHash   string        `json:"-" bson:"passwordHash,omitempty"`
	ProfilePicture string        `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Bio            string        `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required,min=6"`
}

// NewUser builds a user from a signup request, generating a username when
// none was provided.
func (req *SignupRequest) NewUser(passwordHash string) *User {
	username := req.Username
	if username == "" {
		username = fmt.Sprintf("%s%d", strings.ReplaceAll(strings.ToLower(req.Name), " ", ""), rand.Intn(10000))
	}

	now := time.Now().UTC()
	return &User{
		ID:           bson.NewObjectID(),
		Name:         req.Name,
		Username:     username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
