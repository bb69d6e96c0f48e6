package model

import "time"

type UserStatus string

const (
	UserStatusPlaceholder UserStatus = "placeholder"
	UserStatusPending     UserStatus = "pending"
	UserStatusActive      UserStatus = "active"
	UserStatusInactive    UserStatus = "inactive"
)

type UserRole string

const (
	UserRoleUndecided UserRole = "undecided"
	UserRoleAdmin     UserRole = "admin"
	UserRoleManager   UserRole = "manager"
	UserRoleEmployee  UserRole = "employee"
)

type User struct {
	ID              int64
	Username        string
	PasswordHash    string
	FirstName       *string
	Initial         *string
	LastName        *string
	Phone           *string
	Email           string
	Address         *string
	City            *string
	StateCode       *string
	Zip             *string
	Status          UserStatus
	Role            UserRole
	IsEmailVerified bool
	CreatedAt       time.Time
}

// PlaceholderUser anchors a verification code before the real profile exists.
type PlaceholderUser struct {
	Email        string
	Username     string
	PasswordHash string
}

// Profile holds the normalized fields written when signup is finalized.
type Profile struct {
	Username     string
	PasswordHash string
	FirstName    string
	Initial      *string
	LastName     string
	Phone        *string
	Address      string
	City         string
	StateCode    string
	Zip          string
}

type VerificationCode struct {
	ID        int64
	UserID    int64
	Code      string
	ExpiresAt time.Time
}

type Activity struct {
	ID          int64
	UserID      int64
	Description string
	CreatedAt   time.Time
}
