package service

import (
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/m/domain"
	"tasktracker/m/internal/token"
)

// AuthService handles registration and login. Every failure, expected or
// not, is reported through Result; errors never propagate to callers.
// Unexpected errors are logged and reduced to a generic message.
type AuthService struct {
	db       *sqlx.DB
	secret   string
	tokenTTL time.Duration
}

func NewAuth(db *sqlx.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: secret, tokenTTL: tokenTTL}
}

// Result is the outcome of an auth operation.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token,omitempty"`
	User    *domain.Profile `json:"user,omitempty"`
}

func failure(message string) Result {
	return Result{Message: message}
}

// Register creates a user with the "User" role and issues a bearer token
// for it.
func (s *AuthService) Register(email, username, password, confirmPassword string) Result {
	if password != confirmPassword {
		return failure("passwords do not match")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var exists bool
	if err := s.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		log.Printf("auth service: register: check email: %v", err)
		return failure("an error occurred during registration")
	}
	if exists {
		return failure("user already exists")
	}

	if errs := validatePassword(password); len(errs) > 0 {
		return failure(strings.Join(errs, "; "))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("auth service: register: hash password: %v", err)
		return failure("an error occurred during registration")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Printf("auth service: register: begin: %v", err)
		return failure("an error occurred during registration")
	}

	var id int64
	err = tx.QueryRowx(`INSERT INTO users (username, email, password, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, hashed, domain.Now()).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return failure("user already exists")
		}
		log.Printf("auth service: register: insert user: %v", err)
		return failure("an error occurred during registration")
	}
	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, id, domain.RoleUser); err != nil {
		_ = tx.Rollback()
		log.Printf("auth service: register: assign role: %v", err)
		return failure("an error occurred during registration")
	}
	if err := tx.Commit(); err != nil {
		log.Printf("auth service: register: commit: %v", err)
		return failure("an error occurred during registration")
	}

	roles := []string{domain.RoleUser}
	signed, err := token.Issue(s.secret, s.tokenTTL, id, email, roles)
	if err != nil {
		log.Printf("auth service: register: issue token: %v", err)
		return failure("an error occurred during registration")
	}

	return Result{
		Success: true,
		Message: "registration successful",
		Token:   signed,
		User:    &domain.Profile{ID: id, Email: email, Username: username, Roles: roles},
	}
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the identical message.
func (s *AuthService) Login(email, password string) Result {
	email = strings.ToLower(strings.TrimSpace(email))

	var user domain.User
	err := s.db.Get(&user, `SELECT id, username, email, password, created_at, updated_at FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return failure("invalid email or password")
	}
	if err != nil {
		log.Printf("auth service: login: load user: %v", err)
		return failure("an error occurred during login")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return failure("invalid email or password")
	}

	roles, err := s.roles(user.ID)
	if err != nil {
		log.Printf("auth service: login: load roles: %v", err)
		return failure("an error occurred during login")
	}

	signed, err := token.Issue(s.secret, s.tokenTTL, user.ID, user.Email, roles)
	if err != nil {
		log.Printf("auth service: login: issue token: %v", err)
		return failure("an error occurred during login")
	}

	return Result{
		Success: true,
		Message: "login successful",
		Token:   signed,
		User:    &domain.Profile{ID: user.ID, Email: user.Email, Username: user.Username, Roles: roles},
	}
}

// ResetPassword replaces the caller's stored credential.
func (s *AuthService) ResetPassword(userID int64, newPassword string) Result {
	if errs := validatePassword(newPassword); len(errs) > 0 {
		return failure(strings.Join(errs, "; "))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("auth service: reset password: hash: %v", err)
		return failure("an error occurred during password reset")
	}
	if _, err := s.db.Exec(`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`, hashed, domain.Now(), userID); err != nil {
		log.Printf("auth service: reset password: update: %v", err)
		return failure("an error occurred during password reset")
	}
	return Result{Success: true, Message: "password updated"}
}

func (s *AuthService) roles(userID int64) ([]string, error) {
	roles := []string{}
	if err := s.db.Select(&roles, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID); err != nil {
		return nil, err
	}
	return roles, nil
}

func validatePassword(password string) []string {
	var errs []string
	if len(password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	return errs
}
