package seed

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/m/domain"
)

// EnsureAdmin creates the bootstrap administrator account if it does not
// exist yet. Empty credentials skip the bootstrap entirely.
func EnsureAdmin(db *sqlx.DB, email, username, password string) {
	if email == "" || password == "" {
		return
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		username = "admin"
	}

	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		log.Printf("admin seed: unable to check for existing account: %v", err)
		return
	}
	if exists {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("admin seed: unable to hash password: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("admin seed: unable to start transaction: %v", err)
		return
	}

	var id int64
	err = tx.QueryRowx(`INSERT INTO users (username, email, password, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, hashed, domain.Now()).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		log.Printf("admin seed: unable to insert account: %v", err)
		return
	}
	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, id, domain.RoleAdmin); err != nil {
		_ = tx.Rollback()
		log.Printf("admin seed: unable to assign role: %v", err)
		return
	}
	if err := tx.Commit(); err != nil {
		log.Printf("admin seed: unable to commit: %v", err)
		return
	}
	log.Printf("seeded administrator account %s", email)
}
