package store

import (
	"database/sql"

	"github.com/pinky890114/Xianluo/internal/models"
)

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, password, scope FROM users WHERE username = ?`
	row := s.DB.QueryRow(query, username)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &user.Scope); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser is mainly for seeding admin accounts from the CLI. Scope is the
// storefront tag ("nocy" or "general") whose orders this admin manages.
func (s *Store) CreateUser(username, hashedPassword, scope string) error {
	query := `INSERT INTO users (username, password, scope) VALUES (?, ?, ?)`
	_, err := s.DB.Exec(query, username, hashedPassword, scope)
	return err
}
