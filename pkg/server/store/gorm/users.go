package gorm

import (
	"errors"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// GetUserByEmail looks up a user by normalized email.
func (s *UsersStore) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("email = ?", model.NormalizeEmail(email)).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// CreateUser inserts a user.
func (s *UsersStore) CreateUser(user *model.User) error {
	err := s.db.Exec(
		`INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, NOW())`,
		user.ID, model.NormalizeEmail(user.Email), user.PasswordHash, user.Role,
	).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return store.ErrUserExists
		}
		return err
	}
	return nil
}

// UpdatePasswordHash replaces the password hash of a user.
func (s *UsersStore) UpdatePasswordHash(email string, hash string) error {
	tx := s.db.Exec(`UPDATE users SET password_hash = ? WHERE email = ?`, hash, model.NormalizeEmail(email))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// CountUsers returns the number of users.
func (s *UsersStore) CountUsers() (int64, error) {
	var count int64
	err := s.db.Raw(`SELECT COUNT(*) FROM users`).Scan(&count).Error
	return count, err
}
