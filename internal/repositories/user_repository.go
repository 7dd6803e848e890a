package repositories

import (
	"database/sql"
	"fmt"

	"rentflow/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, role_id, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		user.Email, user.Name, user.PasswordHash, user.RoleID, user.OrganizationID, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	query := `SELECT id, email, name, password_hash, role_id, organization_id, created_at
		FROM users WHERE id = $1`
	u := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.OrganizationID, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, name, password_hash, role_id, organization_id, created_at
		FROM users WHERE email = $1`
	u := &models.User{}
	err := r.db.QueryRow(query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.RoleID, &u.OrganizationID, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
