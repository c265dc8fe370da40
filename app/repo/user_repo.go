package repo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByUserID(id uuid.UUID) (*model.User, error)
	Update(user *model.User) error
	AddBlacklistToken(token model.BlacklistedToken) error
	IsTokenBlacklisted(token string) (bool, error)
	ClearRefreshToken(userID uuid.UUID) error
	FindRoleByName(name string) (*model.Role, error)
}

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) Create(user *model.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, role_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	err := r.DB.QueryRow(
		query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.RoleID,
		true,
		now,
		now,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *UserRepo) FindByEmail(email string) (*model.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.full_name, u.role_id, u.is_active, u.created_at, u.updated_at, u.refresh_token,
		       r.id, r.name, r.description
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.email = $1 AND u.is_active = true`

	return r.scanUser(r.DB.QueryRow(query, email))
}

func (r *UserRepo) FindByUserID(id uuid.UUID) (*model.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.full_name, u.role_id, u.is_active, u.created_at, u.updated_at, u.refresh_token,
		       r.id, r.name, r.description
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.id = $1 AND u.is_active = true`

	return r.scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var roleID, roleName, roleDesc sql.NullString
	var refreshToken sql.NullString

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.RoleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &refreshToken,
		&roleID, &roleName, &roleDesc,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if refreshToken.Valid {
		user.RefreshToken = refreshToken.String
	}

	if roleID.Valid {
		user.Role.ID, _ = uuid.Parse(roleID.String)
		user.Role.Name = roleName.String
		user.Role.Description = roleDesc.String
	}

	if user.RoleID != nil {
		permissions, err := r.getPermissionsForRole(*user.RoleID)
		if err == nil {
			user.Role.Permissions = permissions
		}
	}

	return &user, nil
}

func (r *UserRepo) getPermissionsForRole(roleID uuid.UUID) ([]model.Permission, error) {
	query := `
		SELECT p.id, p.name, p.resource, p.action, p.description
		FROM permissions p
		JOIN role_permissions rp ON p.id = rp.permission_id
		WHERE rp.role_id = $1`

	rows, err := r.DB.Query(query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []model.Permission
	for rows.Next() {
		var p model.Permission
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Resource, &p.Action, &desc); err != nil {
			return nil, err
		}
		if desc.Valid {
			p.Description = desc.String
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

func (r *UserRepo) Update(user *model.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, full_name = $3, refresh_token = $4, updated_at = $5
		WHERE id = $6`

	_, err := r.DB.Exec(query, user.Email, user.PasswordHash, user.FullName, user.RefreshToken, time.Now(), user.ID)
	return err
}

func (r *UserRepo) AddBlacklistToken(token model.BlacklistedToken) error {
	query := `INSERT INTO blacklisted_tokens (token, expires_at, created_at) VALUES ($1, $2, $3)`
	_, err := r.DB.Exec(query, token.Token, token.ExpiresAt, time.Now())
	return err
}

func (r *UserRepo) IsTokenBlacklisted(token string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token = $1)`, token).Scan(&exists)
	return exists, err
}

func (r *UserRepo) ClearRefreshToken(userID uuid.UUID) error {
	query := `UPDATE users SET refresh_token = '' WHERE id = $1`
	_, err := r.DB.Exec(query, userID)
	return err
}

func (r *UserRepo) FindRoleByName(name string) (*model.Role, error) {
	query := `SELECT id, name, description, created_at FROM roles WHERE name = $1`
	var role model.Role
	var desc sql.NullString
	err := r.DB.QueryRow(query, name).Scan(&role.ID, &role.Name, &desc, &role.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if desc.Valid {
		role.Description = desc.String
	}
	return &role, nil
}
