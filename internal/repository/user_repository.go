package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pizzastack/pizza-service/internal/model"
	"github.com/pizzastack/pizza-service/internal/utils"
)

// UserRepo owns the 'user' and 'userRole' tables. Authorization is not
// enforced here; callers must check permissions before mutating calls.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password, inserts the user row and one role-binding
// row per role. Franchisee roles reference a franchise by name and are
// resolved to its id first; an unknown name aborts with
// ErrUnknownFranchise before the user row is written. The returned user
// carries the generated id and a cleared password.
func (r *UserRepo) Create(ctx context.Context, u model.User, cost int) (*model.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(u.Password, cost)
	if err != nil {
		return nil, err
	}

	roles := make([]model.UserRole, len(u.Roles))
	for i, role := range u.Roles {
		if role.Role == model.RoleFranchisee && role.ObjectID == 0 {
			id, err := r.franchiseIDByName(ctx, role.Object)
			if err != nil {
				return nil, err
			}
			role.ObjectID = id
		}
		roles[i] = role
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO user (name, email, password) VALUES (?, ?, ?)",
		u.Name, u.Email, hash)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = uint64(id)

	for _, role := range roles {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, ?)",
			u.ID, role.Role, role.ObjectID); err != nil {
			return nil, err
		}
	}

	u.Roles = roles
	u.Password = ""
	return &u, nil
}

// Verify fetches the user by email and compares the password against
// the stored bcrypt hash. On match the user is returned with roles
// populated and the hash cleared; otherwise ErrInvalidCredentials.
func (r *UserRepo) Verify(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	var hash string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password FROM user WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}
	if u.Roles, err = r.rolesForUser(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user with roles populated and the hash cleared.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email FROM user WHERE id = ? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if u.Roles, err = r.rolesForUser(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update issues a single parameterized UPDATE covering whichever of
// name, email and password were provided, re-hashing the password when
// present, then re-fetches the user. The statement executes even when
// the provided values match the stored ones.
func (r *UserRepo) Update(ctx context.Context, userID uint64, name, email, password string, cost int) (*model.User, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if name != "" {
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if email != "" {
		sets = append(sets, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(email)))
	}
	if password != "" {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "password = ?")
		args = append(args, hash)
	}
	if len(sets) > 0 {
		q := fmt.Sprintf("UPDATE user SET %s WHERE id = ?", strings.Join(sets, ", "))
		args = append(args, userID)
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, userID)
}

// List returns one page of users plus a flag signalling further pages.
// The page is zero-based; one extra row is fetched to compute the flag.
func (r *UserRepo) List(ctx context.Context, page, limit int) ([]model.User, bool, error) {
	if page < 0 {
		page = 0
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, email FROM user ORDER BY id LIMIT ? OFFSET ?",
		limit+1, page*limit)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, false, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	more := len(out) > limit
	if more {
		out = out[:limit]
	}
	for i := range out {
		if out[i].Roles, err = r.rolesForUser(ctx, out[i].ID); err != nil {
			return nil, false, err
		}
	}
	return out, more, nil
}

// rolesForUser loads all role-bindings for a user.
func (r *UserRepo) rolesForUser(ctx context.Context, userID uint64) ([]model.UserRole, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT role, objectId FROM userRole WHERE userId = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []model.UserRole
	for rows.Next() {
		var ur model.UserRole
		if err := rows.Scan(&ur.Role, &ur.ObjectID); err != nil {
			return nil, err
		}
		roles = append(roles, ur)
	}
	return roles, rows.Err()
}

// franchiseIDByName resolves a franchise name to its id for franchisee
// role-bindings.
func (r *UserRepo) franchiseIDByName(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM franchise WHERE name = ? LIMIT 1", name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrUnknownFranchise, name)
		}
		return 0, err
	}
	return id, nil
}
