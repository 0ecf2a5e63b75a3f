package repository

import (
	"context"
	"errors"
	"fmt"

	"pizza-service/internal/data/entity"
	"pizza-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	AddRole(ctx context.Context, userID int64, role entity.RoleAssignment) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts the user and its role assignments in one transaction.
// A taken email surfaces as ErrDuplicate.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := database.WithTx(ctx, ur.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (name, email, password)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		for _, role := range user.Roles.List() {
			if err := insertRole(ctx, tx, user.ID, role); err != nil {
				return err
			}
		}
		return nil
	})

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return ur.findOne(ctx, query, id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return ur.findOne(ctx, query, email)
}

func (ur *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := ur.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find user %v: %w", arg, err)
	}

	roles, err := findRoles(ctx, ur.db, user.ID)
	if err != nil {
		ur.log.Error("Failed to load user roles", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("load roles for user %d: %w", user.ID, err)
	}
	user.Roles = roles

	return &user, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := ur.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
	).Scan(&user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}

	return nil
}

// AddRole grants a role; granting an existing assignment is a no-op
func (ur *userRepository) AddRole(ctx context.Context, userID int64, role entity.RoleAssignment) error {
	if err := insertRole(ctx, ur.db, userID, role); err != nil {
		ur.log.Error("Failed to add role",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("role", string(role.Role)),
			zap.Int64("object_id", role.ObjectID),
		)
		return fmt.Errorf("add role %s to user %d: %w", role.Role, userID, err)
	}
	return nil
}

func insertRole(ctx context.Context, q querier, userID int64, role entity.RoleAssignment) error {
	query := `
		INSERT INTO user_roles (user_id, role, object_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, role, object_id) DO NOTHING
	`
	_, err := q.Exec(ctx, query, userID, role.Role, role.ObjectID)
	return err
}

func findRoles(ctx context.Context, q querier, userID int64) (entity.RoleSet, error) {
	query := `
		SELECT role, object_id
		FROM user_roles
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return entity.RoleSet{}, err
	}
	defer rows.Close()

	var assignments []entity.RoleAssignment
	for rows.Next() {
		var a entity.RoleAssignment
		if err := rows.Scan(&a.Role, &a.ObjectID); err != nil {
			return entity.RoleSet{}, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return entity.RoleSet{}, err
	}

	return entity.NewRoleSet(assignments...), nil
}
