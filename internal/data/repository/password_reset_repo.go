package repository

import (
	"context"
	"fmt"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entity.PasswordReset) error
	FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	// ConsumeAndUpdatePassword updates the user's password and deletes the
	// consumed token in a single transaction, so a token can never be
	// replayed after a partial failure.
	ConsumeAndUpdatePassword(ctx context.Context, resetID, userID uuid.UUID, passwordHash string) error
}

type passwordResetRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPasswordResetRepository(db database.PgxIface, log *zap.Logger) PasswordResetRepository {
	return &passwordResetRepository{
		db:  db,
		log: log.With(zap.String("repository", "password_reset")),
	}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		reset.ID,
		reset.UserID,
		reset.Token,
		reset.ExpiresAt,
		reset.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create password reset",
			zap.Error(err),
			zap.String("user_id", reset.UserID.String()),
		)
		return fmt.Errorf("create password reset for user %s: %w", reset.UserID.String(), err)
	}

	return nil
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM password_resets
		WHERE token = $1
	`

	var reset entity.PasswordReset
	err := r.db.QueryRow(ctx, query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find password reset by token", zap.Error(err))
		return nil, fmt.Errorf("find password reset by token: %w", err)
	}

	return &reset, nil
}

func (r *passwordResetRepository) ConsumeAndUpdatePassword(ctx context.Context, resetID, userID uuid.UUID, passwordHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin consume reset tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		r.log.Error("Failed to update password in reset",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("update password for user %s: %w", userID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID.String())
	}

	result, err = tx.Exec(ctx, `DELETE FROM password_resets WHERE id = $1`, resetID)
	if err != nil {
		r.log.Error("Failed to delete consumed reset token",
			zap.Error(err),
			zap.String("reset_id", resetID.String()),
		)
		return fmt.Errorf("delete password reset %s: %w", resetID.String(), err)
	}
	if result.RowsAffected() == 0 {
		// Another request consumed the token between lookup and update.
		return fmt.Errorf("password reset %s already consumed", resetID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit consume reset tx: %w", err)
	}

	r.log.Info("Password reset consumed",
		zap.String("user_id", userID.String()),
		zap.String("reset_id", resetID.String()))
	return nil
}
