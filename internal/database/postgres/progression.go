package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkup-app/linkup-engine/internal/domain"
	"github.com/linkup-app/linkup-engine/internal/repository"
)

// ProgressionRepository implements the progression repository for PostgreSQL.
//
// Writes are optimistic: the users row carries a version column and every
// ApplyProgression runs a version-guarded UPDATE inside one transaction with
// the action log append, achievement inserts and inventory inserts. Losing
// the version race rolls the whole transaction back with ErrVersionConflict.
type ProgressionRepository struct {
	db *pgxpool.Pool
}

// NewProgressionRepository creates a new ProgressionRepository
func NewProgressionRepository(db *pgxpool.Pool) *ProgressionRepository {
	return &ProgressionRepository{db: db}
}

var _ repository.Progression = (*ProgressionRepository)(nil)

// GetRecord loads a user's full progression record.
func (r *ProgressionRepository) GetRecord(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	rec := &domain.ProgressionRecord{
		UserID:               userID,
		Skills:               make(map[domain.SkillCategory]int64),
		UnlockedAchievements: make(map[domain.AchievementID]bool),
	}

	query := `
		SELECT username, total_xp, level, balance, check_in_streak, last_check_in, version
		FROM users
		WHERE user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&rec.Username,
		&rec.TotalXP,
		&rec.Level,
		&rec.Balance,
		&rec.CheckInStreak,
		&rec.LastCheckIn,
		&rec.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.loadSkills(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.loadAchievements(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.loadInventory(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (r *ProgressionRepository) loadSkills(ctx context.Context, rec *domain.ProgressionRecord) error {
	rows, err := r.db.Query(ctx, `SELECT skill, xp FROM user_skills WHERE user_id = $1`, rec.UserID)
	if err != nil {
		return fmt.Errorf("failed to get skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var skill domain.SkillCategory
		var xp int64
		if err := rows.Scan(&skill, &xp); err != nil {
			return fmt.Errorf("failed to scan skill: %w", err)
		}
		rec.Skills[skill] = xp
	}
	return rows.Err()
}

func (r *ProgressionRepository) loadAchievements(ctx context.Context, rec *domain.ProgressionRecord) error {
	rows, err := r.db.Query(ctx, `SELECT achievement_id FROM user_achievements WHERE user_id = $1`, rec.UserID)
	if err != nil {
		return fmt.Errorf("failed to get achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id domain.AchievementID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan achievement: %w", err)
		}
		rec.UnlockedAchievements[id] = true
	}
	return rows.Err()
}

func (r *ProgressionRepository) loadInventory(ctx context.Context, rec *domain.ProgressionRecord) error {
	query := `
		SELECT item_id, item_type, value, COALESCE(case_id, ''), is_active, obtained_at
		FROM user_items
		WHERE user_id = $1
		ORDER BY obtained_at
	`
	rows, err := r.db.Query(ctx, query, rec.UserID)
	if err != nil {
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.Type, &item.Value, &item.CaseID, &item.IsActive, &item.ObtainedAt); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		rec.Inventory = append(rec.Inventory, item)
	}
	return rows.Err()
}

// CreateRecord inserts a fresh record for a first-time user.
func (r *ProgressionRepository) CreateRecord(ctx context.Context, rec *domain.ProgressionRecord) error {
	query := `
		INSERT INTO users (user_id, username, total_xp, level, balance, check_in_streak, last_check_in, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query,
		rec.UserID, rec.Username, rec.TotalXP, rec.Level, rec.Balance,
		rec.CheckInStreak, rec.LastCheckIn, rec.Version)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s already exists", domain.ErrVersionConflict, rec.UserID)
	}
	return nil
}

// ApplyProgression commits the record and its side effects atomically,
// guarded by the expected version.
func (r *ProgressionRepository) ApplyProgression(ctx context.Context, rec *domain.ProgressionRecord, expectedVersion int64, change domain.ProgressionChange) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `
		UPDATE users
		SET total_xp = $1, level = $2, balance = $3, check_in_streak = $4,
		    last_check_in = $5, version = $6, updated_at = NOW()
		WHERE user_id = $7 AND version = $8
	`
	tag, err := tx.Exec(ctx, update,
		rec.TotalXP, rec.Level, rec.Balance, rec.CheckInStreak,
		rec.LastCheckIn, rec.Version, rec.UserID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyWriteMiss(ctx, rec.UserID, expectedVersion)
	}

	for skill, xp := range rec.Skills {
		upsert := `
			INSERT INTO user_skills (user_id, skill, xp)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, skill) DO UPDATE SET xp = EXCLUDED.xp
		`
		if _, err := tx.Exec(ctx, upsert, rec.UserID, skill, xp); err != nil {
			return fmt.Errorf("failed to upsert skill %s: %w", skill, err)
		}
	}

	if change.Action != nil {
		insert := `
			INSERT INTO action_events (user_id, action, created_at)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.Exec(ctx, insert, change.Action.UserID, change.Action.Action, change.Action.CreatedAt); err != nil {
			return fmt.Errorf("failed to append action log: %w", err)
		}
	}

	// The (user_id, achievement_id) uniqueness constraint makes unlocking
	// exactly-once even if two writers somehow both carry the same unlock.
	for _, id := range change.Unlocked {
		insert := `
			INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_id, achievement_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, insert, rec.UserID, id); err != nil {
			return fmt.Errorf("failed to insert achievement %s: %w", id, err)
		}
	}

	for _, item := range change.NewItems {
		insert := `
			INSERT INTO user_items (item_id, user_id, item_type, value, case_id, is_active, obtained_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		`
		if _, err := tx.Exec(ctx, insert, item.ID, rec.UserID, item.Type, item.Value, item.CaseID, item.IsActive, item.ObtainedAt); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.Type, err)
		}
	}

	return tx.Commit(ctx)
}

// classifyWriteMiss distinguishes a lost version race from a missing user.
func (r *ProgressionRepository) classifyWriteMiss(ctx context.Context, userID string, expectedVersion int64) error {
	var current int64
	err := r.db.QueryRow(ctx, `SELECT version FROM users WHERE user_id = $1`, userID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	return fmt.Errorf("%w: user %s expected version %d, have %d",
		domain.ErrVersionConflict, userID, expectedVersion, current)
}

// CountActions returns the user's total count of one action type.
func (r *ProgressionRepository) CountActions(ctx context.Context, userID string, action domain.ActionType) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM action_events WHERE user_id = $1 AND action = $2`
	if err := r.db.QueryRow(ctx, query, userID, action).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}

// ListUnlocked returns the user's unlocked achievements, oldest first.
func (r *ProgressionRepository) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	query := `
		SELECT user_id, achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var out []domain.UnlockedAchievement
	for rows.Next() {
		var ua domain.UnlockedAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		out = append(out, ua)
	}
	return out, rows.Err()
}
