package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mealsnap/backend/internal/domain"
)

// Timestamps are stored as UTC RFC3339 at second precision so that string
// comparison in SQL matches chronological order.
const timeLayout = time.RFC3339

const schema = `
CREATE TABLE IF NOT EXISTS meals (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	meal_type      TEXT NOT NULL,
	ate_at         TEXT NOT NULL,
	total_calories REAL NOT NULL,
	total_protein  REAL NOT NULL,
	total_carbs    REAL NOT NULL,
	total_fat      REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_user_date ON meals(user_id, ate_at);

CREATE TABLE IF NOT EXISTS meal_foods (
	id            TEXT PRIMARY KEY,
	meal_id       TEXT NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	name          TEXT NOT NULL,
	portion_size  TEXT NOT NULL,
	portion_grams REAL NOT NULL,
	calories      INTEGER NOT NULL,
	protein       REAL NOT NULL,
	carbs         REAL NOT NULL,
	fat           REAL NOT NULL,
	confidence    REAL NOT NULL,
	gi_value      INTEGER NOT NULL DEFAULT 0,
	gi_category   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_meal_foods_meal ON meal_foods(meal_id);
`

// SQLiteStore persists meal logs in a local SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc sqlite serializes writers; a single connection avoids
	// SQLITE_BUSY under concurrent handlers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveMeal implements domain.MealRepository. The meal row and its food rows
// are written in one transaction.
func (s *SQLiteStore) SaveMeal(ctx context.Context, entry *domain.MealEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil meal entry", domain.ErrStorageFailure)
	}
	if entry.UserID == "" {
		return fmt.Errorf("%w: meal entry has no user", domain.ErrStorageFailure)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO meals (id, user_id, meal_type, ate_at, total_calories, total_protein, total_carbs, total_fat)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		string(entry.MealType),
		entry.AteAt.UTC().Format(timeLayout),
		entry.Totals.Calories,
		entry.Totals.Protein,
		entry.Totals.Carbs,
		entry.Totals.Fat,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	for i, food := range entry.Foods {
		foodID := food.ID
		if foodID == "" {
			foodID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO meal_foods (id, meal_id, position, name, portion_size, portion_grams, calories, protein, carbs, fat, confidence, gi_value, gi_category)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			foodID,
			entry.ID,
			i,
			food.Name,
			food.PortionSize,
			food.PortionGrams,
			food.Calories,
			food.Protein,
			food.Carbs,
			food.Fat,
			food.Confidence,
			food.GIValue,
			food.GICategory,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// MealsByDate implements domain.MealRepository. Meals come back newest first.
func (s *SQLiteStore) MealsByDate(ctx context.Context, userID string, day time.Time) ([]domain.MealEntry, error) {
	start, end := dayWindow(day)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, meal_type, ate_at, total_calories, total_protein, total_carbs, total_fat
		 FROM meals
		 WHERE user_id = ? AND ate_at >= ? AND ate_at < ?
		 ORDER BY ate_at DESC`,
		userID,
		start.UTC().Format(timeLayout),
		end.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	meals := make([]domain.MealEntry, 0)
	for rows.Next() {
		var entry domain.MealEntry
		var mealType, ateAt string
		if err := rows.Scan(&entry.ID, &entry.UserID, &mealType, &ateAt,
			&entry.Totals.Calories, &entry.Totals.Protein, &entry.Totals.Carbs, &entry.Totals.Fat); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
		}
		entry.MealType = domain.MealType(mealType)
		parsed, err := time.Parse(timeLayout, ateAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", domain.ErrStorageFailure, ateAt)
		}
		entry.AteAt = parsed
		meals = append(meals, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	for i := range meals {
		foods, err := s.mealFoods(ctx, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].Foods = foods
	}

	return meals, nil
}

// mealFoods loads the food rows for one meal in their original order
func (s *SQLiteStore) mealFoods(ctx context.Context, mealID string) ([]domain.RecognizedFoodItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, portion_size, portion_grams, calories, protein, carbs, fat, confidence, gi_value, gi_category
		 FROM meal_foods
		 WHERE meal_id = ?
		 ORDER BY position`,
		mealID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	foods := make([]domain.RecognizedFoodItem, 0)
	for rows.Next() {
		var f domain.RecognizedFoodItem
		if err := rows.Scan(&f.ID, &f.Name, &f.PortionSize, &f.PortionGrams,
			&f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Confidence, &f.GIValue, &f.GICategory); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	return foods, nil
}

// DailySummary implements domain.MealRepository
func (s *SQLiteStore) DailySummary(ctx context.Context, userID string, day time.Time) (*domain.DailySummary, error) {
	start, end := dayWindow(day)

	var count int
	var calories, protein, carbs, fat float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(total_calories), 0),
		        COALESCE(SUM(total_protein), 0),
		        COALESCE(SUM(total_carbs), 0),
		        COALESCE(SUM(total_fat), 0)
		 FROM meals
		 WHERE user_id = ? AND ate_at >= ? AND ate_at < ?`,
		userID,
		start.UTC().Format(timeLayout),
		end.UTC().Format(timeLayout),
	).Scan(&count, &calories, &protein, &carbs, &fat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	return &domain.DailySummary{
		Date:      start.Format("2006-01-02"),
		MealCount: count,
		Totals: domain.MacroTotals{
			Calories: domain.Round1(calories),
			Protein:  domain.Round1(protein),
			Carbs:    domain.Round1(carbs),
			Fat:      domain.Round1(fat),
		},
	}, nil
}
