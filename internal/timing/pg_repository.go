package timing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// EnsureSchema creates the rules table if it does not exist yet.
func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS medication_timing_rules (
			position            int PRIMARY KEY,
			key                 text NOT NULL UNIQUE,
			with_food           bool,
			time_of_day         text NOT NULL DEFAULT '',
			separation_minutes  int NOT NULL DEFAULT 0,
			avoid_foods         text[] NOT NULL DEFAULT '{}',
			require_foods       text[] NOT NULL DEFAULT '{}',
			before_meal_minutes int NOT NULL DEFAULT 0,
			after_meal_minutes  int NOT NULL DEFAULT 0,
			acidic_environment  bool NOT NULL DEFAULT false,
			fat_soluble         bool NOT NULL DEFAULT false,
			drowsiness          bool NOT NULL DEFAULT false,
			photosensitivity    bool NOT NULL DEFAULT false,
			alcohol_interaction bool NOT NULL DEFAULT false
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure timing rules schema: %w", err)
	}
	return nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	var withFood *bool

	err := row.Scan(
		&e.Key,
		&withFood,
		&e.Data.TimeOfDay,
		&e.Data.SeparationMinutes,
		&e.Data.AvoidFoods,
		&e.Data.RequireFoods,
		&e.Data.BeforeMealMinutes,
		&e.Data.AfterMealMinutes,
		&e.Data.AcidicEnvironment,
		&e.Data.FatSoluble,
		&e.Data.Drowsiness,
		&e.Data.Photosensitivity,
		&e.Data.AlcoholInteraction,
	)
	if err != nil {
		return Entry{}, err
	}

	e.Data.WithFood = withFood
	return e, nil
}

func (r *PgRepository) ListEntries(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT key, with_food, time_of_day, separation_minutes,
		       avoid_foods, require_foods,
		       before_meal_minutes, after_meal_minutes,
		       acidic_environment, fat_soluble, drowsiness,
		       photosensitivity, alcohol_interaction
		FROM medication_timing_rules
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("list timing rules: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timing rule: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) UpsertEntry(ctx context.Context, position int, e Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medication_timing_rules (
			position, key, with_food, time_of_day, separation_minutes,
			avoid_foods, require_foods,
			before_meal_minutes, after_meal_minutes,
			acidic_environment, fat_soluble, drowsiness,
			photosensitivity, alcohol_interaction
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (key) DO UPDATE SET
			position            = EXCLUDED.position,
			with_food           = EXCLUDED.with_food,
			time_of_day         = EXCLUDED.time_of_day,
			separation_minutes  = EXCLUDED.separation_minutes,
			avoid_foods         = EXCLUDED.avoid_foods,
			require_foods       = EXCLUDED.require_foods,
			before_meal_minutes = EXCLUDED.before_meal_minutes,
			after_meal_minutes  = EXCLUDED.after_meal_minutes,
			acidic_environment  = EXCLUDED.acidic_environment,
			fat_soluble         = EXCLUDED.fat_soluble,
			drowsiness          = EXCLUDED.drowsiness,
			photosensitivity    = EXCLUDED.photosensitivity,
			alcohol_interaction = EXCLUDED.alcohol_interaction
	`,
		position, e.Key, e.Data.WithFood, string(e.Data.TimeOfDay), e.Data.SeparationMinutes,
		orEmpty(e.Data.AvoidFoods), orEmpty(e.Data.RequireFoods),
		e.Data.BeforeMealMinutes, e.Data.AfterMealMinutes,
		e.Data.AcidicEnvironment, e.Data.FatSoluble, e.Data.Drowsiness,
		e.Data.Photosensitivity, e.Data.AlcoholInteraction,
	)
	if err != nil {
		return fmt.Errorf("upsert timing rule %q: %w", e.Key, err)
	}

	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
