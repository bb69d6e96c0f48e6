package repository

import (
	"context"
	"time"

	"github.com/abisalde/inventory-service/internal/model"
)

func (r *userRepository) AppendActivity(ctx context.Context, userID int64, description string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO USER_ACTIVITY (USER_ID, ACT_DESC, ACT_CREATED_AT) VALUES (?, ?, ?)`,
		userID, description, dbTime(at),
	)
	return translate(err)
}

func (r *userRepository) ListActivity(ctx context.Context, userID int64) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ACT_ID, USER_ID, ACT_DESC, ACT_CREATED_AT FROM USER_ACTIVITY WHERE USER_ID = ? ORDER BY ACT_ID`,
		userID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Description, &a.CreatedAt); err != nil {
			return nil, translate(err)
		}
		activities = append(activities, a)
	}
	return activities, translate(rows.Err())
}
