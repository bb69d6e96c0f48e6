package repository

import (
	"context"
	"time"

	"github.com/abisalde/inventory-service/internal/model"
)

func (r *userRepository) DeleteCodes(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM USER_CODE WHERE USER_ID = ?`, userID)
	if err != nil {
		return 0, translate(err)
	}
	n, err := res.RowsAffected()
	return n, translate(err)
}

func (r *userRepository) InsertCode(ctx context.Context, userID int64, code string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO USER_CODE (USER_ID, CODE_VALUE, CODE_EXPIRES_AT) VALUES (?, ?, ?)`,
		userID, code, dbTime(expiresAt),
	)
	return translate(err)
}

// FindLiveCode returns the code row for email whose value matches and whose
// expiry is still ahead of now.
func (r *userRepository) FindLiveCode(ctx context.Context, email, code string, now time.Time) (*model.VerificationCode, error) {
	vc := &model.VerificationCode{}
	err := r.db.QueryRowContext(ctx,
		`SELECT c.CODE_ID, c.USER_ID, c.CODE_VALUE, c.CODE_EXPIRES_AT
		 FROM USER_CODE c
		 JOIN USER u ON u.USER_ID = c.USER_ID
		 WHERE u.USER_EMAIL = ? AND c.CODE_VALUE = ? AND c.CODE_EXPIRES_AT > ?
		 ORDER BY c.CODE_ID DESC
		 LIMIT 1`,
		email, code, dbTime(now),
	).Scan(&vc.ID, &vc.UserID, &vc.Code, &vc.ExpiresAt)
	if err != nil {
		return nil, translate(err)
	}
	return vc, nil
}

func (r *userRepository) ListCodes(ctx context.Context, userID int64) ([]model.VerificationCode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT CODE_ID, USER_ID, CODE_VALUE, CODE_EXPIRES_AT FROM USER_CODE WHERE USER_ID = ? ORDER BY CODE_ID`,
		userID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var codes []model.VerificationCode
	for rows.Next() {
		var vc model.VerificationCode
		if err := rows.Scan(&vc.ID, &vc.UserID, &vc.Code, &vc.ExpiresAt); err != nil {
			return nil, translate(err)
		}
		codes = append(codes, vc)
	}
	return codes, translate(rows.Err())
}

func (r *userRepository) DeleteCode(ctx context.Context, codeID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM USER_CODE WHERE CODE_ID = ?`, codeID)
	if err != nil {
		return translate(err)
	}
	return expectRows(res)
}
