package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/abisalde/inventory-service/internal/database"
	"github.com/abisalde/inventory-service/internal/model"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	CreatePlaceholder(ctx context.Context, input *model.PlaceholderUser, createdAt time.Time) (int64, error)
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	FinalizeProfile(ctx context.Context, userID int64, profile *model.Profile) error
	MarkEmailVerified(ctx context.Context, userID int64) error
	DeleteByID(ctx context.Context, userID int64) error
	DeletePlaceholderByEmail(ctx context.Context, email string) (int64, error)

	DeleteCodes(ctx context.Context, userID int64) (int64, error)
	InsertCode(ctx context.Context, userID int64, code string, expiresAt time.Time) error
	FindLiveCode(ctx context.Context, email, code string, now time.Time) (*model.VerificationCode, error)
	ListCodes(ctx context.Context, userID int64) ([]model.VerificationCode, error)
	DeleteCode(ctx context.Context, codeID int64) error

	AppendActivity(ctx context.Context, userID int64, description string, at time.Time) error
	ListActivity(ctx context.Context, userID int64) ([]model.Activity, error)
}

const userColumns = `USER_ID, USER_USERNAME, USER_PASSWORD, USER_FIRST_NAME, USER_INITIAL, USER_LAST_NAME,
	USER_PHONE, USER_EMAIL, USER_ADDRESS, USER_CITY, STATE_CODE, USER_ZIP,
	USER_STATUS, USER_ROLE, USER_EMAIL_VERIFIED, USER_CREATED_AT`

type userRepository struct {
	db database.DBTX
}

func NewUserRepository(db database.DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM USER WHERE USER_ID = ?`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM USER WHERE USER_EMAIL = ?`, email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM USER WHERE LOWER(USER_USERNAME) = LOWER(?)`, username)
}

func (r *userRepository) getOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	u := &model.User{}
	var status, role string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.Initial, &u.LastName,
		&u.Phone, &u.Email, &u.Address, &u.City, &u.StateCode, &u.Zip,
		&status, &role, &u.IsEmailVerified, &u.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	u.Status = model.UserStatus(status)
	u.Role = model.UserRole(role)
	return u, nil
}

func (r *userRepository) CreatePlaceholder(ctx context.Context, input *model.PlaceholderUser, createdAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO USER (USER_USERNAME, USER_PASSWORD, USER_EMAIL, USER_STATUS, USER_ROLE, USER_EMAIL_VERIFIED, USER_CREATED_AT)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Username, input.PasswordHash, input.Email,
		string(model.UserStatusPlaceholder), string(model.UserRoleUndecided), false, dbTime(createdAt),
	)
	if err != nil {
		return 0, translate(err)
	}
	return lastInsertID(res)
}

func (r *userRepository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO USER (USER_USERNAME, USER_PASSWORD, USER_FIRST_NAME, USER_INITIAL, USER_LAST_NAME,
		 USER_PHONE, USER_EMAIL, USER_ADDRESS, USER_CITY, STATE_CODE, USER_ZIP,
		 USER_STATUS, USER_ROLE, USER_EMAIL_VERIFIED, USER_CREATED_AT)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.FirstName, u.Initial, u.LastName,
		u.Phone, u.Email, u.Address, u.City, u.StateCode, u.Zip,
		string(u.Status), string(u.Role), u.IsEmailVerified, dbTime(u.CreatedAt),
	)
	if err != nil {
		return 0, translate(err)
	}
	return lastInsertID(res)
}

// FinalizeProfile writes the profile over a placeholder row and moves it to
// pending approval. Rows that already left placeholder status are untouched.
func (r *userRepository) FinalizeProfile(ctx context.Context, userID int64, p *model.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE USER SET
			USER_USERNAME = ?, USER_PASSWORD = ?, USER_FIRST_NAME = ?, USER_INITIAL = ?, USER_LAST_NAME = ?,
			USER_PHONE = ?, USER_ADDRESS = ?, USER_CITY = ?, STATE_CODE = ?, USER_ZIP = ?,
			USER_STATUS = ?, USER_EMAIL_VERIFIED = ?
		 WHERE USER_ID = ? AND USER_STATUS = ?`,
		p.Username, p.PasswordHash, p.FirstName, p.Initial, p.LastName,
		p.Phone, p.Address, p.City, p.StateCode, p.Zip,
		string(model.UserStatusPending), true,
		userID, string(model.UserStatusPlaceholder),
	)
	if err != nil {
		return translate(err)
	}
	return expectRows(res)
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE USER SET USER_EMAIL_VERIFIED = ? WHERE USER_ID = ?`, true, userID)
	return translate(err)
}

func (r *userRepository) DeleteByID(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM USER WHERE USER_ID = ?`, userID)
	return translate(err)
}

func (r *userRepository) DeletePlaceholderByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM USER WHERE USER_EMAIL = ? AND USER_STATUS = ?`,
		email, string(model.UserStatusPlaceholder),
	)
	if err != nil {
		return 0, translate(err)
	}
	n, err := res.RowsAffected()
	return n, translate(err)
}

func lastInsertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
