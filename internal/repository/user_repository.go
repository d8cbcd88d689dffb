package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/YaShika2131/Vehicle-Parking-Management-Web-Application/internal/utils"
)

// AdminUsername identifies the single distinguished administrator
// account. Role is derived from this name, not stored.
const AdminUsername = "admin"

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrUsernameExists and ErrEmailExists distinguish which unique
// constraint rejected a registration so the client gets a precise
// conflict message.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// Create inserts a user and returns its ID. The password is hashed with
// bcrypt before it touches the database; plaintext is never persisted.
func (r *UserRepo) Create(ctx context.Context, username, email, phone, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, phone, password_hash) VALUES (?,?,?,?)",
		username, email, phone, hash)
	if err != nil {
		// MySQL error 1062 = duplicate entry; the message names the
		// violated index so we can tell username and email apart.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "email") {
				return 0, ErrEmailExists
			}
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,phone,password_hash,created_at FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,phone,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// ListNonAdmin returns every registered user except the distinguished
// admin account, ordered by id.
func (r *UserRepo) ListNonAdmin(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,email,phone,password_hash,created_at FROM users WHERE username<>? ORDER BY id",
		AdminUsername)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountNonAdmin counts registered users excluding the admin account.
func (r *UserRepo) CountNonAdmin(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username<>?", AdminUsername).Scan(&n)
	return n, err
}

// EnsureAdmin creates the distinguished admin account when it does not
// exist yet. The operation is idempotent; running it on every startup
// is safe.
func (r *UserRepo) EnsureAdmin(ctx context.Context, email, phone, password string, cost int) error {
	_, err := r.GetByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = r.Create(ctx, AdminUsername, email, phone, password, cost)
	// Lost a race with a concurrent bootstrap; the account exists either way.
	if errors.Is(err, ErrUsernameExists) || errors.Is(err, ErrEmailExists) {
		return nil
	}
	return err
}
