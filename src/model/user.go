package model

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned when a row does not exist or belongs to another company.
var ErrNotFound = errors.New("record not found")

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Role        string    `json:"role"`
	CompanyID   *int64    `json:"company_id,omitempty"`
	LoginCount  int       `json:"login_count"`
	LastLoginAt NullTime  `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	MfaSecret   string    `json:"-"`
	MfaEnabled  bool      `json:"mfa_enabled"`
}

// NullTime is an alias for sql.NullTime for better JSON handling if needed.
type NullTime sql.NullTime

func (nt NullTime) MarshalJSON() ([]byte, error) {
	if !nt.Valid {
		return []byte("null"), nil
	}
	return nt.Time.MarshalJSON()
}

func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) CreateUser(db *sql.DB) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
	INSERT INTO users (username, email, password, role, company_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(u.Username, u.Email, u.Password, u.Role, nullableID(u.CompanyID), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

const userColumns = `id, username, email, password, role, company_id, login_count, last_login_at,
	       created_at, updated_at, mfa_secret, mfa_enabled`

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var companyID sql.NullInt64
	var lastLoginAt sql.NullTime
	var mfaSecret sql.NullString

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &companyID,
		&user.LoginCount, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt,
		&mfaSecret, &user.MfaEnabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	if companyID.Valid {
		id := companyID.Int64
		user.CompanyID = &id
	}
	user.LastLoginAt = NullTime(lastLoginAt)
	user.MfaSecret = mfaSecret.String
	return &user, nil
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	return scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// RecordLogin bumps the login counter and timestamp.
func (u *User) RecordLogin(db *sql.DB) error {
	now := time.Now()
	_, err := db.Exec(`
	UPDATE users
	SET login_count = login_count + 1, last_login_at = ?, updated_at = ?
	WHERE id = ?`, now, now, u.ID)
	if err != nil {
		return err
	}
	u.LoginCount++
	u.LastLoginAt = NullTime{Time: now, Valid: true}
	u.UpdatedAt = now
	return nil
}

type Session struct {
	ID           int       `json:"id"`
	UserID       int64     `json:"user_id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func CreateSession(db *sql.DB, session *Session) error {
	query := `
	INSERT INTO sessions (user_id, token, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	session.CreatedAt = time.Now()
	_, err = stmt.Exec(
		session.UserID,
		session.Token,
		session.RefreshToken,
		session.UserAgent,
		session.ClientIP,
		session.IsBlocked,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return err
}

func getSession(db *sql.DB, column, value string) (*Session, error) {
	query := `
	SELECT id, user_id, token, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at
	FROM sessions
	WHERE ` + column + ` = ? AND is_blocked = FALSE AND expires_at > ?`

	var session Session
	var userAgent, clientIP sql.NullString
	err := db.QueryRow(query, value, time.Now()).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.RefreshToken,
		&userAgent,
		&clientIP,
		&session.IsBlocked,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("session not found, expired, or blocked")
		}
		return nil, err
	}
	session.UserAgent = userAgent.String
	session.ClientIP = clientIP.String
	return &session, nil
}

func GetSessionByToken(db *sql.DB, token string) (*Session, error) {
	return getSession(db, "token", token)
}

func GetSessionByRefreshToken(db *sql.DB, refreshToken string) (*Session, error) {
	return getSession(db, "refresh_token", refreshToken)
}

func DeleteSessionByToken(db *sql.DB, token string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func DeleteSessionByRefreshToken(db *sql.DB, refreshToken string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE refresh_token = ?`, refreshToken)
	return err
}

// UpdatePassword persists the already-hashed u.Password.
func (u *User) UpdatePassword(db *sql.DB) error {
	u.UpdatedAt = time.Now()
	_, err := db.Exec(`UPDATE users SET password = ?, updated_at = ? WHERE id = ?`, u.Password, u.UpdatedAt, u.ID)
	return err
}

// DeleteOtherSessions removes every session of u except the one holding keepToken.
func (u *User) DeleteOtherSessions(db *sql.DB, keepToken string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE user_id = ? AND token <> ?`, u.ID, keepToken)
	return err
}

// UpdateMfaSecret stores the pending TOTP secret; it is not enforced until enabled.
func (u *User) UpdateMfaSecret(db *sql.DB, secret string) error {
	u.MfaSecret = secret
	u.UpdatedAt = time.Now()

	_, err := db.Exec(`UPDATE users SET mfa_secret = ?, updated_at = ? WHERE id = ?`, u.MfaSecret, u.UpdatedAt, u.ID)
	return err
}

func (u *User) UpdateMfaEnabled(db *sql.DB, enabled bool) error {
	u.MfaEnabled = enabled
	u.UpdatedAt = time.Now()

	_, err := db.Exec(`UPDATE users SET mfa_enabled = ?, updated_at = ? WHERE id = ?`, u.MfaEnabled, u.UpdatedAt, u.ID)
	return err
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
