package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Member type and status codes persisted as 3-character strings.
const (
	TypeEmployee = "100"
	TypeAgency   = "200"

	StatusActive   = "100"
	StatusInactive = "200"
)

type User struct {
	Id                  uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
	Username            string
	Email               string
	FullName            string
	Password            string
	CurrentRefreshToken string
	Type                string
	Status              string
}

func NewUser(username, email, fullName, password string) *User {
	now := time.Now()
	return &User{
		Id:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Username:  username,
		Email:     email,
		FullName:  fullName,
		Password:  password,
		Type:      TypeEmployee,
		Status:    StatusActive,
	}
}

func (u *User) validate() error {
	if u.Username == "" {
		return errors.New("username must not be empty")
	}
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	if u.Password == "" {
		return errors.New("password must not be empty")
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return errors.New("created_at must be before updated_at")
	}
	return nil
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// UpdatePassword replaces the stored hash with a hash of the new plaintext.
func (u *User) UpdatePassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	u.Password = password
	if err := u.HashPassword(); err != nil {
		return err
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (u *User) SetRefreshToken(token string) {
	u.CurrentRefreshToken = token
	u.UpdatedAt = time.Now()
}

// ClearRefreshToken invalidates the current session on logout.
func (u *User) ClearRefreshToken() {
	u.CurrentRefreshToken = ""
	u.UpdatedAt = time.Now()
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
