package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
)

type UserModel struct {
	Id                  uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
	Username            string         `gorm:"size:50;uniqueIndex;not null"`
	Email               string         `gorm:"size:100;uniqueIndex;not null"`
	FullName            string         `gorm:"size:100"`
	Password            string         `gorm:"size:128;not null"`
	CurrentRefreshToken string         `gorm:"size:512"`
	Type                string         `gorm:"size:3;not null;default:100"`
	Status              string         `gorm:"size:3;not null;default:100"`
}

func (UserModel) TableName() string {
	return "users"
}

func modelFromEntity(user *entities.User) *UserModel {
	m := &UserModel{
		Id:                  user.Id,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
		Username:            user.Username,
		Email:               user.Email,
		FullName:            user.FullName,
		Password:            user.Password,
		CurrentRefreshToken: user.CurrentRefreshToken,
		Type:                user.Type,
		Status:              user.Status,
	}
	if user.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *user.DeletedAt, Valid: true}
	}
	return m
}

func (m *UserModel) toEntity() *entities.User {
	user := &entities.User{
		Id:                  m.Id,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		Username:            m.Username,
		Email:               m.Email,
		FullName:            m.FullName,
		Password:            m.Password,
		CurrentRefreshToken: m.CurrentRefreshToken,
		Type:                m.Type,
		Status:              m.Status,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		user.DeletedAt = &deletedAt
	}
	return user
}
