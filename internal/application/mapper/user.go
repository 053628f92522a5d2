// Package mapper converts domain entities into the DTOs exposed over the
// API boundary. Password hashes and refresh tokens never cross it.
package mapper

import (
	"github.com/ekgus419/go-api-boilerplate/internal/application/dto"
	"github.com/ekgus419/go-api-boilerplate/internal/domain/entities"
)

func NewUserResponseFromEntity(user *entities.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Type:      user.Type,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func NewUserResponsesFromEntities(users []*entities.User) []*dto.UserResponse {
	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponseFromEntity(user))
	}
	return responses
}
