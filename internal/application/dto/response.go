package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response statuses used by the common envelope.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// CommonResponse is the envelope every endpoint answers with.
type CommonResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

func Success(data interface{}, message string) CommonResponse {
	return CommonResponse{Status: StatusSuccess, Data: data, Message: message}
}

func Fail(data interface{}) CommonResponse {
	return CommonResponse{Status: StatusFail, Data: data}
}

func Error(message string) CommonResponse {
	return CommonResponse{Status: StatusError, Message: message}
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalPages int64       `json:"total_pages"`
}

func NewPaginatedResponse(items interface{}, total int64, page, size int) PaginatedResponse {
	totalPages := (total + int64(size) - 1) / int64(size)
	return PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
