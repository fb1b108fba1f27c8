package user

import "time"

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
	CreatedAt  string `json:"createdAt"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeCode,
		Department: u.Department,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
