package auth

import "go-leave/internal/staff"

type RegisterRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,max=72"`
}

type RegisterResponse struct {
	Email   string `json:"email"`
	StaffID string `json:"staffID"`
}

type LoginRequest struct {
	StaffID  string `json:"staffID" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type MeResponse struct {
	staff.StaffResponse
	Permissions []string `json:"permissions"`
}
