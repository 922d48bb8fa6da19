package dto

type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}
