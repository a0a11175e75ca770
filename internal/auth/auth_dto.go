package auth

type LoginRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN TEACHER"`
}

type RegisterRequest struct {
	Name            string `json:"name" binding:"required,notblank,max=255"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	JenisGTK        string `json:"jenis_gtk" binding:"required"`
	StatusGTK       string `json:"status_gtk" binding:"required"`
}

type ResetPasswordRequest struct {
	Name            string `json:"name" binding:"required,notblank"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type AuthResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Role      string  `json:"role"`
	JenisGTK  string  `json:"jenis_gtk,omitempty"`
	StatusGTK string  `json:"status_gtk,omitempty"`
}
