package user

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Role      string  `json:"role"`
	JenisGTK  string  `json:"jenis_gtk,omitempty"`
	StatusGTK string  `json:"status_gtk,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type DeleteUserResponse struct {
	ID             string `json:"id"`
	RecordsDeleted int64  `json:"records_deleted"`
}

type OptionsResponse struct {
	JenisGTK  []string `json:"jenis_gtk"`
	StatusGTK []string `json:"status_gtk"`
}

func MapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		JenisGTK:  u.JenisGTK,
		StatusGTK: u.StatusGTK,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = MapToResponse(u)
	}
	return resp
}
