package dto

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

type UserLoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	PhotoURL string `json:"photoUrl"`
	Role     string `json:"role"`
}

type CreateEmployeeInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin karyawan"`
}

type CreateEmployeeResponse struct {
	UID string `json:"uid"`
}

type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	PhotoURL *string `json:"photoUrl"`
}
