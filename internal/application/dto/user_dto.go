package dto

import "time"

// CreateUserRequest entrada para que un administrador cree un usuario.
// La contraseña se genera en el servidor y se devuelve una sola vez.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Role  string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role  *string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// RegisterRequest entrada para registro público; el rol siempre es USER.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,notblank,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserResponse incluye la contraseña temporal generada.
type CreateUserResponse struct {
	Message      string       `json:"message"`
	Data         UserResponse `json:"data"`
	TempPassword string       `json:"tempPassword"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
