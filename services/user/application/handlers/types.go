package handlers

// CredentialsRequest is the body of POST /auth/signup and POST /auth/login.
type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required,notblank,max=254" example:"alice@example.com"`
	Password string `json:"password" validate:"required,max=256"       example:"s3cret"`
} // @name CredentialsRequest

// UserResponse describes an account without its credential.
type UserResponse struct {
	ID    int64  `json:"id"    example:"1"`
	Email string `json:"email" example:"alice@example.com"`
} // @name UserResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid email or password"`
} // @name ErrorResponse
