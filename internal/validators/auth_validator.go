package validators

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func ValidateSignUpRequest(req *SignUpRequest) map[string]string {
	return ValidateStruct(req)
}

func ValidateSignInRequest(req *SignInRequest) map[string]string {
	return ValidateStruct(req)
}
