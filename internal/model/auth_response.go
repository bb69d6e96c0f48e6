package model

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string   `json:"message"`
	UserID  int64    `json:"userID"`
	Role    UserRole `json:"role"`
}

type EmailInput struct {
	Email string `json:"email"`
}

type VerifyCodeInput struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Name struct {
	First   string `json:"first"`
	Initial string `json:"initial"`
	Last    string `json:"last"`
}

type Location struct {
	Address   string `json:"address"`
	City      string `json:"city"`
	StateCode string `json:"state_code"`
	Zip       string `json:"zip"`
}

type SignupInput struct {
	Credentials Credentials `json:"credentials"`
	Name        Name        `json:"name"`
	Location    Location    `json:"location"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type EmailVerificationResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}
