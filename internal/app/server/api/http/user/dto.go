package user

type credentials struct {
	Username string `json:"username" minLength:"1" maxLength:"64" example:"alice" doc:"Account name"`
	Password string `json:"password" minLength:"1" maxLength:"128" doc:"Plain text password"`
}

type registerInput struct {
	Body credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type loginInput struct {
	Body credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type logoutOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}
