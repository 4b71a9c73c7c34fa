package transport

type usernameLoginPayload struct {
	Username string `json:"user_name"`
	Password string `json:"password"`
}

type emailLoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type apiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type apiErrorEnvelope struct {
	Errors []apiErrorDetail `json:"errors"`
}
