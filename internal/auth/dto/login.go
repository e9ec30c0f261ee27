package dto

// LoginInput accepts the OAuth2 password form (username carries the email)
// as well as a JSON body with an explicit email field.
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Identifier returns the email the caller is logging in with.
func (in LoginInput) Identifier() string {
	if in.Username != "" {
		return in.Username
	}
	return in.Email
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
