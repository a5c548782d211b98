package dto

// EmailRequest asks for a confirmation code to be mailed.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenRequest redeems a confirmation code for an access token.
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse carries flow outcomes the API reports inside a 200 body.
type MessageResponse struct {
	Message string `json:"message"`
}
