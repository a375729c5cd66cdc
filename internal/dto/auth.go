package dto

// AuthSessionResponse is returned when a new OAuth session is opened.
type AuthSessionResponse struct {
	ID      string `json:"id"`
	AuthURL string `json:"authUrl"`
}

// DepositFragmentRequest carries the redirect fragment captured by the
// OAuth callback page.
type DepositFragmentRequest struct {
	Fragment string `json:"fragment" validate:"required"`
}
