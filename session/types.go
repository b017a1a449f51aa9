package session

// TokenBundle holds the set of tokens & protocol metadata returned by the
// auth server after a successful exchange. This is the value serialized under
// a session id; create followed by get must round-trip it exactly.
type TokenBundle struct {
	Subject      string `json:"subject"`
	AccessToken  string `json:"access_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IdToken      string `json:"id_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    *int   `json:"expires_in,omitempty"`
}
