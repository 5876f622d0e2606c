package domain

type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

func NewUser(raw Raw) User {
	return User{
		ID:        raw.int(0, "id"),
		Username:  raw.str("", "username"),
		CreatedAt: raw.optStr("createdAt"),
		UpdatedAt: raw.optStr("updatedAt"),
	}
}

// AuthResponse is what the backend returns on sign-in.
type AuthResponse struct {
	ID       int64  `json:"id" db:"user_id"`
	Username string `json:"username" db:"username"`
	Token    string `json:"token" db:"token"`
}

func NewAuthResponse(raw Raw) AuthResponse {
	return AuthResponse{
		ID:       raw.int(0, "id"),
		Username: raw.str("", "username"),
		Token:    raw.str("", "token"),
	}
}
