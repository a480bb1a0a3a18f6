package domain

type ID string

type User struct {
	ID           ID     `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Summary is the user shape safe to return to clients.
type Summary struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}
