package entity

// SessionUser é a identidade carregada no cookie de sessão.
type SessionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (u SessionUser) IsAdmin(adminRole string) bool {
	return adminRole != "" && u.Role == adminRole
}
