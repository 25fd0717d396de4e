package subject

// Summary adalah proyeksi subject yang aman di-join ke response lain.
// Field kredensial sengaja tidak pernah ikut keluar.
type Summary struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Name         *string `json:"name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Role         string  `json:"role"`
}

func ToSummary(s Subject) Summary {
	return Summary{
		ID:           s.ID,
		Username:     s.Username,
		Name:         s.Name,
		EmployeeCode: s.EmployeeCode,
		Role:         s.Role,
	}
}
