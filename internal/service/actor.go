package service

import "time-clock/internal/models"

// Actor is the authenticated caller of an operation. It is built per request
// from the session token (or per bot update) and passed down explicitly.
type Actor struct {
	UserID       string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	CompanyID    string `json:"companyId"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}

func (a Actor) IsManager() bool {
	return models.IsManagerRole(a.Role)
}

func (a Actor) userRef() *string {
	if a.UserID == "" {
		return nil
	}
	id := a.UserID
	return &id
}
