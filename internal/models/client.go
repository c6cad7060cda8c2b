package models

import "time"

// Client is a company that purchases assessment tokens. One token is
// consumed per assessment session.
type Client struct {
	ID            int64     `json:"id"`
	CompanyName   string    `json:"company_name"`
	EmployeeCount int       `json:"employee_count"`
	ContactEmail  string    `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone"`
	Tokens        int       `json:"tokens"`
	IsActive      bool      `json:"is_active"`
	IsSuspended   bool      `json:"is_suspended"`
	IsBlocked     bool      `json:"is_blocked"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateClientRequest struct {
	CompanyName   string `json:"company_name"`
	EmployeeCount int    `json:"employee_count"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
}

type UpdateClientRequest struct {
	CompanyName   *string `json:"company_name"`
	EmployeeCount *int    `json:"employee_count"`
	ContactEmail  *string `json:"contact_email"`
	ContactPhone  *string `json:"contact_phone"`
	IsActive      *bool   `json:"is_active"`
	IsSuspended   *bool   `json:"is_suspended"`
	IsBlocked     *bool   `json:"is_blocked"`
}

type UpdateTokensRequest struct {
	Tokens int `json:"tokens"`
}
