package domain

import "time"

// Contact holds a named point of contact on an onboarding record.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Customer is the onboarding record created when a company completes signup.
//
// AWSSetup, Aliases and Agreements are opaque wizard blobs persisted as JSONB;
// the API never interprets their contents.
type Customer struct {
	ID                 string
	CustomerID         string
	CompanyName        string
	CompanyEmail       string
	PrimaryContact     Contact
	SecondaryContact   Contact
	AWSSetup           map[string]any
	Aliases            map[string]any
	Agreements         map[string]any
	AvatarPath         string
	PasswordHash       string
	MustChangePassword bool
	Role               string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
