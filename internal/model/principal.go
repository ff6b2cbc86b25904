package model

import "github.com/google/uuid"

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}
