package models

type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRolePanel     UserRole = "PANEL"
	UserRoleCandidate UserRole = "CANDIDATE"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:     "Administrator",
	UserRolePanel:     "Panel member",
	UserRoleCandidate: "Candidate",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

const SystemUser = "System"
