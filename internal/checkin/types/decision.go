package types

import "strings"

// Role classifies an account. The numeric values are the idTipoUsuario
// values used on the wire and in the accounts table.
type Role int

const (
	RolePrivileged Role = 1
	RoleStandard   Role = 2
)

func (r Role) String() string {
	switch r {
	case RolePrivileged:
		return "privileged"
	case RoleStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// Decision is the single outcome of one login attempt.
type Decision string

const (
	DecisionAcceptedPrivileged       Decision = "accepted_privileged"
	DecisionAcceptedCheckedIn        Decision = "accepted_checked_in"
	DecisionRejectedBadCredentials   Decision = "rejected_bad_credentials"
	DecisionRejectedOutOfWindow      Decision = "rejected_out_of_window"
	DecisionRejectedAlreadyCheckedIn Decision = "rejected_already_checked_in"
)

func (d Decision) Accepted() bool {
	return d == DecisionAcceptedPrivileged || d == DecisionAcceptedCheckedIn
}

// NormalizeLogin is the case-insensitive key accounts are matched on.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
