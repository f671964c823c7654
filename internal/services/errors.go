package services

// Service errors
var (
	ErrRoleNotPermitted     = &ServiceError{Message: "this account type is not allowed to vote"}
	ErrQuotaExceeded        = &ServiceError{Message: "you have already used all of your votes"}
	ErrDuplicateVote        = &ServiceError{Message: "you have already voted for this team"}
	ErrTeamNotFound         = &ServiceError{Message: "team not found"}
	ErrTeamNotParticipating = &ServiceError{Message: "this team is not participating in the contest"}
	ErrVotingClosed         = &ServiceError{Message: "the voting period has ended"}
	ErrVotingPaused         = &ServiceError{Message: "voting is temporarily paused"}
	ErrVotingNotStarted     = &ServiceError{Message: "voting has not started yet"}
	ErrDataLoadingPeriod    = &ServiceError{Message: "projects are still being loaded - voting is unavailable"}
	ErrPasswordMismatch     = &ServiceError{Message: "password is incorrect"}
	ErrSelfDelete           = &ServiceError{Message: "you cannot delete your own account"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
