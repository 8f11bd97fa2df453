package errors

var (
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
	}
	ErrOwnerMismatch = &DomainError{
		Code:    "OWNER_MISMATCH",
		Message: "account is owned by a different user",
	}
	ErrAccountAlreadyClosed = &DomainError{
		Code:    "ACCOUNT_ALREADY_CLOSED",
		Message: "account is already unregistered",
	}
	ErrBalanceNotEmpty = &DomainError{
		Code:    "BALANCE_NOT_EMPTY",
		Message: "account balance must be zero to close",
	}
	ErrMaxAccountsPerUserExceeded = &DomainError{
		Code:    "MAX_ACCOUNTS_PER_USER_EXCEEDED",
		Message: "user already owns the maximum number of accounts",
	}
)
