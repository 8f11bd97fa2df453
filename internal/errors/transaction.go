package errors

var (
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
	ErrAmountExceedsBalance = &DomainError{
		Code:    "AMOUNT_EXCEEDS_BALANCE",
		Message: "use amount is bigger than the account balance",
	}
	ErrTransactionAccountMismatch = &DomainError{
		Code:    "TRANSACTION_ACCOUNT_MISMATCH",
		Message: "transaction does not belong to this account",
	}
	ErrCancelMustBeFull = &DomainError{
		Code:    "CANCEL_MUST_BE_FULL",
		Message: "cancel amount must match the original transaction amount",
	}
	ErrOrderTooOldToCancel = &DomainError{
		Code:    "ORDER_TOO_OLD_TO_CANCEL",
		Message: "transactions older than one year cannot be cancelled",
	}
)
