package handlers

import (
	"errors"
	"log"

	apperrors "corebank/internal/errors"
	"corebank/internal/services/transaction"
	"corebank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) UseBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		AccountNumber string `json:"account_number"`
		Amount        int64  `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.AccountNumber == "" {
		return utils.BadRequest(c, "account_number is required")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "amount must be greater than 0")
	}

	result, err := h.transactionService.UseBalance(c.Context(), claims.UserID, input.AccountNumber, input.Amount)
	if err != nil {
		// The engine wrote nothing for a rejected use; the failed attempt
		// still has to end up in the ledger whenever the account itself
		// was found.
		if isUseRejection(err) {
			if saveErr := h.transactionService.SaveFailedUseTransaction(c.Context(), input.AccountNumber, input.Amount); saveErr != nil {
				log.Printf("failed to record rejected use on %s: %v", input.AccountNumber, saveErr)
			}
		}
		return respondError(c, err)
	}

	return utils.Success(c, result)
}

// isUseRejection reports whether a use failed after its account was
// located, which is when the failed attempt gets a FAIL record.
func isUseRejection(err error) bool {
	return errors.Is(err, apperrors.ErrOwnerMismatch) ||
		errors.Is(err, apperrors.ErrAccountAlreadyClosed) ||
		errors.Is(err, apperrors.ErrAmountExceedsBalance)
}

func (h *TransactionHandler) CancelBalance(c *fiber.Ctx) error {
	var input struct {
		TransactionID string `json:"transaction_id"`
		AccountNumber string `json:"account_number"`
		Amount        int64  `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.TransactionID == "" || input.AccountNumber == "" {
		return utils.BadRequest(c, "transaction_id and account_number are required")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "amount must be greater than 0")
	}

	result, err := h.transactionService.CancelBalance(c.Context(), input.TransactionID, input.AccountNumber, input.Amount)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, result)
}

func (h *TransactionHandler) QueryTransaction(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if transactionID == "" {
		return utils.BadRequest(c, "transaction id is required")
	}

	result, err := h.transactionService.QueryTransaction(c.Context(), transactionID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, result)
}
