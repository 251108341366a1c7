package validation

import (
	"strings"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/request"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.AssetID) == "" {
		errors["assetId"] = "assetId is required"
	} else if err := ValidateUUID(req.AssetID); err != nil {
		errors["assetId"] = err.Error()
	}

	transactionType := model.TransactionType(req.Type)
	if !transactionType.IsValid() {
		errors["type"] = "unknown transaction type"
	}

	if transactionType == model.TransactionBuy || transactionType == model.TransactionSell {
		if req.Quantity == nil {
			errors["quantity"] = "quantity is required for buy/sell transactions"
		} else if *req.Quantity <= 0 {
			errors["quantity"] = "quantity must be positive"
		}
	}

	if req.TotalValue < 0 {
		errors["totalValue"] = "total value cannot be negative"
	}

	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = "date must be YYYY-MM-DD"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
