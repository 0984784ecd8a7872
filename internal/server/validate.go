package server

import (
	"strings"

	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/and161185/autotrade/internal/status"
)

func nonNegative(fields map[string]int64) error {
	for name, v := range fields {
		if v < 0 {
			return errs.NewValidationError(name, "must not be negative")
		}
	}
	return nil
}

func validateOrder(req model.OrderRequest) error {
	if status.Sequence(req.OrderType) == nil {
		return errs.NewValidationError("orderType", "must be buy, sell or mediation")
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return errs.NewValidationError("clientId", "is required")
	}
	if req.OrderType == model.Mediation {
		if req.BuyerClientID == "" {
			return errs.NewValidationError("buyerClientId", "is required for mediation")
		}
		if req.BuyerClientID == req.ClientID {
			return errs.NewValidationError("buyerClientId", "must differ from the seller")
		}
	} else if req.BuyerClientID != "" {
		return errs.NewValidationError("buyerClientId", "only mediation orders have a buyer")
	}
	return nonNegative(map[string]int64{
		"vehiclePrice":   req.VehiclePrice,
		"buyCommission":  req.BuyCommission,
		"sellCommission": req.SellCommission,
	})
}

func validatePurchase(req model.PurchaseRequest) error {
	if req.OrderID == "" {
		return errs.NewValidationError("orderId", "is required")
	}
	if req.AuctionDate.IsZero() {
		return errs.NewValidationError("auctionDate", "is required")
	}
	if req.BidPrice <= 0 {
		return errs.NewValidationError("bidPrice", "must be positive")
	}
	if req.PaymentDueDate != nil && req.PaymentDueDate.Before(req.AuctionDate) {
		return errs.NewValidationError("paymentDueDate", "is before the auction")
	}
	return nonNegative(map[string]int64{
		"auctionFee":   req.AuctionFee,
		"transportFee": req.TransportFee,
		"otherFee":     req.OtherFee,
		"tax":          req.Tax,
	})
}

func validateDelivery(req model.DeliveryRequest) error {
	if req.PurchaseID == "" && req.OrderID == "" && req.ClientID == "" {
		return errs.NewValidationError("purchaseId", "a purchase, order or client is required")
	}
	if req.DeliveryDate.IsZero() {
		return errs.NewValidationError("deliveryDate", "is required")
	}
	if strings.TrimSpace(req.DeliveryLocation) == "" {
		return errs.NewValidationError("deliveryLocation", "is required")
	}
	return nonNegative(map[string]int64{
		"vehiclePrice": req.VehiclePrice,
		"commission":   req.Commission,
		"otherFee":     req.OtherFee,
		"tax":          req.Tax,
	})
}

func validateInspection(req model.InspectionRequest) error {
	if req.InspectionResult != model.Accepted && req.InspectionResult != model.Rejected {
		return errs.NewValidationError("inspectionResult", "must be accepted or rejected")
	}
	if req.InspectionDate.IsZero() {
		return errs.NewValidationError("inspectionDate", "is required")
	}
	if !req.ReceivedDate.IsZero() && req.InspectionDate.Before(req.ReceivedDate) {
		return errs.NewValidationError("inspectionDate", "is before the vehicle was received")
	}
	return nil
}

func validateInvoice(req model.InvoiceRequest) error {
	if req.OrderID == "" {
		return errs.NewValidationError("orderId", "is required")
	}
	if req.InvoiceDate.IsZero() {
		return errs.NewValidationError("invoiceDate", "is required")
	}
	if req.DueDate.Before(req.InvoiceDate) {
		return errs.NewValidationError("dueDate", "is before the invoice date")
	}
	return nonNegative(map[string]int64{
		"vehiclePrice": req.VehiclePrice,
		"commission":   req.Commission,
		"otherFee":     req.OtherFee,
		"tax":          req.Tax,
	})
}

func validatePayment(req model.PaymentRequest) error {
	if req.Amount <= 0 {
		return errs.NewValidationError("amount", "must be positive")
	}
	switch req.PaymentMethod {
	case model.BankTransfer, model.Cash, model.OtherMethod:
		return nil
	default:
		return errs.NewValidationError("paymentMethod", "must be bank_transfer, cash or other")
	}
}

func validateNotice(req model.PaymentNoticeRequest) error {
	if req.ClientID == "" {
		return errs.NewValidationError("clientId", "is required")
	}
	if len(req.InvoiceIDs) == 0 {
		return errs.NewValidationError("invoiceIds", "at least one invoice is required")
	}
	if req.DueDate.IsZero() {
		return errs.NewValidationError("dueDate", "is required")
	}
	return nil
}
