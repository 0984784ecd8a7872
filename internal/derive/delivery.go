package derive

import (
	"fmt"

	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
)

// ResolveDeliveryOrder follows the purchase link first and the legacy order link second.
// Links that point at different orders are rejected.
func ResolveDeliveryOrder(d model.Delivery, purchases []model.Purchase, orders []model.Order) (model.Order, bool, error) {
	orderID := d.OrderID
	if d.PurchaseID != "" {
		p, ok := Find(purchases, d.PurchaseID)
		if ok {
			if d.OrderID != "" && d.OrderID != p.OrderID {
				return model.Order{}, false, fmt.Errorf("%w: purchase %s belongs to order %s, delivery names %s",
					errs.ErrAmbiguousDeliveryLink, p.ID, p.OrderID, d.OrderID)
			}
			orderID = p.OrderID
		}
	}
	if orderID == "" {
		return model.Order{}, false, nil
	}

	order, ok := Find(orders, orderID)
	if !ok {
		return model.Order{}, false, nil
	}
	if d.ClientID != "" && d.ClientID != order.ClientID {
		return model.Order{}, false, fmt.Errorf("%w: client %s does not own order %s",
			errs.ErrAmbiguousDeliveryLink, d.ClientID, order.ID)
	}
	return order, true, nil
}

// DeliveryClientID names the client a delivery belongs to, or "" when nothing resolves.
func DeliveryClientID(d model.Delivery, purchases []model.Purchase, orders []model.Order) (string, error) {
	order, ok, err := ResolveDeliveryOrder(d, purchases, orders)
	if err != nil {
		return "", err
	}
	if ok {
		return order.ClientID, nil
	}
	return d.ClientID, nil
}

func DeliveryTotal(vehiclePrice, commission, otherFee, tax int64) int64 {
	return vehiclePrice + commission + otherFee + tax
}

// DeliveryProfit compares the order with the purchase that sourced the vehicle.
// Without both records there is no profit to report.
func DeliveryProfit(order *model.Order, purchase *model.Purchase) int64 {
	if order == nil || purchase == nil {
		return 0
	}
	return Profit(*order, *purchase)
}
