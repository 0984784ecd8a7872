package model

import "time"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type OrderRequest struct {
	OrderType           OrderType  `json:"orderType"`
	ClientID            string     `json:"clientId"`
	BuyerClientID       string     `json:"buyerClientId,omitempty"`
	SalesPersonID       string     `json:"salesPersonId"`
	OrderDate           time.Time  `json:"orderDate"`
	DesiredDeliveryDate *time.Time `json:"desiredDeliveryDate,omitempty"`
	VehiclePrice        int64      `json:"vehiclePrice"`
	BuyCommission       int64      `json:"buyCommission"`
	SellCommission      int64      `json:"sellCommission"`
	Notes               string     `json:"notes,omitempty"`
}

type ProgressRequest struct {
	Status OrderStatus `json:"status"`
	Notes  string      `json:"notes,omitempty"`
}

type PurchaseRequest struct {
	OrderID               string     `json:"orderId"`
	AuctionVenueID        string     `json:"auctionVenueId"`
	AuctionDate           time.Time  `json:"auctionDate"`
	AuctionNumber         string     `json:"auctionNumber,omitempty"`
	Vehicle               Vehicle    `json:"vehicle"`
	BidPrice              int64      `json:"bidPrice"`
	AuctionFee            int64      `json:"auctionFee,omitempty"`
	TransportFee          int64      `json:"transportFee,omitempty"`
	OtherFee              int64      `json:"otherFee,omitempty"`
	Tax                   int64      `json:"tax,omitempty"`
	StatementReceivedDate time.Time  `json:"statementReceivedDate"`
	PaymentDueDate        *time.Time `json:"paymentDueDate,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
}

type DeliveryRequest struct {
	PurchaseID       string    `json:"purchaseId,omitempty"`
	OrderID          string    `json:"orderId,omitempty"`
	ClientID         string    `json:"clientId,omitempty"`
	DeliveryDate     time.Time `json:"deliveryDate"`
	DeliveryLocation string    `json:"deliveryLocation"`
	VehiclePrice     int64     `json:"vehiclePrice"`
	Commission       int64     `json:"commission"`
	OtherFee         int64     `json:"otherFee,omitempty"`
	Tax              int64     `json:"tax"`
	Notes            string    `json:"notes,omitempty"`
}

type InspectionRequest struct {
	ReceivedDate     time.Time        `json:"receivedDate"`
	InspectionDate   time.Time        `json:"inspectionDate"`
	InspectionResult InspectionResult `json:"inspectionResult"`
	Notes            string           `json:"notes,omitempty"`
}

type InvoiceRequest struct {
	OrderID      string    `json:"orderId"`
	ClientID     string    `json:"clientId,omitempty"`
	InvoiceDate  time.Time `json:"invoiceDate"`
	DueDate      time.Time `json:"dueDate"`
	VehiclePrice int64     `json:"vehiclePrice"`
	Commission   int64     `json:"commission"`
	OtherFee     int64     `json:"otherFee,omitempty"`
	Tax          int64     `json:"tax"`
	Draft        bool      `json:"draft,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

type PaymentRequest struct {
	PaymentDate     time.Time     `json:"paymentDate"`
	Amount          int64         `json:"amount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	BankName        string        `json:"bankName,omitempty"`
	ReferenceNumber string        `json:"referenceNumber,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

type ReconcileRequest struct {
	InvoiceIDs []string       `json:"invoiceIds"`
	Payment    PaymentRequest `json:"payment"`
}

type PaymentNoticeRequest struct {
	ClientID   string    `json:"clientId"`
	InvoiceIDs []string  `json:"invoiceIds"`
	DueDate    time.Time `json:"dueDate"`
	Notes      string    `json:"notes,omitempty"`
}
