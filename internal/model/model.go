package model

import "time"

type OrderType string

const (
	Buy       OrderType = "buy"
	Sell      OrderType = "sell"
	Mediation OrderType = "mediation"
)

type OrderStatus string

const (
	Ordered           OrderStatus = "ordered"
	AuctionProcessing OrderStatus = "auction_processing"
	Purchased         OrderStatus = "purchased"
	Invoiced          OrderStatus = "invoiced"
	PaymentReceived   OrderStatus = "payment_received"
	Completed         OrderStatus = "completed"
	VehicleReceived   OrderStatus = "vehicle_received"
	Sold              OrderStatus = "sold"
	PaymentNotified   OrderStatus = "payment_notified"
	PaymentCompleted  OrderStatus = "payment_completed"
	Matching          OrderStatus = "matching"
	DealEstablished   OrderStatus = "deal_established"
)

type Role string

const (
	Admin    Role = "admin"
	Sales    Role = "sales"
	Office   Role = "office"
	Customer Role = "customer"
	Vendor   Role = "vendor"
)

type ClientType string

const (
	CustomerClient ClientType = "customer"
	VendorClient   ClientType = "vendor"
)

type DeliveryStatus string

const (
	DeliveryDraft     DeliveryStatus = "draft"
	DeliveryIssued    DeliveryStatus = "issued"
	DeliveryReceived  DeliveryStatus = "received"
	DeliveryInspected DeliveryStatus = "inspected"
	DeliveryCompleted DeliveryStatus = "completed"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceIssued  InvoiceStatus = "issued"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

type PurchaseStatus string

const (
	PurchaseDraft     PurchaseStatus = "draft"
	PurchaseConfirmed PurchaseStatus = "confirmed"
	PurchasePaid      PurchaseStatus = "paid"
	PurchaseCompleted PurchaseStatus = "completed"
)

type PaymentStatus string

const (
	Unpaid PaymentStatus = "unpaid"
	Paid   PaymentStatus = "paid"
)

type NoticeStatus string

const (
	NoticeDraft  NoticeStatus = "draft"
	NoticeIssued NoticeStatus = "issued"
	NoticePaid   NoticeStatus = "paid"
)

type PaymentMethod string

const (
	BankTransfer PaymentMethod = "bank_transfer"
	Cash         PaymentMethod = "cash"
	OtherMethod  PaymentMethod = "other"
)

type InspectionResult string

const (
	Accepted InspectionResult = "accepted"
	Rejected InspectionResult = "rejected"
)

type BankAccount struct {
	BankName      string `json:"bankName,omitempty"`
	BranchName    string `json:"branchName,omitempty"`
	AccountType   string `json:"accountType,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountHolder string `json:"accountHolder,omitempty"`
}

type Client struct {
	ID            string      `json:"id"`
	ClientCode    string      `json:"clientCode"`
	ClientType    ClientType  `json:"clientType"`
	Name          string      `json:"name"`
	NameKana      string      `json:"nameKana,omitempty"`
	PersonType    string      `json:"personType,omitempty"`
	ContactPerson string      `json:"contactPerson,omitempty"`
	PostalCode    string      `json:"postalCode,omitempty"`
	Address       string      `json:"address,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Email         string      `json:"email,omitempty"`
	Bank          BankAccount `json:"bank"`
	Notes         string      `json:"notes,omitempty"`
	IsDeleted     bool        `json:"isDeleted"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	ClientID string `json:"clientId,omitempty"`
	IsActive bool   `json:"isActive"`
}

type Order struct {
	ID                  string      `json:"id"`
	OrderNumber         string      `json:"orderNumber"`
	OrderType           OrderType   `json:"orderType"`
	ClientID            string      `json:"clientId"`
	BuyerClientID       string      `json:"buyerClientId,omitempty"`
	SalesPersonID       string      `json:"salesPersonId"`
	Status              OrderStatus `json:"status"`
	OrderDate           time.Time   `json:"orderDate"`
	DesiredDeliveryDate *time.Time  `json:"desiredDeliveryDate,omitempty"`
	VehiclePrice        int64       `json:"vehiclePrice"`
	BuyCommission       int64       `json:"buyCommission"`
	SellCommission      int64       `json:"sellCommission"`
	TotalAmount         int64       `json:"totalAmount"`
	Notes               string      `json:"notes,omitempty"`
}

type OrderProgress struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"orderId"`
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changedAt"`
	ChangedBy string      `json:"changedBy"`
	Notes     string      `json:"notes,omitempty"`
}

type Vehicle struct {
	Name    string `json:"vehicleName"`
	Maker   string `json:"maker,omitempty"`
	Model   string `json:"model,omitempty"`
	Year    int    `json:"year,omitempty"`
	Mileage int    `json:"mileage,omitempty"`
}

type Purchase struct {
	ID                    string         `json:"id"`
	PurchaseNumber        string         `json:"purchaseNumber"`
	OrderID               string         `json:"orderId"`
	AuctionVenueID        string         `json:"auctionVenueId"`
	AuctionDate           time.Time      `json:"auctionDate"`
	AuctionNumber         string         `json:"auctionNumber,omitempty"`
	Vehicle               Vehicle        `json:"vehicle"`
	BidPrice              int64          `json:"bidPrice"`
	AuctionFee            int64          `json:"auctionFee"`
	TransportFee          int64          `json:"transportFee"`
	OtherFee              int64          `json:"otherFee"`
	Tax                   int64          `json:"tax"`
	TotalPurchaseAmount   int64          `json:"totalPurchaseAmount"`
	StatementReceivedDate time.Time      `json:"statementReceivedDate"`
	PaymentDueDate        *time.Time     `json:"paymentDueDate,omitempty"`
	PaymentStatus         PaymentStatus  `json:"paymentStatus"`
	PaidDate              *time.Time     `json:"paidDate,omitempty"`
	Status                PurchaseStatus `json:"status"`
	Notes                 string         `json:"notes,omitempty"`
}

// Delivery carries two linkage forms: PurchaseID, and the legacy OrderID/ClientID pair.
type Delivery struct {
	ID               string         `json:"id"`
	DeliveryNumber   string         `json:"deliveryNumber"`
	PurchaseID       string         `json:"purchaseId,omitempty"`
	OrderID          string         `json:"orderId,omitempty"`
	ClientID         string         `json:"clientId,omitempty"`
	DeliveryDate     time.Time      `json:"deliveryDate"`
	DeliveryLocation string         `json:"deliveryLocation"`
	VehiclePrice     int64          `json:"vehiclePrice"`
	Commission       int64          `json:"commission"`
	OtherFee         int64          `json:"otherFee"`
	Tax              int64          `json:"tax"`
	TotalAmount      int64          `json:"totalAmount"`
	Status           DeliveryStatus `json:"status"`
	Notes            string         `json:"notes,omitempty"`
}

type Inspection struct {
	ID               string           `json:"id"`
	DeliveryID       string           `json:"deliveryId"`
	ReceivedDate     time.Time        `json:"receivedDate"`
	InspectionDate   time.Time        `json:"inspectionDate"`
	InspectionResult InspectionResult `json:"inspectionResult"`
	Inspector        string           `json:"inspector,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	OrderID       string        `json:"orderId"`
	ClientID      string        `json:"clientId"`
	InvoiceDate   time.Time     `json:"invoiceDate"`
	DueDate       time.Time     `json:"dueDate"`
	VehiclePrice  int64         `json:"vehiclePrice"`
	Commission    int64         `json:"commission"`
	OtherFee      int64         `json:"otherFee"`
	Amount        int64         `json:"amount"`
	Tax           int64         `json:"tax"`
	TotalAmount   int64         `json:"totalAmount"`
	PaidAmount    int64         `json:"paidAmount"`
	Status        InvoiceStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
}

type Payment struct {
	ID              string        `json:"id"`
	InvoiceID       string        `json:"invoiceId"`
	PaymentDate     time.Time     `json:"paymentDate"`
	Amount          int64         `json:"amount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	BankName        string        `json:"bankName,omitempty"`
	ReferenceNumber string        `json:"referenceNumber,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

type PaymentNotice struct {
	ID            string        `json:"id"`
	NoticeNumber  string        `json:"noticeNumber"`
	ClientID      string        `json:"clientId"`
	InvoiceIDs    []string      `json:"invoiceIds"`
	InvoiceCount  int           `json:"invoiceCount"`
	TotalAmount   int64         `json:"totalAmount"`
	TotalTax      int64         `json:"totalTax"`
	GrandTotal    int64         `json:"grandTotal"`
	DueDate       time.Time     `json:"dueDate"`
	IssuedDate    time.Time     `json:"issuedDate"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	BankAccount   BankAccount   `json:"bankAccount"`
	Status        NoticeStatus  `json:"status"`
	Notes         string        `json:"notes,omitempty"`
}

type Payout struct {
	ID            string    `json:"id"`
	PayoutNumber  string    `json:"payoutNumber"`
	SalesPersonID string    `json:"salesPersonId"`
	Month         time.Time `json:"month"`
	BaseAmount    int64     `json:"baseAmount"`
	Commission    int64     `json:"commission"`
	TotalAmount   int64     `json:"totalAmount"`
	PaymentDate   time.Time `json:"paymentDate"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
}

func (c Client) GetID() string        { return c.ID }
func (u User) GetID() string          { return u.ID }
func (o Order) GetID() string         { return o.ID }
func (p OrderProgress) GetID() string { return p.ID }
func (p Purchase) GetID() string      { return p.ID }
func (d Delivery) GetID() string      { return d.ID }
func (i Inspection) GetID() string    { return i.ID }
func (i Invoice) GetID() string       { return i.ID }
func (p Payment) GetID() string       { return p.ID }
func (n PaymentNotice) GetID() string { return n.ID }
func (p Payout) GetID() string        { return p.ID }

// IsInternal reports whether the role belongs to staff rather than the portal.
func (r Role) IsInternal() bool {
	return r == Admin || r == Sales || r == Office
}

// Filters narrow list queries. Empty fields match everything.

type OrderFilter struct {
	ClientID  string
	OrderType OrderType
	Status    OrderStatus
	Search    string
}

type PurchaseFilter struct {
	OrderID       string
	PaymentStatus PaymentStatus
	Search        string
}

type DeliveryFilter struct {
	ClientID string
	Status   DeliveryStatus
	Search   string
}

type InvoiceFilter struct {
	ClientID   string
	Status     InvoiceStatus
	UnpaidOnly bool
	Search     string
}
