package storage

import (
	"time"

	"github.com/and161185/autotrade/internal/model"
)

// Fixtures is the initial content of a store.
type Fixtures struct {
	// PasswordHash is shared by every seeded user.
	PasswordHash string

	Users       []model.User
	Clients     []model.Client
	Orders      []model.Order
	Progress    []model.OrderProgress
	Purchases   []model.Purchase
	Deliveries  []model.Delivery
	Inspections []model.Inspection
	Invoices    []model.Invoice
	Payments    []model.Payment
	Notices     []model.PaymentNotice
	Payouts     []model.Payout
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

var companyAccount = model.BankAccount{
	BankName:      "〇〇銀行",
	BranchName:    "本店",
	AccountType:   "普通",
	AccountNumber: "1234567",
	AccountHolder: "株式会社〇〇",
}

// DemoFixtures is a small dataset that makes an empty installation usable.
func DemoFixtures(passwordHash string) Fixtures {
	return Fixtures{
		PasswordHash: passwordHash,
		Users: []model.User{
			{ID: "user-001", Email: "admin@example.com", Name: "太郎（管理者）", Role: model.Admin, IsActive: true},
			{ID: "user-002", Email: "sales@example.com", Name: "花子（営業担当者）", Role: model.Sales, IsActive: true},
			{ID: "user-003", Email: "office@example.com", Name: "次郎（事務員）", Role: model.Office, IsActive: true},
			{ID: "user-004", Email: "customer@example.com", Name: "山田太郎（顧客）", Role: model.Customer, ClientID: "client-001", IsActive: true},
			{ID: "user-005", Email: "vendor@example.com", Name: "〇〇自動車（業者）", Role: model.Vendor, ClientID: "client-002", IsActive: true},
		},
		Clients: []model.Client{
			{
				ID: "client-001", ClientCode: "C-0001", ClientType: model.CustomerClient,
				Name: "山田太郎", NameKana: "ヤマダタロウ", PersonType: "individual",
				PostalCode: "100-0001", Address: "東京都千代田区1-1-1", Phone: "03-0000-0001",
				Email: "customer@example.com",
			},
			{
				ID: "client-002", ClientCode: "V-0001", ClientType: model.VendorClient,
				Name: "〇〇自動車", NameKana: "マルマルジドウシャ", PersonType: "corporation",
				ContactPerson: "佐藤", Address: "神奈川県横浜市2-2-2", Phone: "045-000-0002",
				Email: "vendor@example.com",
				Bank: model.BankAccount{BankName: "△△銀行", BranchName: "横浜支店", AccountType: "当座", AccountNumber: "7654321", AccountHolder: "カ）マルマルジドウシャ"},
			},
			{
				ID: "client-003", ClientCode: "C-0002", ClientType: model.CustomerClient,
				Name: "株式会社△△", NameKana: "カブシキガイシャサンカク", PersonType: "corporation",
				ContactPerson: "鈴木", Address: "大阪府大阪市3-3-3", Phone: "06-0000-0003",
			},
		},
		Orders: []model.Order{
			{
				ID: "order-001", OrderNumber: "ORD-2024-0001", OrderType: model.Buy,
				ClientID: "client-001", SalesPersonID: "user-002", Status: model.Ordered,
				OrderDate: day(2024, 2, 10), DesiredDeliveryDate: ptr(day(2024, 3, 1)),
				VehiclePrice: 1800000, BuyCommission: 169000, TotalAmount: 1969000,
			},
			{
				ID: "order-002", OrderNumber: "ORD-2024-0002", OrderType: model.Buy,
				ClientID: "client-003", SalesPersonID: "user-002", Status: model.PaymentReceived,
				OrderDate: day(2024, 2, 8),
				VehiclePrice: 2300000, BuyCommission: 200000, TotalAmount: 2500000,
			},
			{
				ID: "order-003", OrderNumber: "ORD-2024-0003", OrderType: model.Buy,
				ClientID: "client-001", SalesPersonID: "user-002", Status: model.Purchased,
				OrderDate: day(2024, 2, 5),
				VehiclePrice: 1400000, BuyCommission: 100000, TotalAmount: 1500000,
			},
			{
				ID: "order-004", OrderNumber: "ORD-2024-0004", OrderType: model.Sell,
				ClientID: "client-002", SalesPersonID: "user-002", Status: model.VehicleReceived,
				OrderDate: day(2024, 2, 12),
				VehiclePrice: 900000, SellCommission: 50000, TotalAmount: 950000,
			},
		},
		Progress: []model.OrderProgress{
			{ID: "progress-001", OrderID: "order-001", Status: model.Ordered, ChangedAt: at(2024, 2, 10, 10, 0), ChangedBy: "user-002", Notes: "受注登録"},
			{ID: "progress-002", OrderID: "order-003", Status: model.Ordered, ChangedAt: at(2024, 2, 5, 9, 30), ChangedBy: "user-002", Notes: "受注登録"},
			{ID: "progress-003", OrderID: "order-003", Status: model.AuctionProcessing, ChangedAt: at(2024, 2, 7, 14, 15), ChangedBy: "user-002", Notes: "オークション入札開始"},
			{ID: "progress-004", OrderID: "order-003", Status: model.Purchased, ChangedAt: at(2024, 2, 13, 16, 45), ChangedBy: "user-002", Notes: "落札・計算書受領・代金支払い完了"},
			{ID: "progress-005", OrderID: "order-004", Status: model.Ordered, ChangedAt: at(2024, 2, 12, 11, 0), ChangedBy: "user-002", Notes: "受注登録"},
			{ID: "progress-006", OrderID: "order-004", Status: model.VehicleReceived, ChangedAt: at(2024, 2, 14, 15, 0), ChangedBy: "user-002", Notes: "車両入庫"},
		},
		Purchases: []model.Purchase{
			{
				ID: "purchase-001", PurchaseNumber: "PUR-2024-001", OrderID: "order-001",
				AuctionVenueID: "venue-001", AuctionDate: day(2024, 2, 14), AuctionNumber: "20240214-001",
				Vehicle:  model.Vehicle{Name: "セルシオ", Maker: "トヨタ", Model: "GRX120", Year: 2023, Mileage: 25000},
				BidPrice: 1500000, AuctionFee: 15000, TransportFee: 30000, OtherFee: 5000, Tax: 155000,
				TotalPurchaseAmount:   1705000,
				StatementReceivedDate: day(2024, 2, 15), PaymentDueDate: ptr(day(2024, 2, 25)),
				PaymentStatus: model.Unpaid, Status: model.PurchaseConfirmed, Notes: "良好な状態で落札",
			},
			{
				ID: "purchase-002", PurchaseNumber: "PUR-2024-002", OrderID: "order-002",
				AuctionVenueID: "venue-002", AuctionDate: day(2024, 2, 12), AuctionNumber: "20240212-005",
				Vehicle:  model.Vehicle{Name: "3シリーズ", Maker: "BMW", Model: "F30", Year: 2022, Mileage: 35000},
				BidPrice: 2000000, AuctionFee: 20000, TransportFee: 40000, OtherFee: 8000, Tax: 206800,
				TotalPurchaseAmount:   2274800,
				StatementReceivedDate: day(2024, 2, 13), PaymentDueDate: ptr(day(2024, 2, 28)),
				PaymentStatus: model.Paid, PaidDate: ptr(day(2024, 2, 20)), Status: model.PurchasePaid,
			},
			{
				ID: "purchase-003", PurchaseNumber: "PUR-2024-003", OrderID: "order-003",
				AuctionVenueID: "venue-001", AuctionDate: day(2024, 2, 10), AuctionNumber: "20240210-003",
				Vehicle:  model.Vehicle{Name: "アルファード", Maker: "トヨタ", Model: "ANH25", Year: 2021, Mileage: 45000},
				BidPrice: 1200000, AuctionFee: 12000, TransportFee: 25000, OtherFee: 3000, Tax: 124000,
				TotalPurchaseAmount:   1364000,
				StatementReceivedDate: day(2024, 2, 11), PaymentDueDate: ptr(day(2024, 2, 20)),
				PaymentStatus: model.Paid, PaidDate: ptr(day(2024, 2, 18)), Status: model.PurchaseCompleted,
				Notes: "エアロ社外、テールランプ社外",
			},
		},
		Deliveries: []model.Delivery{
			{
				ID: "delivery-001", DeliveryNumber: "DEL-2024-0001", PurchaseID: "purchase-001",
				DeliveryDate: day(2024, 2, 20), DeliveryLocation: "本社",
				VehiclePrice: 1800000, Commission: 169000, Tax: 196900, TotalAmount: 2165900,
				Status: model.DeliveryIssued,
			},
			{
				ID: "delivery-002", DeliveryNumber: "DEL-2024-0002", OrderID: "order-003", ClientID: "client-001",
				DeliveryDate: day(2024, 2, 16), DeliveryLocation: "お客様ご自宅",
				VehiclePrice: 1400000, Commission: 100000, Tax: 150000, TotalAmount: 1650000,
				Status: model.DeliveryInspected, Notes: "旧形式の納品書",
			},
		},
		Inspections: []model.Inspection{
			{
				ID: "inspection-001", DeliveryID: "delivery-002",
				ReceivedDate: day(2024, 2, 16), InspectionDate: day(2024, 2, 17),
				InspectionResult: model.Accepted, Inspector: "山田太郎（顧客）", Notes: "問題なし",
			},
		},
		Invoices: []model.Invoice{
			{
				ID: "invoice-001", InvoiceNumber: "INV-202402-0001", OrderID: "order-001", ClientID: "client-001",
				InvoiceDate: day(2024, 2, 20), DueDate: day(2024, 3, 25),
				VehiclePrice: 1800000, Commission: 169000, Amount: 1969000, Tax: 179000, TotalAmount: 2148000,
				Status: model.InvoiceIssued,
			},
			{
				ID: "invoice-002", InvoiceNumber: "INV-202402-0002", OrderID: "order-002", ClientID: "client-003",
				InvoiceDate: day(2024, 2, 5), DueDate: day(2024, 2, 29),
				VehiclePrice: 1000000, Commission: 20000, Amount: 1020000, Tax: 102000, TotalAmount: 1122000,
				PaidAmount: 1122000, Status: model.InvoicePaid,
			},
		},
		Payments: []model.Payment{
			{
				ID: "payment-001", InvoiceID: "invoice-002", PaymentDate: day(2024, 2, 10), Amount: 1122000,
				PaymentMethod: model.BankTransfer, BankName: "〇〇銀行", ReferenceNumber: "REF-2024-0001", Notes: "入金確認済み",
			},
		},
		Notices: []model.PaymentNotice{
			{
				ID: "notice-001", NoticeNumber: "PN-202402-0001", ClientID: "client-001",
				InvoiceIDs: []string{"invoice-001"}, InvoiceCount: 1,
				TotalAmount: 1969000, TotalTax: 179000, GrandTotal: 2148000,
				DueDate: day(2024, 3, 25), IssuedDate: day(2024, 2, 25),
				PaymentMethod: model.BankTransfer, BankAccount: companyAccount, Status: model.NoticeIssued,
			},
			{
				ID: "notice-002", NoticeNumber: "PN-202402-0002", ClientID: "client-003",
				InvoiceIDs: []string{"invoice-002"}, InvoiceCount: 1,
				TotalAmount: 1020000, TotalTax: 102000, GrandTotal: 1122000,
				DueDate: day(2024, 3, 25), IssuedDate: day(2024, 2, 25),
				PaymentMethod: model.BankTransfer, BankAccount: companyAccount, Status: model.NoticePaid, Notes: "既払い",
			},
		},
		Payouts: []model.Payout{
			{
				ID: "payout-001", PayoutNumber: "PAYOUT-202402-0001", SalesPersonID: "user-002", Month: day(2024, 2, 1),
				BaseAmount: 300000, Commission: 50000, TotalAmount: 350000, PaymentDate: day(2024, 2, 28),
				Status: "completed", Notes: "February payout",
			},
			{
				ID: "payout-002", PayoutNumber: "PAYOUT-202403-0001", SalesPersonID: "user-002", Month: day(2024, 3, 1),
				BaseAmount: 300000, Commission: 30000, TotalAmount: 330000, PaymentDate: day(2024, 3, 31),
				Status: "pending", Notes: "March payout pending",
			},
		},
	}
}
