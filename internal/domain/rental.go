package domain

// Rental contract statuses.
const (
	ContractActive     = "active"
	ContractPaused     = "paused"
	ContractTerminated = "terminated"
	ContractCompleted  = "completed"
)

type RentalContract struct {
	ID                   string  `json:"id"`
	UserID               string  `json:"userId"`
	RentalRequestID      string  `json:"rentalRequestId"`
	ContractNumber       string  `json:"contractNumber"`
	StartDate            string  `json:"startDate"`
	EndDate              string  `json:"endDate"`
	MonthlyPrice         float64 `json:"monthlyPrice"`
	Status               string  `json:"status"`
	PaymentMethod        string  `json:"paymentMethod"`
	StripeCustomerID     string  `json:"stripeCustomerId"`
	StripeSubscriptionID string  `json:"stripeSubscriptionId"`
	EquipmentDelivered   bool    `json:"equipmentDelivered"`
	DeliveryDate         string  `json:"deliveryDate"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

func NewRentalContract(raw Raw) RentalContract {
	return RentalContract{
		ID:                   raw.str("", "id"),
		UserID:               raw.str("", "userId"),
		RentalRequestID:      raw.str("", "rentalRequestId"),
		ContractNumber:       raw.str("", "contractNumber"),
		StartDate:            raw.str("", "startDate"),
		EndDate:              raw.str("", "endDate"),
		MonthlyPrice:         raw.float(0, "monthlyPrice"),
		Status:               raw.str(ContractActive, "status"),
		PaymentMethod:        raw.str("", "paymentMethod"),
		StripeCustomerID:     raw.str("", "stripeCustomerId"),
		StripeSubscriptionID: raw.str("", "stripeSubscriptionId"),
		EquipmentDelivered:   raw.bool(false, "equipmentDelivered"),
		DeliveryDate:         raw.str("", "deliveryDate"),
		CreatedAt:            raw.str("", "createdAt"),
		UpdatedAt:            raw.str("", "updatedAt"),
	}
}

// RentalEquipment is a catalog item available for rent.
type RentalEquipment struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Type                string   `json:"type"`
	Model               string   `json:"model"`
	Manufacturer        string   `json:"manufacturer"`
	MonthlyPrice        float64  `json:"monthlyPrice"`
	Currency            string   `json:"currency"`
	ImageURL            string   `json:"imageUrl"`
	IsAvailable         bool     `json:"isAvailable"`
	Description         string   `json:"description"`
	TechnicalSpecs      string   `json:"technicalSpecs"`
	MinimumRentalPeriod int64    `json:"minimumRentalPeriod"`
	Stock               int64    `json:"stock"`
	Features            []string `json:"features"`
}

func NewRentalEquipment(raw Raw) RentalEquipment {
	return RentalEquipment{
		ID:                  raw.str("", "id"),
		Name:                raw.str("", "name"),
		Type:                raw.str("", "type"),
		Model:               raw.str("", "model"),
		Manufacturer:        raw.str("", "manufacturer"),
		MonthlyPrice:        raw.float(0, "monthlyPrice"),
		Currency:            raw.str("$", "currency"),
		ImageURL:            raw.str("", "imageUrl"),
		IsAvailable:         raw.bool(true, "isAvailable"),
		Description:         raw.str("", "description"),
		TechnicalSpecs:      raw.str("", "technicalSpecs"),
		MinimumRentalPeriod: raw.int(1, "minimumRentalPeriod"),
		Stock:               raw.int(0, "stock"),
		Features:            raw.strings("features"),
	}
}

// DiscountTier grants Percentage off the monthly price for rentals of at
// least Months months.
type DiscountTier struct {
	Months     int64   `json:"months"`
	Percentage float64 `json:"percentage"`
}

type RentalPrice struct {
	ID                  string         `json:"id"`
	RentalEquipmentID   string         `json:"rentalEquipmentId"`
	BaseMonthlyPrice    float64        `json:"baseMonthlyPrice"`
	Currency            string         `json:"currency"`
	Discounts           []DiscountTier `json:"discounts"`
	SetupFee            float64        `json:"setupFee"`
	DeliveryFee         float64        `json:"deliveryFee"`
	InsuranceMonthlyFee float64        `json:"insuranceMonthlyFee"`
}

func NewRentalPrice(raw Raw) RentalPrice {
	tiers := raw.objects("discounts")
	discounts := make([]DiscountTier, 0, len(tiers))
	for _, t := range tiers {
		discounts = append(discounts, DiscountTier{
			Months:     t.int(0, "months"),
			Percentage: t.float(0, "percentage"),
		})
	}
	return RentalPrice{
		ID:                  raw.str("", "id"),
		RentalEquipmentID:   raw.str("", "rentalEquipmentId"),
		BaseMonthlyPrice:    raw.float(0, "baseMonthlyPrice"),
		Currency:            raw.str("$", "currency"),
		Discounts:           discounts,
		SetupFee:            raw.float(0, "setupFee"),
		DeliveryFee:         raw.float(0, "deliveryFee"),
		InsuranceMonthlyFee: raw.float(0, "insuranceMonthlyFee"),
	}
}

type RentalPayment struct {
	ID                    string  `json:"id"`
	RentalContractID      string  `json:"rentalContractId"`
	Amount                float64 `json:"amount"`
	Currency              string  `json:"currency"`
	Type                  string  `json:"type"`
	Status                string  `json:"status"`
	StripePaymentIntentID string  `json:"stripePaymentIntentId"`
	DueDate               string  `json:"dueDate"`
	PaidDate              string  `json:"paidDate"`
	BillingPeriodStart    string  `json:"billingPeriodStart"`
	BillingPeriodEnd      string  `json:"billingPeriodEnd"`
	InvoiceURL            string  `json:"invoiceUrl"`
	CreatedAt             string  `json:"createdAt"`
}

func NewRentalPayment(raw Raw) RentalPayment {
	return RentalPayment{
		ID:                    raw.str("", "id"),
		RentalContractID:      raw.str("", "rentalContractId"),
		Amount:                raw.float(0, "amount"),
		Currency:              raw.str("$", "currency"),
		Type:                  raw.str("monthly", "type"),
		Status:                raw.str("pending", "status"),
		StripePaymentIntentID: raw.str("", "stripePaymentIntentId"),
		DueDate:               raw.str("", "dueDate"),
		PaidDate:              raw.str("", "paidDate"),
		BillingPeriodStart:    raw.str("", "billingPeriodStart"),
		BillingPeriodEnd:      raw.str("", "billingPeriodEnd"),
		InvoiceURL:            raw.str("", "invoiceUrl"),
		CreatedAt:             raw.str("", "createdAt"),
	}
}

// RentalRequest is a customer's rental order before it becomes a contract.
type RentalRequest struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"userId"`
	RentalEquipmentID  string  `json:"rentalEquipmentId"`
	Quantity           int64   `json:"quantity"`
	RentalPeriodMonths int64   `json:"rentalPeriodMonths"`
	DeliveryAddress    string  `json:"deliveryAddress"`
	PreferredStartDate string  `json:"preferredStartDate"`
	Notes              string  `json:"notes"`
	Status             string  `json:"status"`
	TotalMonthlyPrice  float64 `json:"totalMonthlyPrice"`
	TotalSetupCost     float64 `json:"totalSetupCost"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

func NewRentalRequest(raw Raw) RentalRequest {
	return RentalRequest{
		ID:                 raw.str("", "id"),
		UserID:             raw.str("", "userId"),
		RentalEquipmentID:  raw.str("", "rentalEquipmentId"),
		Quantity:           raw.int(1, "quantity"),
		RentalPeriodMonths: raw.int(1, "rentalPeriodMonths"),
		DeliveryAddress:    raw.str("", "deliveryAddress"),
		PreferredStartDate: raw.str("", "preferredStartDate"),
		Notes:              raw.str("", "notes"),
		Status:             raw.str("draft", "status"),
		TotalMonthlyPrice:  raw.float(0, "totalMonthlyPrice"),
		TotalSetupCost:     raw.float(0, "totalSetupCost"),
		CreatedAt:          raw.str("", "createdAt"),
		UpdatedAt:          raw.str("", "updatedAt"),
	}
}
