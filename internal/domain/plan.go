package domain

// Plan is a subscription plan. Price and limits arrive as numbers or numeric
// strings depending on the endpoint; both shapes are coerced and anything
// unparsable reads as 0. A MaxClients of 0 means unlimited.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	BillingCycle string   `json:"billingCycle"`
	MaxEquipment int64    `json:"maxEquipment"`
	MaxClients   int64    `json:"maxClients"`
	Features     []string `json:"features"`
}

func NewPlan(raw Raw) Plan {
	return Plan{
		ID:           raw.str("", "id"),
		Name:         raw.str("", "name"),
		Description:  raw.str("", "description"),
		Price:        raw.float(0, "price"),
		BillingCycle: raw.str("", "billingCycle"),
		MaxEquipment: raw.int(0, "maxEquipment"),
		MaxClients:   raw.int(0, "maxClients"),
		Features:     raw.strings("features"),
	}
}

// AccountPlanID reads the plan reference of a user or company account.
func AccountPlanID(account Raw) string {
	return account.str("", "planId")
}
