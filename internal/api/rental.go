package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ositopolar/fleet-console/internal/domain"
)

const (
	rentalEquipmentPath = "/rentalEquipment"
	rentalRequestsPath  = "/rentalRequests"
	rentalContractsPath = "/api/rental-contracts"
	rentalPaymentsPath  = "/rentalPayments"
	rentalPricingPath   = "/rentalPricing"
)

func (c *Client) AvailableRentalEquipment(ctx context.Context) ([]domain.RentalEquipment, error) {
	return c.SearchRentalEquipment(ctx, url.Values{"isAvailable": {"true"}})
}

func (c *Client) RentalEquipmentByType(ctx context.Context, equipmentType string) ([]domain.RentalEquipment, error) {
	return c.SearchRentalEquipment(ctx, url.Values{"type": {equipmentType}, "isAvailable": {"true"}})
}

// SearchRentalEquipment passes filters through as query parameters.
func (c *Client) SearchRentalEquipment(ctx context.Context, filters url.Values) ([]domain.RentalEquipment, error) {
	return getMany(ctx, c, request{path: rentalEquipmentPath, params: filters}, domain.NewRentalEquipment)
}

func (c *Client) GetRentalEquipment(ctx context.Context, id string) (domain.RentalEquipment, error) {
	return callOne(ctx, c, request{method: http.MethodGet, path: idPath(rentalEquipmentPath, id), resource: "Rental equipment"}, domain.NewRentalEquipment)
}

func (c *Client) CreateRentalRequest(ctx context.Context, r domain.RentalRequest) (domain.RentalRequest, error) {
	return callOne(ctx, c, request{method: http.MethodPost, path: rentalRequestsPath, body: r}, domain.NewRentalRequest)
}

func (c *Client) RentalRequestsByUser(ctx context.Context, userID string) ([]domain.RentalRequest, error) {
	return getMany(ctx, c, request{path: rentalRequestsPath, params: url.Values{"userId": {userID}}}, domain.NewRentalRequest)
}

func (c *Client) UpdateRentalRequest(ctx context.Context, id string, updates map[string]any) (domain.RentalRequest, error) {
	return callOne(ctx, c, request{method: http.MethodPut, path: idPath(rentalRequestsPath, id), body: updates, resource: "Rental request"}, domain.NewRentalRequest)
}

func (c *Client) SubmitRentalRequest(ctx context.Context, id string) (domain.RentalRequest, error) {
	return c.setRentalRequestStatus(ctx, id, "submitted")
}

func (c *Client) CancelRentalRequest(ctx context.Context, id string) (domain.RentalRequest, error) {
	return c.setRentalRequestStatus(ctx, id, "cancelled")
}

func (c *Client) setRentalRequestStatus(ctx context.Context, id, status string) (domain.RentalRequest, error) {
	return callOne(ctx, c, request{
		method: http.MethodPatch,
		path:   idPath(rentalRequestsPath, id),
		body: map[string]string{
			"status":    status,
			"updatedAt": time.Now().UTC().Format(time.RFC3339Nano),
		},
		resource: "Rental request",
	}, domain.NewRentalRequest)
}

// ActiveContracts lists the user's active rental contracts.
func (c *Client) ActiveContracts(ctx context.Context, userID string) ([]domain.RentalContract, error) {
	return getMany(ctx, c, request{path: rentalContractsPath, params: url.Values{"userId": {userID}, "status": {domain.ContractActive}}}, domain.NewRentalContract)
}

func (c *Client) GetContract(ctx context.Context, id string) (domain.RentalContract, error) {
	return callOne(ctx, c, request{method: http.MethodGet, path: idPath(rentalContractsPath, id), resource: "Contract"}, domain.NewRentalContract)
}

type Termination struct {
	Reason string `json:"reason"`
	Date   string `json:"terminationDate,omitempty"`
}

func (c *Client) TerminateContract(ctx context.Context, id string, t Termination) (domain.RentalContract, error) {
	return callOne(ctx, c, request{method: http.MethodPost, path: idPath(rentalContractsPath, id) + "/terminate", body: t, resource: "Contract"}, domain.NewRentalContract)
}

func (c *Client) ExtendContract(ctx context.Context, id string, additionalMonths int64) (domain.RentalContract, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPost,
		path:     idPath(rentalContractsPath, id) + "/extend",
		body:     map[string]int64{"additionalMonths": additionalMonths},
		resource: "Contract",
	}, domain.NewRentalContract)
}

func (c *Client) PaymentsByContract(ctx context.Context, contractID string) ([]domain.RentalPayment, error) {
	return getMany(ctx, c, request{path: rentalPaymentsPath, params: url.Values{"contractId": {contractID}}}, domain.NewRentalPayment)
}

// UpcomingPayments lists the user's pending payments.
func (c *Client) UpcomingPayments(ctx context.Context, userID string) ([]domain.RentalPayment, error) {
	return getMany(ctx, c, request{path: rentalPaymentsPath, params: url.Values{"userId": {userID}, "status": {"pending"}}}, domain.NewRentalPayment)
}

// RentalPricing returns the first pricing entry of a catalog item, or an
// error matching ErrNotFound when the item has none.
func (c *Client) RentalPricing(ctx context.Context, rentalEquipmentID string) (domain.RentalPrice, error) {
	prices, err := getMany(ctx, c, request{path: rentalPricingPath, params: url.Values{"rentalEquipmentId": {rentalEquipmentID}}}, domain.NewRentalPrice)
	if err != nil {
		return domain.RentalPrice{}, err
	}
	return first(prices, "Pricing", rentalPricingPath)
}
