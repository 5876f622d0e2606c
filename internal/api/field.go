package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ositopolar/fleet-console/internal/domain"
)

const (
	techniciansPath     = "/technicians"
	workOrdersPath      = "/workOrders"
	serviceRequestsPath = "/serviceRequests"
)

func (c *Client) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	return getMany(ctx, c, request{path: techniciansPath}, domain.NewTechnician)
}

func (c *Client) GetTechnician(ctx context.Context, id int64) (domain.Technician, error) {
	return callOne(ctx, c, request{method: http.MethodGet, path: idPath(techniciansPath, id), resource: "Technician"}, domain.NewTechnician)
}

func (c *Client) CreateTechnician(ctx context.Context, t domain.Technician) (domain.Technician, error) {
	return callOne(ctx, c, request{method: http.MethodPost, path: techniciansPath, body: t}, domain.NewTechnician)
}

func (c *Client) UpdateTechnician(ctx context.Context, t domain.Technician) (domain.Technician, error) {
	return callOne(ctx, c, request{method: http.MethodPut, path: idPath(techniciansPath, t.ID), body: t, resource: "Technician"}, domain.NewTechnician)
}

func (c *Client) DeleteTechnician(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(techniciansPath, id), resource: "Technician"})
	return err
}

func (c *Client) ListWorkOrders(ctx context.Context) ([]domain.WorkOrder, error) {
	return getMany(ctx, c, request{path: workOrdersPath}, domain.NewWorkOrder)
}

func (c *Client) GetWorkOrder(ctx context.Context, id string) (domain.WorkOrder, error) {
	return callOne(ctx, c, request{method: http.MethodGet, path: idPath(workOrdersPath, id), resource: "Work order"}, domain.NewWorkOrder)
}

func (c *Client) CreateWorkOrder(ctx context.Context, w domain.WorkOrder) (domain.WorkOrder, error) {
	return callOne(ctx, c, request{method: http.MethodPost, path: workOrdersPath, body: w}, domain.NewWorkOrder)
}

func (c *Client) UpdateWorkOrder(ctx context.Context, w domain.WorkOrder) (domain.WorkOrder, error) {
	return callOne(ctx, c, request{method: http.MethodPut, path: idPath(workOrdersPath, w.ID), body: w, resource: "Work order"}, domain.NewWorkOrder)
}

func (c *Client) DeleteWorkOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(workOrdersPath, id), resource: "Work order"})
	return err
}

func (c *Client) AssignTechnician(ctx context.Context, workOrderID string, technicianID string) (domain.WorkOrder, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPut,
		path:     idPath(workOrdersPath, workOrderID) + "/technician",
		body:     map[string]string{"technicianId": technicianID},
		resource: "Work order",
	}, domain.NewWorkOrder)
}

func (c *Client) UpdateWorkOrderStatus(ctx context.Context, workOrderID, status string) (domain.WorkOrder, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPut,
		path:     idPath(workOrdersPath, workOrderID) + "/status",
		body:     map[string]string{"newStatus": status},
		resource: "Work order",
	}, domain.NewWorkOrder)
}

// Resolution is what a technician reports when closing a work order.
type Resolution struct {
	ResolutionDetails string   `json:"resolutionDetails"`
	TechnicianNotes   string   `json:"technicianNotes"`
	Cost              *float64 `json:"cost"`
}

func (c *Client) AddResolution(ctx context.Context, workOrderID string, res Resolution) (domain.WorkOrder, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPut,
		path:     idPath(workOrdersPath, workOrderID) + "/resolution",
		body:     res,
		resource: "Work order",
	}, domain.NewWorkOrder)
}

func (c *Client) WorkOrdersByTechnician(ctx context.Context, technicianID string) ([]domain.WorkOrder, error) {
	return getMany(ctx, c, request{path: workOrdersPath, params: url.Values{"assignedTechnicianId": {technicianID}}}, domain.NewWorkOrder)
}

func (c *Client) ListServiceRequests(ctx context.Context) ([]domain.ServiceRequest, error) {
	return c.ServiceRequests(ctx, ServiceRequestFilter{})
}

// ServiceRequestFilter narrows ListServiceRequests. Zero fields are not
// sent.
type ServiceRequestFilter struct {
	Status      string
	UserID      int64
	CompanyID   int64
	EquipmentID int64
}

func (f ServiceRequestFilter) values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.UserID != 0 {
		v.Set("userId", strconv.FormatInt(f.UserID, 10))
	}
	if f.CompanyID != 0 {
		v.Set("companyId", strconv.FormatInt(f.CompanyID, 10))
	}
	if f.EquipmentID != 0 {
		v.Set("equipmentId", strconv.FormatInt(f.EquipmentID, 10))
	}
	return v
}

func (c *Client) ServiceRequests(ctx context.Context, f ServiceRequestFilter) ([]domain.ServiceRequest, error) {
	return getMany(ctx, c, request{path: serviceRequestsPath, params: f.values()}, domain.NewServiceRequest)
}

func (c *Client) GetServiceRequest(ctx context.Context, id int64) (domain.ServiceRequest, error) {
	return callOne(ctx, c, request{method: http.MethodGet, path: idPath(serviceRequestsPath, id), resource: "Service request"}, domain.NewServiceRequest)
}

func (c *Client) CreateServiceRequest(ctx context.Context, s domain.ServiceRequest) (domain.ServiceRequest, error) {
	return callOne(ctx, c, request{method: http.MethodPost, path: serviceRequestsPath, body: s.ToAPI()}, domain.NewServiceRequest)
}

func (c *Client) UpdateServiceRequest(ctx context.Context, s domain.ServiceRequest) (domain.ServiceRequest, error) {
	return callOne(ctx, c, request{method: http.MethodPut, path: idPath(serviceRequestsPath, s.ID), body: s.ToAPI(), resource: "Service request"}, domain.NewServiceRequest)
}

func (c *Client) DeleteServiceRequest(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(serviceRequestsPath, id), resource: "Service request"})
	return err
}
