package api

import (
	"context"
	"net/http"

	"github.com/ositopolar/fleet-console/internal/domain"
)

const equipmentPath = "/equipment"

func (c *Client) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return getMany(ctx, c, request{path: equipmentPath}, domain.NewEquipment)
}

func (c *Client) GetEquipment(ctx context.Context, id int64) (domain.Equipment, error) {
	return callOne(ctx, c, request{method: http.MethodGet, path: idPath(equipmentPath, id), resource: "Equipment"}, domain.NewEquipment)
}

func (c *Client) CreateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return callOne(ctx, c, request{method: http.MethodPost, path: equipmentPath, body: e.ToAPI()}, domain.NewEquipment)
}

func (c *Client) UpdateEquipment(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return callOne(ctx, c, request{method: http.MethodPut, path: idPath(equipmentPath, e.ID), body: e.ToAPI(), resource: "Equipment"}, domain.NewEquipment)
}

func (c *Client) DeleteEquipment(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath(equipmentPath, id), resource: "Equipment"})
	return err
}

// UpdateTemperature changes the set point of one unit.
func (c *Client) UpdateTemperature(ctx context.Context, id int64, setTemperature float64) (domain.Equipment, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPatch,
		path:     idPath(equipmentPath, id),
		body:     map[string]float64{"setTemperature": setTemperature},
		resource: "Equipment",
	}, domain.NewEquipment)
}

func (c *Client) UpdatePowerState(ctx context.Context, id int64, on bool) (domain.Equipment, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPatch,
		path:     idPath(equipmentPath, id),
		body:     map[string]bool{"isPoweredOn": on},
		resource: "Equipment",
	}, domain.NewEquipment)
}
