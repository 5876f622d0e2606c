package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"github.com/ositopolar/fleet-console/internal/api"
	"github.com/ositopolar/fleet-console/internal/geo"
	"github.com/ositopolar/fleet-console/internal/normalize"
	"github.com/ositopolar/fleet-console/internal/pricing"
	"github.com/ositopolar/fleet-console/internal/repository"
	"github.com/ositopolar/fleet-console/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	g := app.Group("/")

	g.Get("equipment", func(c *fiber.Ctx) error {
		items, err := svcs.Fleet.List(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("equipment/attention", func(c *fiber.Ctx) error {
		items, err := svcs.Fleet.Attention(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("equipment/nearest", func(c *fiber.Ctx) error {
		lat, errLat := cast.ToFloat64E(c.Query("lat"))
		lng, errLng := cast.ToFloat64E(c.Query("lng"))
		if c.Query("lat") == "" || c.Query("lng") == "" || errLat != nil || errLng != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat and lng are required"})
		}
		n, ok, err := svcs.Fleet.Nearest(c.UserContext(), geo.Point{Lat: lat, Lng: lng})
		if err != nil {
			return fail(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no equipment with coordinates"})
		}
		return c.JSON(n)
	})
	g.Get("equipment/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badID(c)
		}
		e, err := svcs.Fleet.Get(c.UserContext(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(e)
	})
	g.Get("equipment/:id/validate", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badID(c)
		}
		res, err := svcs.Fleet.Validate(c.UserContext(), int64(id))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	})
	g.Get("equipment/:id/chart", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badID(c)
		}
		q := api.ReadingsQuery{Type: c.Query("type"), Hours: c.QueryInt("hours"), Limit: c.QueryInt("limit")}
		chart, err := svcs.Fleet.Chart(c.UserContext(), int64(id), q, c.QueryInt("days", 7))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(chart)
	})
	g.Patch("equipment/:id/temperature", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badID(c)
		}
		var body struct {
			SetTemperature *float64 `json:"setTemperature"`
		}
		if err := c.BodyParser(&body); err != nil || body.SetTemperature == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "setTemperature is required"})
		}
		e, err := svcs.Fleet.SetTemperature(c.UserContext(), int64(id), *body.SetTemperature)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(e)
	})
	g.Patch("equipment/:id/power", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badID(c)
		}
		var body struct {
			IsPoweredOn *bool `json:"isPoweredOn"`
		}
		if err := c.BodyParser(&body); err != nil || body.IsPoweredOn == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "isPoweredOn is required"})
		}
		e, err := svcs.Fleet.SetPower(c.UserContext(), int64(id), *body.IsPoweredOn)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(e)
	})

	g.Get("technicians", func(c *fiber.Ctx) error {
		items, err := svcs.Field.Technicians(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("work-orders", func(c *fiber.Ctx) error {
		items, err := svcs.Field.WorkOrders(c.UserContext(), c.Query("technicianId"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("service-requests", func(c *fiber.Ctx) error {
		f := api.ServiceRequestFilter{
			Status:      c.Query("status"),
			UserID:      int64(c.QueryInt("userId")),
			CompanyID:   int64(c.QueryInt("companyId")),
			EquipmentID: int64(c.QueryInt("equipmentId")),
		}
		items, err := svcs.Field.ServiceRequests(c.UserContext(), f)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})

	g.Get("rental/equipment", func(c *fiber.Ctx) error {
		items, err := svcs.Rental.Catalog(c.UserContext(), c.Query("type"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("rental/quote", func(c *fiber.Ctx) error {
		quantity, errQty := queryInt64(c, "quantity", 1)
		months, errMonths := queryInt64(c, "months", 1)
		if errQty != nil || errMonths != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity and months must be whole numbers"})
		}
		q, err := svcs.Rental.Quote(c.UserContext(), c.Query("equipmentId"), quantity, months)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(q)
	})

	g.Get("plans", func(c *fiber.Ctx) error {
		items, err := svcs.Plans.List(c.UserContext(), api.Audience(c.Query("audience", string(api.AudienceUser))))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("notifications", func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		if userID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId is required"})
		}
		items, err := svcs.Notifications.ForUser(c.UserContext(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Post("notifications/:id/read", func(c *fiber.Ctx) error {
		n, err := svcs.Notifications.MarkRead(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(n)
	})

	g.Post("auth/sign-in", func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		a, err := svcs.Session.SignIn(c.UserContext(), body.Username, body.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"id": a.ID, "username": a.Username})
	})
	g.Post("auth/sign-out", func(c *fiber.Ctx) error {
		if err := svcs.Session.SignOut(c.UserContext()); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	g.Get("auth/me", func(c *fiber.Ctx) error {
		a, ok := svcs.Session.User()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not signed in"})
		}
		return c.JSON(fiber.Map{"id": a.ID, "username": a.Username})
	})

	g.Get("readings/:equipmentId", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("equipmentId")
		if err != nil {
			return badID(c)
		}
		points, err := svcs.Readings.Recent(c.UserContext(), int64(id), c.QueryInt("limit", 100))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(points)
	})
	g.Get("equipment/:id/alerts", func(c *fiber.Ctx) error {
		items, err := svcs.Notifications.AlertHistory(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(items)
	})
	g.Get("reports", func(c *fiber.Ctx) error {
		keys, err := svcs.Readings.Reports(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(keys)
	})
	g.Post("reports/daily", func(c *fiber.Ctx) error {
		day := time.Now().UTC().AddDate(0, 0, -1)
		if d := c.Query("date"); d != "" {
			parsed, err := time.Parse("2006-01-02", d)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
			}
			day = parsed
		}
		url, err := svcs.Readings.ArchiveDaily(c.UserContext(), day)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	})
}

// queryInt64 reads an optional whole-number query parameter.
func queryInt64(c *fiber.Ctx, key string, def int64) (int64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
}

// fail maps service errors onto response codes; backend status errors keep
// the backend's code.
func fail(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var se *api.StatusError
	switch {
	case errors.As(err, &se):
		code = se.StatusCode
	case errors.Is(err, service.ErrNoPricing), errors.Is(err, repository.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, pricing.ErrInvalidRequest), errors.Is(err, api.ErrMissingCredentials):
		code = fiber.StatusBadRequest
	case errors.Is(err, normalize.ErrPayloadShape), errors.Is(err, pricing.ErrInvalidTier):
		code = fiber.StatusBadGateway
	case errors.Is(err, service.ErrArchiveDisabled), errors.Is(err, service.ErrMirrorDisabled):
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
