package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, fn roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append(opts, WithHTTPClient(&http.Client{Transport: fn}))
	return New("https://fleet.test/", time.Second, opts...)
}

func TestListEquipmentNormalizes(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodGet || r.URL.Path != "/equipment" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("authorization=%q", got)
		}
		return jsonResponse(http.StatusOK, `[
			{"id": 1, "name": "Freezer A", "currentTemperature": "15", "optimalTemperatureMin": 0, "optimalTemperatureMax": 10},
			{"id": "2", "location": {"name": "Dock"}}
		]`), nil
	}, WithTokenSource(staticToken("tok-1")))

	items, err := client.ListEquipment(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("len=%d", len(items))
	}
	if items[0].TemperatureStatus() != "critical" || items[1].ID != 2 || items[1].LocationName != "Dock" {
		t.Fatalf("items=%+v", items)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Fatal("unexpected authorization header")
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	}, WithTokenSource(staticToken("")))
	if _, err := client.ListTechnicians(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestStatusErrors(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{http.StatusBadRequest, `{"message":"name is blank"}`, "Invalid request: name is blank"},
		{http.StatusUnauthorized, ``, "Unauthorized access"},
		{http.StatusForbidden, ``, "Access forbidden"},
		{http.StatusNotFound, ``, "Equipment not found"},
		{http.StatusInternalServerError, `oops`, "Server error. Please try again later."},
		{http.StatusConflict, `{"message":"duplicate serial"}`, "Error 409: duplicate serial"},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(*http.Request) (*http.Response, error) {
			return jsonResponse(tc.status, tc.body), nil
		})
		_, err := client.GetEquipment(context.Background(), 9)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("%d: err=%v", tc.status, err)
		}
		if err.Error() != tc.want {
			t.Fatalf("%d: got %q want %q", tc.status, err.Error(), tc.want)
		}
		if errors.Is(err, ErrNotFound) != (tc.status == http.StatusNotFound) {
			t.Fatalf("%d: ErrNotFound mismatch", tc.status)
		}
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return nil, boom
	})
	if _, err := client.ListWorkOrders(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestEquipmentReadingsUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/analytics/equipments/4/readings" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("type") != "temperature" || q.Get("hours") != "24" || q.Get("limit") != "9" {
			t.Fatalf("query=%s", r.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"data":[{"id":"r1","value":-18.2,"timestamp":"2024-03-05T10:00:00Z"}]}`), nil
	})
	readings, err := client.EquipmentReadings(context.Background(), 4, ReadingsQuery{Limit: 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(readings) != 1 || readings[0].Temperature != -18.2 {
		t.Fatalf("readings=%+v", readings)
	}
}

func TestUpdateTemperaturePatchesSetPoint(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPatch || r.URL.Path != "/equipment/3" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["setTemperature"] != -20.0 {
			t.Fatalf("body=%v", body)
		}
		return jsonResponse(http.StatusOK, `{"id":3,"setTemperature":-20}`), nil
	})
	e, err := client.UpdateTemperature(context.Background(), 3, -20)
	if err != nil {
		t.Fatal(err)
	}
	if e.SetTemperature != -20 {
		t.Fatalf("equipment=%+v", e)
	}
}

func TestServiceRequestFilter(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		q := r.URL.Query()
		if q.Get("status") != "pending" || q.Get("companyId") != "5" || q.Has("userId") {
			t.Fatalf("query=%s", r.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `[{"id":1,"asap":true}]`), nil
	})
	items, err := client.ServiceRequests(context.Background(), ServiceRequestFilter{Status: "pending", CompanyID: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || !items[0].IsEmergency {
		t.Fatalf("items=%+v", items)
	}
}

func TestRentalPricingNotFound(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("rentalEquipmentId") != "re-1" {
			t.Fatalf("query=%s", r.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	})
	_, err := client.RentalPricing(context.Background(), "re-1")
	if !errors.Is(err, ErrNotFound) || err.Error() != "Pricing not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestPlansAudience(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		paths = append(paths, r.URL.Path)
		return jsonResponse(http.StatusOK, `[{"id":"basic","price":"9.99","maxEquipment":"5"}]`), nil
	})
	plans, err := client.Plans(context.Background(), AudienceProvider)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Plans(context.Background(), AudienceUser); err != nil {
		t.Fatal(err)
	}
	if paths[0] != "/providerPlans" || paths[1] != "/plans" {
		t.Fatalf("paths=%v", paths)
	}
	if plans[0].Price != 9.99 || plans[0].MaxEquipment != 5 {
		t.Fatalf("plan=%+v", plans[0])
	}
}

func TestShapeMismatchIsReported(t *testing.T) {
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"id":1}`), nil
	})
	if _, err := client.ListEquipment(context.Background()); err == nil {
		t.Fatal("expected shape error")
	}
}

func TestSignIn(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		var body credentials
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if r.URL.Path != "/authentication/sign-in" || body.Username != "ana" || body.Password != " pw " {
			t.Fatalf("path=%s body=%+v", r.URL.Path, body)
		}
		return jsonResponse(http.StatusOK, `{"id":7,"username":"ana","token":"jwt"}`), nil
	})
	if _, err := client.SignIn(context.Background(), "  ", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("blank username err=%v", err)
	}
	auth, err := client.SignIn(context.Background(), " ana ", " pw ")
	if err != nil {
		t.Fatal(err)
	}
	if auth.ID != 7 || auth.Token != "jwt" {
		t.Fatalf("auth=%+v", auth)
	}
}
