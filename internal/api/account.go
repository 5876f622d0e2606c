package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ositopolar/fleet-console/internal/domain"
)

// ErrMissingCredentials is returned before any request when the username
// or password is blank.
var ErrMissingCredentials = errors.New("username and password are required")

// Audience selects the plan catalog and the account kind owning a plan.
type Audience string

const (
	AudienceUser     Audience = "user"
	AudienceProvider Audience = "provider"
)

func (a Audience) plansPath() string {
	if a == AudienceProvider {
		return "/providerPlans"
	}
	return "/plans"
}

func (a Audience) accountPath() string {
	if a == AudienceProvider {
		return "/companies"
	}
	return "/users"
}

func (c *Client) Plans(ctx context.Context, audience Audience) ([]domain.Plan, error) {
	return getMany(ctx, c, request{path: audience.plansPath()}, domain.NewPlan)
}

// UserPlanID returns the plan id of a user or company account, "" when the
// account has none.
func (c *Client) UserPlanID(ctx context.Context, accountID string, audience Audience) (string, error) {
	account, err := callOne(ctx, c, request{method: http.MethodGet, path: idPath(audience.accountPath(), accountID), resource: "Account"}, rawRecord)
	if err != nil {
		return "", err
	}
	return domain.AccountPlanID(account), nil
}

func (c *Client) UpdateUserPlan(ctx context.Context, accountID, planID string, audience Audience) (domain.Raw, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPatch,
		path:     idPath(audience.accountPath(), accountID),
		body:     map[string]string{"planId": planID},
		resource: "Account",
	}, rawRecord)
}

// Notifications lists a user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	params := url.Values{}
	params.Set("userId", userID)
	params.Set("_sort", "timestamp")
	params.Set("_order", "desc")
	return getMany(ctx, c, request{path: "/notifications", params: params}, domain.NewNotification)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (domain.Notification, error) {
	return callOne(ctx, c, request{
		method:   http.MethodPatch,
		path:     idPath("/notifications", id),
		body:     map[string]string{"status": domain.NotificationRead},
		resource: "Notification",
	}, domain.NewNotification)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignIn trims the username; the password is sent as typed.
func (c *Client) SignIn(ctx context.Context, username, password string) (domain.AuthResponse, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return domain.AuthResponse{}, ErrMissingCredentials
	}
	return callOne(ctx, c, request{
		method: http.MethodPost,
		path:   "/authentication/sign-in",
		body:   credentials{Username: strings.TrimSpace(username), Password: password},
	}, domain.NewAuthResponse)
}

func (c *Client) SignUp(ctx context.Context, username, password string) (domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return domain.User{}, ErrMissingCredentials
	}
	return callOne(ctx, c, request{
		method: http.MethodPost,
		path:   "/authentication/sign-up",
		body:   credentials{Username: username, Password: password},
	}, domain.NewUser)
}
