package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/matrimony-admin/internal/model"
)

// ErrNoData is returned when a successful response carries no data payload.
var ErrNoData = errors.New("response carried no data")

// ErrNoToken is returned when a login succeeds without issuing a token.
var ErrNoToken = errors.New(MsgUnexpected)

// envelope is the {data, message} wrapper used by the listing, profile and
// count endpoints.
type envelope[T any] struct {
	Data    *T     `json:"data"`
	Message string `json:"message,omitempty"`
}

func decodeData[T any](ep Endpoint, raw json.RawMessage) (T, error) {
	var zero T
	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("decode %s response: %w", ep.Name, err)
	}
	if env.Data == nil {
		return zero, ErrNoData
	}
	return *env.Data, nil
}

// ----- auth -----

// Credentials is the login body. Email may also hold a phone number.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the admin's record.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	raw, err := c.Do(ctx, Login, "", creds)
	if err != nil {
		return LoginResult{}, err
	}
	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	if res.Token == "" {
		return LoginResult{}, ErrNoToken
	}
	return res, nil
}

// Signup registers a new account. The body is forwarded untouched and the
// raw payload returned, since the console only relays it.
func (c *Client) Signup(ctx context.Context, body map[string]any) (json.RawMessage, error) {
	return c.Do(ctx, Signup, "", body)
}

// ----- profiles -----

// ProfileByID fetches one user's full profile.
func (c *Client) ProfileByID(ctx context.Context, id string) (model.Profile, error) {
	raw, err := c.Do(ctx, ProfileByID, id, nil)
	if err != nil {
		return model.Profile{}, err
	}
	return decodeData[model.Profile](ProfileByID, raw)
}

// MyProfile fetches the profile of the authenticated admin.
func (c *Client) MyProfile(ctx context.Context) (model.Profile, error) {
	raw, err := c.Do(ctx, MyProfile, "", nil)
	if err != nil {
		return model.Profile{}, err
	}
	return decodeData[model.Profile](MyProfile, raw)
}

// ----- admin -----

// Users fetches the full user collection. A missing data field is treated
// as an empty collection.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	raw, err := c.Do(ctx, ListUsers, "", nil)
	if err != nil {
		return nil, err
	}
	users, err := decodeData[[]model.User](ListUsers, raw)
	if errors.Is(err, ErrNoData) {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return users, nil
}

type statusBody struct {
	Status      model.Status `json:"status"`
	MarriedWith string       `json:"marriedWith,omitempty"`
}

// UpdateStatus sets a user's status. marriedWith carries the partner id
// for the married transition and is omitted otherwise.
func (c *Client) UpdateStatus(ctx context.Context, id string, status model.Status, marriedWith string) error {
	_, err := c.Do(ctx, UpdateStatus, id, statusBody{Status: status, MarriedWith: marriedWith})
	return err
}

type roleBody struct {
	Role model.Role `json:"role"`
}

// UpdateRole sets a user's role.
func (c *Client) UpdateRole(ctx context.Context, id string, role model.Role) error {
	_, err := c.Do(ctx, UpdateRole, id, roleBody{Role: role})
	return err
}

// UserCount fetches the dashboard aggregates.
func (c *Client) UserCount(ctx context.Context) (model.UserCount, error) {
	raw, err := c.Do(ctx, UserCount, "", nil)
	if err != nil {
		return model.UserCount{}, err
	}
	return decodeData[model.UserCount](UserCount, raw)
}
