package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type AccountClient struct {
	c *Client
}

func NewAccountClient(c *Client) *AccountClient {
	return &AccountClient{c: c}
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResult is the credential pair the backend issues on sign-in.
type SignInResult struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

func (ac *AccountClient) SignIn(ctx context.Context, req SignInRequest) (SignInResult, error) {
	var res SignInResult
	if err := ac.c.do(ctx, http.MethodPost, "/api/account/signIn", "", nil, req, &res); err != nil {
		return SignInResult{}, err
	}
	return res, nil
}

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AccountClient) SignUp(ctx context.Context, req SignUpRequest) error {
	return ac.c.do(ctx, http.MethodPost, "/api/account/signUp", "", nil, req, nil)
}

type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (ac *AccountClient) Profile(ctx context.Context, token string, userID int64) (Profile, error) {
	var p Profile
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	if err := ac.c.do(ctx, http.MethodGet, "/api/account/profiles", token, q, nil, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
