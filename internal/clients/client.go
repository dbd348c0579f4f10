package clients

import (
	"bytes"
	"context"
	"dvdlend/internal/catalog"
	"dvdlend/internal/circulation"
	"dvdlend/internal/membership"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to a running dvdlend HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) RegisterFriend(ctx context.Context, name, phone, email string) (*membership.Person, error) {
	req := struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}{Name: name, Phone: phone, Email: email}

	var person membership.Person
	if err := c.do(ctx, http.MethodPost, "/friends", req, http.StatusCreated, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) ListFriends(ctx context.Context) ([]membership.Person, error) {
	var people []membership.Person
	if err := c.do(ctx, http.MethodGet, "/friends", nil, http.StatusOK, &people); err != nil {
		return nil, err
	}
	return people, nil
}

func (c *Client) RegisterDVD(ctx context.Context, in catalog.MediaItemInput) (*catalog.MediaItem, error) {
	var item catalog.MediaItem
	if err := c.do(ctx, http.MethodPost, "/dvds", in, http.StatusCreated, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) ListDVDs(ctx context.Context) ([]catalog.MediaItem, error) {
	var items []catalog.MediaItem
	if err := c.do(ctx, http.MethodGet, "/dvds", nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Borrow maps 404 and 409 responses back to circulation.ErrNotFound and circulation.ErrUnavailable.
func (c *Client) Borrow(ctx context.Context, personID, mediaItemID int64) (*circulation.Loan, error) {
	req := struct {
		PersonID    int64 `json:"person_id"`
		MediaItemID int64 `json:"media_item_id"`
	}{PersonID: personID, MediaItemID: mediaItemID}

	var loan circulation.Loan
	if err := c.do(ctx, http.MethodPost, "/loans", req, http.StatusCreated, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (c *Client) Return(ctx context.Context, loanID int64) (*circulation.Loan, error) {
	var loan circulation.Loan
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/loans/%d/return", loanID), nil, http.StatusOK, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (c *Client) ActiveLoans(ctx context.Context) ([]circulation.Loan, error) {
	var loans []circulation.Loan
	if err := c.do(ctx, http.MethodGet, "/loans/active", nil, http.StatusOK, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}, wantStatus int, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(code int, msg string) error {
	switch code {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, circulation.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, circulation.ErrUnavailable)
	default:
		return fmt.Errorf("unexpected status code: %d: %s", code, msg)
	}
}
