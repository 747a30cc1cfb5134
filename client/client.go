package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Daskott/people/server/models"
	"github.com/pkg/errors"
)

const DEFAULT_TIMEOUT = 10 * time.Second

// APIError is returned for any non-2xx answer from the people API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v %v", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListPeople(ctx context.Context) ([]models.Person, error) {
	people := []models.Person{}
	err := c.do(ctx, "GET", "/", nil, &people)
	return people, err
}

func (c *Client) ListPeopleByType(ctx context.Context, personType string) ([]models.Person, error) {
	people := []models.Person{}
	err := c.do(ctx, "GET", "/"+url.PathEscape(personType), nil, &people)
	return people, err
}

func (c *Client) CreatePerson(ctx context.Context, input models.PersonInput) (*models.Person, error) {
	person := models.Person{}
	if err := c.do(ctx, "POST", "/", input, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) UpdatePerson(ctx context.Context, id uint, data models.PersonUpdate) (*models.Person, error) {
	person := models.Person{}
	if err := c.do(ctx, "PUT", fmt.Sprintf("/%v", id), data, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (c *Client) DeletePerson(ctx context.Context, id uint) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/%v", id), nil, nil)
}

// UpdatePeopleByType applies data to every person of personType, returning how many matched
func (c *Client) UpdatePeopleByType(ctx context.Context, personType string, data models.PersonUpdate) (int64, error) {
	result := struct {
		Count int64 `json:"count"`
	}{}
	err := c.do(ctx, "PUT", "/type/"+url.PathEscape(personType), data, &result)
	return result.Count, err
}

func (c *Client) DeletePeopleByType(ctx context.Context, personType string) (int64, error) {
	result := struct {
		Count int64 `json:"count"`
	}{}
	err := c.do(ctx, "DELETE", "/type/"+url.PathEscape(personType), nil, &result)
	return result.Count, err
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrapf(err, "%v %v", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%v %v", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %v %v", method, path)
	}
	return nil
}

func apiError(resp *http.Response) error {
	payload := struct {
		Error string `json:"error"`
	}{}

	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		payload.Error = strings.TrimSpace(string(raw))
	}
	if payload.Error == "" {
		payload.Error = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
}
