package control

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	addr string
	http *http.Client
}

func NewClient(addr string) *Client {
	return &Client{addr: addr, http: &http.Client{Timeout: 5 * time.Second}}
}

// SetInterval changes the refresh interval of the running instance and
// returns the previous one.
func (c *Client) SetInterval(d time.Duration) (time.Duration, error) {
	body, _ := json.Marshal(map[string]interface{}{"duration": d.String()})
	resp, err := c.http.Post("http://"+c.addr+"/set-interval", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("server error: %s", resp.Status)
	}
	var r struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	old, err := time.ParseDuration(r.Old)
	if err != nil {
		return 0, fmt.Errorf("bad old interval %q: %w", r.Old, err)
	}
	return old, nil
}

func (c *Client) Status() (Status, error) {
	resp, err := c.http.Get("http://" + c.addr + "/status")
	if err != nil {
		return Status{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return Status{}, fmt.Errorf("server error: %s", resp.Status)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return Status{}, fmt.Errorf("decode response: %w", err)
	}
	return st, nil
}
