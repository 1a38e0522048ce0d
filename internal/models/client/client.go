package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
}

func (c *Client) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("неверный id клиента: %d", c.ID)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("клиент %d: пустое имя", c.ID)
	}
	return nil
}

func DecodeClient(r io.Reader) (*Client, error) {
	var c Client
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("декодирование клиента: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
