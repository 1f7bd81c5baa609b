package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

func clientFrom(c *cli.Context) (*apiClient, error) {
	return newAPIClient(c.String("tracker"), c.Duration("timeout"))
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func submit(c *cli.Context, path string, body any) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	var tx map[string]any
	code, err := client.do(c.Context, http.MethodPost, "/api/v1/bridge/"+path, body, &tx)
	if err != nil {
		return err
	}
	if code == http.StatusNoContent {
		fmt.Fprintln(c.App.Writer, "Transaction rejected in wallet, nothing submitted")
		return nil
	}
	return printJSON(c, tx)
}

func deposit(c *cli.Context) error {
	return submit(c, "deposit", map[string]any{"amount": c.String("amount")})
}

func withdraw(c *cli.Context) error {
	return submit(c, "withdraw", map[string]any{"amount": c.String("amount")})
}

func sendToken(c *cli.Context) error {
	return submit(c, "send-token", map[string]any{
		"destinationChainId": c.Uint64("chain"),
		"destinationAddress": c.String("to"),
		"symbol":             c.String("symbol"),
		"amount":             c.String("amount"),
	})
}

func callContract(c *cli.Context) error {
	body := map[string]any{
		"destinationChainId": c.Uint64("chain"),
		"contractAddress":    c.String("contract"),
		"payload":            c.String("payload"),
	}
	if amount := c.String("amount"); amount != "" {
		body["amount"] = amount
		body["symbol"] = c.String("symbol")
	}
	return submit(c, "call-contract", body)
}

func list(c *cli.Context) error {
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	path := "/api/v1/transactions"
	if status := c.String("status"); status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var resp struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if _, err := client.do(c.Context, http.MethodGet, path, nil, &resp); err != nil {
		return err
	}
	return printJSON(c, resp.Transactions)
}

func idArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("expected exactly one transaction id")
	}
	return c.Args().First(), nil
}

func get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	var tx map[string]any
	if _, err := client.do(c.Context, http.MethodGet, "/api/v1/transactions/"+url.PathEscape(id), nil, &tx); err != nil {
		return err
	}
	return printJSON(c, tx)
}

func remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	client, err := clientFrom(c)
	if err != nil {
		return err
	}

	if _, err := client.do(c.Context, http.MethodDelete, "/api/v1/transactions/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed %s\n", id)
	return nil
}
