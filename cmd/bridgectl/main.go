// Command bridgectl submits bridge operations to a running tracker and
// inspects the transactions it tracks.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bridgectl: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bridgectl"
	app.Usage = "Operate a bridge transaction tracker"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "tracker",
			Usage:   "Tracker API base URL",
			Value:   "http://localhost:8080",
			EnvVars: []string{"BRIDGECTL_TRACKER"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout",
			Value: 2 * time.Minute,
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:     "deposit",
			Usage:    "Wrap native coin into the bridge token",
			Category: "Bridge",
			Flags:    []cli.Flag{amountFlag(true)},
			Action:   deposit,
		},
		{
			Name:     "withdraw",
			Usage:    "Unwrap the bridge token into native coin",
			Category: "Bridge",
			Flags:    []cli.Flag{amountFlag(true)},
			Action:   withdraw,
		},
		{
			Name:     "send-token",
			Usage:    "Send tokens to an address on another chain",
			Category: "Bridge",
			Flags: []cli.Flag{
				chainFlag(),
				&cli.StringFlag{Name: "to", Usage: "Destination address", Required: true},
				&cli.StringFlag{Name: "symbol", Usage: "Token symbol", Value: "IU2U"},
				amountFlag(true),
			},
			Action: sendToken,
		},
		{
			Name:     "call-contract",
			Usage:    "Call a contract on another chain, optionally with tokens",
			Category: "Bridge",
			Flags: []cli.Flag{
				chainFlag(),
				&cli.StringFlag{Name: "contract", Usage: "Destination contract address", Required: true},
				&cli.StringFlag{Name: "payload", Usage: "Hex encoded call payload", Value: "0x"},
				&cli.StringFlag{Name: "symbol", Usage: "Token symbol, used with --amount"},
				amountFlag(false),
			},
			Action: callContract,
		},
		{
			Name:     "list",
			Usage:    "List tracked transactions, newest first",
			Category: "Transactions",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "status", Usage: "Only show pending, completed or failed transactions"},
			},
			Action: list,
		},
		{
			Name:      "get",
			Usage:     "Show one transaction",
			Category:  "Transactions",
			ArgsUsage: "<id>",
			Action:    get,
		},
		{
			Name:      "remove",
			Usage:     "Forget a transaction",
			Category:  "Transactions",
			ArgsUsage: "<id>",
			Action:    remove,
		},
		{
			Name:     "keys",
			Usage:    "Manage the encrypted wallet signing key",
			Category: "Keys",
			Subcommands: []*cli.Command{
				{
					Name:   "generate-master",
					Usage:  "Print a new base64 master key",
					Action: generateMasterKey,
				},
				{
					Name:  "encrypt",
					Usage: "Encrypt a hex private key for wallet.encrypted_private_key",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "private-key", Usage: "Hex private key", EnvVars: []string{"BRIDGECTL_PRIVATE_KEY"}, Required: true},
						&cli.StringFlag{Name: "master-key-env", Usage: "Environment variable holding the base64 master key", Value: "TRACKER_MASTER_KEY"},
					},
					Action: encryptKey,
				},
			},
		},
	}
	return app
}

func amountFlag(required bool) cli.Flag {
	return &cli.StringFlag{Name: "amount", Usage: "Decimal token amount, e.g. 1.5", Required: required}
}

func chainFlag() cli.Flag {
	return &cli.Uint64Flag{Name: "chain", Usage: "Destination chain id", Required: true}
}
