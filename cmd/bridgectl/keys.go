package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli/v2"

	"github.com/DINetworks/DI-U2U/pkg/keys"
)

func generateMasterKey(c *cli.Context) error {
	master, err := keys.GenerateMasterKey()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, base64.StdEncoding.EncodeToString(master))
	return nil
}

func encryptKey(c *cli.Context) error {
	envName := c.String("master-key-env")
	master, err := keys.MasterKeyFromBase64(os.Getenv(envName))
	if err != nil {
		return fmt.Errorf("%s: %w", envName, err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(c.String("private-key"), "0x"))
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	encrypted, err := keys.EncryptSigningKey(privateKey, master)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "address: %s\nencrypted_private_key: %s\n",
		crypto.PubkeyToAddress(privateKey.PublicKey).Hex(), encrypted)
	return nil
}
