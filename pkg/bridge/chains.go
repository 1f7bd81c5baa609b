package bridge

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownChain is returned when a chain id has no configured mapping
var ErrUnknownChain = errors.New("unknown chain")

// Chain maps a numeric chain id to the names used for display and by the relayer API
type Chain struct {
	ID          uint64 `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	RelayerName string `yaml:"relayer_name" validate:"required"`
}

// Chains is a read-only chain registry
type Chains struct {
	byID map[uint64]Chain
}

// DefaultChainList is used when the configuration does not list any chains
var DefaultChainList = []Chain{
	{ID: 1, Name: "Ethereum", RelayerName: "ethereum"},
	{ID: 137, Name: "Polygon", RelayerName: "polygon"},
	{ID: 2484, Name: "U2U Nebulas Testnet", RelayerName: "u2u-nebulas-testnet"},
}

// NewChains builds a registry. Later entries override earlier ones with the same id.
func NewChains(list []Chain) *Chains {
	c := &Chains{byID: make(map[uint64]Chain, len(list))}
	for _, ch := range list {
		c.byID[ch.ID] = ch
	}
	return c
}

// DefaultChains returns a registry over DefaultChainList
func DefaultChains() *Chains {
	return NewChains(DefaultChainList)
}

// Lookup returns the chain registered under id
func (c *Chains) Lookup(id uint64) (Chain, error) {
	ch, ok := c.byID[id]
	if !ok {
		return Chain{}, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}
	return ch, nil
}

// DisplayName returns the human readable name, or the numeric id when unmapped
func (c *Chains) DisplayName(id uint64) string {
	if ch, ok := c.byID[id]; ok {
		return ch.Name
	}
	return fmt.Sprintf("chain %d", id)
}

// All returns the registered chains ordered by id
func (c *Chains) All() []Chain {
	out := make([]Chain, 0, len(c.byID))
	for _, ch := range c.byID {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
