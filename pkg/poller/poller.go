// Package poller queries the relayer for tracked cross-chain commands until
// they execute on the destination chain.
package poller

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/internal/metrics"
	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/relayer"
)

// Sink receives polling outcomes
type Sink interface {
	// CommandPending is called when the relayer still reports the command pending
	CommandPending(ctx context.Context, cmd bridge.TrackedCommand)
	// CommandExecuted is called once the command executed; the command is no longer tracked
	CommandExecuted(ctx context.Context, cmd bridge.TrackedCommand, destinationTxHash string)
	// CommandExhausted is called when the policy gives up; the command is no longer tracked
	CommandExhausted(ctx context.Context, cmd bridge.TrackedCommand, attempts int)
}

// Config controls the poll loop
type Config struct {
	Interval       time.Duration
	RequestTimeout time.Duration
	Policy         Policy
}

type entry struct {
	cmd      bridge.TrackedCommand
	seq      uint64
	backoff  *backoff.ExponentialBackOff
	attempts int
	nextAt   time.Time
}

// Poller owns the cross-chain tracking set
type Poller struct {
	client relayer.Client
	chains *bridge.Chains
	sink   Sink
	cfg    Config
	logger *zap.Logger
	clock  backoff.Clock

	mu      sync.Mutex
	tracked map[string]*entry // by transaction id
	seq     uint64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// New creates a poller. A zero Interval defaults to 5 seconds.
func New(client relayer.Client, chains *bridge.Chains, sink Sink, cfg Config, logger *zap.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return &Poller{
		client:  client,
		chains:  chains,
		sink:    sink,
		cfg:     cfg,
		logger:  logger.With(zap.String("component", "poller")),
		clock:   systemClock{},
		tracked: make(map[string]*entry),
		stopCh:  make(chan struct{}),
	}
}

// SetClock replaces the time source used for backoff scheduling
func (p *Poller) SetClock(c backoff.Clock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = c
}

// Track adds a command to the tracking set. It reports false when the
// transaction is already tracked; the existing command is kept.
func (p *Poller) Track(cmd bridge.TrackedCommand) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.tracked[cmd.TransactionID]; ok {
		if existing.cmd.CommandID != cmd.CommandID {
			p.logger.Warn("Ignoring different command id for tracked transaction",
				zap.String("tx_id", cmd.TransactionID),
				zap.String("command_id", existing.cmd.CommandID),
				zap.String("ignored_command_id", cmd.CommandID))
		}
		return false
	}

	p.seq++
	p.tracked[cmd.TransactionID] = &entry{
		cmd:     cmd,
		seq:     p.seq,
		backoff: p.cfg.Policy.newBackOff(p.clock),
	}
	metrics.TrackedCommands.Set(float64(len(p.tracked)))

	p.logger.Info("Tracking cross-chain command",
		zap.String("tx_id", cmd.TransactionID),
		zap.String("command_id", cmd.CommandID),
		zap.Uint64("destination_chain_id", cmd.DestinationChainID))
	return true
}

// Untrack removes the command of a transaction
func (p *Poller) Untrack(transactionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.untrackLocked(transactionID)
}

func (p *Poller) untrackLocked(transactionID string) bool {
	if _, ok := p.tracked[transactionID]; !ok {
		return false
	}
	delete(p.tracked, transactionID)
	metrics.TrackedCommands.Set(float64(len(p.tracked)))
	return true
}

// Tracked returns the tracking set in insertion order
func (p *Poller) Tracked() []bridge.TrackedCommand {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries := p.snapshotLocked()
	out := make([]bridge.TrackedCommand, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.cmd)
	}
	return out
}

func (p *Poller) snapshotLocked() []*entry {
	entries := make([]*entry, 0, len(p.tracked))
	for _, e := range p.tracked {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	return entries
}

// Start runs the poll loop until ctx is cancelled or Stop is called
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting poller",
		zap.Duration("interval", p.cfg.Interval),
		zap.Int("max_attempts", p.cfg.Policy.MaxAttempts),
		zap.Duration("max_duration", p.cfg.Policy.MaxDuration))

	p.wg.Add(1)
	go p.loop(ctx)
}

// Stop stops the poll loop and waits for an in-flight tick to finish
func (p *Poller) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("Poller stopped")
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce queries every tracked command whose backoff delay has elapsed or
// elapses within half a poll interval.
// Commands are processed sequentially; one removed earlier in the same pass
// is skipped.
func (p *Poller) PollOnce(ctx context.Context) {
	p.mu.Lock()
	entries := p.snapshotLocked()
	p.mu.Unlock()

	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		p.pollEntry(ctx, e)
	}
}

func (p *Poller) pollEntry(ctx context.Context, e *entry) {
	p.mu.Lock()
	current, ok := p.tracked[e.cmd.TransactionID]
	now := p.clock.Now()
	nextAt := e.nextAt
	p.mu.Unlock()
	// due within half a tick counts as due
	if !ok || current != e || nextAt.Sub(now) > p.cfg.Interval/2 {
		return
	}

	cmd := e.cmd
	log := p.logger.With(
		zap.String("tx_id", cmd.TransactionID),
		zap.String("command_id", cmd.CommandID))

	status, err := p.query(ctx, cmd)
	if err != nil {
		metrics.RelayerRequests.WithLabelValues("error").Inc()
		metrics.ErrorsTotal.WithLabelValues("poller", "relayer_query").Inc()
		log.Warn("Failed to query command status", zap.Error(err))
	} else if status.Executed {
		metrics.RelayerRequests.WithLabelValues("executed").Inc()
		if p.Untrack(cmd.TransactionID) {
			log.Info("Command executed on destination chain",
				zap.String("destination_tx_hash", status.TxHash))
			p.sink.CommandExecuted(ctx, cmd, status.TxHash)
		}
		return
	} else {
		metrics.RelayerRequests.WithLabelValues("pending").Inc()
		p.sink.CommandPending(ctx, cmd)
	}

	p.schedule(ctx, e, now, log)
}

// schedule records a non-terminal attempt and either sets the next attempt
// time or gives up on the command.
func (p *Poller) schedule(ctx context.Context, e *entry, now time.Time, log *zap.Logger) {
	p.mu.Lock()
	if current, ok := p.tracked[e.cmd.TransactionID]; !ok || current != e {
		p.mu.Unlock()
		return
	}

	e.attempts++
	exhausted := p.cfg.Policy.MaxAttempts > 0 && e.attempts >= p.cfg.Policy.MaxAttempts
	if !exhausted {
		delay := e.backoff.NextBackOff()
		if delay == backoff.Stop {
			exhausted = true
		} else {
			e.nextAt = now.Add(delay)
		}
	}
	if exhausted {
		p.untrackLocked(e.cmd.TransactionID)
	}
	attempts := e.attempts
	p.mu.Unlock()

	if exhausted {
		log.Warn("Giving up on command", zap.Int("attempts", attempts))
		p.sink.CommandExhausted(ctx, e.cmd, attempts)
	}
}

func (p *Poller) query(ctx context.Context, cmd bridge.TrackedCommand) (relayer.Status, error) {
	chain, err := p.chains.Lookup(cmd.DestinationChainID)
	if err != nil {
		return relayer.Status{}, fmt.Errorf("resolve destination chain: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()
	return p.client.CommandStatus(reqCtx, cmd.CommandID, chain.RelayerName)
}
