package controller

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/canopy-network/canopy-amm/fsm"
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Controller acts as the 'manager' of the modules of the application
// it is the single writer of the ledger: every call is serialised and executed atomically
type Controller struct {
	FSM     *fsm.StateMachine
	DB      lib.StoreI
	Metrics *lib.Metrics
	Config  lib.Config
	log     lib.LoggerI
	sync.Mutex
}

// New() creates a new instance of a Controller, this is the entry point when initializing an exchange node
func New(c lib.Config, db lib.StoreI, metrics *lib.Metrics, l lib.LoggerI) (*Controller, lib.ErrorI) {
	// load the state machine, applying genesis if the ledger is empty
	sm, err := fsm.New(c, db, l)
	if err != nil {
		return nil, err
	}
	return &Controller{
		FSM:     sm,
		DB:      db,
		Metrics: metrics,
		Config:  c,
		log:     l,
		Mutex:   sync.Mutex{},
	}, nil
}

// Start() begins the Controller service
func (c *Controller) Start() {
	// start the telemetry server
	c.Metrics.Start()
	// seed the pool gauges with the persisted reserves
	c.Lock()
	defer c.Unlock()
	c.updatePoolMetrics()
}

// Stop() terminates the Controller service
func (c *Controller) Stop() {
	c.Lock()
	defer c.Unlock()
	c.Metrics.Stop()
	if err := c.DB.Close(); err != nil {
		c.log.Error(err.Error())
	}
}

// HandleTransaction() executes a call envelope against the ledger
// a committed call returns its result and events; a rejected call leaves no trace in the ledger
func (c *Controller) HandleTransaction(tx *lib.Transaction) (result *lib.TxResult, err lib.ErrorI) {
	// track the latency of the call
	start := time.Now()
	// lock the controller for thread safety
	c.Lock()
	// unlock when the call completes
	defer c.Unlock()
	// record the outcome once known
	defer func() { c.Metrics.UpdateCall(tx.MessageType, err, time.Since(start)) }()
	// ensure the caller is set
	if tx.Caller == "" {
		return nil, fsm.ErrEmptyCaller()
	}
	// decode the message from the envelope
	msg, err := fsm.ParseTransaction(tx)
	if err != nil {
		return nil, err
	}
	// identify the call; its events reference this id
	id := uuid.NewString()
	// execute the message atomically
	out, events, err := c.execute(id, tx.Caller, msg)
	if err != nil {
		c.log.Warnf("Rejected %s from %s with err: %s", msg.Name(), tx.Caller, err.Error())
		return nil, err
	}
	// encode the result of the entry point
	bz, err := lib.MarshalJSON(out)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("Committed %s %s from %s with %d events", msg.Name(), id, tx.Caller, len(events))
	// update the telemetry from what the call recorded
	c.updateMetrics(events)
	return &lib.TxResult{
		Id:          id,
		Caller:      tx.Caller,
		MessageType: msg.Name(),
		Result:      bz,
		Events:      events,
	}, nil
}

// execute() runs the message inside a database transaction that is written and committed only on success
func (c *Controller) execute(id, caller string, msg lib.MessageI) (result any, events lib.Events, err lib.ErrorI) {
	// at the end of this code, set the state machine store back to the database
	defer c.FSM.SetStore(c.DB)
	// start recording events for this call
	c.FSM.ResetEvents(id)
	// wrap the store in a 'database transaction' in case a rollback is needed
	txn, err := c.FSM.TxnWrap()
	if err != nil {
		return
	}
	// discard everything on failure, including a panic deep in the engine
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("Panic executing %s: %v\n%s", msg.Name(), r, string(debug.Stack()))
			err = lib.ErrPanic()
		}
		if err != nil {
			txn.Discard()
			c.DB.Discard()
			c.FSM.ResetEvents("")
			result, events = nil, nil
		}
	}()
	// route the message to its entry point
	if result, err = c.FSM.HandleMessage(caller, msg); err != nil {
		return
	}
	// write the transaction to the database
	if err = txn.Write(); err != nil {
		return
	}
	// persist the database
	if err = c.DB.Commit(); err != nil {
		return
	}
	// collect the events of the call
	events = c.FSM.ResetEvents("")
	return
}

// updateMetrics() translates the events of a committed call into telemetry
func (c *Controller) updateMetrics(events lib.Events) {
	if c.Metrics == nil {
		return
	}
	touched := make(map[string]struct{})
	for _, e := range events {
		if e.Pool != "" {
			touched[e.Pool] = struct{}{}
		}
		switch lib.EventType(e.EventType) {
		case lib.EventTypeSwap:
			swap := new(lib.EventSwap)
			if err := lib.UnmarshalJSON(e.Msg, swap); err != nil {
				c.log.Error(err.Error())
				continue
			}
			c.Metrics.UpdateSwap(e.Pool, swap.Side, swap.AmountIn.InexactFloat64(), swap.AmountOut.InexactFloat64())
		case lib.EventTypeBurn:
			burn := new(lib.EventBurn)
			if err := lib.UnmarshalJSON(e.Msg, burn); err != nil {
				c.log.Error(err.Error())
				continue
			}
			c.Metrics.UpdateBurn(burn.Asset, burn.Amount.InexactFloat64())
		}
	}
	for asset := range touched {
		pool, err := c.FSM.GetPool(asset)
		if err != nil || !pool.Exists {
			continue
		}
		c.Metrics.UpdatePool(asset, pool.ReserveCurrency.InexactFloat64(), pool.ReserveAsset.InexactFloat64(), pool.Price.InexactFloat64())
	}
}

// updatePoolMetrics() sets the pool gauges for every market
func (c *Controller) updatePoolMetrics() {
	if c.Metrics == nil {
		return
	}
	pools, err := c.FSM.GetPools()
	if err != nil {
		c.log.Errorf("Loading pools for metrics failed with err: %s", err.Error())
		return
	}
	for _, p := range pools {
		c.Metrics.UpdatePool(p.Asset, p.ReserveCurrency.InexactFloat64(), p.ReserveAsset.InexactFloat64(), p.Price.InexactFloat64())
	}
}

// QUERIES BELOW

// GetParams() returns the engine configuration
func (c *Controller) GetParams() (*fsm.Params, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.GetParams()
}

// GetPool() returns the market of an asset
func (c *Controller) GetPool(asset string) (*fsm.Pool, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.GetPool(asset)
}

// GetPools() returns every market
func (c *Controller) GetPools() ([]*fsm.Pool, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.GetPools()
}

// LiquidityBalanceOf() returns the points an account holds in a market
func (c *Controller) LiquidityBalanceOf(asset, account string) (decimal.Decimal, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.LiquidityBalanceOf(asset, account)
}

// LiquidityAllowance() returns the points a spender may move out of an owner's position
func (c *Controller) LiquidityAllowance(asset, owner, spender string) (decimal.Decimal, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.LiquidityAllowance(asset, owner, spender)
}

// LiquidityPositions() returns every position of a market
func (c *Controller) LiquidityPositions(asset string) (map[string]decimal.Decimal, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.LiquidityPositions(asset)
}

// GetStake() returns the stake of an account
func (c *Controller) GetStake(account string) (*fsm.StakePosition, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.GetStake(account)
}

// BalanceOf() returns the balance an account holds of a deployed asset
func (c *Controller) BalanceOf(asset, account string) (decimal.Decimal, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.BalanceOf(asset, account)
}

// GetEvents() returns the newest events of the ledger
func (c *Controller) GetEvents(limit int) (lib.Events, lib.ErrorI) {
	c.Lock()
	defer c.Unlock()
	return c.FSM.GetEvents(limit)
}

// String() describes the node for the admin endpoints
func (c *Controller) String() string {
	return fmt.Sprintf("engine %s over %s", c.Config.EngineAccount, c.Config.CurrencyAsset)
}
