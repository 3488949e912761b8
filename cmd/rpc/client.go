package rpc

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/canopy-network/canopy-amm/fsm"
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

// queryRetries is how many times a query is re-sent after a transport failure
const queryRetries = 3

type Client struct {
	rpcURL   string
	adminURL string
	client   http.Client
}

func NewClient(rpcURL, adminURL string) *Client {
	return &Client{rpcURL: rpcURL, adminURL: adminURL, client: http.Client{}}
}

func (c *Client) Version() (version *string, err lib.ErrorI) {
	version = new(string)
	err = c.get(VersionRouteName, version)
	return
}

// Transaction submits a call envelope; calls are never retried as they aren't idempotent
func (c *Client) Transaction(caller string, msg lib.MessageI) (result *lib.TxResult, err lib.ErrorI) {
	tx, err := lib.NewTransaction(caller, msg)
	if err != nil {
		return
	}
	bz, err := lib.MarshalJSON(tx)
	if err != nil {
		return
	}
	result = new(lib.TxResult)
	err = c.post(TxRouteName, bz, result)
	return
}

func (c *Client) Params() (p *fsm.Params, err lib.ErrorI) {
	p = new(fsm.Params)
	err = c.query(ParamsRouteName, nil, p)
	return
}

func (c *Client) Pool(asset string) (p *fsm.Pool, err lib.ErrorI) {
	p = new(fsm.Pool)
	err = c.query(PoolRouteName, assetRequest{Asset: asset}, p)
	return
}

func (c *Client) Pools() (p []*fsm.Pool, err lib.ErrorI) {
	err = c.query(PoolsRouteName, nil, &p)
	return
}

func (c *Client) Liquidity(asset, account string) (p decimal.Decimal, err lib.ErrorI) {
	err = c.query(LiquidityRouteName, assetAndAccountRequest{assetRequest{asset}, accountRequest{account}}, &p)
	return
}

func (c *Client) LiquidityAllowance(asset, owner, spender string) (p decimal.Decimal, err lib.ErrorI) {
	err = c.query(LiquidityAllowanceRouteName, allowanceRequest{assetRequest: assetRequest{asset}, Owner: owner, Spender: spender}, &p)
	return
}

func (c *Client) LiquidityPositions(asset string) (p map[string]decimal.Decimal, err lib.ErrorI) {
	err = c.query(LiquidityPositionsRouteName, assetRequest{Asset: asset}, &p)
	return
}

func (c *Client) Stake(account string) (p *StakeResponse, err lib.ErrorI) {
	p = new(StakeResponse)
	err = c.query(StakeRouteName, accountRequest{Account: account}, p)
	return
}

func (c *Client) Balance(asset, account string) (p decimal.Decimal, err lib.ErrorI) {
	err = c.query(BalanceRouteName, assetAndAccountRequest{assetRequest{asset}, accountRequest{account}}, &p)
	return
}

func (c *Client) Events(limit int) (p lib.Events, err lib.ErrorI) {
	err = c.query(EventsRouteName, eventsRequest{Limit: limit}, &p)
	return
}

func (c *Client) ResourceUsage() (returned *resourceUsageResponse, err lib.ErrorI) {
	returned = new(resourceUsageResponse)
	err = c.get(ResourceUsageRouteName, returned, true)
	return
}

func (c *Client) Config() (returned *lib.Config, err lib.ErrorI) {
	returned = new(lib.Config)
	err = c.get(ConfigRouteName, returned, true)
	return
}

func (c *Client) Logs() (logs string, err lib.ErrorI) {
	resp, e := c.client.Get(c.url(LogsRouteName, true))
	if e != nil {
		return "", lib.ErrGetRequest(e)
	}
	defer resp.Body.Close()
	bz, e := io.ReadAll(resp.Body)
	if e != nil {
		return "", lib.ErrReadBody(e)
	}
	return string(bz), nil
}

// query posts a read request, re-sending it with exponential backoff while the node is unreachable
func (c *Client) query(routeName string, request, ptr any) lib.ErrorI {
	var bz []byte
	if request != nil {
		var err lib.ErrorI
		if bz, err = lib.MarshalJSON(request); err != nil {
			return err
		}
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	err := backoff.Retry(func() error {
		e := c.post(routeName, bz, ptr)
		switch {
		case e == nil:
			return nil
		// only transport failures are worth another attempt
		case e.Module() == lib.RPCModule && e.Code() == lib.CodePostRequest:
			return e
		default:
			return backoff.Permanent(e)
		}
	}, backoff.WithMaxRetries(policy, queryRetries))
	if err == nil {
		return nil
	}
	if e, ok := err.(lib.ErrorI); ok {
		return e
	}
	return lib.ErrPostRequest(err)
}

func (c *Client) url(routeName string, admin ...bool) string {
	if len(admin) != 0 && admin[0] {
		return c.adminURL + routePaths[routeName].Path
	}
	return c.rpcURL + routePaths[routeName].Path
}

func (c *Client) post(routeName string, json []byte, ptr any, admin ...bool) lib.ErrorI {
	resp, err := c.client.Post(c.url(routeName, admin...), ApplicationJSON, bytes.NewBuffer(json))
	if err != nil {
		return lib.ErrPostRequest(err)
	}
	return c.unmarshal(resp, ptr)
}

func (c *Client) get(routeName string, ptr any, admin ...bool) lib.ErrorI {
	resp, err := c.client.Get(c.url(routeName, admin...))
	if err != nil {
		return lib.ErrGetRequest(err)
	}
	return c.unmarshal(resp, ptr)
}

// unmarshal decodes the response into ptr; a rejected request surfaces the error the node returned
func (c *Client) unmarshal(resp *http.Response, ptr any) lib.ErrorI {
	defer resp.Body.Close()
	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return lib.ErrReadBody(err)
	}
	if resp.StatusCode != http.StatusOK {
		nodeErr := new(lib.Error)
		if e := lib.UnmarshalJSON(bz, nodeErr); e == nil && nodeErr.EModule != "" {
			return nodeErr
		}
		return lib.ErrHttpStatus(resp.Status, resp.StatusCode, bz)
	}
	return lib.UnmarshalJSON(bz, ptr)
}
