package rpc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Exchange RPC Paths
const (
	VersionRoutePath            = "/v1/"
	TxRoutePath                 = "/v1/tx"
	ParamsRoutePath             = "/v1/query/params"
	PoolRoutePath               = "/v1/query/pool"
	PoolsRoutePath              = "/v1/query/pools"
	LiquidityRoutePath          = "/v1/query/liquidity"
	LiquidityAllowanceRoutePath = "/v1/query/liquidity-allowance"
	LiquidityPositionsRoutePath = "/v1/query/liquidity-positions"
	StakeRoutePath              = "/v1/query/stake"
	BalanceRoutePath            = "/v1/query/balance"
	EventsRoutePath             = "/v1/query/events"
	// debug
	DebugHeapRoutePath      = "/debug/heap"
	DebugCPURoutePath       = "/debug/cpu"
	DebugGoroutineRoutePath = "/debug/goroutine"
	// admin
	ResourceUsageRoutePath = "/v1/admin/resource-usage"
	ConfigRoutePath        = "/v1/admin/config"
	LogsRoutePath          = "/v1/admin/log"
)

const (
	VersionRouteName            = "version"
	TxRouteName                 = "tx"
	ParamsRouteName             = "params"
	PoolRouteName               = "pool"
	PoolsRouteName              = "pools"
	LiquidityRouteName          = "liquidity"
	LiquidityAllowanceRouteName = "liquidity-allowance"
	LiquidityPositionsRouteName = "liquidity-positions"
	StakeRouteName              = "stake"
	BalanceRouteName            = "balance"
	EventsRouteName             = "events"
	// debug
	DebugHeapRouteName      = "heap"
	DebugCPURouteName       = "cpu"
	DebugGoroutineRouteName = "goroutine"
	// admin
	ResourceUsageRouteName = "resource-usage"
	ConfigRouteName        = "config"
	LogsRouteName          = "logs"
)

// routes contains the method and path for an exchange command
type routes map[string]struct {
	Method string
	Path   string
}

// routePaths is a mapping from route names to their corresponding HTTP methods and paths.
var routePaths = routes{
	VersionRouteName:            {Method: http.MethodGet, Path: VersionRoutePath},
	TxRouteName:                 {Method: http.MethodPost, Path: TxRoutePath},
	ParamsRouteName:             {Method: http.MethodPost, Path: ParamsRoutePath},
	PoolRouteName:               {Method: http.MethodPost, Path: PoolRoutePath},
	PoolsRouteName:              {Method: http.MethodPost, Path: PoolsRoutePath},
	LiquidityRouteName:          {Method: http.MethodPost, Path: LiquidityRoutePath},
	LiquidityAllowanceRouteName: {Method: http.MethodPost, Path: LiquidityAllowanceRoutePath},
	LiquidityPositionsRouteName: {Method: http.MethodPost, Path: LiquidityPositionsRoutePath},
	StakeRouteName:              {Method: http.MethodPost, Path: StakeRoutePath},
	BalanceRouteName:            {Method: http.MethodPost, Path: BalanceRoutePath},
	EventsRouteName:             {Method: http.MethodPost, Path: EventsRoutePath},
	// debug
	DebugHeapRouteName:      {Method: http.MethodGet, Path: DebugHeapRoutePath},
	DebugCPURouteName:       {Method: http.MethodGet, Path: DebugCPURoutePath},
	DebugGoroutineRouteName: {Method: http.MethodGet, Path: DebugGoroutineRoutePath},
	// admin
	ResourceUsageRouteName: {Method: http.MethodGet, Path: ResourceUsageRoutePath},
	ConfigRouteName:        {Method: http.MethodGet, Path: ConfigRoutePath},
	LogsRouteName:          {Method: http.MethodGet, Path: LogsRoutePath},
}

// httpRouteHandlers is a custom type that maps strings to httprouter handle functions
type httpRouteHandlers map[string]httprouter.Handle

// createRouter initializes and returns a new HTTP router with the public route handlers
func createRouter(s *Server) *httprouter.Router {
	return newRouter(httpRouteHandlers{
		VersionRouteName:            s.Version,
		TxRouteName:                 s.Transaction,
		ParamsRouteName:             s.Params,
		PoolRouteName:               s.Pool,
		PoolsRouteName:              s.Pools,
		LiquidityRouteName:          s.Liquidity,
		LiquidityAllowanceRouteName: s.LiquidityAllowance,
		LiquidityPositionsRouteName: s.LiquidityPositions,
		StakeRouteName:              s.Stake,
		BalanceRouteName:            s.Balance,
		EventsRouteName:             s.Events,
	})
}

// createAdminRouter initializes and returns a new HTTP router with the operator route handlers
func createAdminRouter(s *Server) *httprouter.Router {
	return newRouter(httpRouteHandlers{
		ResourceUsageRouteName: s.ResourceUsage,
		ConfigRouteName:        s.Config,
		LogsRouteName:          logsHandler(s),
		// debug
		DebugHeapRouteName:      debugHandler(DebugHeapRouteName),
		DebugCPURouteName:       debugHandler(DebugCPURouteName),
		DebugGoroutineRouteName: debugHandler(DebugGoroutineRouteName),
	})
}

// newRouter() registers every handler under its configured method and path
func newRouter(r httpRouteHandlers) *httprouter.Router {
	// Initialize a new router using the httprouter package.
	router := httprouter.New()
	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]
		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, handler)
	}
	return router
}
