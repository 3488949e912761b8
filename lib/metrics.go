package lib

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"
)

/* This file implements dev-ops telemetry for the exchange node in the form of prometheus metrics */

const metricsPattern = "/metrics"

// Metrics represents a server that exposes Prometheus metrics
type Metrics struct {
	server   *http.Server         // the http prometheus server
	config   MetricsConfig        // the configuration
	registry *prometheus.Registry // the collector registry owned by this instance
	stop     chan struct{}        // closes the process sampling loop
	log      LoggerI              // the logger

	ProcessMetrics // telemetry about this process
	EngineMetrics  // telemetry about the exchange engine
}

// ProcessMetrics represents resource usage of the node process
type ProcessMetrics struct {
	CPUPercent     prometheus.Gauge // how busy is the process?
	ResidentMemory prometheus.Gauge // how much memory is the process holding?
	ThreadCount    prometheus.Gauge // how many os threads does the process run?
}

// EngineMetrics represents the telemetry of the exchange engine
type EngineMetrics struct {
	Calls           *prometheus.CounterVec // how many calls were committed or rejected, by message type?
	CallDuration    prometheus.Histogram   // how long does a call take to execute and commit?
	SwapVolume      *prometheus.CounterVec // how much was spent into each pool, by side?
	SwapOutput      *prometheus.CounterVec // how much was paid out of each pool, by side?
	Burned          *prometheus.CounterVec // how much of each asset was sent to the burn sink?
	ReserveCurrency *prometheus.GaugeVec   // the currency reserve of each pool
	ReserveAsset    *prometheus.GaugeVec   // the asset reserve of each pool
	Price           *prometheus.GaugeVec   // the cached price of each pool
}

// NewMetricsServer() creates a new telemetry server with its own collector registry
func NewMetricsServer(config MetricsConfig, log LoggerI) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	mux := http.NewServeMux()
	mux.Handle(metricsPattern, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return &Metrics{
		server:   &http.Server{Addr: config.PrometheusAddress, Handler: mux},
		config:   config,
		registry: registry,
		stop:     make(chan struct{}),
		log:      log,
		ProcessMetrics: ProcessMetrics{
			CPUPercent: factory.NewGauge(prometheus.GaugeOpts{
				Name: "amm_process_cpu_percent",
				Help: "CPU usage of the node process in percent",
			}),
			ResidentMemory: factory.NewGauge(prometheus.GaugeOpts{
				Name: "amm_process_resident_memory_bytes",
				Help: "Resident memory of the node process in bytes",
			}),
			ThreadCount: factory.NewGauge(prometheus.GaugeOpts{
				Name: "amm_process_threads",
				Help: "Number of os threads of the node process",
			}),
		},
		EngineMetrics: EngineMetrics{
			Calls: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "amm_calls_total",
				Help: "Number of engine calls by message type and result",
			}, []string{"message", "result"}),
			CallDuration: factory.NewHistogram(prometheus.HistogramOpts{
				Name: "amm_call_duration_seconds",
				Help: "Time to execute and commit an engine call in seconds",
			}),
			SwapVolume: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "amm_swap_volume",
				Help: "Amount spent into a pool by swaps",
			}, []string{"pool", "side"}),
			SwapOutput: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "amm_swap_output",
				Help: "Amount paid out of a pool to traders",
			}, []string{"pool", "side"}),
			Burned: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "amm_burned",
				Help: "Amount of an asset sent to the burn sink",
			}, []string{"asset"}),
			ReserveCurrency: factory.NewGaugeVec(prometheus.GaugeOpts{
				Name: "amm_pool_reserve_currency",
				Help: "Currency reserve of a pool",
			}, []string{"pool"}),
			ReserveAsset: factory.NewGaugeVec(prometheus.GaugeOpts{
				Name: "amm_pool_reserve_asset",
				Help: "Asset reserve of a pool",
			}, []string{"pool"}),
			Price: factory.NewGaugeVec(prometheus.GaugeOpts{
				Name: "amm_pool_price",
				Help: "Cached price of a pool in currency per asset",
			}, []string{"pool"}),
		},
	}
}

// Start() starts the telemetry server and the process sampler
func (m *Metrics) Start() {
	// exit if empty
	if m == nil {
		return
	}
	// if the metrics server is enabled
	if m.config.Enabled {
		go func() {
			m.log.Infof("Starting metrics server on %s", m.config.PrometheusAddress)
			// run the server
			if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				m.log.Errorf("Metrics server failed with err: %s", err.Error())
			}
		}()
		go m.sampleProcess()
	}
}

// Stop() gracefully stops the telemetry server
func (m *Metrics) Stop() {
	// exit if empty
	if m == nil {
		return
	}
	if m.config.Enabled {
		close(m.stop)
		// shutdown the server
		if err := m.server.Shutdown(context.Background()); err != nil {
			m.log.Error(err.Error())
		}
	}
}

// Handler() exposes the metrics endpoint without starting a listener
func (m *Metrics) Handler() http.Handler { return m.server.Handler }

// sampleProcess() periodically records the resource usage of this process
func (m *Metrics) sampleProcess() {
	interval := time.Duration(m.config.SampleIntervalS) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := m.UpdateProcessMetrics(); err != nil {
			m.log.Warnf("Process sampling failed with err: %s", err.Error())
		}
		select {
		case <-m.stop:
			return
		case <-ticker.C:
		}
	}
}

// UpdateProcessMetrics() samples cpu, memory and threads of the current process
func (m *Metrics) UpdateProcessMetrics() error {
	// exit if empty
	if m == nil {
		return nil
	}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return err
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return err
	}
	threads, err := p.NumThreads()
	if err != nil {
		return err
	}
	m.CPUPercent.Set(cpuPercent)
	m.ResidentMemory.Set(float64(memInfo.RSS))
	m.ThreadCount.Set(float64(threads))
	return nil
}

// UpdateCall() records the outcome and latency of an engine call
func (m *Metrics) UpdateCall(messageType string, err ErrorI, duration time.Duration) {
	// exit if empty
	if m == nil {
		return
	}
	result := "committed"
	if err != nil {
		result = "rejected"
	}
	m.Calls.WithLabelValues(messageType, result).Inc()
	m.CallDuration.Observe(duration.Seconds())
}

// UpdateSwap() records the amounts moved by a trade; side is the asset spent into the pool
func (m *Metrics) UpdateSwap(pool, side string, amountIn, amountOut float64) {
	// exit if empty
	if m == nil {
		return
	}
	m.SwapVolume.WithLabelValues(pool, side).Add(amountIn)
	m.SwapOutput.WithLabelValues(pool, side).Add(amountOut)
}

// UpdateBurn() records an amount sent to the burn sink
func (m *Metrics) UpdateBurn(asset string, amount float64) {
	// exit if empty
	if m == nil {
		return
	}
	m.Burned.WithLabelValues(asset).Add(amount)
}

// UpdatePool() records the reserves and the cached price of a pool
func (m *Metrics) UpdatePool(pool string, reserveCurrency, reserveAsset, price float64) {
	// exit if empty
	if m == nil {
		return
	}
	m.ReserveCurrency.WithLabelValues(pool).Set(reserveCurrency)
	m.ReserveAsset.WithLabelValues(pool).Set(reserveAsset)
	m.Price.WithLabelValues(pool).Set(price)
}
