package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/verahealth/coach-backend/internal/platform/logger"
)

// Metrics is the process-wide metric registry, exposed in Prometheus text
// format on a dedicated listener. All methods are nil-safe so callers never
// guard on whether metrics are enabled.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	llmRequests *CounterVec
	llmLatency  *HistogramVec
	llmTokens   *CounterVec

	reportTotal     *CounterVec
	reportLatency   *HistogramVec
	reportFallbacks *Counter
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = &Metrics{
			apiRequests: NewCounterVec("vh_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
			apiLatency: NewHistogramVec(
				"vh_api_request_duration_seconds",
				"API request latency in seconds by method/route/status.",
				[]string{"method", "route", "status"},
				[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			),
			apiInflight: NewGauge("vh_api_inflight_requests", "In-flight API requests."),
			llmRequests: NewCounterVec("vh_llm_requests_total", "LLM requests by model/endpoint/status.", []string{"model", "endpoint", "status"}),
			llmLatency: NewHistogramVec(
				"vh_llm_request_duration_seconds",
				"LLM request latency in seconds by model/endpoint/status.",
				[]string{"model", "endpoint", "status"},
				[]float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
			),
			llmTokens: NewCounterVec("vh_llm_tokens_total", "LLM tokens by model/direction.", []string{"model", "direction"}),
			reportTotal: NewCounterVec(
				"vh_report_generated_total",
				"Generated reports by risk category and narrative source.",
				[]string{"category", "narrative_source"},
			),
			reportLatency: NewHistogramVec(
				"vh_report_generation_duration_seconds",
				"End-to-end report generation latency in seconds.",
				[]string{"category"},
				[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			),
			reportFallbacks: NewCounter("vh_report_narrative_fallback_total", "Reports whose narratives came from the template fallback."),
		}
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.reportTotal, m.reportLatency, m.reportFallbacks,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, endpoint, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = "unknown"
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = "0"
	}
	m.llmRequests.Inc(model, endpoint, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model, endpoint, status)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
	}
}

func (m *Metrics) ObserveReport(category, narrativeSource string, dur time.Duration) {
	if m == nil {
		return
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "unknown"
	}
	narrativeSource = strings.TrimSpace(narrativeSource)
	if narrativeSource == "" {
		narrativeSource = "unknown"
	}
	m.reportTotal.Inc(category, narrativeSource)
	if dur > 0 {
		m.reportLatency.Observe(dur.Seconds(), category)
	}
	if narrativeSource == "fallback" {
		m.reportFallbacks.Inc()
	}
}

// ---- lightweight metric primitives (Prometheus exposition) ----

type CounterVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{name: name, help: help, labelNames: labels, values: map[string]float64{}}
}

func (c *CounterVec) Inc(values ...string) {
	if c == nil {
		return
	}
	lbl := labelString(c.labelNames, values)
	c.mu.Lock()
	c.values[lbl]++
	c.mu.Unlock()
}

func (c *CounterVec) Add(v float64, values ...string) {
	if c == nil {
		return
	}
	lbl := labelString(c.labelNames, values)
	c.mu.Lock()
	c.values[lbl] += v
	c.mu.Unlock()
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s counter\n", c.name); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.values {
		if _, err := fmt.Fprintf(w, "%s%s %f\n", c.name, k, v); err != nil {
			return err
		}
	}
	return nil
}

type Counter struct {
	name string
	help string
	mu   sync.RWMutex
	val  float64
}

func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

func (c *Counter) Inc() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.val++
	c.mu.Unlock()
}

func (c *Counter) Value() float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

func (c *Counter) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s counter\n", c.name); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := fmt.Fprintf(w, "%s %f\n", c.name, c.val)
	return err
}

type Gauge struct {
	name string
	help string
	mu   sync.RWMutex
	val  float64
}

func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

func (g *Gauge) Inc() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val++
	g.mu.Unlock()
}

func (g *Gauge) Dec() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val--
	g.mu.Unlock()
}

func (g *Gauge) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", g.name, g.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s gauge\n", g.name); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, err := fmt.Fprintf(w, "%s %f\n", g.name, g.val)
	return err
}

type HistogramVec struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64
	mu         sync.RWMutex
	values     map[string]*histogram
}

type histogram struct {
	buckets []float64
	counts  []uint64
	sum     float64
	total   uint64
}

func NewHistogramVec(name, help string, labels []string, buckets []float64) *HistogramVec {
	if len(buckets) == 0 {
		buckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	}
	return &HistogramVec{name: name, help: help, labelNames: labels, buckets: buckets, values: map[string]*histogram{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	lbl := labelString(h.labelNames, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.values[lbl]
	if !ok {
		hist = &histogram{
			buckets: h.buckets,
			counts:  make([]uint64, len(h.buckets)+1),
		}
		h.values[lbl] = hist
	}
	hist.sum += v
	hist.total++
	for i, b := range hist.buckets {
		if v <= b {
			hist.counts[i]++
		}
	}
	hist.counts[len(hist.counts)-1]++
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if h == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", h.name, h.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s histogram\n", h.name); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for k, v := range h.values {
		for i, b := range v.buckets {
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, fmt.Sprintf("%g", b)), v.counts[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, "+Inf"), v.counts[len(v.counts)-1]); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_sum%s %f\n", h.name, k, v.sum); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_count%s %d\n", h.name, k, v.total); err != nil {
			return err
		}
	}
	return nil
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(",")
		}
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		b.WriteString(name)
		b.WriteString("=\"")
		b.WriteString(escapeLabel(val))
		b.WriteString("\"")
	}
	b.WriteString("}")
	return b.String()
}

func withLe(labels string, le string) string {
	if labels == "" {
		return fmt.Sprintf("{le=%q}", le)
	}
	return strings.TrimSuffix(labels, "}") + fmt.Sprintf(",le=%q}", le)
}

func escapeLabel(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "\n", `\n`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return v
}
