// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordApplicationSubmitted()
	RecordApplicationDecision(status string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordSessionsCleaned(count int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	loginSuccess    prometheus.Counter
	loginFail       prometheus.Counter
	appSubmitted    prometheus.Counter
	appDecision     *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	sessionsCleaned prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memberdesk_login_success_total",
			Help: "管理者ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memberdesk_login_fail_total",
			Help: "管理者ログイン失敗の合計数",
		}),
		appSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memberdesk_application_submitted_total",
			Help: "受け付けた入会申請の合計数",
		}),
		appDecision: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memberdesk_application_decision_total",
			Help: "判定結果別の入会申請処理数",
		}, []string{"status"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memberdesk_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "memberdesk_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memberdesk_sessions_cleaned_total",
			Help: "クリーンアップで削除された期限切れセッションの合計数",
		}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFail,
		c.appSubmitted,
		c.appDecision,
		c.httpStatus,
		c.requestLatency,
		c.sessionsCleaned,
	)

	return c
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordApplicationSubmitted は入会申請の受付を記録する。
func (c *Collector) RecordApplicationSubmitted() {
	c.appSubmitted.Inc()
}

// RecordApplicationDecision は入会申請の判定（approved/denied）を記録する。
func (c *Collector) RecordApplicationDecision(status string) {
	c.appDecision.WithLabelValues(status).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordSessionsCleaned はクリーンアップで削除されたセッション数を記録する。
func (c *Collector) RecordSessionsCleaned(count int) {
	c.sessionsCleaned.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
