package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tsinghua-fib-lab/highway-planner/entity/planner"
)

const namespace = "planner"

// Metrics 规划周期的prometheus指标
type Metrics struct {
	cycles      prometheus.Counter
	skipped     prometheus.Counter
	decisions   *prometheus.CounterVec
	untracked   prometheus.Counter
	targetSpeed prometheus.Gauge
	frontDist   prometheus.Histogram
}

// New 创建指标并注册到reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "The total number of planning cycles",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_cycles_total",
			Help:      "The number of cycles skipped because the ego lane was invalid",
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "The number of lane decisions by direction",
		}, []string{"decision"}),
		untracked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "untracked_vehicles_total",
			Help:      "The number of vehicles ignored for being more than two lanes away",
		}),
		targetSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_speed",
			Help:      "The target speed of the latest cycle",
		}),
		frontDist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "target_front_distance",
			Help:      "The distance to the vehicle ahead in the target lane",
			Buckets:   []float64{5, 10, 15, 20, 30, 50, 75, 100},
		}),
	}
	reg.MustRegister(m.cycles, m.skipped, m.decisions, m.untracked, m.targetSpeed, m.frontDist)
	return m
}

// Observe 记录一个完成的规划周期
func (m *Metrics) Observe(s planner.Strategy) {
	m.cycles.Inc()
	m.decisions.WithLabelValues(s.Decision.String()).Inc()
	m.untracked.Add(float64(s.Untracked))
	m.targetSpeed.Set(s.Speed)
	m.frontDist.Observe(s.FrontDist)
}

// Skip 记录一个被跳过的规划周期
func (m *Metrics) Skip() {
	m.cycles.Inc()
	m.skipped.Inc()
}
