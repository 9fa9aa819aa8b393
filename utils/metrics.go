package utils

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

var prefix = os.Getenv("B64HUFF_METRICS_PREFIX")

// 总任务数
var TotalJobs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: prefix + "total_jobs",
		Help: "Total number of encode/decode jobs processed",
	},
	[]string{"direction", "status"},
)

// 任务耗时
var JobDurations = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    prefix + "job_durations",
		Help:    "Total seconds of durations for a job",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	},
	[]string{"direction"},
)

// 读写字节数
var TotalBytes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: prefix + "total_bytes",
		Help: "Total number of bytes read and written by jobs",
	},
	[]string{"direction", "side"},
)

// 码长分布
var CodeLengths = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    prefix + "codebook_code_lengths",
		Help:    "Distribution of code lengths in generated codebooks",
		Buckets: prometheus.LinearBuckets(1, 3, 22),
	},
)

// 缓存数
var TotalCaches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: prefix + "total_caches",
		Help: "Total number of encode results served from or put into the cache",
	},
	[]string{"status"},
)

// 消息数
var TotalAmqpMessages = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: prefix + "total_amqp_messages",
		Help: "Total number of publish messaged",
	},
	[]string{"direction"},
)

var collectors = []prometheus.Collector{
	TotalJobs,
	JobDurations,
	TotalBytes,
	CodeLengths,
	TotalCaches,
	TotalAmqpMessages,
}

// RegisterMetrics registers every collector with r, skipping ones that are
// already registered.
func RegisterMetrics(r prometheus.Registerer) {
	for _, c := range collectors {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}
