// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import "github.com/prometheus/client_golang/prometheus"

var (
	// phaseGauge 记录了每个存储各阶段最近一次的耗时（秒）。
	phaseGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "xbench_phase_seconds",
		Help: "最近一次执行的阶段耗时（秒）",
	}, []string{"library", "phase"})

	// runCounter 记录了每个存储成功执行的次数。
	runCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xbench_run_total",
		Help: "成功执行的次数",
	}, []string{"library"})
)

func init() { prometheus.MustRegister(Metrics().Collectors()...) }

// metricsInfo 定义了全局的统计信息。
type metricsInfo struct{}

var sharedMetrics = &metricsInfo{}

// 提供了统计信息的全局访问点。
func Metrics() *metricsInfo {
	return sharedMetrics
}

// Collectors 返回所有的统计收集器。
func (mi *metricsInfo) Collectors() []prometheus.Collector {
	return []prometheus.Collector{phaseGauge, runCounter}
}

