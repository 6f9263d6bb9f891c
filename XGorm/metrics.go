// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XGorm

import "github.com/prometheus/client_golang/prometheus"

var (
	// pipeGauge 记录了等待执行的任务数量。
	pipeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "xgorm_pipe_pending",
		Help: "等待执行的任务数量",
	})

	// pipeCounter 记录了已经执行的任务总数。
	pipeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xgorm_pipe_total",
		Help: "已经执行的任务总数",
	})
)

func init() { prometheus.MustRegister(pipeGauge, pipeCounter) }
