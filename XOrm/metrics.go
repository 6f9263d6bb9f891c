// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import "github.com/prometheus/client_golang/prometheus"

// operationCounter 记录了各类操作的执行次数。
var operationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "xorm_operation_total",
	Help: "Beego 存储各类操作的执行次数",
}, []string{"operation"})

func init() { prometheus.MustRegister(operationCounter) }

// metricsInfo 定义了全局的统计信息。
type metricsInfo struct{}

var sharedMetrics = &metricsInfo{}

// 提供了统计信息的全局访问点。
func Metrics() *metricsInfo {
	return sharedMetrics
}

// Operation 返回指定操作的计数器。
func (mi *metricsInfo) Operation(kind string) prometheus.Counter {
	return operationCounter.WithLabelValues(kind)
}
