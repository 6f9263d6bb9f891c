// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"fmt"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XString"
	"github.com/eframework-org/GO.UTIL/XTime"
	"github.com/petermattis/goid"
)

// operation 定义了会话中统计的操作类型。
type operation int

const (
	opRead operation = iota
	opList
	opWrite
	opUpdate
	opClear
	opCount
	opTotal
)

// operationNames 是操作类型的名称，用于日志及统计。
var operationNames = [opTotal]string{"Read", "List", "Write", "Update", "Clear", "Count"}

func (op operation) String() string { return operationNames[op] }

// session 记录了一次基准测试中各类操作的次数和耗时。
// 会话随存储的 Setup 开始、Teardown 结束，只在单个 goroutine 中使用。
type session struct {
	gid     int64          // 开始会话的 goroutine ID
	time    int            // 会话开始时间（微秒）
	counts  [opTotal]int64 // 操作次数
	elapsed [opTotal]int64 // 操作耗时（微秒）
}

// watch 开始一个会话，并为当前 goroutine 的日志设置标签。
func watch() *session {
	sess := &session{gid: goid.Get(), time: XTime.GetMicrosecond()}

	tag := XLog.Tag()
	if tag != nil { // 设置日志标签
		tag.Set("Go", XString.ToString(int(sess.gid)))
		tag.Set("Store", "Beego")
	}

	XLog.Info("XOrm.Watch: session has been started.")
	return sess
}

// track 记录 n 次 op 操作，start 为操作开始的时间（微秒）。
func (sess *session) track(op operation, start int, n int) {
	sess.counts[op] += int64(n)
	sess.elapsed[op] += int64(XTime.GetMicrosecond() - start)
	operationCounter.WithLabelValues(op.String()).Add(float64(n))
}

// count 返回 op 操作的次数。
func (sess *session) count(op operation) int64 { return sess.counts[op] }

// deferred 结束会话，输出各类操作的次数和耗时。
func (sess *session) deferred() {
	if !XLog.Able(XLog.LevelInfo) {
		return
	}
	total := int64(XTime.GetMicrosecond() - sess.time)
	other := total
	var crudLog string
	for op := range opTotal {
		if sess.counts[op] > 0 {
			crudLog += fmt.Sprintf("[%v(%v):%.2fms] ", op, sess.counts[op], float64(sess.elapsed[op])/1e3)
			other -= sess.elapsed[op]
		}
	}
	XLog.Info("XOrm.Defer: session has been deferred, elapsed %.2fms for %v[Other:%.2fms].",
		float64(total)/1e3, crudLog, float64(other)/1e3)
}
