// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import "time"

// Result 记录了一次基准测试中各个阶段的耗时。
type Result struct {
	Library string                   // 存储名称
	phases  []string                 // 阶段顺序
	elapsed map[string]time.Duration // 阶段耗时
}

// NewResult 创建一个空的结果。
func NewResult(library string) *Result {
	return &Result{Library: library, elapsed: make(map[string]time.Duration)}
}

// Record 记录阶段耗时，重复记录同一阶段时覆盖耗时但保留原有顺序。
func (r *Result) Record(phase string, elapsed time.Duration) {
	if _, ok := r.elapsed[phase]; !ok {
		r.phases = append(r.phases, phase)
	}
	r.elapsed[phase] = elapsed
}

// Phases 按记录顺序返回阶段名称。
func (r *Result) Phases() []string {
	return append([]string(nil), r.phases...)
}

// Elapsed 返回阶段耗时及其是否存在。
func (r *Result) Elapsed(phase string) (time.Duration, bool) {
	d, ok := r.elapsed[phase]
	return d, ok
}

// Seconds 返回阶段耗时的秒数，阶段不存在时返回 0。
func (r *Result) Seconds(phase string) float64 {
	return r.elapsed[phase].Seconds()
}
