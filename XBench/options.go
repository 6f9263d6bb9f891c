// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"fmt"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
)

const (
	// prefsBenchCount 定义了操作数量的偏好设置键。
	prefsBenchCount = "Bench/Count"

	// defaultCount 定义了默认的操作数量。
	defaultCount = 10000
)

// 阶段名称，同时作为结果及输出中的阶段标识。
const (
	// PhaseSingleInsert 逐条插入用户，每条独立提交。
	PhaseSingleInsert = "single_insert"

	// PhaseBulkInsert 清空用户后通过一次批量调用插入用户。
	PhaseBulkInsert = "bulk_insert"

	// PhaseInsertAddresses 为每个用户插入一个地址，不计时。
	PhaseInsertAddresses = "insert_addresses"

	// PhaseReadUsers 读取所有用户。
	PhaseReadUsers = "read_users"

	// PhaseReadWithJoin 读取所有用户及其地址。
	PhaseReadWithJoin = "read_with_join"

	// PhaseUpdateQuery 逐条更新地址的文本。
	PhaseUpdateQuery = "update_query"

	// PhaseDeleteQuery 先删除所有地址，再删除所有用户。
	PhaseDeleteQuery = "delete_query"
)

// UpdatedAddress 是 update_query 阶段写入的固定地址文本。
const UpdatedAddress = "Updated Address"

// Phases 返回所有计时阶段的名称，顺序即执行顺序。
func Phases() []string {
	return []string{
		PhaseSingleInsert,
		PhaseBulkInsert,
		PhaseReadUsers,
		PhaseReadWithJoin,
		PhaseUpdateQuery,
		PhaseDeleteQuery,
	}
}

// UserName 返回第 index 个用户的名称。
func UserName(index int) string { return fmt.Sprintf("User %d", index) }

// AddressText 返回第 index 个地址的文本。
func AddressText(index int) string { return fmt.Sprintf("Address %d", index) }

// Options 定义了基准测试的执行参数。
type Options struct {
	Count int // 操作数量

	// OnPhase 在每个阶段（包括不计时的阶段）结束后回调，回调耗时不计入阶段耗时。
	// 返回错误将中止执行。
	OnPhase func(phase string) error
}

// NewOptions 根据偏好设置创建执行参数。
// prefs 为 nil 时将触发 panic。
func NewOptions(prefs XPrefs.IBase) *Options {
	if prefs == nil {
		XLog.Panic("XBench.NewOptions: prefs is nil.")
		return nil
	}
	count := prefs.GetInt(prefsBenchCount, defaultCount)
	if count <= 0 {
		XLog.Warn("XBench.NewOptions: invalid count %v, fallback to %v.", count, defaultCount)
		count = defaultCount
	}
	return &Options{Count: count}
}
