// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import "context"

// IStore 定义了基准测试所需的存储接口。
// U 为用户模型类型，A 为地址模型类型，均为具体 ORM 的原生模型。
type IStore[U any, A any] interface {
	// Name 返回存储的名称，用于结果展示。
	Name() string

	// Setup 初始化存储并生成数据表。
	Setup(ctx context.Context) error

	// Teardown 销毁数据表并释放存储。
	Teardown(ctx context.Context) error

	// NewUser 创建一个未持久化的用户。
	NewUser(name string) U

	// InsertUser 插入单个用户，插入操作独立提交。
	InsertUser(ctx context.Context, user U) error

	// BulkInsertUsers 通过一次批量调用插入所有用户。
	BulkInsertUsers(ctx context.Context, users []U) error

	// ListUsers 读取所有用户。
	ListUsers(ctx context.Context) ([]U, error)

	// NewAddress 创建一个归属于 user 的未持久化地址。
	NewAddress(user U, text string) A

	// InsertAddress 插入单个地址。
	InsertAddress(ctx context.Context, address A) error

	// ListUsersWithAddresses 通过一次关联读取获取所有用户及其地址。
	ListUsersWithAddresses(ctx context.Context) ([]U, error)

	// Addresses 返回关联读取后用户的地址列表。
	Addresses(user U) []A

	// SetAddress 修改地址的文本字段，不会持久化。
	SetAddress(address A, text string)

	// UpdateAddress 持久化地址的修改。
	UpdateAddress(ctx context.Context, address A) error

	// ClearAddresses 删除所有地址。
	ClearAddresses(ctx context.Context) error

	// ClearUsers 删除所有用户。
	ClearUsers(ctx context.Context) error

	// CountUsers 统计用户数量。
	CountUsers(ctx context.Context) (int, error)

	// CountAddresses 统计地址数量。
	CountAddresses(ctx context.Context) (int, error)
}
