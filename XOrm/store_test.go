// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"context"
	"errors"
	"testing"

	"github.com/eframework-org/GO.ORMBENCH/XBench"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/stretchr/testify/assert"
)

// SetupStoreTest 创建并初始化测试存储，测试结束后自动销毁。
func SetupStoreTest(t *testing.T) *Store {
	store := NewStore(XPrefs.New())
	if err := store.Setup(context.Background()); err != nil {
		t.Fatalf("初始化测试存储失败: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Teardown(context.Background()); err != nil {
			t.Errorf("销毁测试存储失败: %v", err)
		}
	})
	return store
}

// TestStoreRun 测试完整的基准测试流程及每个阶段后的数据状态。
func TestStoreRun(t *testing.T) {
	ctx := context.Background()
	store := NewStore(XPrefs.New())
	count := 50

	opts := &XBench.Options{Count: count}
	opts.OnPhase = func(phase string) error {
		users, err := store.CountUsers(ctx)
		assert.NoError(t, err)
		addrs, err := store.CountAddresses(ctx)
		assert.NoError(t, err)

		switch phase {
		case XBench.PhaseSingleInsert:
			assert.Equal(t, count, users, "single_insert 后的用户数量应当为 %v。", count)
			list, _ := store.ListUsers(ctx)
			for i, user := range list {
				assert.Equal(t, XBench.UserName(i), user.Name, "第 %v 个用户的名称不正确。", i)
			}
		case XBench.PhaseBulkInsert:
			assert.Equal(t, count, users, "bulk_insert 后的用户数量应当为 %v。", count)
			assert.Equal(t, 0, addrs)
		case XBench.PhaseInsertAddresses:
			assert.Equal(t, users, addrs, "地址数量应当等于用户数量。")
			joined, _ := store.ListUsersWithAddresses(ctx)
			assert.Len(t, joined, count, "每个地址应当归属于不同的用户。")
			for _, user := range joined {
				assert.Len(t, user.Addresses, 1, "用户 %v 应当只有一个地址。", user.ID)
			}
		case XBench.PhaseUpdateQuery:
			var addresses []*Address
			_, err := NewAddress().List(ctx, store.ormer, &addresses)
			assert.NoError(t, err)
			assert.Len(t, addresses, count)
			for _, address := range addresses {
				assert.Equal(t, XBench.UpdatedAddress, address.Address, "地址 %v 的文本应当已被更新。", address.ID)
			}
		case XBench.PhaseDeleteQuery:
			assert.Equal(t, 0, users, "delete_query 后的用户数量应当为 0。")
			assert.Equal(t, 0, addrs, "delete_query 后的地址数量应当为 0。")
		}
		return nil
	}

	result, err := XBench.Run(ctx, store, opts)
	assert.NoError(t, err, "执行不应当返回错误。")
	assert.Equal(t, XBench.Phases(), result.Phases())
	assert.Equal(t, "Beego", result.Library)
	assert.Nil(t, store.ormer, "执行结束后存储应当已被销毁。")
}

// TestStoreBulkInsert 测试批量插入前清空用户。
func TestStoreBulkInsert(t *testing.T) {
	ctx := context.Background()
	store := SetupStoreTest(t)
	store.batch = 7

	for i := range 10 {
		assert.NoError(t, store.InsertUser(ctx, store.NewUser(XBench.UserName(i))))
	}
	assert.NoError(t, store.ClearUsers(ctx))
	count, _ := store.CountUsers(ctx)
	assert.Equal(t, 0, count, "清空后的用户数量应当为 0。")

	users := make([]*User, 0, 20)
	for i := range 20 {
		users = append(users, store.NewUser(XBench.UserName(i)))
	}
	assert.NoError(t, store.BulkInsertUsers(ctx, users))
	count, _ = store.CountUsers(ctx)
	assert.Equal(t, 20, count, "批量插入后的用户数量应当为 20。")
	assert.Equal(t, int64(30), store.sess.count(opWrite), "会话应当记录所有的写入次数。")
}

// TestStoreInvalidOwner 测试插入没有持久化用户的地址。
func TestStoreInvalidOwner(t *testing.T) {
	ctx := context.Background()
	store := SetupStoreTest(t)

	err := store.InsertAddress(ctx, store.NewAddress(store.NewUser("User 0"), "Address 0"))
	assert.True(t, errors.Is(err, ErrInvalidOwner), "应当返回 ErrInvalidOwner。")

	err = store.InsertAddress(ctx, store.NewAddress(nil, "Address 0"))
	assert.True(t, errors.Is(err, ErrInvalidOwner), "应当返回 ErrInvalidOwner。")

	ghost := store.NewUser("User 1")
	ghost.ID = 424242
	err = store.InsertAddress(ctx, store.NewAddress(ghost, "Address 1"))
	assert.True(t, errors.Is(err, ErrInvalidOwner), "用户不存在时应当返回 ErrInvalidOwner。")

	user := store.NewUser("User 2")
	assert.NoError(t, store.InsertUser(ctx, user))
	assert.NoError(t, store.InsertUser(ctx, store.NewUser("User 3")))
	assert.NoError(t, store.ClearUsers(ctx))
	err = store.InsertAddress(ctx, store.NewAddress(user, "Address 2"))
	assert.True(t, errors.Is(err, ErrInvalidOwner), "用户被删除后应当返回 ErrInvalidOwner。")

	count, _ := store.CountAddresses(ctx)
	assert.Equal(t, 0, count, "非法的地址不应当被持久化。")
}

// TestStoreTeardown 测试重复销毁及重新初始化。
func TestStoreTeardown(t *testing.T) {
	ctx := context.Background()
	store := NewStore(XPrefs.New())
	assert.NoError(t, store.Teardown(ctx), "未初始化的存储销毁时不应当返回错误。")

	for range 2 {
		assert.NoError(t, store.Setup(ctx))
		assert.NoError(t, store.InsertUser(ctx, store.NewUser("User 0")))
		count, _ := store.CountUsers(ctx)
		assert.Equal(t, 1, count, "重新初始化后的数据表应当为空。")
		assert.NoError(t, store.Teardown(ctx))
	}
}

// TestStoreNotSetup 测试未初始化及销毁后的存储操作。
func TestStoreNotSetup(t *testing.T) {
	ctx := context.Background()
	store := NewStore(XPrefs.New())

	check := func() {
		user := store.NewUser("User 0")
		user.ID = 1
		assert.ErrorIs(t, store.InsertUser(ctx, user), ErrNotSetup)
		assert.ErrorIs(t, store.BulkInsertUsers(ctx, []*User{user}), ErrNotSetup)
		assert.ErrorIs(t, store.InsertAddress(ctx, store.NewAddress(user, "Address 0")), ErrNotSetup)
		assert.ErrorIs(t, store.UpdateAddress(ctx, store.NewAddress(user, "Address 0")), ErrNotSetup)
		assert.ErrorIs(t, store.ClearAddresses(ctx), ErrNotSetup)
		assert.ErrorIs(t, store.ClearUsers(ctx), ErrNotSetup)
		_, err := store.ListUsers(ctx)
		assert.ErrorIs(t, err, ErrNotSetup)
		_, err = store.ListUsersWithAddresses(ctx)
		assert.ErrorIs(t, err, ErrNotSetup)
		_, err = store.CountUsers(ctx)
		assert.ErrorIs(t, err, ErrNotSetup)
		_, err = store.CountAddresses(ctx)
		assert.ErrorIs(t, err, ErrNotSetup)
	}

	check()
	assert.NoError(t, store.Setup(ctx))
	assert.NoError(t, store.Teardown(ctx))
	check()
}

// TestNewStore 测试存储参数的解析。
func TestNewStore(t *testing.T) {
	assert.Equal(t, defaultOrmBatch, NewStore(XPrefs.New()).batch)
	assert.Equal(t, 10, NewStore(XPrefs.New().Set(prefsOrmBatch, 10)).batch)
	assert.Equal(t, defaultOrmBatch, NewStore(XPrefs.New().Set(prefsOrmBatch, 0)).batch)
	assert.Panics(t, func() { NewStore(nil) })
}
