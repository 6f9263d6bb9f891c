// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"context"
	"fmt"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/eframework-org/GO.UTIL/XTime"
	"github.com/pkg/errors"
)

const (
	// prefsOrmBatch 定义了批量插入单条语句记录数的偏好设置键。
	prefsOrmBatch = "Orm/Batch"

	// defaultOrmBatch 是默认的批量插入单条语句记录数。
	defaultOrmBatch = 1000
)

var (
	// ErrInvalidOwner 表示地址的用户不存在于数据库中。
	ErrInvalidOwner = errors.New("address owner does not exist")

	// ErrNotSetup 表示存储未初始化或已被销毁。
	ErrNotSetup = errors.New("store was not setup")
)

// Store 是基于 beego/orm 的基准测试存储，所有操作均同步执行。
type Store struct {
	prefs XPrefs.IBase
	batch int
	ormer orm.Ormer
	sess  *session
}

// NewStore 根据偏好设置创建存储。
// prefs 为 nil 时将触发 panic。
func NewStore(prefs XPrefs.IBase) *Store {
	if prefs == nil {
		XLog.Panic("XOrm.NewStore: prefs is nil.")
		return nil
	}
	batch := prefs.GetInt(prefsOrmBatch, defaultOrmBatch)
	if batch <= 0 {
		batch = defaultOrmBatch
	}
	return &Store{prefs: prefs, batch: batch}
}

// Name 返回存储的名称。
func (s *Store) Name() string { return "Beego" }

// Setup 注册数据源及模型，并重新生成数据表。
func (s *Store) Setup(ctx context.Context) error {
	initOrm(s.prefs)
	Meta(NewUser(), NewAddress())
	if err := orm.RunSyncdb(defaultOrmAlias, true, false); err != nil {
		return errors.Wrap(err, "XOrm.Store.Setup")
	}
	s.ormer = orm.NewOrmUsingDB(defaultOrmAlias)
	s.sess = watch()
	return nil
}

// Teardown 删除数据表并结束会话。
func (s *Store) Teardown(ctx context.Context) error {
	if s.ormer == nil {
		return nil
	}
	defer func() {
		s.sess.deferred()
		s.sess = nil
		s.ormer = nil
	}()
	for _, table := range []string{NewAddress().TableName(), NewUser().TableName()} {
		if _, err := s.ormer.Raw(fmt.Sprintf("DROP TABLE IF EXISTS %v", table)).Exec(); err != nil {
			return errors.Wrapf(err, "XOrm.Store.Teardown(%v)", table)
		}
	}
	return nil
}

// NewUser 创建一个未持久化的用户。
func (s *Store) NewUser(name string) *User {
	user := NewUser()
	user.Name = name
	return user
}

// InsertUser 插入单个用户，每次插入独立提交。
func (s *Store) InsertUser(ctx context.Context, user *User) error {
	if s.ormer == nil {
		return ErrNotSetup
	}
	defer s.sess.track(opWrite, XTime.GetMicrosecond(), 1)
	return user.Insert(ctx, s.ormer)
}

// BulkInsertUsers 通过一次 InsertMulti 调用插入所有用户。
func (s *Store) BulkInsertUsers(ctx context.Context, users []*User) error {
	if s.ormer == nil {
		return ErrNotSetup
	}
	defer s.sess.track(opWrite, XTime.GetMicrosecond(), len(users))
	_, err := InsertMulti(ctx, s.ormer, s.batch, users)
	return err
}

// ListUsers 按主键顺序读取所有用户。
func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	if s.ormer == nil {
		return nil, ErrNotSetup
	}
	defer s.sess.track(opList, XTime.GetMicrosecond(), 1)
	var users []*User
	if _, err := NewUser().List(ctx, s.ormer, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// NewAddress 创建一个归属于 user 的未持久化地址。
func (s *Store) NewAddress(user *User, text string) *Address {
	address := NewAddress()
	address.User = user
	address.Address = text
	return address
}

// InsertAddress 插入单个地址，地址的用户必须存在于数据库中。
// beego/orm 生成的数据表没有外键约束，所以插入前需要查询用户是否存在。
func (s *Store) InsertAddress(ctx context.Context, address *Address) error {
	if s.ormer == nil {
		return ErrNotSetup
	}
	if address.User == nil || address.User.ID <= 0 {
		return errors.Wrapf(ErrInvalidOwner, "XOrm.Store.InsertAddress: %v", address.Json())
	}
	exist, err := s.hasUser(ctx, address.User.ID)
	if err != nil {
		return err
	}
	if !exist {
		return errors.Wrapf(ErrInvalidOwner, "XOrm.Store.InsertAddress: %v", address.Json())
	}
	defer s.sess.track(opWrite, XTime.GetMicrosecond(), 1)
	return address.Insert(ctx, s.ormer)
}

// hasUser 返回指定主键的用户是否存在。
func (s *Store) hasUser(ctx context.Context, id int) (bool, error) {
	defer s.sess.track(opRead, XTime.GetMicrosecond(), 1)
	count, err := s.ormer.QueryTable(NewUser().TableName()).Filter("id", id).CountWithCtx(ctx)
	if err != nil {
		return false, errors.Wrapf(err, "XOrm.Store.hasUser(%v)", id)
	}
	return count > 0, nil
}

// ListUsersWithAddresses 通过地址表 JOIN 用户表的一次查询读取所有地址及其用户，
// 然后按用户归并，返回的用户按其首个地址的顺序排列。
func (s *Store) ListUsersWithAddresses(ctx context.Context) ([]*User, error) {
	if s.ormer == nil {
		return nil, ErrNotSetup
	}
	defer s.sess.track(opRead, XTime.GetMicrosecond(), 1)
	var addresses []*Address
	if _, err := NewAddress().List(ctx, s.ormer, &addresses, "User"); err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(addresses))
	index := make(map[int]*User, len(addresses))
	for _, address := range addresses {
		owner := address.User
		if user, ok := index[owner.ID]; ok {
			address.User = user
			user.Addresses = append(user.Addresses, address)
			continue
		}
		owner.Ctor(owner)
		owner.IsValid(true)
		owner.Addresses = []*Address{address}
		index[owner.ID] = owner
		users = append(users, owner)
	}
	return users, nil
}

// Addresses 返回关联读取后用户的地址列表。
func (s *Store) Addresses(user *User) []*Address { return user.Addresses }

// SetAddress 修改地址的文本字段，不会持久化。
func (s *Store) SetAddress(address *Address, text string) { address.Address = text }

// UpdateAddress 仅更新地址的文本字段。
func (s *Store) UpdateAddress(ctx context.Context, address *Address) error {
	if s.ormer == nil {
		return ErrNotSetup
	}
	defer s.sess.track(opUpdate, XTime.GetMicrosecond(), 1)
	return address.Update(ctx, s.ormer, "Address")
}

// ClearAddresses 删除所有地址。
func (s *Store) ClearAddresses(ctx context.Context) error {
	if s.ormer == nil {
		return ErrNotSetup
	}
	defer s.sess.track(opClear, XTime.GetMicrosecond(), 1)
	_, err := NewAddress().Clear(ctx, s.ormer)
	return err
}

// ClearUsers 删除所有用户。
func (s *Store) ClearUsers(ctx context.Context) error {
	if s.ormer == nil {
		return ErrNotSetup
	}
	defer s.sess.track(opClear, XTime.GetMicrosecond(), 1)
	_, err := NewUser().Clear(ctx, s.ormer)
	return err
}

// CountUsers 统计用户数量。
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	if s.ormer == nil {
		return -1, ErrNotSetup
	}
	defer s.sess.track(opCount, XTime.GetMicrosecond(), 1)
	return NewUser().Count(ctx, s.ormer)
}

// CountAddresses 统计地址数量。
func (s *Store) CountAddresses(ctx context.Context) (int, error) {
	if s.ormer == nil {
		return -1, ErrNotSetup
	}
	defer s.sess.track(opCount, XTime.GetMicrosecond(), 1)
	return NewAddress().Count(ctx, s.ormer)
}
