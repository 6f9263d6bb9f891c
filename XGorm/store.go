// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XGorm

import (
	"context"
	"time"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/eframework-org/GO.UTIL/XString"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// prefsGormAddr 定义了数据源地址的偏好设置键。
	prefsGormAddr = "Gorm/Source/Addr"

	// prefsGormBatch 定义了批量插入单条语句记录数的偏好设置键。
	prefsGormBatch = "Gorm/Batch"

	// prefsGormQueue 定义了管道队列容量的偏好设置键。
	prefsGormQueue = "Gorm/Pipe/Queue"

	// prefsGormSlow 定义了慢查询阈值（毫秒）的偏好设置键。
	prefsGormSlow = "Gorm/Slow"
)

const (
	// defaultGormAddr 是默认的内存数据库地址，_fk=1 开启外键约束。
	defaultGormAddr = "file:xgorm_bench?mode=memory&cache=shared&_fk=1"

	// defaultGormBatch 是默认的批量插入单条语句记录数。
	defaultGormBatch = 1000

	// defaultGormQueue 是默认的管道队列容量。
	defaultGormQueue = 1

	// defaultGormSlow 是默认的慢查询阈值（毫秒）。
	defaultGormSlow = 200
)

// ErrInvalidOwner 表示地址的用户不存在于数据库中。
var ErrInvalidOwner = errors.New("address owner does not exist")

// Store 是基于 gorm 的基准测试存储，所有数据库调用都提交至管道并等待完成。
type Store struct {
	addr  string
	batch int
	queue int
	slow  time.Duration
	db    *gorm.DB
	pipe  *pipe
}

// NewStore 根据偏好设置创建存储。
// prefs 为 nil 时将触发 panic。
func NewStore(prefs XPrefs.IBase) *Store {
	if prefs == nil {
		XLog.Panic("XGorm.NewStore: prefs is nil.")
		return nil
	}
	store := &Store{
		addr:  prefs.GetString(prefsGormAddr),
		batch: prefs.GetInt(prefsGormBatch, defaultGormBatch),
		queue: prefs.GetInt(prefsGormQueue, defaultGormQueue),
		slow:  time.Duration(prefs.GetInt(prefsGormSlow, defaultGormSlow)) * time.Millisecond,
	}
	if XString.IsEmpty(store.addr) {
		store.addr = defaultGormAddr
	}
	if store.batch <= 0 {
		store.batch = defaultGormBatch
	}
	if store.queue <= 0 {
		store.queue = defaultGormQueue
	}
	return store
}

// Name 返回存储的名称。
func (s *Store) Name() string { return "GORM" }

// Setup 打开数据库并迁移数据表，然后启动管道。
func (s *Store) Setup(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(s.addr), &gorm.Config{
		Logger: newLogger(gormlogger.Warn, s.slow),
	})
	if err != nil {
		return errors.Wrapf(err, "XGorm.Store.Setup(%v)", s.addr)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "XGorm.Store.Setup")
	}
	// 内存数据库在最后一个连接关闭时销毁
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.WithContext(ctx).AutoMigrate(&User{}, &Address{}); err != nil {
		sqlDB.Close()
		return errors.Wrap(err, "XGorm.Store.Setup")
	}
	s.db = db
	s.pipe = newPipe(s.queue)
	return nil
}

// Teardown 关闭管道，删除数据表并关闭数据库。
func (s *Store) Teardown(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	defer func() {
		s.db = nil
		s.pipe = nil
	}()
	s.pipe.close()

	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "XGorm.Store.Teardown")
	}
	defer sqlDB.Close()
	if err := s.db.WithContext(ctx).Migrator().DropTable(&Address{}, &User{}); err != nil {
		return errors.Wrap(err, "XGorm.Store.Teardown")
	}
	return nil
}

// exec 在管道中执行数据库操作并等待其完成。
func (s *Store) exec(ctx context.Context, fn func(db *gorm.DB) error) error {
	if s.pipe == nil {
		return ErrPipeClosed
	}
	return s.pipe.await(func() error { return fn(s.db.WithContext(ctx)) })
}

// NewUser 创建一个未持久化的用户。
func (s *Store) NewUser(name string) *User { return &User{Name: name} }

// InsertUser 插入单个用户，每次插入独立提交。
func (s *Store) InsertUser(ctx context.Context, user *User) error {
	return s.exec(ctx, func(db *gorm.DB) error { return db.Create(user).Error })
}

// BulkInsertUsers 在一个事务中分批插入所有用户。
func (s *Store) BulkInsertUsers(ctx context.Context, users []*User) error {
	if len(users) == 0 {
		return nil
	}
	return s.exec(ctx, func(db *gorm.DB) error { return db.CreateInBatches(users, s.batch).Error })
}

// ListUsers 按主键顺序读取所有用户。
func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := s.exec(ctx, func(db *gorm.DB) error { return db.Order("id").Find(&users).Error }); err != nil {
		return nil, err
	}
	return users, nil
}

// NewAddress 创建一个归属于 user 的未持久化地址，user 为 nil 时地址没有用户。
func (s *Store) NewAddress(user *User, text string) *Address {
	address := &Address{Address: text}
	if user != nil {
		address.UserID = user.ID
	}
	return address
}

// InsertAddress 插入单个地址，地址的用户必须存在于数据库中。
// 用户不存在时由数据表的外键约束拒绝插入。
func (s *Store) InsertAddress(ctx context.Context, address *Address) error {
	if address.UserID <= 0 {
		return errors.Wrapf(ErrInvalidOwner, "XGorm.Store.InsertAddress: %v", address.Address)
	}
	err := s.exec(ctx, func(db *gorm.DB) error { return db.Create(address).Error })
	if isForeignKeyError(err) {
		return errors.Wrapf(ErrInvalidOwner, "XGorm.Store.InsertAddress: user %v of %v", address.UserID, address.Address)
	}
	return err
}

// isForeignKeyError 返回 err 是否为 SQLite 的外键约束错误。
func isForeignKeyError(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// ListUsersWithAddresses 读取所有用户并预加载其地址。
func (s *Store) ListUsersWithAddresses(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.exec(ctx, func(db *gorm.DB) error {
		return db.Preload("Addresses", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).Order("id").Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Addresses 返回关联读取后用户的地址列表，列表元素指向 user.Addresses 中的地址。
func (s *Store) Addresses(user *User) []*Address {
	addresses := make([]*Address, len(user.Addresses))
	for i := range user.Addresses {
		addresses[i] = &user.Addresses[i]
	}
	return addresses
}

// SetAddress 修改地址的文本字段，不会持久化。
func (s *Store) SetAddress(address *Address, text string) { address.Address = text }

// UpdateAddress 仅更新地址的文本字段。
func (s *Store) UpdateAddress(ctx context.Context, address *Address) error {
	return s.exec(ctx, func(db *gorm.DB) error {
		return db.Model(address).Update("address", address.Address).Error
	})
}

// ClearAddresses 删除所有地址。
func (s *Store) ClearAddresses(ctx context.Context) error {
	return s.exec(ctx, func(db *gorm.DB) error {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Address{}).Error
	})
}

// ClearUsers 删除所有用户。
func (s *Store) ClearUsers(ctx context.Context) error {
	return s.exec(ctx, func(db *gorm.DB) error {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&User{}).Error
	})
}

// CountUsers 统计用户数量。
func (s *Store) CountUsers(ctx context.Context) (int, error) { return s.count(ctx, &User{}) }

// CountAddresses 统计地址数量。
func (s *Store) CountAddresses(ctx context.Context) (int, error) { return s.count(ctx, &Address{}) }

// count 统计 model 对应数据表的记录数量。
func (s *Store) count(ctx context.Context, model any) (int, error) {
	var n int64
	if err := s.exec(ctx, func(db *gorm.DB) error { return db.Model(model).Count(&n).Error }); err != nil {
		return 0, err
	}
	return int(n), nil
}
