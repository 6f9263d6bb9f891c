// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"strings"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	prefsOrmSource = "Orm/Source/"
	prefsOrmAddr   = "Addr"
	prefsOrmPool   = "Pool"
	prefsOrmConn   = "Conn"
)

const (
	// defaultOrmAlias 是基准测试使用的数据库别名。
	defaultOrmAlias = "default"

	// defaultOrmType 是未配置数据源时使用的驱动类型。
	defaultOrmType = "sqlite3"

	// defaultOrmAddr 是未配置数据源时使用的内存数据库。
	defaultOrmAddr = "file:xorm_bench?mode=memory&cache=shared&_fk=1"
)

// initOrm 根据偏好设置注册数据源，配置键名为 Orm/Source/<数据库类型>/<数据库别名>。
// 未配置 default 数据源时注册一个 SQLite3 内存数据库作为 default 数据源。
// 已经注册过的别名会被忽略。
func initOrm(prefs XPrefs.IBase) {
	if prefs == nil {
		XLog.Panic("XOrm.Init: prefs is nil.")
		return
	}

	for _, key := range prefs.Keys() {
		if !strings.HasPrefix(key, prefsOrmSource) {
			continue
		}
		parts := strings.Split(key, "/")
		if len(parts) != 4 || parts[2] == "" || parts[3] == "" {
			XLog.Panic("XOrm.Init: invalid prefs key %v.", key)
			return
		}

		ormType := strings.ToLower(parts[2])
		ormAlias := parts[3]

		if base, _ := prefs.Get(key).(XPrefs.IBase); base != nil {
			registerSource(ormAlias, ormType, base.GetString(prefsOrmAddr), base.GetInt(prefsOrmPool, 1), base.GetInt(prefsOrmConn, 1))
		} else {
			XLog.Error("XOrm.Init: invalid config for %v", key)
			continue
		}
	}

	if _, err := orm.GetDB(defaultOrmAlias); err != nil {
		// 内存数据库仅在连接存活时存在，所以只保留一个连接。
		registerSource(defaultOrmAlias, defaultOrmType, defaultOrmAddr, 1, 1)
	}
}

// registerSource 注册单个数据源。
func registerSource(alias, ormType, addr string, pool, conn int) {
	if _, err := orm.GetDB(alias); err == nil {
		return
	}
	if err := orm.RegisterDataBase(alias, ormType, addr,
		orm.MaxIdleConnections(pool),
		orm.MaxOpenConnections(conn)); err != nil {
		XLog.Panic("XOrm.Init: register database %v failed, err: %v", alias, err)
		return
	}
	XLog.Notice("XOrm.Init: database %v of %v has been registered.", alias, ormType)
}
