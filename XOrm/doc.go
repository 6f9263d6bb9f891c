// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
XOrm 基于 Beego 的 ORM 实现了基准测试的存储，所有的数据操作均通过同一个 Ormer 同步执行。

功能特性

  - 多源配置：通过解析首选项中的配置自动初始化数据库连接
  - 数据模型：提供了泛型的基础模型及常用的数据操作
  - 会话统计：记录存储生命周期内各类操作的次数和耗时

使用手册

1. 多源配置

配置说明：
  - 配置键名：Orm/Source/<数据库类型>/<数据库别名>
  - 支持 MySQL、SQLite3 等（Beego ORM 支持且已导入驱动的类型）
  - 配置参数：
  - Addr：数据源地址
  - Pool：连接池大小
  - Conn：最大连接数
  - 存储固定使用 default 数据源，未配置时使用 SQLite3 内存数据库

配置示例：

	{
	    "Orm/Source/MySQL/default": {
	        "Addr": "root:123456@tcp(127.0.0.1:3306)/bench?charset=utf8mb4&loc=Local",
	        "Pool": 1,
	        "Conn": 1
	    },
	    "Orm/Batch": 1000
	}

注意：使用内存数据库时连接数必须为 1，否则每个连接都会打开一个独立的数据库。

2. 数据模型

	type User struct {
	    XOrm.Model[User] `orm:"-" json:"-"`
	    ID        int        `orm:"column(id);auto;pk" json:"id"`
	    Name      string     `orm:"column(name);size(255)" json:"name"`
	    Addresses []*Address `orm:"reverse(many)" json:"-"`
	}

	func (u *User) TableName() string { return "users" }

	func NewUser() *User { return XObject.New[User]() }

模型需要通过 XObject.New 创建，以确保 Ctor 被调用。

3. 存储操作

	store := XOrm.NewStore(XPrefs.Asset())
	result, err := XBench.Run(ctx, store, opts)

存储在 Setup 时注册模型并重新生成数据表，在 Teardown 时删除数据表并输出会话统计：

	XOrm.Defer: session has been deferred, elapsed 1234.56ms for [List(3):12.34ms] [Write(30000):1000.00ms] ...

关联读取通过地址表 JOIN 用户表的一次查询完成（RelatedSel），再按用户归并地址。

更多信息请参考模块文档。
*/
package XOrm
