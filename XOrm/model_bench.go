// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import "github.com/eframework-org/GO.UTIL/XObject"

// User 是基准测试的用户模型，拥有零个或多个地址。
type User struct {
	Model[User] `orm:"-" json:"-"`
	ID          int        `orm:"column(id);auto;pk" json:"id"`
	Name        string     `orm:"column(name);size(255)" json:"name"`
	Addresses   []*Address `orm:"reverse(many)" json:"-"`
}

func (u *User) TableName() string { return "users" }

// NewUser 创建用户模型。
func NewUser() *User { return XObject.New[User]() }

// Address 是基准测试的地址模型，归属于唯一的用户。
type Address struct {
	Model[Address] `orm:"-" json:"-"`
	ID             int    `orm:"column(id);auto;pk" json:"id"`
	User           *User  `orm:"column(user_id);rel(fk);on_delete(do_nothing)" json:"user"`
	Address        string `orm:"column(address);size(255)" json:"address"`
}

func (a *Address) TableName() string { return "addresses" }

// NewAddress 创建地址模型。
func NewAddress() *Address { return XObject.New[Address]() }
