// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XGorm

// User 是基准测试的用户模型，拥有零个或多个地址。
type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Addresses []Address `json:"-"`
}

// Address 是基准测试的地址模型，归属于唯一的用户。
type Address struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	UserID  int    `gorm:"not null;index" json:"user_id"`
	Address string `gorm:"size:255" json:"address"`
}
