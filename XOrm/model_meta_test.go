// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestModelMeta 测试模型的注册。
func TestModelMeta(t *testing.T) {
	assert.Panics(t, func() { Meta(nil) }, "注册 nil 模型应当触发 panic。")

	Meta(NewUser(), NewAddress())
	assert.True(t, isMeta(NewUser()), "用户模型应当已被注册。")
	assert.True(t, isMeta(NewAddress()), "地址模型应当已被注册。")
	assert.NotPanics(t, func() { Meta(NewUser()) }, "重复注册应当被忽略。")
}
