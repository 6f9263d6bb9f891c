// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"sync"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
)

var (
	// modelMetaMutex 用于保护模型注册表的互斥锁。
	modelMetaMutex sync.Mutex

	// modelMetas 记录了已注册的模型，键为模型标识。
	modelMetas = make(map[string]bool)
)

// Meta 注册模型，已注册的模型会被忽略。
// beego/orm 要求在首次查询前完成注册，所以需要在生成数据表前调用。
// 如果模型为 nil，将触发 panic。
func Meta(models ...IModel) {
	modelMetaMutex.Lock()
	defer modelMetaMutex.Unlock()

	for _, model := range models {
		if model == nil {
			XLog.Panic("XOrm.Meta: nil model instance.")
			return
		}
		id := model.ModelUnique()
		if modelMetas[id] {
			continue
		}
		orm.RegisterModel(model)
		modelMetas[id] = true
	}
}

// isMeta 返回模型是否已注册。
func isMeta(model IModel) bool {
	modelMetaMutex.Lock()
	defer modelMetaMutex.Unlock()
	return modelMetas[model.ModelUnique()]
}
