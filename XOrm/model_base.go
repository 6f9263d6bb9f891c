// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XOrm

import (
	"context"
	"fmt"
	"reflect"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XObject"
	"github.com/eframework-org/GO.UTIL/XString"
	"github.com/pkg/errors"
)

var (
	// ErrNotRegistered 表示模型未通过 Meta 注册。
	ErrNotRegistered = errors.New("model was not registered")

	// ErrInvalidModel 表示模型未被持久化或读取，不能被更新。
	ErrInvalidModel = errors.New("model was not persisted")
)

// IModel 定义了数据模型的基础接口。
type IModel interface {
	// Ctor 执行模型的构造初始化。
	// obj 为模型实例，必须是实现了 IModel 接口的结构体指针。
	Ctor(obj any)

	// AliasName 返回数据库别名。
	AliasName() string

	// TableName 返回数据表名称，此方法必须由子类实现。
	TableName() string

	// ModelUnique 返回模型的唯一标识，格式为 "数据库别名_表名"。
	ModelUnique() string

	// IsValid 检查或设置对象的有效性，对象被持久化或读取后有效。
	IsValid(value ...bool) bool

	// Json 将对象转换为 JSON 字符串。
	Json() string
}

// Model 实现了 IModel 接口的基础模型。
// T 为具体的模型类型，所有的具体模型类型都应该嵌入此类型。
type Model[T any] struct {
	this        IModel `orm:"-" json:"-"` // 模型实例
	modelUnique string `orm:"-" json:"-"` // 模型标识
	isValid     bool   `orm:"-" json:"-"` // 有效标志
}

// Ctor 初始化模型实例。
func (md *Model[T]) Ctor(obj any) {
	md.this = obj.(IModel)
	md.modelUnique = ""
	md.isValid = false
}

// AliasName 返回数据库别名，基准测试的模型均使用 default 数据源。
func (md *Model[T]) AliasName() string { return defaultOrmAlias }

// TableName 返回数据表名称。
// 此方法需要被子类重写，默认会触发 panic。
func (md *Model[T]) TableName() string { XLog.Panic("Table name is nil."); return "" }

// ModelUnique 返回模型的唯一标识。
func (md *Model[T]) ModelUnique() string {
	if XString.IsEmpty(md.modelUnique) {
		md.modelUnique = fmt.Sprintf("%v_%v", md.this.AliasName(), md.this.TableName())
	}
	return md.modelUnique
}

// IsValid 检查或设置对象的有效性。
func (md *Model[T]) IsValid(value ...bool) bool {
	if len(value) > 0 {
		md.isValid = value[0]
	}
	return md.isValid
}

// Json 将对象转换为 JSON 字符串。
func (md *Model[T]) Json() string {
	result, _ := XObject.ToJson(md.this)
	return result
}

// Insert 插入当前记录，插入成功后主键会被回填。
func (md *Model[T]) Insert(ctx context.Context, ormer orm.Ormer) error {
	if _, err := ormer.InsertWithCtx(ctx, md.this); err != nil {
		return errors.Wrapf(err, "XOrm.Model.Insert(%v): %v", md.this.TableName(), md.this.Json())
	}
	md.this.IsValid(true)
	return nil
}

// Update 更新当前记录的指定字段，cols 为空时更新所有字段。
// 只有插入或读取得到的有效模型才能被更新。
func (md *Model[T]) Update(ctx context.Context, ormer orm.Ormer, cols ...string) error {
	if !md.this.IsValid() {
		return errors.Wrapf(ErrInvalidModel, "XOrm.Model.Update(%v): %v", md.this.TableName(), md.this.Json())
	}
	count, err := ormer.UpdateWithCtx(ctx, md.this, cols...)
	if err != nil {
		return errors.Wrapf(err, "XOrm.Model.Update(%v): %v", md.this.TableName(), md.this.Json())
	}
	if count != 1 {
		XLog.Warn("XOrm.Model.Update(%v): %v row(s) affected: %v", md.this.TableName(), count, md.this.Json())
	}
	return nil
}

// Count 统计数据表中的记录数量。
func (md *Model[T]) Count(ctx context.Context, ormer orm.Ormer) (int, error) {
	if !isMeta(md.this) {
		return -1, errors.Wrapf(ErrNotRegistered, "XOrm.Model.Count(%v)", md.this.TableName())
	}
	count, err := ormer.QueryTable(md.this.TableName()).CountWithCtx(ctx)
	if err != nil {
		return -1, errors.Wrapf(err, "XOrm.Model.Count(%v)", md.this.TableName())
	}
	return int(count), nil
}

// List 按主键顺序查询所有记录。
// rets 必须是指向切片的指针，用于存储查询结果。
// related 为可选的关联字段，指定后通过 JOIN 一并读取关联的记录。
// 返回查询到的记录数量。
func (md *Model[T]) List(ctx context.Context, ormer orm.Ormer, rets any, related ...any) (int, error) {
	if !isMeta(md.this) {
		return -1, errors.Wrapf(ErrNotRegistered, "XOrm.Model.List(%v)", md.this.TableName())
	}
	val := reflect.ValueOf(rets)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Slice {
		return -1, errors.Errorf("XOrm.Model.List(%v): rets must be a pointer to a slice.", md.this.TableName())
	}

	// beego/orm 默认只返回 1000 条记录，-1 表示不限制。
	query := ormer.QueryTable(md.this.TableName()).OrderBy("id").Limit(-1)
	if len(related) > 0 {
		query = query.RelatedSel(related...)
	}
	count, err := query.AllWithCtx(ctx, rets)
	if err != nil {
		return -1, errors.Wrapf(err, "XOrm.Model.List(%v)", md.this.TableName())
	}

	for i := 0; i < val.Elem().Len(); i++ {
		ev := val.Elem().Index(i).Interface()
		if model, ok := ev.(IModel); ok {
			model.Ctor(ev)
			model.IsValid(true)
		}
	}
	return int(count), nil
}

// Clear 删除数据表中的所有记录，返回受影响的行数。
func (md *Model[T]) Clear(ctx context.Context, ormer orm.Ormer) (int, error) {
	if !isMeta(md.this) {
		return -1, errors.Wrapf(ErrNotRegistered, "XOrm.Model.Clear(%v)", md.this.TableName())
	}
	// beego/orm 的 Delete 方法不允许无条件执行，所以使用主键 >= 0 作为条件匹配所有记录。
	count, err := ormer.QueryTable(md.this.TableName()).Filter("id__gte", 0).DeleteWithCtx(ctx)
	if err != nil {
		return -1, errors.Wrapf(err, "XOrm.Model.Clear(%v)", md.this.TableName())
	}
	return int(count), nil
}

// InsertMulti 通过一次调用批量插入 models，batch 为单条语句包含的记录数。
// 返回插入的记录数量。
func InsertMulti[T IModel](ctx context.Context, ormer orm.Ormer, batch int, models []T) (int, error) {
	if len(models) == 0 {
		return 0, nil
	}
	count, err := ormer.InsertMultiWithCtx(ctx, batch, models)
	if err != nil {
		return -1, errors.Wrapf(err, "XOrm.InsertMulti(%v)", models[0].TableName())
	}
	for _, model := range models {
		model.IsValid(true)
	}
	return int(count), nil
}
