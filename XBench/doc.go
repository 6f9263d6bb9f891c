// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
XBench 定义了 ORM 基准测试的执行流程，按固定顺序对存储执行 CRUD 操作并记录耗时，同时提供了跨库的耗时对比。

功能特性

  - 存储抽象：通过泛型接口 IStore 屏蔽不同 ORM 的调用差异
  - 阶段计时：按固定顺序执行各个阶段，记录每个阶段的耗时
  - 结果对比：对比两次执行的结果，输出每个阶段的胜出者

使用手册

1. 阶段说明

	| 阶段             | 是否计时 | 说明 |
	|------------------|----------|------|
	| single_insert    | 是       | 逐条插入 Count 个用户，每条独立提交 |
	| bulk_insert      | 是       | 清空用户（不计时）后批量插入 Count 个用户 |
	| insert_addresses | 否       | 为每个用户插入一个地址，仅用于准备数据 |
	| read_users       | 是       | 读取所有用户 |
	| read_with_join   | 是       | 读取所有用户及其关联的地址 |
	| update_query     | 是       | 逐条更新关联读取到的地址 |
	| delete_query     | 是       | 先删除所有地址，再删除所有用户 |

注意：insert_addresses 阶段的耗时不会被记录，也不会出现在对比结果中。

2. 配置说明

  - 配置键名：Bench/Count
  - 配置说明：每个阶段操作的用户数量，默认为 10000

3. 执行示例

	opts := XBench.NewOptions(XPrefs.Asset())
	second, err := XBench.Run(ctx, XOrm.NewStore(XPrefs.Asset()), opts)
	first, err := XBench.Run(ctx, XGorm.NewStore(XPrefs.Asset()), opts)

	comps, err := XBench.Compare(first, second)
	XBench.Report(os.Stdout, comps)

4. 对比规则

对比以第一个结果的阶段顺序为准，第一个结果严格小于第二个结果时才判定第一个胜出，耗时相等时判定第二个胜出。

更多信息请参考模块文档。
*/
package XBench
