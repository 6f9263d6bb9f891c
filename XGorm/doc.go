// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
XGorm 基于 GORM 实现了基准测试的存储，所有的数据库调用都提交至单线程管道中执行，调用者挂起直到调用完成。

功能特性

  - 管道执行：单个线程按提交顺序执行任务，支持信号及全局退出
  - 日志转发：将 GORM 的错误及慢查询转发至 XLog
  - 状态监控：记录管道等待及已执行的任务数量

使用手册

1. 配置说明

	{
	    "Gorm/Source/Addr": "file:xgorm_bench?mode=memory&cache=shared&_fk=1",
	    "Gorm/Batch": 1000,
	    "Gorm/Pipe/Queue": 1,
	    "Gorm/Slow": 200
	}

  - Gorm/Source/Addr：SQLite3 数据源地址，数据库只保持一个连接
  - Gorm/Batch：批量插入时单条语句的记录数
  - Gorm/Pipe/Queue：管道队列的容量
  - Gorm/Slow：慢查询阈值（毫秒）

2. 存储操作

	store := XGorm.NewStore(XPrefs.Asset())
	result, err := XBench.Run(ctx, store, opts)

管道关闭后（Teardown、SIGINT/SIGTERM 或全局退出），未执行及新提交的任务都将返回 ErrPipeClosed。

3. 状态监控

	| 指标 | 类型 | 描述 |
	|------|------|------|
	| xgorm_pipe_pending | Gauge | 等待执行的任务数量 |
	| xgorm_pipe_total | Counter | 已经执行的任务总数 |
*/
package XGorm
