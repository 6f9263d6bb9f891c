// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XGorm

import (
	"context"
	"time"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// logger 将 gorm 的日志转发至 XLog。
type logger struct {
	level gormlogger.LogLevel
	slow  time.Duration // 慢查询阈值，为 0 时不记录慢查询
}

// newLogger 创建日志适配器，slow 为慢查询阈值。
func newLogger(level gormlogger.LogLevel, slow time.Duration) *logger {
	return &logger{level: level, slow: slow}
}

func (l *logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	nl := *l
	nl.level = level
	return &nl
}

func (l *logger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		XLog.Info("XGorm: "+msg, data...)
	}
}

func (l *logger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		XLog.Warn("XGorm: "+msg, data...)
	}
}

func (l *logger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		XLog.Error("XGorm: "+msg, data...)
	}
}

// Trace 记录每条语句的执行结果，记录未找到的错误将被忽略。
func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	cost := float64(elapsed.Nanoseconds()) / 1e6
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		XLog.Error("XGorm.Trace: [%.3fms] [rows:%v] %v: %v", cost, rows, sql, err)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		XLog.Warn("XGorm.Trace: slow sql >= %v [%.3fms] [rows:%v] %v", l.slow, cost, rows, sql)
	case l.level >= gormlogger.Info && XLog.Able(XLog.LevelInfo):
		sql, rows := fc()
		XLog.Info("XGorm.Trace: [%.3fms] [rows:%v] %v", cost, rows, sql)
	}
}
