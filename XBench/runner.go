// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"context"
	"time"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/eframework-org/GO.UTIL/XTime"
	"github.com/pkg/errors"
)

// step 定义了一个执行阶段。
type step struct {
	phase   string       // 阶段名称
	timed   bool         // 是否计时
	prepare func() error // 前置操作，不计时
	action  func() error // 阶段操作
}

// runner 保存了单次执行的状态。
type runner[U any, A any] struct {
	ctx    context.Context
	store  IStore[U, A]
	opts   *Options
	joined []U // read_with_join 阶段读取到的用户
}

// Run 按固定顺序对 store 执行所有阶段并返回各阶段耗时。
// opts 为 nil 时使用默认参数。
//
// 阶段之间严格串行，任意操作失败都会立即中止执行并返回包含阶段名称的错误，不做任何重试。
// 无论成功与否，都会在返回前调用 store.Teardown。
func Run[U any, A any](ctx context.Context, store IStore[U, A], opts *Options) (result *Result, err error) {
	if opts == nil {
		opts = NewOptions(XPrefs.New())
	}
	name := store.Name()
	if err = store.Setup(ctx); err != nil {
		return nil, errors.Wrapf(err, "XBench.Run(%v): setup", name)
	}
	defer func() {
		if terr := store.Teardown(ctx); terr != nil {
			if err == nil {
				result = nil
				err = errors.Wrapf(terr, "XBench.Run(%v): teardown", name)
			} else {
				XLog.Error("XBench.Run(%v): teardown failed after error: %v", name, terr)
			}
		}
	}()

	r := &runner[U, A]{ctx: ctx, store: store, opts: opts}
	result = NewResult(name)
	for _, s := range r.steps() {
		if s.prepare != nil {
			if err = s.prepare(); err != nil {
				return nil, errors.Wrapf(err, "XBench.Run(%v): %v", name, s.phase)
			}
		}
		start := XTime.GetMicrosecond()
		if err = s.action(); err != nil {
			return nil, errors.Wrapf(err, "XBench.Run(%v): %v", name, s.phase)
		}
		elapsed := time.Duration(XTime.GetMicrosecond()-start) * time.Microsecond
		if s.timed {
			result.Record(s.phase, elapsed)
			phaseGauge.WithLabelValues(name, s.phase).Set(elapsed.Seconds())
			XLog.Info("XBench.Run(%v): %v elapsed %.6fs.", name, s.phase, elapsed.Seconds())
		} else {
			XLog.Info("XBench.Run(%v): %v finished, elapsed time is not recorded.", name, s.phase)
		}
		if opts.OnPhase != nil {
			if err = opts.OnPhase(s.phase); err != nil {
				return nil, errors.Wrapf(err, "XBench.Run(%v): %v hook", name, s.phase)
			}
		}
	}
	runCounter.WithLabelValues(name).Inc()
	XLog.Notice("XBench.Run(%v): %v phase(s) have been recorded.", name, len(result.phases))
	return result, nil
}

// steps 返回按执行顺序排列的阶段。
func (r *runner[U, A]) steps() []step {
	return []step{
		{phase: PhaseSingleInsert, timed: true, action: r.singleInsert},
		{phase: PhaseBulkInsert, timed: true, prepare: r.clearUsers, action: r.bulkInsert},
		{phase: PhaseInsertAddresses, timed: false, action: r.insertAddresses},
		{phase: PhaseReadUsers, timed: true, action: r.readUsers},
		{phase: PhaseReadWithJoin, timed: true, action: r.readWithJoin},
		{phase: PhaseUpdateQuery, timed: true, action: r.updateQuery},
		{phase: PhaseDeleteQuery, timed: true, action: r.deleteQuery},
	}
}

func (r *runner[U, A]) singleInsert() error {
	for i := range r.opts.Count {
		if err := r.store.InsertUser(r.ctx, r.store.NewUser(UserName(i))); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner[U, A]) clearUsers() error {
	return r.store.ClearUsers(r.ctx)
}

func (r *runner[U, A]) bulkInsert() error {
	users := make([]U, 0, r.opts.Count)
	for i := range r.opts.Count {
		users = append(users, r.store.NewUser(UserName(i)))
	}
	return r.store.BulkInsertUsers(r.ctx, users)
}

func (r *runner[U, A]) insertAddresses() error {
	users, err := r.store.ListUsers(r.ctx)
	if err != nil {
		return err
	}
	for i, user := range users {
		if err := r.store.InsertAddress(r.ctx, r.store.NewAddress(user, AddressText(i))); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner[U, A]) readUsers() error {
	_, err := r.store.ListUsers(r.ctx)
	return err
}

func (r *runner[U, A]) readWithJoin() error {
	users, err := r.store.ListUsersWithAddresses(r.ctx)
	if err != nil {
		return err
	}
	r.joined = users
	return nil
}

func (r *runner[U, A]) updateQuery() error {
	for _, user := range r.joined {
		for _, address := range r.store.Addresses(user) {
			r.store.SetAddress(address, UpdatedAddress)
			if err := r.store.UpdateAddress(r.ctx, address); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *runner[U, A]) deleteQuery() error {
	if err := r.store.ClearAddresses(r.ctx); err != nil {
		return err
	}
	return r.store.ClearUsers(r.ctx)
}
