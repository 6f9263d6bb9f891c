// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XGorm

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XLoom"
	"github.com/illumitacit/gostd/quit"
	"github.com/pkg/errors"
)

// ErrPipeClosed 表示管道已经关闭，任务未被执行。
var ErrPipeClosed = errors.New("pipe was closed")

// pipeTask 定义了一个等待执行的任务。
type pipeTask struct {
	fn   func() error // 任务函数
	done chan error   // 任务结果，容量为 1
}

// pipe 是单线程的任务管道，所有任务按提交顺序在同一个 goroutine 中执行。
// 调用者通过 await 提交任务并挂起，直到任务执行完成。
type pipe struct {
	queue     chan *pipeTask // 任务队列
	setupSig  chan os.Signal // 退出信号
	closed    chan struct{}  // 管道线程退出后关闭
	closeOnce sync.Once
	closeWait sync.WaitGroup
}

// newPipe 创建管道并等待管道线程启动完成。
// capacity 为任务队列的容量。
func newPipe(capacity int) *pipe {
	if capacity <= 0 {
		capacity = 1
	}
	p := &pipe{
		queue:    make(chan *pipeTask, capacity),
		setupSig: make(chan os.Signal, 1),
		closed:   make(chan struct{}),
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	XLoom.RunAsyncT2(func(p *pipe, doneOnce *sync.Once) {
		signal.Notify(p.setupSig, syscall.SIGTERM, syscall.SIGINT)

		quit.GetWaiter().Add(1)
		p.closeWait.Add(1)
		doneOnce.Do(func() { // 确保只调用一次，否则recover后会重复调用
			wg.Done()
		})

		defer func() {
			// 未执行的任务直接返回错误
			for len(p.queue) > 0 {
				task := <-p.queue
				pipeGauge.Dec()
				task.done <- ErrPipeClosed
			}
			close(p.closed)
			quit.GetWaiter().Done()
			p.closeWait.Done()
		}()

		for {
			select {
			case task := <-p.queue:
				p.handle(task)
			case sig, ok := <-p.setupSig:
				if ok {
					XLog.Notice("XGorm.Pipe: receive signal of %v.", sig.String())
				} else {
					XLog.Notice("XGorm.Pipe: channel of signal is closed.")
				}
				return
			case <-quit.GetQuitChannel():
				XLog.Notice("XGorm.Pipe: receive signal of QUIT.")
				return
			}
		}
	}, p, &sync.Once{}, true)
	wg.Wait()

	return p
}

// handle 执行任务，任务中的 panic 会被转换为错误返回给调用者。
func (p *pipe) handle(task *pipeTask) {
	defer func() {
		pipeGauge.Dec()
		pipeCounter.Inc()
		if r := recover(); r != nil {
			task.done <- errors.Errorf("XGorm.Pipe: task panic: %v", r)
		}
	}()
	task.done <- task.fn()
}

// await 提交任务并等待其执行完成，返回任务的结果。
// 管道关闭后返回 ErrPipeClosed。
func (p *pipe) await(fn func() error) error {
	task := &pipeTask{fn: fn, done: make(chan error, 1)}
	select {
	case <-p.closed:
		return ErrPipeClosed
	default:
	}

	pipeGauge.Inc()
	select {
	case p.queue <- task:
	case <-p.closed:
		pipeGauge.Dec()
		return ErrPipeClosed
	}

	select {
	case err := <-task.done:
		return err
	case <-p.closed:
		// 已执行或已回收的任务结果必定已写入，否则任务在管道退出后才入队
		select {
		case err := <-task.done:
			return err
		default:
			pipeGauge.Dec()
			return ErrPipeClosed
		}
	}
}

// close 关闭管道并等待管道线程退出，可以重复调用。
func (p *pipe) close() {
	p.closeOnce.Do(func() {
		signal.Stop(p.setupSig)
		close(p.setupSig)
	})
	p.closeWait.Wait()
}
