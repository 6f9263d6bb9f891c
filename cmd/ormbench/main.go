// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// ormbench 依次对 Beego 及 GORM 执行基准测试，并输出每个阶段的胜出者。
package main

import (
	"context"
	"io"
	"os"

	"github.com/eframework-org/GO.ORMBENCH/XBench"
	"github.com/eframework-org/GO.ORMBENCH/XGorm"
	"github.com/eframework-org/GO.ORMBENCH/XOrm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
)

func main() {
	if err := run(context.Background(), XPrefs.Asset(), os.Stdout); err != nil {
		XLog.Panic("ormbench: %+v", err)
	}
}

// run 执行两次基准测试并将对比结果写入 w，GORM 的结果作为对比的第一方。
func run(ctx context.Context, prefs XPrefs.IBase, w io.Writer) error {
	opts := XBench.NewOptions(prefs)

	beego, err := XBench.Run(ctx, XOrm.NewStore(prefs), opts)
	if err != nil {
		return err
	}
	gorm, err := XBench.Run(ctx, XGorm.NewStore(prefs), opts)
	if err != nil {
		return err
	}

	comps, err := XBench.Compare(gorm, beego)
	if err != nil {
		return err
	}
	return XBench.Report(w, comps)
}
