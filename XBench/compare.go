// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// ErrPhaseMissing 表示第二个结果中缺少第一个结果的某个阶段。
var ErrPhaseMissing = errors.New("phase missing")

// Comparison 描述了单个阶段的对比结果。
type Comparison struct {
	Phase         string
	Winner        string
	Loser         string
	WinnerElapsed time.Duration
	LoserElapsed  time.Duration
}

// String 返回对比结果的描述，胜出者的耗时在前。
func (c Comparison) String() string {
	return fmt.Sprintf("%v is faster (%.6f s vs %.6f s)", c.Winner, c.WinnerElapsed.Seconds(), c.LoserElapsed.Seconds())
}

// Compare 按 first 的阶段顺序对比两个结果。
// 仅当 first 的耗时严格小于 second 时判定 first 胜出，耗时相等时判定 second 胜出。
func Compare(first, second *Result) ([]Comparison, error) {
	comps := make([]Comparison, 0, len(first.phases))
	for _, phase := range first.phases {
		fe := first.elapsed[phase]
		se, ok := second.elapsed[phase]
		if !ok {
			return nil, errors.Wrapf(ErrPhaseMissing, "XBench.Compare: %v of %v", phase, second.Library)
		}
		if fe < se {
			comps = append(comps, Comparison{Phase: phase, Winner: first.Library, Loser: second.Library, WinnerElapsed: fe, LoserElapsed: se})
		} else {
			comps = append(comps, Comparison{Phase: phase, Winner: second.Library, Loser: first.Library, WinnerElapsed: se, LoserElapsed: fe})
		}
	}
	return comps, nil
}

// Report 将对比结果逐个阶段写入 w，格式为 "<阶段>:\n<描述>\n\n"。
func Report(w io.Writer, comps []Comparison) error {
	for _, c := range comps {
		if _, err := fmt.Fprintf(w, "%v:\n%v\n\n", c.Phase, c); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
