// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/eframework-org/GO.ORMBENCH/XBench"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/stretchr/testify/assert"
)

// TestRun 测试完整的执行流程及输出格式。
func TestRun(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), XPrefs.New().Set("Bench/Count", 20), &out)
	assert.NoError(t, err, "执行不应当返回错误。")

	blocks := strings.Split(strings.TrimSuffix(out.String(), "\n\n"), "\n\n")
	assert.Len(t, blocks, len(XBench.Phases()), "每个计时阶段应当输出一段结果。")

	line := regexp.MustCompile(`^(GORM|Beego) is faster \(\d+\.\d{6} s vs \d+\.\d{6} s\)$`)
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		if assert.Len(t, lines, 2) {
			assert.Equal(t, XBench.Phases()[i]+":", lines[0])
			assert.Regexp(t, line, lines[1])
		}
	}
	assert.NotContains(t, out.String(), XBench.PhaseInsertAddresses, "不计时的阶段不应当输出。")
}
