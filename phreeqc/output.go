package phreeqc

import (
	"fmt"
	"strconv"
	"strings"
)

// Row 求解器输出的一行，按列名取值
type Row map[string]string

// Text 取文本列，缺失返回空串
func (r Row) Text(key string) string {
	return r[key]
}

// Num 取数值列，缺失或非数值按 0 处理
// 预反应行中不存在的硼物种列正是靠这个约定归零
func (r Row) Num(key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r[key]), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseSelectedOutput 解析 SELECTED_OUTPUT 表
// 首个非空行为表头，其余每行按空白切分并映射到表头
func ParseSelectedOutput(data []byte) ([]Row, error) {
	var headers []string
	var rows []Row

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if headers == nil {
			headers = fields
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("PHREEQC 未返回输出行，请检查 SELECTED_OUTPUT 配置")
	}
	return rows, nil
}
