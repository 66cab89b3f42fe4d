package phreeqc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 构造典型输出流：1 个 i_soln 基线行 + 盐溶解/加酸两行 + 20 个滴定步
func solverRows() []Row {
	rows := []Row{{"state": "i_soln", "pH": "7.0"}}
	rows = append(rows,
		Row{"state": "react", "pH": "6.5"},
		Row{"state": "react", "pH": "5.1"},
	)
	for i := 0; i < 20; i++ {
		rows = append(rows, Row{
			"state":                 "react",
			"pH":                    fmt.Sprintf("%.3f", 5.2+0.1*float64(i)),
			"m_B(OH)3(mol/kgw)":     "0.001",
			"m_B(OH)4-(mol/kgw)":    fmt.Sprintf("%.6f", 0.0001*float64(i+1)),
			"m_B3O3(OH)4-(mol/kgw)": "0",
		})
	}
	return rows
}

func TestClassifyTitration(t *testing.T) {
	points := ClassifyTitration(solverRows(), 0.1)

	// 恰好 20 个点，基线行与前两个反应行全部丢弃
	assert.Len(t, points, 20)

	// 累计体积严格递增，步长 0.1
	for i, p := range points {
		assert.InDelta(t, 0.1*float64(i+1), p.VNaOH, 1e-8)
		if i > 0 {
			assert.Greater(t, p.VNaOH, points[i-1].VNaOH)
		}
		assert.Equal(t, "react", p.State)
	}

	// 第一个保留行是第三个 react 行
	assert.InDelta(t, 5.2, points[0].PH, 1e-9)
	assert.InDelta(t, 7.1, points[19].PH, 1e-9)
}

func TestClassifyTitrationSkipsExactlyTwoReactionRows(t *testing.T) {
	rows := []Row{
		{"state": "i_soln", "pH": "7.0"},
		{"state": "react", "pH": "1.0"},
		{"state": "react", "pH": "2.0"},
		{"state": "react", "pH": "3.0"},
	}
	points := ClassifyTitration(rows, 0.5)

	assert.Len(t, points, 1)
	assert.Equal(t, 3.0, points[0].PH)
	assert.Equal(t, 0.5, points[0].VNaOH)
}

func TestClassifyTitrationEmptyAndBaselineOnly(t *testing.T) {
	assert.Empty(t, ClassifyTitration(nil, 0.1))
	assert.Empty(t, ClassifyTitration([]Row{{"state": "i_soln"}}, 0.1))
	// 只有两个 react 行时没有滴定步
	assert.Empty(t, ClassifyTitration([]Row{
		{"state": "react"}, {"state": "react"},
	}, 0.1))
}

func TestClassifyTitrationMissingPHColumn(t *testing.T) {
	// 缺失 pH 列沿用 Num 的零约定，点仍然生成而不是置空
	rows := []Row{
		{"state": "react"},
		{"state": "react"},
		{"state": "react"},
	}
	points := ClassifyTitration(rows, 0.1)

	assert.Len(t, points, 1)
	assert.Equal(t, 0.0, points[0].PH)
}

func TestBoronRatioSimple(t *testing.T) {
	row := Row{
		"m_B(OH)3(mol/kgw)":  "1",
		"m_B(OH)4-(mol/kgw)": "1",
	}
	assert.Equal(t, 1.0, BoronRatio(row))
}

func TestBoronRatioAllZero(t *testing.T) {
	// 预反应行硼物种全为 0，零保护返回 0 而不是 NaN
	assert.Equal(t, 0.0, BoronRatio(Row{}))
	assert.Equal(t, 0.0, BoronRatio(Row{
		"m_B(OH)3(mol/kgw)":  "0",
		"m_B(OH)4-(mol/kgw)": "0",
	}))
}

func TestBoronRatioPolyborates(t *testing.T) {
	// 多聚硼物种按权重计入：B4O5(OH)4-2 在分子分母都乘 2
	row := Row{
		"m_B(OH)3(mol/kgw)":      "1",
		"m_B3O3(OH)4-(mol/kgw)":  "1",
		"m_B4O5(OH)4-2(mol/kgw)": "1",
	}
	// 分子 = 0+0+0+1+2 = 3，分母 = 1+2+2 = 5
	assert.InDelta(t, 0.6, BoronRatio(row), 1e-12)
}

func TestBoronRatioComplexSpecies(t *testing.T) {
	row := Row{
		"m_B(OH)3(mol/kgw)":    "2",
		"m_B(OH)4-(mol/kgw)":   "1",
		"m_MgB(OH)4+(mol/kgw)": "0.5",
		"m_CaB(OH)4+(mol/kgw)": "0.5",
	}
	assert.InDelta(t, 1.0, BoronRatio(row), 1e-12)
}
