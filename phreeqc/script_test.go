package phreeqc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-buffercalc/chem"
)

func testParams() TitrationParams {
	return TitrationParams{
		AcidConc:  0.4,
		AcidVol:   4,
		SampleVol: 50,
		BaseConc:  1,
		BaseVol:   2,
	}
}

func TestBuildInputDeterministic(t *testing.T) {
	cst := chem.DefaultConstants()
	salts := chem.SaltMolalities{MgCl2: 2, CaCl2: 3, LiCl: 1, NaCl: 90, KCl: 120, Na2SO4: 1.5}

	a, _ := BuildInput(cst, salts, testParams(), 0.95)
	b, _ := BuildInput(cst, salts, testParams(), 0.95)
	assert.Equal(t, a, b)
}

func TestBuildInputPreamble(t *testing.T) {
	input, steps := BuildInput(chem.DefaultConstants(), chem.SaltMolalities{}, testParams(), 0.95)

	assert.Equal(t, BaseSteps, steps)
	assert.True(t, strings.HasPrefix(input, "SELECTED_OUTPUT 1\n"))
	// CO2 分压常数 log10(0.000426)，9位小数逐字固定
	assert.Contains(t, input, "\tC(4)\t1\tCO2(g)\t-3.370590401\n")
	assert.Contains(t, input, "-molalities\tB(OH)3  B(OH)4- \n")
	assert.Contains(t, input, "\t-water\t1\t#\tkg\n")
}

func TestSaltBlockAmounts(t *testing.T) {
	salts := chem.SaltMolalities{MgCl2: 2, CaCl2: 3, NaCl: 90}
	input, _ := BuildInput(chem.DefaultConstants(), salts, testParams(), 0.95)

	// 各盐量 = mmol/kgw ÷ 200，9位小数
	assert.Contains(t, input, "\tMgCl2\t0.010000000\n")
	assert.Contains(t, input, "\tCaCl2\t0.015000000\n")
	assert.Contains(t, input, "\tNaCl\t0.450000000\n")
	assert.Contains(t, input, "\tLiCl\t0.000000000\n")
	assert.Contains(t, input, "\t200\tmillimoles\tin \t1\tsteps\n")
}

func TestAcidBlockNormalization(t *testing.T) {
	input, _ := BuildInput(chem.DefaultConstants(), chem.SaltMolalities{}, testParams(), 0.95)

	// 总量 0.4*4 = 1.6 mmol，kgw = 50*0.95/1000 = 0.0475
	// 1.6/0.0475 = 33.68421053，稀释水比 55.5556/0.4 = 138.889
	assert.Contains(t, input, "\tH3BO3\t1\n\tH2O\t138.889\n\t33.68421053\tmillimoles\tin \t1\tsteps\n")
}

func TestBaseBlockTwentySteps(t *testing.T) {
	input, _ := BuildInput(chem.DefaultConstants(), chem.SaltMolalities{}, testParams(), 0.95)

	// NaOH 固定 20 步：2/0.0475 = 42.10526316，水比 55.5556/1
	assert.Contains(t, input, "\tNaOH\t1\n\tH2O\t55.5556\n\t42.10526316\tmillimoles\tin \t20\tsteps\n")
}

func TestBaseStepsFixedRegardlessOfVolume(t *testing.T) {
	p := testParams()
	p.BaseVol = 7.3
	input, steps := BuildInput(chem.DefaultConstants(), chem.SaltMolalities{}, p, 0.95)

	assert.Equal(t, 20, steps)
	assert.Contains(t, input, "\tin \t20\tsteps\n")
}

func TestBlockBoundaries(t *testing.T) {
	input, _ := BuildInput(chem.DefaultConstants(), chem.SaltMolalities{}, testParams(), 0.95)

	// 三段结构：两个 SAVE/END/USE 边界，三个 REACTION 块
	assert.Equal(t, 2, strings.Count(input, "SAVE\tSolution\t1\nEND\nUSE\tSolution\t1\n\n"))
	assert.Equal(t, 3, strings.Count(input, "REACTION\t"))
	assert.Equal(t, 1, strings.Count(input, "REACTION\t1\n"))
	assert.Equal(t, 2, strings.Count(input, "REACTION\t2\n"))
}
