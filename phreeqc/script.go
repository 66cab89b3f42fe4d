package phreeqc

import (
	"fmt"
	"strings"

	"go-buffercalc/chem"
)

// BaseSteps NaOH 滴定固定 20 步，与输入体积无关（步长参数仅作展示）
const BaseSteps = 20

// TitrationParams 滴定参数，浓度 mol/L，体积 mL
type TitrationParams struct {
	AcidConc  float64 // H3BO3 浓度
	AcidVol   float64 // H3BO3 体积
	SampleVol float64 // 样品分装体积
	BaseConc  float64 // NaOH 浓度
	BaseVol   float64 // NaOH 体积
}

// 求解器配置前导段，逐字节固定，C(4) 行填入 log10(0.000426)
const scriptPreamble = "SELECTED_OUTPUT 1\n" +
	"-molalities\tB(OH)3  B(OH)4- \n" +
	"\tB3O3(OH)4-  B4O5(OH)4-2  MgB(OH)4+  CaB(OH)4+\n" +
	"-ionic_strength       \ttrue\n" +
	"-pH\ttrue\n" +
	"-user_punch\ttrue\n" +
	"-water\ttrue\n" +
	"-alkalinity\ttrue\n" +
	"USER_PUNCH \t1\n" +
	"-headings \tVolume Density\n" +
	"-start\n" +
	"10\tPUNCH SOLN_VOL\n" +
	"20\tPUNCH RHO\n" +
	"30\tEND\n" +
	"SOLUTION\t1\n" +
	"\ttemp\t20\n" +
	"\tpH\t7\n" +
	"\tpe\t4\n" +
	"\tredox\tpe\n" +
	"\tunits\tmol/l\n"

// 块边界：求解器在块间保存并复用工作溶液，三段结构不可改动
const blockBoundary = "SAVE\tSolution\t1\nEND\nUSE\tSolution\t1\n\n"

// reagent REACTION 块中的一行试剂
type reagent struct {
	formula string
	amount  string
}

// reactionBlock 一个有序的 REACTION 块描述
// 三个块（盐溶解、加酸、碱滴定）各自独立构造，归一化公式可单独测试
type reactionBlock struct {
	label    string
	reagents []reagent
	dose     string // 总投加量行（millimoles）
	steps    int
	// REACTION 1 在总量行前空一行，REACTION 2 在其后空一行
	gapBeforeDose bool
}

func (b reactionBlock) writeTo(sb *strings.Builder) {
	fmt.Fprintf(sb, "REACTION\t%s\n", b.label)
	for _, r := range b.reagents {
		fmt.Fprintf(sb, "\t%s\t%s\n", r.formula, r.amount)
	}
	dose := fmt.Sprintf("\t%s\tmillimoles\tin \t%d\tsteps\n", b.dose, b.steps)
	if b.gapBeforeDose {
		sb.WriteString("\n")
		sb.WriteString(dose)
	} else {
		sb.WriteString(dose)
		sb.WriteString("\n")
	}
}

// saltBlock 块1：七种盐一步溶解，各盐量 = mmol/kgw ÷ 归一化系数，9位小数
func saltBlock(cst chem.Constants, s chem.SaltMolalities) reactionBlock {
	rf := cst.RelativeFactor
	amt := func(v float64) string { return fmt.Sprintf("%.9f", v/rf) }
	return reactionBlock{
		label: "1",
		reagents: []reagent{
			{"MgCl2", amt(s.MgCl2)},
			{"CaCl2", amt(s.CaCl2)},
			{"LiCl", amt(s.LiCl)},
			{"MgSO4", amt(s.MgSO4)},
			{"NaCl", amt(s.NaCl)},
			{"KCl", amt(s.KCl)},
			{"Na2SO4", amt(s.Na2SO4)},
		},
		dose:          fmt.Sprintf("%g", rf),
		steps:         1,
		gapBeforeDose: true,
	}
}

// acidBlock 块2a：H3BO3 一步加入
// 总量 mmol = 浓度*体积，除以分装水量 kgw 归一到 mmol/kgw；稀释水比 = 55.5556/浓度
func acidBlock(p TitrationParams, kgwSample float64) reactionBlock {
	dose := p.AcidConc * p.AcidVol / kgwSample
	return reactionBlock{
		label: "2",
		reagents: []reagent{
			{"H3BO3", "1"},
			{"H2O", fmt.Sprintf("%.3f", 55.5556/p.AcidConc)},
		},
		dose:  fmt.Sprintf("%.8f", dose),
		steps: 1,
	}
}

// baseBlock 块2b：NaOH 分 20 等步滴定，归一化方式与加酸一致
func baseBlock(p TitrationParams, kgwSample float64) reactionBlock {
	dose := p.BaseConc * p.BaseVol / kgwSample
	return reactionBlock{
		label: "2",
		reagents: []reagent{
			{"NaOH", "1"},
			{"H2O", fmt.Sprintf("%.4f", 55.5556/p.BaseConc)},
		},
		dose:  fmt.Sprintf("%.8f", dose),
		steps: BaseSteps,
	}
}

// BuildInput 生成完整的反应模拟脚本
// 相同输入产生逐字节相同的脚本；返回脚本文本与固定步数
func BuildInput(cst chem.Constants, salts chem.SaltMolalities, p TitrationParams, waterMass float64) (string, int) {
	// 分装样品中的水量 (kgw)
	kgwSample := p.SampleVol * waterMass / 1000

	var sb strings.Builder
	sb.WriteString(scriptPreamble)
	fmt.Fprintf(&sb, "\tC(4)\t1\tCO2(g)\t%.9f\n", cst.CO2Log)
	sb.WriteString("\t-water\t1\t#\tkg\n")
	sb.WriteString("\n")

	saltBlock(cst, salts).writeTo(&sb)
	sb.WriteString(blockBoundary)
	acidBlock(p, kgwSample).writeTo(&sb)
	sb.WriteString(blockBoundary)
	baseBlock(p, kgwSample).writeTo(&sb)

	return sb.String(), BaseSteps
}
