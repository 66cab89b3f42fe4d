package phreeqc

import "go-buffercalc/chem"

// TitrationPoint 滴定曲线上的一个点
type TitrationPoint struct {
	State string  `json:"state"`
	VNaOH float64 `json:"V_NaOH"` // 累计滴加体积 mL
	PH    float64 `json:"pH"`
	B4B3  float64 `json:"B4B3"` // 四面体/三角硼物种比
}

// 硼物种比分母的零保护阈值，预反应行的硼物种全为 0
const ratioEpsilon = 1e-30

// BoronRatio 一行输出的 B4/B3 物种比
// 分子 = B(OH)4- + MgB(OH)4+ + CaB(OH)4+ + B3O3(OH)4- + 2*B4O5(OH)4-2
// 分母 = B(OH)3 + 2*B3O3(OH)4- + 2*B4O5(OH)4-2，近零时比值取 0
func BoronRatio(row Row) float64 {
	b3 := row.Num("m_B(OH)3(mol/kgw)")
	b4 := row.Num("m_B(OH)4-(mol/kgw)")
	tri := row.Num("m_B3O3(OH)4-(mol/kgw)")
	tetra := row.Num("m_B4O5(OH)4-2(mol/kgw)")
	mgb := row.Num("m_MgB(OH)4+(mol/kgw)")
	cab := row.Num("m_CaB(OH)4+(mol/kgw)")

	num := b4 + mgb + cab + tri + 2*tetra
	den := b3 + 2*tri + 2*tetra
	if den > ratioEpsilon {
		return num / den
	}
	return 0
}

// 行流分类状态机的状态
// 前两个 react 行分别对应盐溶解和加酸，必须精确跳过两行
type classifyState int

const (
	stateBeforeReactions classifyState = iota // 尚未见到 react 行
	stateSkipFirstTwo                         // 正在跳过盐溶解/加酸两行
	stateCollecting                           // 收集 NaOH 滴定步
)

// ClassifyTitration 扫描求解器输出行，提取 NaOH 滴定曲线
// i_soln 基线行丢弃；前两个 react 行丢弃；其余 react 行各生成一个点，
// 累计体积按步长递增并保留8位小数以抑制浮点漂移
func ClassifyTitration(rows []Row, stepVolume float64) []TitrationPoint {
	state := stateBeforeReactions
	volume := 0.0
	var points []TitrationPoint

	for _, row := range rows {
		if row.Text("state") != "react" {
			continue
		}
		switch state {
		case stateBeforeReactions:
			// 盐溶解行
			state = stateSkipFirstTwo
		case stateSkipFirstTwo:
			// 加酸行
			state = stateCollecting
		case stateCollecting:
			volume = chem.Round(volume+stepVolume, 8)
			points = append(points, TitrationPoint{
				State: "react",
				VNaOH: volume,
				PH:    chem.Round(row.Num("pH"), 5),
				B4B3:  chem.Round(BoronRatio(row), 7),
			})
		}
	}
	return points
}
