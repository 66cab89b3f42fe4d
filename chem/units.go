package chem

// SampleInput 一次计算的原始水样输入
// 密度 kg/L，TDS 单位由 TDSUnit 标记（"g/L" 或 "g/kgs"），离子浓度 mg/L
type SampleInput struct {
	Density float64
	TDS     float64
	TDSUnit string

	Na  float64
	K   float64
	Li  float64
	Mg  float64
	Ca  float64
	SO4 float64

	// 微量离子，仅用于离子表展示，不参与配方
	B  float64
	Br float64
}

// IonMolality 六种主离子的摩尔浓度 (mmol/kgw)，派生后不再修改
type IonMolality struct {
	Na  float64
	K   float64
	Li  float64
	Mg  float64
	Ca  float64
	SO4 float64
}

// WaterMass 每升样品中水的质量 (kgw/L)
// tds_unit 为 "g/L" 时:  (1000*density - tds) / 1000
// 否则按 g/kgs 解释:     (1000*density - tds*density) / 1000
// g/kgs 分支对 TDS 乘以密度的不对称性是原始规格的既定行为，不做"修正"
// 不做边界检查：density/TDS 组合使结果 <= 0 属于调用方问题，下游自行承担
func (c *Calculator) WaterMass(density, tds float64, tdsUnit string) float64 {
	if tdsUnit == "g/L" {
		return (1000*density - tds) / 1000
	}
	return (1000*density - tds*density) / 1000
}

// ToMillimolal mg/L → mmol/kgw
// 先除水质量再除式量，除法顺序与参考输出保持逐位一致
func (c *Calculator) ToMillimolal(mgPerL, molarMass, waterMass float64) float64 {
	return mgPerL / waterMass / molarMass
}

// IonMolality 由水样输入和水质量派生六种主离子的 mmol/kgw
func (c *Calculator) IonMolality(s SampleInput, waterMass float64) IonMolality {
	return IonMolality{
		Na:  c.ToMillimolal(s.Na, c.C.MWNa, waterMass),
		K:   c.ToMillimolal(s.K, c.C.MWK, waterMass),
		Li:  c.ToMillimolal(s.Li, c.C.MWLi, waterMass),
		Mg:  c.ToMillimolal(s.Mg, c.C.MWMg, waterMass),
		Ca:  c.ToMillimolal(s.Ca, c.C.MWCa, waterMass),
		SO4: c.ToMillimolal(s.SO4, c.C.MWSO4, waterMass),
	}
}

// IonTable 输出用完整离子表（含 B/Br），保留5位小数
func (c *Calculator) IonTable(s SampleInput, waterMass float64) map[string]float64 {
	ion := c.IonMolality(s, waterMass)
	return map[string]float64{
		"Na":  Round(ion.Na, 5),
		"K":   Round(ion.K, 5),
		"Li":  Round(ion.Li, 5),
		"Mg":  Round(ion.Mg, 5),
		"Ca":  Round(ion.Ca, 5),
		"SO4": Round(ion.SO4, 5),
		"B":   Round(c.ToMillimolal(s.B, c.C.MWB, waterMass), 5),
		"Br":  Round(c.ToMillimolal(s.Br, c.C.MWBr, waterMass), 5),
	}
}
