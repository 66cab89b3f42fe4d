package chem

// HydrationForm 盐的水合形态，决定其式量
type HydrationForm string

const (
	FormAnhydrous    HydrationForm = "Anhydrous"
	FormHexahydrate  HydrationForm = "Hexahydrate"
	FormDihydrate    HydrationForm = "Dihydrate"
	FormHeptahydrate HydrationForm = "Heptahydrate"
	FormDecahydrate  HydrationForm = "Decahydrate"
	FormLiquid       HydrationForm = "liquid"
)

// Anhydrous 是否无水形态，非 "Anhydrous" 的任何值都按水合处理
func (f HydrationForm) Anhydrous() bool {
	return f == FormAnhydrous
}

// HydrationChoice 四种水合敏感盐的形态选择，一次计算内不可变
type HydrationChoice struct {
	MgCl2  HydrationForm
	CaCl2  HydrationForm
	MgSO4  HydrationForm
	Na2SO4 HydrationForm
}

// DefaultHydration 各盐的默认水合形态
func DefaultHydration() HydrationChoice {
	return HydrationChoice{
		MgCl2:  FormHexahydrate,
		CaCl2:  FormAnhydrous,
		MgSO4:  FormHeptahydrate,
		Na2SO4: FormAnhydrous,
	}
}

// SulfatePath 硫酸盐归属路径
// 全部硫酸根要么进 MgSO4 要么进 Na2SO4，绝不拆分，用枚举在结构上保证互斥
type SulfatePath int

const (
	// MagnesiumSulfatePath SO4 <= Mg 时硫酸根进 MgSO4
	MagnesiumSulfatePath SulfatePath = iota
	// SodiumSulfatePath SO4 > Mg 时硫酸根进 Na2SO4
	SodiumSulfatePath
)

// SelectSulfatePath 按 SO4 与 Mg 的摩尔浓度比较选择路径，一次计算只选一次
func SelectSulfatePath(ion IonMolality) SulfatePath {
	if ion.SO4 > ion.Mg {
		return SodiumSulfatePath
	}
	return MagnesiumSulfatePath
}

// SaltMolalities 七种盐的 mmol/kgw
// MgSO4 与 Na2SO4 互斥：任何时刻至多一个非零
type SaltMolalities struct {
	MgCl2  float64
	CaCl2  float64
	LiCl   float64
	MgSO4  float64
	NaCl   float64
	KCl    float64
	Na2SO4 float64
}

// SaltMolalities 由离子摩尔浓度计算各盐投料量
// 所有量用 max(0,·) 下限保护：带噪输入产生的负量静默归零而不是报错
func (c *Calculator) SaltMolalities(ion IonMolality) SaltMolalities {
	path := SelectSulfatePath(ion)

	var s SaltMolalities
	switch path {
	case MagnesiumSulfatePath:
		s.MgCl2 = max0(ion.Mg - ion.SO4)
		s.MgSO4 = max0(ion.SO4)
		s.NaCl = max0(ion.Na)
	case SodiumSulfatePath:
		s.MgCl2 = max0(ion.Mg)
		s.Na2SO4 = max0(ion.SO4)
		// 每 mol SO4 进 Na2SO4 消耗 2 mol Na（电荷配平）
		s.NaCl = max0(ion.Na - 2*ion.SO4)
	}
	s.CaCl2 = max0(ion.Ca)
	s.LiCl = max0(ion.Li)
	s.KCl = max0(ion.K)
	return s
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// SaltAmount 单种盐（或合成的水记录）的投料信息
type SaltAmount struct {
	Millimolal float64       `json:"mmol"`
	Grams      float64       `json:"g"`
	MolarMass  float64       `json:"mw"`
	Form       HydrationForm `json:"form"`
}

// Recipe 盐名 → 投料信息，键名为展示用分子式
type Recipe map[string]SaltAmount

// molarMass 按水合选择查各盐式量
// 水合态 = 无水式量 + 结晶水数 * 水式量；Na2SO4·10H2O 用数据表固定值
func (c *Calculator) molarMass(hyd HydrationChoice) (mgcl2, cacl2, mgso4, na2so4 float64) {
	mgcl2 = c.C.MWMgCl2
	if !hyd.MgCl2.Anhydrous() {
		mgcl2 += float64(c.C.HydMgCl2) * c.C.MWWater
	}
	cacl2 = c.C.MWCaCl2
	if !hyd.CaCl2.Anhydrous() {
		cacl2 += float64(c.C.HydCaCl2) * c.C.MWWater
	}
	mgso4 = c.C.MWMgSO4
	if !hyd.MgSO4.Anhydrous() {
		mgso4 += float64(c.C.HydMgSO4) * c.C.MWWater
	}
	na2so4 = c.C.MWNa2SO4
	if !hyd.Na2SO4.Anhydrous() {
		na2so4 = c.C.MWNa2SO4Decahydrate
	}
	return
}

// BuildRecipe 由离子摩尔浓度和水合选择生成缓冲盐配方
// 输出值按展示约定舍入：投料量/质量4位，式量3位，水的克数2位
func (c *Calculator) BuildRecipe(ion IonMolality, hyd HydrationChoice) Recipe {
	s := c.SaltMolalities(ion)
	mwMgCl2, mwCaCl2, mwMgSO4, mwNa2SO4 := c.molarMass(hyd)

	// g/kgw = 式量 * mmol/kgw / 1000
	gMgCl2 := mwMgCl2 * s.MgCl2 / 1000
	gCaCl2 := mwCaCl2 * s.CaCl2 / 1000
	gLiCl := c.C.MWLiCl * s.LiCl / 1000
	gMgSO4 := mwMgSO4 * s.MgSO4 / 1000
	gNaCl := c.C.MWNaCl * s.NaCl / 1000
	gKCl := c.C.MWKCl * s.KCl / 1000
	gNa2SO4 := mwNa2SO4 * s.Na2SO4 / 1000

	// 水预算：1000 g 基准减去各水合盐带入的结晶水，下限 0
	free := 1000.0
	if !hyd.MgCl2.Anhydrous() {
		free -= s.MgCl2 * float64(c.C.HydMgCl2) * c.C.MWWater / 1000
	}
	if !hyd.CaCl2.Anhydrous() {
		free -= s.CaCl2 * float64(c.C.HydCaCl2) * c.C.MWWater / 1000
	}
	if !hyd.MgSO4.Anhydrous() {
		free -= s.MgSO4 * float64(c.C.HydMgSO4) * c.C.MWWater / 1000
	}
	if !hyd.Na2SO4.Anhydrous() {
		free -= s.Na2SO4 * float64(c.C.HydNa2SO4) * c.C.MWWater / 1000
	}
	waterG := max0(free)
	waterMmol := waterG / c.C.MWWater

	return Recipe{
		"MgCl₂":  {Millimolal: Round(s.MgCl2, 4), Grams: Round(gMgCl2, 4), MolarMass: Round(mwMgCl2, 3), Form: hyd.MgCl2},
		"CaCl₂":  {Millimolal: Round(s.CaCl2, 4), Grams: Round(gCaCl2, 4), MolarMass: Round(mwCaCl2, 3), Form: hyd.CaCl2},
		"LiCl":   {Millimolal: Round(s.LiCl, 4), Grams: Round(gLiCl, 4), MolarMass: Round(c.C.MWLiCl, 3), Form: FormAnhydrous},
		"MgSO₄":  {Millimolal: Round(s.MgSO4, 4), Grams: Round(gMgSO4, 4), MolarMass: Round(mwMgSO4, 3), Form: hyd.MgSO4},
		"NaCl":   {Millimolal: Round(s.NaCl, 4), Grams: Round(gNaCl, 4), MolarMass: Round(c.C.MWNaCl, 3), Form: FormAnhydrous},
		"KCl":    {Millimolal: Round(s.KCl, 4), Grams: Round(gKCl, 4), MolarMass: Round(c.C.MWKCl, 3), Form: FormAnhydrous},
		"Na₂SO₄": {Millimolal: Round(s.Na2SO4, 4), Grams: Round(gNa2SO4, 4), MolarMass: Round(mwNa2SO4, 3), Form: hyd.Na2SO4},
		"H₂O":    {Millimolal: Round(waterMmol, 2), Grams: Round(waterG, 2), MolarMass: Round(c.C.MWWater, 3), Form: FormLiquid},
	}
}
