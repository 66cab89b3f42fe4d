package models

import (
	"go-buffercalc/chem"
	"go-buffercalc/phreeqc"
)

// RecipeRequest /recipe 请求体
// 必填字段用指针 + required 标记：缺失在任何计算开始前即报错，数值 0 合法
type RecipeRequest struct {
	Density *float64 `json:"density" binding:"required,gt=0"`
	TDS     *float64 `json:"tds" binding:"required,gte=0"`
	TDSUnit string   `json:"tds_unit" binding:"required"`

	// 主离子浓度 mg/L
	Na  *float64 `json:"Na" binding:"required"`
	K   *float64 `json:"K" binding:"required"`
	Li  *float64 `json:"Li" binding:"required"`
	Mg  *float64 `json:"Mg" binding:"required"`
	Ca  *float64 `json:"Ca" binding:"required"`
	SO4 *float64 `json:"SO4" binding:"required"`

	// 微量离子，仅用于离子表展示
	B  float64 `json:"B"`
	Br float64 `json:"Br"`

	// 水合形态选择，缺省用各盐默认值
	HydMgCl2  string `json:"hyd_MgCl2"`
	HydCaCl2  string `json:"hyd_CaCl2"`
	HydMgSO4  string `json:"hyd_MgSO4"`
	HydNa2SO4 string `json:"hyd_Na2SO4"`
}

// Sample 转为计算核心的水样输入
func (r *RecipeRequest) Sample() chem.SampleInput {
	return chem.SampleInput{
		Density: *r.Density,
		TDS:     *r.TDS,
		TDSUnit: r.TDSUnit,
		Na:      *r.Na,
		K:       *r.K,
		Li:      *r.Li,
		Mg:      *r.Mg,
		Ca:      *r.Ca,
		SO4:     *r.SO4,
		B:       r.B,
		Br:      r.Br,
	}
}

// Hydration 转为水合选择，空字段落到默认形态
func (r *RecipeRequest) Hydration() chem.HydrationChoice {
	hyd := chem.DefaultHydration()
	if r.HydMgCl2 != "" {
		hyd.MgCl2 = chem.HydrationForm(r.HydMgCl2)
	}
	if r.HydCaCl2 != "" {
		hyd.CaCl2 = chem.HydrationForm(r.HydCaCl2)
	}
	if r.HydMgSO4 != "" {
		hyd.MgSO4 = chem.HydrationForm(r.HydMgSO4)
	}
	if r.HydNa2SO4 != "" {
		hyd.Na2SO4 = chem.HydrationForm(r.HydNa2SO4)
	}
	return hyd
}

// CalculationRequest /calculate 请求体：配方字段 + 滴定参数
type CalculationRequest struct {
	RecipeRequest

	H3BO3Conc *float64 `json:"H3BO3_conc" binding:"required"`
	H3BO3Vol  *float64 `json:"H3BO3_vol" binding:"required"`
	SampleVol *float64 `json:"sample_vol" binding:"required"`
	NaOHConc  *float64 `json:"NaOH_conc" binding:"required"`
	NaOHVol   *float64 `json:"NaOH_vol" binding:"required"`

	// 起始 pH，仅展示用
	PH *float64 `json:"pH"`
}

// Titration 转为脚本生成器的滴定参数
func (r *CalculationRequest) Titration() phreeqc.TitrationParams {
	return phreeqc.TitrationParams{
		AcidConc:  *r.H3BO3Conc,
		AcidVol:   *r.H3BO3Vol,
		SampleVol: *r.SampleVol,
		BaseConc:  *r.NaOHConc,
		BaseVol:   *r.NaOHVol,
	}
}

// DefaultPreviewRequest /show_input 与 /show_output 的默认输入
// 数值沿用原工具的示例水样
func DefaultPreviewRequest() CalculationRequest {
	f := func(v float64) *float64 { return &v }
	return CalculationRequest{
		RecipeRequest: RecipeRequest{
			Density: f(1.3),
			TDS:     f(350),
			TDSUnit: "g/L",
			Na:      f(2000),
			K:       f(5000),
			Li:      f(500),
			Mg:      f(20),
			Ca:      f(250),
			SO4:     f(50),
		},
		H3BO3Conc: f(0.4),
		H3BO3Vol:  f(4),
		SampleVol: f(50),
		NaOHConc:  f(1),
		NaOHVol:   f(2),
	}
}
