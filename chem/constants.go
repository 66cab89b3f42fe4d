package chem

import "math"

// Constants 计算所需的全部物理化学常数
// 统一注入 Calculator，避免散落在各处的包级全局量，便于用替代常数集测试
type Constants struct {
	// 离子式量 (g/mol)，SO4 按硫计（样品以 mg-S/L 报告）
	MWNa  float64
	MWK   float64
	MWLi  float64
	MWMg  float64
	MWCa  float64
	MWSO4 float64
	MWB   float64
	MWBr  float64

	// 水的式量 (g/mol)
	MWWater float64

	// 盐的无水式量 (g/mol)
	MWMgCl2  float64
	MWCaCl2  float64
	MWMgSO4  float64
	MWNa2SO4 float64
	MWLiCl   float64
	MWNaCl   float64
	MWKCl    float64

	// Na2SO4·10H2O 沿用原始数据表中的固定值 322.2，不按无水+10*H2O 计算
	MWNa2SO4Decahydrate float64

	// 各水合盐的结晶水个数
	HydMgCl2  int
	HydCaCl2  int
	HydMgSO4  int
	HydNa2SO4 int

	// REACTION 1 中盐量的归一化系数
	RelativeFactor float64

	// CO2 分压常数 log10(0.000426)
	CO2Log float64
}

// DefaultConstants 返回默认常数集
func DefaultConstants() Constants {
	return Constants{
		MWNa:  22.989769,
		MWK:   39.0983,
		MWLi:  6.941,
		MWMg:  24.305,
		MWCa:  40.078,
		MWSO4: 32.02,
		MWB:   10.811,
		MWBr:  79.904,

		MWWater: 18.01528,

		MWMgCl2:  95.211,
		MWCaCl2:  110.984,
		MWMgSO4:  120.366,
		MWNa2SO4: 142.04,
		MWLiCl:   42.394,
		MWNaCl:   58.44,
		MWKCl:    74.55,

		MWNa2SO4Decahydrate: 322.2,

		HydMgCl2:  6,
		HydCaCl2:  2,
		HydMgSO4:  7,
		HydNa2SO4: 10,

		RelativeFactor: 200,

		CO2Log: math.Log10(0.000426),
	}
}

// Calculator 封装一次计算所用的常数集
// 每个请求的派生量（水质量、离子摩尔浓度、配方）都是独立构造的，
// Calculator 本身无可变状态，可安全被并发请求共享
type Calculator struct {
	C Constants
}

// NewCalculator 创建使用默认常数集的计算器
func NewCalculator() *Calculator {
	return &Calculator{C: DefaultConstants()}
}

// Round 四舍五入到指定小数位，仅用于展示层约定，内部计算保持全精度
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
