package models

import (
	"go-buffercalc/chem"
	"go-buffercalc/phreeqc"
)

// RecipeResponse /recipe 响应数据
type RecipeResponse struct {
	Recipe    chem.Recipe `json:"recipe"`
	WaterMass float64     `json:"water_mass"`
}

// CalculationResult /calculate 响应数据：配方 + 离子表 + 滴定曲线
type CalculationResult struct {
	Titration []phreeqc.TitrationPoint `json:"titration"`
	Recipe    chem.Recipe              `json:"recipe"`
	WaterMass float64                  `json:"water_mass"`
	IonTable  map[string]float64       `json:"ion_mmol_kgw"`
	Steps     int                      `json:"n_steps"`
}

// ScriptPreview /show_input 响应数据
type ScriptPreview struct {
	WaterMass float64 `json:"water_mass"`
	Steps     int     `json:"n_steps"`
	Input     string  `json:"input"`
}
