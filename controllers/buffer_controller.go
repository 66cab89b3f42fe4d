package controllers

import (
	"github.com/gin-gonic/gin"

	"go-buffercalc/chem"
	"go-buffercalc/models"
	"go-buffercalc/phreeqc"
	"go-buffercalc/utils"
)

// BufferController 处理缓冲液配方与滴定模拟相关的请求
// 每个请求独立派生水质量/离子表/配方，控制器自身无可变状态
type BufferController struct {
	Calc   *chem.Calculator
	Solver phreeqc.Solver
}

// NewBufferController 创建一个新的BufferController实例
func NewBufferController(calc *chem.Calculator, solver phreeqc.Solver) *BufferController {
	return &BufferController{Calc: calc, Solver: solver}
}

// Recipe 即时配方计算，不调用求解器
func (c *BufferController) Recipe(ctx *gin.Context) {
	var req models.RecipeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	sample := req.Sample()
	wm := c.Calc.WaterMass(sample.Density, sample.TDS, sample.TDSUnit)
	ion := c.Calc.IonMolality(sample, wm)

	utils.Success(ctx, models.RecipeResponse{
		Recipe:    c.Calc.BuildRecipe(ion, req.Hydration()),
		WaterMass: chem.Round(wm, 6),
	})
}

// Calculate 完整计算：配方 + 脚本生成 + 求解器模拟 + 滴定曲线分类
func (c *BufferController) Calculate(ctx *gin.Context) {
	var req models.CalculationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	sample := req.Sample()
	wm := c.Calc.WaterMass(sample.Density, sample.TDS, sample.TDSUnit)
	ion := c.Calc.IonMolality(sample, wm)

	input, steps := phreeqc.BuildInput(c.Calc.C, c.Calc.SaltMolalities(ion), req.Titration(), wm)

	rows, err := c.Solver.Run(ctx.Request.Context(), input)
	if err != nil {
		utils.SolverError(ctx, err)
		return
	}

	stepVolume := *req.NaOHVol / phreeqc.BaseSteps

	utils.Success(ctx, models.CalculationResult{
		Titration: phreeqc.ClassifyTitration(rows, stepVolume),
		Recipe:    c.Calc.BuildRecipe(ion, req.Hydration()),
		WaterMass: chem.Round(wm, 6),
		IonTable:  c.Calc.IonTable(sample, wm),
		Steps:     steps,
	})
}

// previewRequest 由示例输入和查询参数组装预览请求
func previewRequest(ctx *gin.Context) models.CalculationRequest {
	req := models.DefaultPreviewRequest()
	for key, dst := range map[string]*float64{
		"density": req.Density, "tds": req.TDS,
		"Na": req.Na, "K": req.K, "Li": req.Li,
		"Mg": req.Mg, "Ca": req.Ca, "SO4": req.SO4,
		"H3BO3_conc": req.H3BO3Conc, "H3BO3_vol": req.H3BO3Vol,
		"sample_vol": req.SampleVol,
		"NaOH_conc":  req.NaOHConc, "NaOH_vol": req.NaOHVol,
	} {
		utils.QueryFloat(ctx, key, dst)
	}
	utils.QueryString(ctx, "tds_unit", &req.TDSUnit)
	utils.QueryString(ctx, "hyd_MgCl2", &req.HydMgCl2)
	utils.QueryString(ctx, "hyd_CaCl2", &req.HydCaCl2)
	utils.QueryString(ctx, "hyd_MgSO4", &req.HydMgSO4)
	utils.QueryString(ctx, "hyd_Na2SO4", &req.HydNa2SO4)
	return req
}

// ShowInput 预览将提交给求解器的输入脚本，查询参数可覆盖示例输入
func (c *BufferController) ShowInput(ctx *gin.Context) {
	req := previewRequest(ctx)

	sample := req.Sample()
	wm := c.Calc.WaterMass(sample.Density, sample.TDS, sample.TDSUnit)
	ion := c.Calc.IonMolality(sample, wm)
	input, steps := phreeqc.BuildInput(c.Calc.C, c.Calc.SaltMolalities(ion), req.Titration(), wm)

	utils.Success(ctx, models.ScriptPreview{
		WaterMass: chem.Round(wm, 6),
		Steps:     steps,
		Input:     input,
	})
}

// ShowOutput 运行求解器并返回未分类的原始输出行，用于核对
func (c *BufferController) ShowOutput(ctx *gin.Context) {
	req := previewRequest(ctx)

	sample := req.Sample()
	wm := c.Calc.WaterMass(sample.Density, sample.TDS, sample.TDSUnit)
	ion := c.Calc.IonMolality(sample, wm)
	input, _ := phreeqc.BuildInput(c.Calc.C, c.Calc.SaltMolalities(ion), req.Titration(), wm)

	rows, err := c.Solver.Run(ctx.Request.Context(), input)
	if err != nil {
		utils.SolverError(ctx, err)
		return
	}
	utils.Success(ctx, rows)
}

// Debug 求解器环境诊断
func (c *BufferController) Debug(ctx *gin.Context) {
	utils.Success(ctx, phreeqc.NewRunner().Diagnostics())
}
