package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-buffercalc/chem"
	"go-buffercalc/phreeqc"
)

// stubSolver 测试用求解器桩，返回预置行或错误
type stubSolver struct {
	rows []phreeqc.Row
	err  error
}

func (s *stubSolver) Run(ctx context.Context, input string) ([]phreeqc.Row, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

// 典型求解器输出：基线行 + 盐溶解/加酸两行 + 20 个滴定步
func stubRows() []phreeqc.Row {
	rows := []phreeqc.Row{{"state": "i_soln", "pH": "7.0"}}
	rows = append(rows,
		phreeqc.Row{"state": "react", "pH": "6.4"},
		phreeqc.Row{"state": "react", "pH": "5.0"},
	)
	for i := 0; i < 20; i++ {
		rows = append(rows, phreeqc.Row{
			"state":              "react",
			"pH":                 fmt.Sprintf("%.2f", 5.1+0.1*float64(i)),
			"m_B(OH)3(mol/kgw)":  "0.001",
			"m_B(OH)4-(mol/kgw)": "0.0005",
		})
	}
	return rows
}

func testRouter(solver phreeqc.Solver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bufferController := NewBufferController(chem.NewCalculator(), solver)
	r.POST("/recipe", bufferController.Recipe)
	r.POST("/calculate", bufferController.Calculate)
	r.GET("/show_input", bufferController.ShowInput)
	r.GET("/debug", bufferController.Debug)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const recipeBody = `{
	"density": 1.3, "tds": 350, "tds_unit": "g/L",
	"Na": 2000, "K": 5000, "Li": 500, "Mg": 20, "Ca": 250, "SO4": 50
}`

const calculateBody = `{
	"density": 1.3, "tds": 350, "tds_unit": "g/L",
	"Na": 2000, "K": 5000, "Li": 500, "Mg": 20, "Ca": 250, "SO4": 50,
	"B": 100, "Br": 200,
	"H3BO3_conc": 0.4, "H3BO3_vol": 4, "sample_vol": 50,
	"NaOH_conc": 1, "NaOH_vol": 2
}`

// 响应信封
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestRecipeMissingField(t *testing.T) {
	r := testRouter(&stubSolver{})

	// 缺少 density：计算开始前即报错
	w := doJSON(r, http.MethodPost, "/recipe", `{"tds": 350, "tds_unit": "g/L"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Density")
}

func TestRecipeSuccess(t *testing.T) {
	r := testRouter(&stubSolver{})

	w := doJSON(r, http.MethodPost, "/recipe", recipeBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe    chem.Recipe `json:"recipe"`
		WaterMass float64     `json:"water_mass"`
	}
	decode(t, w, &resp)

	assert.Equal(t, 0.95, resp.WaterMass)
	assert.Contains(t, resp.Recipe, "NaCl")
	assert.Contains(t, resp.Recipe, "H₂O")
	// 该水样走 Na2SO4 路径
	assert.Equal(t, 0.0, resp.Recipe["MgSO₄"].Millimolal)
	assert.Greater(t, resp.Recipe["Na₂SO₄"].Millimolal, 0.0)
}

func TestCalculateSuccess(t *testing.T) {
	r := testRouter(&stubSolver{rows: stubRows()})

	w := doJSON(r, http.MethodPost, "/calculate", calculateBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Titration []phreeqc.TitrationPoint `json:"titration"`
		WaterMass float64                  `json:"water_mass"`
		IonTable  map[string]float64       `json:"ion_mmol_kgw"`
		Steps     int                      `json:"n_steps"`
	}
	decode(t, w, &resp)

	assert.Equal(t, 20, resp.Steps)
	require.Len(t, resp.Titration, 20)
	// 每步体积 = NaOH_vol / 20
	assert.InDelta(t, 0.1, resp.Titration[0].VNaOH, 1e-8)
	assert.InDelta(t, 2.0, resp.Titration[19].VNaOH, 1e-8)
	assert.InDelta(t, 0.5, resp.Titration[0].B4B3, 1e-9)
	assert.Contains(t, resp.IonTable, "B")
	assert.Contains(t, resp.IonTable, "Br")
}

func TestCalculateMissingTitrationParams(t *testing.T) {
	r := testRouter(&stubSolver{rows: stubRows()})

	w := doJSON(r, http.MethodPost, "/calculate", recipeBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "H3BO3Conc")
}

func TestCalculateSolverFailure(t *testing.T) {
	r := testRouter(&stubSolver{err: fmt.Errorf("未找到 phreeqc 可执行文件")})

	// 求解器失败必须显式报告，不得退化为估算值
	w := doJSON(r, http.MethodPost, "/calculate", calculateBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "计算后端失败")
}

func TestShowInputDefaults(t *testing.T) {
	r := testRouter(&stubSolver{})

	w := doJSON(r, http.MethodGet, "/show_input", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		WaterMass float64 `json:"water_mass"`
		Steps     int     `json:"n_steps"`
		Input     string  `json:"input"`
	}
	decode(t, w, &resp)

	assert.Equal(t, 0.95, resp.WaterMass)
	assert.Equal(t, 20, resp.Steps)
	assert.True(t, strings.HasPrefix(resp.Input, "SELECTED_OUTPUT 1\n"))
}

func TestShowInputQueryOverride(t *testing.T) {
	r := testRouter(&stubSolver{})

	// 查询参数覆盖示例输入：density=1.2, tds=200 → (1200-200)/1000 = 1.0
	w := doJSON(r, http.MethodGet, "/show_input?density=1.2&tds=200", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		WaterMass float64 `json:"water_mass"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1.0, resp.WaterMass)
}

func TestShowInputDeterministic(t *testing.T) {
	r := testRouter(&stubSolver{})

	a := doJSON(r, http.MethodGet, "/show_input", "")
	b := doJSON(r, http.MethodGet, "/show_input", "")
	assert.Equal(t, a.Body.String(), b.Body.String())
}
