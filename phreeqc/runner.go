package phreeqc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Solver 外部平衡求解器抽象：接收脚本文本，返回有序行表
// 每次计算构造独立输入，实现方不得在并发请求间共享会话
type Solver interface {
	Run(ctx context.Context, input string) ([]Row, error)
}

// DatabaseFile 默认热力学数据库文件名
const DatabaseFile = "pitzer.dat"

// punchFile phreeqc 批处理模式下 SELECTED_OUTPUT 的默认输出文件名
const punchFile = "selected.out"

// Runner 调用本地 phreeqc 可执行文件的求解器实现
// 本身不设超时，取消边界由调用方通过 ctx 提供
type Runner struct {
	Bin      string // 可执行文件名或路径，空则为 "phreeqc"
	Database string // 数据库路径，空则自动查找 pitzer.dat
}

// NewRunner 创建求解器，数据库路径可用 PHREEQC_DATABASE 环境变量覆盖
func NewRunner() *Runner {
	return &Runner{
		Bin:      os.Getenv("PHREEQC_BIN"),
		Database: os.Getenv("PHREEQC_DATABASE"),
	}
}

func (r *Runner) binary() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "phreeqc"
}

func (r *Runner) database() string {
	if r.Database != "" {
		return r.Database
	}
	return FindDatabase(DatabaseFile)
}

// Run 在临时目录中运行一次模拟并解析其输出表
func (r *Runner) Run(ctx context.Context, input string) ([]Row, error) {
	bin, err := exec.LookPath(r.binary())
	if err != nil {
		return nil, fmt.Errorf("未找到 phreeqc 可执行文件 %q: %w", r.binary(), err)
	}

	db, err := filepath.Abs(r.database())
	if err != nil {
		return nil, fmt.Errorf("解析数据库路径失败: %w", err)
	}
	if _, err := os.Stat(db); err != nil {
		return nil, fmt.Errorf("未找到 PHREEQC 数据库 %s: %w", db, err)
	}

	dir, err := os.MkdirTemp("", "buffercalc-")
	if err != nil {
		return nil, fmt.Errorf("创建临时目录失败: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "input.pqi"), []byte(input), 0o644); err != nil {
		return nil, fmt.Errorf("写入输入脚本失败: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, "input.pqi", "output.out", db)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("PHREEQC 运行失败: %v: %s", err, lastLines(out, 5))
	}

	data, err := os.ReadFile(filepath.Join(dir, punchFile))
	if err != nil {
		return nil, fmt.Errorf("读取 SELECTED_OUTPUT 失败: %w", err)
	}
	return ParseSelectedOutput(data)
}

// FindDatabase 在常见位置查找数据库文件，返回第一个存在的路径
// 查找顺序移植自原部署工具：程序目录、工作目录、系统安装目录
func FindDatabase(name string) string {
	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), name))
	}
	candidates = append(candidates,
		name,
		filepath.Join("/usr/share/phreeqc/database", name),
		filepath.Join("/usr/local/share/phreeqc/database", name),
		filepath.Join("/usr/local/share/doc/phreeqc/database", name),
	)
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	// 都不存在时返回工作目录下的文件名，由调用方报告缺失
	return name
}

// Diagnostics 求解器环境诊断，/debug 路由使用
func (r *Runner) Diagnostics() map[string]interface{} {
	info := map[string]interface{}{}

	bin, err := exec.LookPath(r.binary())
	if err != nil {
		info["phreeqc_bin"] = r.binary()
		info["phreeqc_bin_error"] = err.Error()
	} else {
		info["phreeqc_bin"] = bin
	}

	db := r.database()
	info["database"] = db
	_, statErr := os.Stat(db)
	info["database_exists"] = statErr == nil

	return info
}

func lastLines(out []byte, n int) string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
